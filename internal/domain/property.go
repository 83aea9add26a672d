package domain

import (
	"fmt"
	"strings"
)

// Property selects a device registry property (CM_DRP_*)
type Property uint32

const (
	PropDeviceDesc      Property = 0x01
	PropHardwareIDs     Property = 0x02
	PropCompatibleIDs   Property = 0x03
	PropService         Property = 0x05
	PropClass           Property = 0x08
	PropClassGUID       Property = 0x09
	PropDriver          Property = 0x0A
	PropConfigFlags     Property = 0x0B
	PropManufacturer    Property = 0x0C
	PropFriendlyName    Property = 0x0D
	PropLocation        Property = 0x0E
	PropPhysicalDevice  Property = 0x0F
	PropCapabilities    Property = 0x10
	PropUpperFilters    Property = 0x12
	PropLowerFilters    Property = 0x13
	PropLocationPaths   Property = 0x24
	PropBaseContainerID Property = 0x25
)

// PropertyKind is the registry data type a property is stored as
type PropertyKind int

const (
	KindString PropertyKind = iota
	KindMultiString
	KindDWord
)

type propertyInfo struct {
	name string
	kind PropertyKind
}

var propertyInfos = map[Property]propertyInfo{
	PropFriendlyName:    {"FriendlyName", KindString},
	PropDeviceDesc:      {"DeviceDesc", KindString},
	PropService:         {"Service", KindString},
	PropManufacturer:    {"Manufacturer", KindString},
	PropClass:           {"Class", KindString},
	PropClassGUID:       {"ClassGUID", KindString},
	PropDriver:          {"Driver", KindString},
	PropLocation:        {"Location", KindString},
	PropLocationPaths:   {"LocationPaths", KindMultiString},
	PropPhysicalDevice:  {"PhysicalDevice", KindString},
	PropConfigFlags:     {"ConfigFlags", KindDWord},
	PropCapabilities:    {"Capabilities", KindDWord},
	PropHardwareIDs:     {"HardwareIDs", KindMultiString},
	PropCompatibleIDs:   {"CompatibleIDs", KindMultiString},
	PropUpperFilters:    {"UpperFilters", KindMultiString},
	PropLowerFilters:    {"LowerFilters", KindMultiString},
	PropBaseContainerID: {"BaseContainerID", KindString},
}

// DetailProperties lists the properties shown for a device, in display order
var DetailProperties = []Property{
	PropFriendlyName,
	PropDeviceDesc,
	PropService,
	PropManufacturer,
	PropClass,
	PropClassGUID,
	PropDriver,
	PropLocation,
	PropLocationPaths,
	PropPhysicalDevice,
	PropConfigFlags,
	PropCapabilities,
	PropHardwareIDs,
	PropCompatibleIDs,
	PropUpperFilters,
	PropLowerFilters,
	PropBaseContainerID,
}

func (p Property) String() string {
	if info, ok := propertyInfos[p]; ok {
		return info.name
	}
	return fmt.Sprintf("CM_DRP_0x%02X", uint32(p))
}

// Kind returns the data type of the property. Unknown properties are
// treated as strings.
func (p Property) Kind() PropertyKind {
	return propertyInfos[p].kind
}

// PropertyValue is the value of one registry property of a device. Only
// the field matching Property.Kind() is set.
type PropertyValue struct {
	Property Property
	Text     string
	List     []string
	DWord    uint32
}

// String formats the value for display. Lists are joined with ", " and
// numbers are shown as 0x%08x.
func (v PropertyValue) String() string {
	switch v.Property.Kind() {
	case KindMultiString:
		return strings.Join(v.List, ", ")
	case KindDWord:
		return fmt.Sprintf("0x%08x", v.DWord)
	default:
		return v.Text
	}
}

// IsPropertyAbsent reports whether err means the device simply has no
// value for the property
func IsPropertyAbsent(err error) bool {
	switch Code(err) {
	case CRNoSuchValue, CRInvalidProperty:
		return true
	}
	return false
}

package memory

import "devtree/internal/domain"

// Properties holds the registry properties of a Device. Empty fields are
// properties the device does not have.
type Properties struct {
	FriendlyName    string   `yaml:"friendly_name,omitempty"`
	DeviceDesc      string   `yaml:"device_desc,omitempty"`
	Service         string   `yaml:"service,omitempty"`
	Manufacturer    string   `yaml:"manufacturer,omitempty"`
	Class           string   `yaml:"class,omitempty"`
	ClassGUID       string   `yaml:"class_guid,omitempty"`
	Driver          string   `yaml:"driver,omitempty"`
	Location        string   `yaml:"location,omitempty"`
	LocationPaths   []string `yaml:"location_paths,omitempty"`
	PhysicalDevice  string   `yaml:"physical_device,omitempty"`
	ConfigFlags     *uint32  `yaml:"config_flags,omitempty"`
	Capabilities    *uint32  `yaml:"capabilities,omitempty"`
	HardwareIDs     []string `yaml:"hardware_ids,omitempty"`
	CompatibleIDs   []string `yaml:"compatible_ids,omitempty"`
	UpperFilters    []string `yaml:"upper_filters,omitempty"`
	LowerFilters    []string `yaml:"lower_filters,omitempty"`
	BaseContainerID string   `yaml:"base_container_id,omitempty"`
}

func (p *Properties) text(prop domain.Property) *string {
	switch prop {
	case domain.PropFriendlyName:
		return &p.FriendlyName
	case domain.PropDeviceDesc:
		return &p.DeviceDesc
	case domain.PropService:
		return &p.Service
	case domain.PropManufacturer:
		return &p.Manufacturer
	case domain.PropClass:
		return &p.Class
	case domain.PropClassGUID:
		return &p.ClassGUID
	case domain.PropDriver:
		return &p.Driver
	case domain.PropLocation:
		return &p.Location
	case domain.PropPhysicalDevice:
		return &p.PhysicalDevice
	case domain.PropBaseContainerID:
		return &p.BaseContainerID
	}
	return nil
}

func (p *Properties) list(prop domain.Property) *[]string {
	switch prop {
	case domain.PropLocationPaths:
		return &p.LocationPaths
	case domain.PropHardwareIDs:
		return &p.HardwareIDs
	case domain.PropCompatibleIDs:
		return &p.CompatibleIDs
	case domain.PropUpperFilters:
		return &p.UpperFilters
	case domain.PropLowerFilters:
		return &p.LowerFilters
	}
	return nil
}

func (p *Properties) dword(prop domain.Property) **uint32 {
	switch prop {
	case domain.PropConfigFlags:
		return &p.ConfigFlags
	case domain.PropCapabilities:
		return &p.Capabilities
	}
	return nil
}

// value looks up prop. A nil receiver has no properties.
func (p *Properties) value(prop domain.Property) (domain.PropertyValue, error) {
	v := domain.PropertyValue{Property: prop}
	if p == nil {
		return v, domain.CRNoSuchValue
	}

	if s := p.text(prop); s != nil && *s != "" {
		v.Text = *s
		return v, nil
	}
	if l := p.list(prop); l != nil && len(*l) > 0 {
		v.List = *l
		return v, nil
	}
	if d := p.dword(prop); d != nil && *d != nil {
		v.DWord = **d
		return v, nil
	}
	return v, domain.CRNoSuchValue
}

// PropertiesFrom collects property values read from a device. It returns
// nil when values is empty.
func PropertiesFrom(values []domain.PropertyValue) *Properties {
	if len(values) == 0 {
		return nil
	}
	p := &Properties{}
	for _, v := range values {
		if s := p.text(v.Property); s != nil {
			*s = v.Text
		} else if l := p.list(v.Property); l != nil {
			*l = v.List
		} else if d := p.dword(v.Property); d != nil {
			dw := v.DWord
			*d = &dw
		}
	}
	return p
}

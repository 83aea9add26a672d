package domain

import (
	"errors"
	"fmt"
)

// ConfigRet is a Configuration Manager return code (CR_*). Non-zero values
// are used directly as errors.
type ConfigRet uint32

const (
	CRSuccess                ConfigRet = 0x00
	CRDefault                ConfigRet = 0x01
	CROutOfMemory            ConfigRet = 0x02
	CRInvalidPointer         ConfigRet = 0x03
	CRInvalidFlag            ConfigRet = 0x04
	CRInvalidDevNode         ConfigRet = 0x05
	CRInvalidResDes          ConfigRet = 0x06
	CRInvalidLogConf         ConfigRet = 0x07
	CRInvalidArbitrator      ConfigRet = 0x08
	CRInvalidNodeList        ConfigRet = 0x09
	CRDevNodeHasReqs         ConfigRet = 0x0A
	CRInvalidResourceID      ConfigRet = 0x0B
	CRNoSuchDevNode          ConfigRet = 0x0D
	CRNoMoreLogConf          ConfigRet = 0x0E
	CRNoMoreResDes           ConfigRet = 0x0F
	CRAlreadySuchDevNode     ConfigRet = 0x10
	CRInvalidRangeList       ConfigRet = 0x11
	CRInvalidRange           ConfigRet = 0x12
	CRFailure                ConfigRet = 0x13
	CRNoSuchLogicalDev       ConfigRet = 0x14
	CRCreateBlocked          ConfigRet = 0x15
	CRRemoveVetoed           ConfigRet = 0x17
	CRAPMVetoed              ConfigRet = 0x18
	CRInvalidLoadType        ConfigRet = 0x19
	CRBufferSmall            ConfigRet = 0x1A
	CRNoArbitrator           ConfigRet = 0x1B
	CRNoRegistryHandle       ConfigRet = 0x1C
	CRRegistryError          ConfigRet = 0x1D
	CRInvalidDeviceID        ConfigRet = 0x1E
	CRInvalidData            ConfigRet = 0x1F
	CRInvalidAPI             ConfigRet = 0x20
	CRDevLoaderNotReady      ConfigRet = 0x21
	CRNeedRestart            ConfigRet = 0x22
	CRNoMoreHWProfiles       ConfigRet = 0x23
	CRDeviceNotThere         ConfigRet = 0x24
	CRNoSuchValue            ConfigRet = 0x25
	CRWrongType              ConfigRet = 0x26
	CRInvalidPriority        ConfigRet = 0x27
	CRNotDisableable         ConfigRet = 0x28
	CRFreeResources          ConfigRet = 0x29
	CRQueryVetoed            ConfigRet = 0x2A
	CRCantShareIRQ           ConfigRet = 0x2B
	CRNoDependent            ConfigRet = 0x2C
	CRSameResources          ConfigRet = 0x2D
	CRNoSuchRegistryKey      ConfigRet = 0x2E
	CRInvalidMachineName     ConfigRet = 0x2F
	CRRemoteCommFailure      ConfigRet = 0x30
	CRMachineUnavailable     ConfigRet = 0x31
	CRNoCMServices           ConfigRet = 0x32
	CRAccessDenied           ConfigRet = 0x33
	CRCallNotImplemented     ConfigRet = 0x34
	CRInvalidProperty        ConfigRet = 0x35
	CRDeviceInterfaceActive  ConfigRet = 0x36
	CRNoSuchDeviceInterface  ConfigRet = 0x37
	CRInvalidReferenceString ConfigRet = 0x38
	CRInvalidConflictList    ConfigRet = 0x39
	CRInvalidIndex           ConfigRet = 0x3A
	CRInvalidStructureSize   ConfigRet = 0x3B
)

// CRNoSuchDevInst is the DEVINST alias of CRNoSuchDevNode; child and
// sibling queries use it to signal the end of a chain
const CRNoSuchDevInst = CRNoSuchDevNode

var configRetNames = map[ConfigRet]string{
	CRSuccess:                "CR_SUCCESS",
	CRDefault:                "CR_DEFAULT",
	CROutOfMemory:            "CR_OUT_OF_MEMORY",
	CRInvalidPointer:         "CR_INVALID_POINTER",
	CRInvalidFlag:            "CR_INVALID_FLAG",
	CRInvalidDevNode:         "CR_INVALID_DEVNODE",
	CRInvalidResDes:          "CR_INVALID_RES_DES",
	CRInvalidLogConf:         "CR_INVALID_LOG_CONF",
	CRInvalidArbitrator:      "CR_INVALID_ARBITRATOR",
	CRInvalidNodeList:        "CR_INVALID_NODELIST",
	CRDevNodeHasReqs:         "CR_DEVNODE_HAS_REQS",
	CRInvalidResourceID:      "CR_INVALID_RESOURCEID",
	CRNoSuchDevNode:          "CR_NO_SUCH_DEVNODE",
	CRNoMoreLogConf:          "CR_NO_MORE_LOG_CONF",
	CRNoMoreResDes:           "CR_NO_MORE_RES_DES",
	CRAlreadySuchDevNode:     "CR_ALREADY_SUCH_DEVNODE",
	CRInvalidRangeList:       "CR_INVALID_RANGE_LIST",
	CRInvalidRange:           "CR_INVALID_RANGE",
	CRFailure:                "CR_FAILURE",
	CRNoSuchLogicalDev:       "CR_NO_SUCH_LOGICAL_DEV",
	CRCreateBlocked:          "CR_CREATE_BLOCKED",
	CRRemoveVetoed:           "CR_REMOVE_VETOED",
	CRAPMVetoed:              "CR_APM_VETOED",
	CRInvalidLoadType:        "CR_INVALID_LOAD_TYPE",
	CRBufferSmall:            "CR_BUFFER_SMALL",
	CRNoArbitrator:           "CR_NO_ARBITRATOR",
	CRNoRegistryHandle:       "CR_NO_REGISTRY_HANDLE",
	CRRegistryError:          "CR_REGISTRY_ERROR",
	CRInvalidDeviceID:        "CR_INVALID_DEVICE_ID",
	CRInvalidData:            "CR_INVALID_DATA",
	CRInvalidAPI:             "CR_INVALID_API",
	CRDevLoaderNotReady:      "CR_DEVLOADER_NOT_READY",
	CRNeedRestart:            "CR_NEED_RESTART",
	CRNoMoreHWProfiles:       "CR_NO_MORE_HW_PROFILES",
	CRDeviceNotThere:         "CR_DEVICE_NOT_THERE",
	CRNoSuchValue:            "CR_NO_SUCH_VALUE",
	CRWrongType:              "CR_WRONG_TYPE",
	CRInvalidPriority:        "CR_INVALID_PRIORITY",
	CRNotDisableable:         "CR_NOT_DISABLEABLE",
	CRFreeResources:          "CR_FREE_RESOURCES",
	CRQueryVetoed:            "CR_QUERY_VETOED",
	CRCantShareIRQ:           "CR_CANT_SHARE_IRQ",
	CRNoDependent:            "CR_NO_DEPENDENT",
	CRSameResources:          "CR_SAME_RESOURCES",
	CRNoSuchRegistryKey:      "CR_NO_SUCH_REGISTRY_KEY",
	CRInvalidMachineName:     "CR_INVALID_MACHINENAME",
	CRRemoteCommFailure:      "CR_REMOTE_COMM_FAILURE",
	CRMachineUnavailable:     "CR_MACHINE_UNAVAILABLE",
	CRNoCMServices:           "CR_NO_CM_SERVICES",
	CRAccessDenied:           "CR_ACCESS_DENIED",
	CRCallNotImplemented:     "CR_CALL_NOT_IMPLEMENTED",
	CRInvalidProperty:        "CR_INVALID_PROPERTY",
	CRDeviceInterfaceActive:  "CR_DEVICE_INTERFACE_ACTIVE",
	CRNoSuchDeviceInterface:  "CR_NO_SUCH_DEVICE_INTERFACE",
	CRInvalidReferenceString: "CR_INVALID_REFERENCE_STRING",
	CRInvalidConflictList:    "CR_INVALID_CONFLICT_LIST",
	CRInvalidIndex:           "CR_INVALID_INDEX",
	CRInvalidStructureSize:   "CR_INVALID_STRUCTURE_SIZE",
}

// String returns the symbolic CR_* name, or the hex value for codes
// without one
func (c ConfigRet) String() string {
	if name, ok := configRetNames[c]; ok {
		return name
	}
	return fmt.Sprintf("CR_0x%02X", uint32(c))
}

func (c ConfigRet) Error() string {
	return fmt.Sprintf("%d (%s)", uint32(c), c.String())
}

// Code returns the numeric return code carried by err, CRFailure when err
// is not a ConfigRet and CRSuccess when err is nil
func Code(err error) ConfigRet {
	if err == nil {
		return CRSuccess
	}
	var cr ConfigRet
	if errors.As(err, &cr) {
		return cr
	}
	return CRFailure
}

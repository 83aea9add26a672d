//go:build windows

package cfgmgr

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"devtree/internal/domain"
)

var (
	modcfgmgr32 = windows.NewLazySystemDLL("cfgmgr32.dll")

	procCM_Get_Device_ID_List_SizeW = modcfgmgr32.NewProc("CM_Get_Device_ID_List_SizeW")
	procCM_Get_Device_ID_ListW      = modcfgmgr32.NewProc("CM_Get_Device_ID_ListW")
	procCM_Locate_DevNodeW          = modcfgmgr32.NewProc("CM_Locate_DevNodeW")
	procCM_Get_Child                = modcfgmgr32.NewProc("CM_Get_Child")
	procCM_Get_Sibling              = modcfgmgr32.NewProc("CM_Get_Sibling")
	procCM_Get_Device_ID_Size       = modcfgmgr32.NewProc("CM_Get_Device_ID_Size")
	procCM_Get_Device_IDW           = modcfgmgr32.NewProc("CM_Get_Device_IDW")
	procCM_Get_DevNode_Status       = modcfgmgr32.NewProc("CM_Get_DevNode_Status")

	procCM_Get_DevNode_Registry_PropertyW = modcfgmgr32.NewProc("CM_Get_DevNode_Registry_PropertyW")
)

// Flags for CM_Locate_DevNode
const (
	cmLocateDevNodeNormal  = 0x00000000
	cmLocateDevNodePhantom = 0x00000001
)

// cmCall invokes proc and converts its CONFIGRET into an error. A missing
// DLL or procedure is reported as CR_NO_CM_SERVICES.
func cmCall(proc *windows.LazyProc, args ...uintptr) error {
	if err := proc.Find(); err != nil {
		return domain.CRNoCMServices
	}
	r0, _, _ := proc.Call(args...)
	if cr := domain.ConfigRet(r0); cr != domain.CRSuccess {
		return cr
	}
	return nil
}

func cmGetDeviceIDListSize(length *uint32, filter *uint16, flags uint32) error {
	return cmCall(procCM_Get_Device_ID_List_SizeW, uintptr(unsafe.Pointer(length)), uintptr(unsafe.Pointer(filter)), uintptr(flags))
}

func cmGetDeviceIDList(filter *uint16, buffer *uint16, bufferLen uint32, flags uint32) error {
	return cmCall(procCM_Get_Device_ID_ListW, uintptr(unsafe.Pointer(filter)), uintptr(unsafe.Pointer(buffer)), uintptr(bufferLen), uintptr(flags))
}

func cmLocateDevNode(devInst *uint32, deviceID *uint16, flags uint32) error {
	return cmCall(procCM_Locate_DevNodeW, uintptr(unsafe.Pointer(devInst)), uintptr(unsafe.Pointer(deviceID)), uintptr(flags))
}

func cmGetChild(child *uint32, devInst uint32, flags uint32) error {
	return cmCall(procCM_Get_Child, uintptr(unsafe.Pointer(child)), uintptr(devInst), uintptr(flags))
}

func cmGetSibling(sibling *uint32, devInst uint32, flags uint32) error {
	return cmCall(procCM_Get_Sibling, uintptr(unsafe.Pointer(sibling)), uintptr(devInst), uintptr(flags))
}

func cmGetDeviceIDSize(length *uint32, devInst uint32, flags uint32) error {
	return cmCall(procCM_Get_Device_ID_Size, uintptr(unsafe.Pointer(length)), uintptr(devInst), uintptr(flags))
}

func cmGetDeviceID(devInst uint32, buffer *uint16, bufferLen uint32, flags uint32) error {
	return cmCall(procCM_Get_Device_IDW, uintptr(devInst), uintptr(unsafe.Pointer(buffer)), uintptr(bufferLen), uintptr(flags))
}

func cmGetDevNodeStatus(status *uint32, problem *uint32, devInst uint32, flags uint32) error {
	return cmCall(procCM_Get_DevNode_Status, uintptr(unsafe.Pointer(status)), uintptr(unsafe.Pointer(problem)), uintptr(devInst), uintptr(flags))
}

func cmGetDevNodeRegistryProperty(devInst uint32, property uint32, dataType *uint32, buffer *uint16, length *uint32, flags uint32) error {
	var ptr uintptr
	if buffer != nil {
		ptr = uintptr(unsafe.Pointer(buffer))
	}
	return cmCall(procCM_Get_DevNode_Registry_PropertyW, uintptr(devInst), uintptr(property), uintptr(unsafe.Pointer(dataType)), ptr, uintptr(unsafe.Pointer(length)), uintptr(flags))
}

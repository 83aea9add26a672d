package domain

import "fmt"

// Status is the DN_* flag set reported for a device node
type Status uint32

const (
	DNRootEnumerated Status = 0x00000001
	DNDriverLoaded   Status = 0x00000002
	DNEnumLoaded     Status = 0x00000004
	DNStarted        Status = 0x00000008
	DNManual         Status = 0x00000010
	DNNeedToEnum     Status = 0x00000020
	DNDriverBlocked  Status = 0x00000040
	DNHardwareEnum   Status = 0x00000080
	DNNeedRestart    Status = 0x00000100
	DNChildInvalidID Status = 0x00000200
	DNHasProblem     Status = 0x00000400
	DNFiltered       Status = 0x00000800
	DNLegacyDriver   Status = 0x00001000
	DNDisableable    Status = 0x00002000
	DNRemovable      Status = 0x00004000
	DNPrivateProblem Status = 0x00008000
	DNMFParent       Status = 0x00010000
	DNMFChild        Status = 0x00020000
	DNWillBeRemoved  Status = 0x00040000
	DNNotFirstTimeE  Status = 0x00080000
	DNStopFreeRes    Status = 0x00100000
	DNRebalCandidate Status = 0x00200000
	DNBadPartial     Status = 0x00400000
	DNNTEnumerator   Status = 0x00800000
	DNNTDriver       Status = 0x01000000
	DNNeedsLocking   Status = 0x02000000
	DNArmWakeup      Status = 0x04000000
	DNAPMEnumerator  Status = 0x08000000
	DNAPMDriver      Status = 0x10000000
	DNSilentInstall  Status = 0x20000000
	DNNoShowInDM     Status = 0x40000000
	DNBootLogProb    Status = 0x80000000
)

// Bit order matters: Flags reports names lowest bit first.
var statusNames = []struct {
	flag Status
	name string
}{
	{DNRootEnumerated, "RootEnumerated"},
	{DNDriverLoaded, "DriverLoaded"},
	{DNEnumLoaded, "EnumLoaded"},
	{DNStarted, "Started"},
	{DNManual, "ManuallyInstalled"},
	{DNNeedToEnum, "NeedsEnumeration"},
	{DNDriverBlocked, "DriverBlocked"},
	{DNHardwareEnum, "HardwareEnum"},
	{DNNeedRestart, "NeedRestart"},
	{DNChildInvalidID, "ChildWithInvalidId"},
	{DNHasProblem, "HasProblem"},
	{DNFiltered, "Filtered"},
	{DNLegacyDriver, "LegacyDriver"},
	{DNDisableable, "Disableable"},
	{DNRemovable, "Removable"},
	{DNPrivateProblem, "PrivateProblem"},
	{DNMFParent, "MultiFunctionParent"},
	{DNMFChild, "MultiFunctionChild"},
	{DNWillBeRemoved, "WillBeRemoved"},
	{DNNotFirstTimeE, "NotFirstTimeEnum"},
	{DNStopFreeRes, "StopFreeResources"},
	{DNRebalCandidate, "RebalanceCandidate"},
	{DNBadPartial, "BadPartial"},
	{DNNTEnumerator, "NtEnumerator"},
	{DNNTDriver, "NtDriver"},
	{DNNeedsLocking, "DeviceDisconnected"},
	{DNArmWakeup, "ArmWakeup"},
	{DNAPMEnumerator, "ApmEnumerator"},
	{DNAPMDriver, "ApmDriver"},
	{DNSilentInstall, "SilentInstall"},
	{DNNoShowInDM, "NoShowInDevMgr"},
	{DNBootLogProb, "BootLogProblem"},
}

// Has reports whether every bit of flag is set
func (s Status) Has(flag Status) bool {
	return s&flag == flag
}

// Flags returns the names of the set bits
func (s Status) Flags() []string {
	var names []string
	for _, sn := range statusNames {
		if s.Has(sn.flag) {
			names = append(names, sn.name)
		}
	}
	return names
}

// Problem is a CM_PROB_* code
type Problem uint32

var problemNames = []string{
	"None",
	"NotConfigured",
	"DevLoaderFailed",
	"OutOfMemory",
	"EntryIsWrongType",
	"LackedArbitrator",
	"BootConfigConflict",
	"FailedFilter",
	"DevLoaderNotFound",
	"InvalidData",
	"FailedStart",
	"Liar",
	"NormalConflict",
	"NotVerified",
	"NeedRestart",
	"Reenumeration",
	"PartialLogConf",
	"UnknownResource",
	"Reinstall",
	"Registry",
	"VXDLDR",
	"WillBeRemoved",
	"Disabled",
	"DevLoaderNotReady",
	"DeviceNotThere",
	"Moved",
	"TooEarly",
	"NoValidLogConf",
	"FailedInstall",
	"HardwareDisabled",
	"CantShareIrq",
	"FailedAdd",
	"DisabledService",
	"TranslationFailed",
	"NoSoftConfig",
	"BiosTable",
	"IrqTranslationFailed",
	"FailedDriverEntry",
	"DriverFailedPrioUnload",
	"DriverFailedLoad",
	"DriverServiceKeyInvalid",
	"LegacyServiceNoDevices",
	"DuplicateDevice",
	"FailedPostStart",
	"Halted",
	"Phantom",
	"SystemShutdown",
	"HeldForEject",
	"DriverBlocked",
	"RegistryTooLarge",
	"SetPropertiesFailed",
	"WaitingOnDependency",
	"UnsignedDriver",
	"UsedByDebugger",
	"DeviceReset",
	"ConsoleLocked",
	"NeedClassConfig",
	"GuestAssignmentFailed",
}

const (
	ProblemNone     Problem = 0x00
	ProblemDisabled Problem = 0x16
	ProblemPhantom  Problem = 0x2D
)

func (p Problem) String() string {
	if int(p) < len(problemNames) {
		return problemNames[p]
	}
	return fmt.Sprintf("Problem(%d)", uint32(p))
}

package application

import (
	"fmt"

	"devtree/internal/domain"
)

// Re-export domain types for use by adapters
type (
	DevInst   = domain.DevInst
	Record    = domain.Record
	TreeNode  = domain.TreeNode
	ConfigRet = domain.ConfigRet
)

// Mode selects how devices are enumerated
type Mode int

const (
	ModeList Mode = iota
	ModeRecurse
)

func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeRecurse:
		return "recurse"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode selects the enumeration mode from positional arguments: none or
// "list" selects ModeList, "recurse" selects ModeRecurse. Anything else is
// a ValidationError wrapping ErrUnknownMode or ErrTooManyArguments.
func ParseMode(args []string) (Mode, error) {
	switch len(args) {
	case 0:
		return ModeList, nil
	case 1:
	default:
		return ModeList, &ValidationError{
			Field:   "mode",
			Message: "Error in arguments",
			Err:     ErrTooManyArguments,
		}
	}

	switch args[0] {
	case "list":
		return ModeList, nil
	case "recurse":
		return ModeRecurse, nil
	}
	return ModeList, &ValidationError{
		Field:   "mode",
		Message: "Mode should be in [recurse, list].",
		Err:     ErrUnknownMode,
	}
}

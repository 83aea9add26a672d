package application

import (
	"errors"
	"fmt"

	"devtree/internal/domain"
)

// Sentinel errors for common conditions
var (
	ErrUnknownMode         = errors.New("unknown mode")
	ErrTooManyArguments    = errors.New("too many arguments")
	ErrUnsupportedPlatform = errors.New("device enumeration is not supported on this platform")
	ErrNoSnapshot          = errors.New("no snapshot loaded")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// QueryError is a failed call into the device query service. It renders
// the way the error stream reports it:
//
//	DeviceID(node 12, capacity 256) returned 26 (CR_BUFFER_SMALL)
type QueryError struct {
	Op   string
	Args string
	Err  error
}

// NewQueryError creates a QueryError for op called with args
func NewQueryError(op string, err error, args string) *QueryError {
	return &QueryError{Op: op, Args: args, Err: err}
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s(%s) returned %s", e.Op, e.Args, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Code returns the Configuration Manager return code of the failed call
func (e *QueryError) Code() domain.ConfigRet {
	return domain.Code(e.Err)
}

package domain

import "fmt"

// DevInst is an opaque handle to a node in the device tree, valid only for
// the enumeration pass that produced it
type DevInst uint32

// StatusUnknown is rendered in place of status and problem code when the
// node status could not be queried
const StatusUnknown = -1

// DefaultIDCapacity is the identifier buffer size, in characters, used when
// no capacity is configured
const DefaultIDCapacity = 256

// Record is the view of one inspected device node
type Record struct {
	Node        DevInst
	ID          string
	Status      Status
	Problem     Problem
	StatusKnown bool
}

// StatusValue returns the status as a signed value, StatusUnknown when the
// status query failed
func (r Record) StatusValue() int64 {
	if !r.StatusKnown {
		return StatusUnknown
	}
	return int64(r.Status)
}

// ProblemValue returns the problem code as a signed value, StatusUnknown
// when the status query failed
func (r Record) ProblemValue() int64 {
	if !r.StatusKnown {
		return StatusUnknown
	}
	return int64(r.Problem)
}

// String formats the record as a single output line (without newline):
//
//	Device 1: ROOT\ACPI_HAL\0000 (status=180600a; problem=0)
func (r Record) String() string {
	return fmt.Sprintf("Device %d: %s (status=%x; problem=%d)",
		r.Node, r.ID, r.StatusValue(), r.ProblemValue())
}

// HasProblem reports whether the device manager flags the node with a problem
func (r Record) HasProblem() bool {
	return r.StatusKnown && r.Status.Has(DNHasProblem)
}

package commands

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"devtree/internal/application"
	"devtree/internal/domain"
	"devtree/internal/ports"
)

// Streams carries the record output and the error output of a run
type Streams struct {
	Out io.Writer
	Err io.Writer
}

// Inspection is the outcome of inspecting one node. StatusErr is set when
// the status query failed; the record then carries sentinel values.
type Inspection struct {
	Record    domain.Record
	StatusErr error
}

// Inspector queries identifier and status of device nodes
type Inspector struct {
	svc      ports.DeviceQueryService
	streams  Streams
	capacity int
	log      zerolog.Logger
}

// InspectorOption configures the Inspector
type InspectorOption func(*Inspector)

// WithIDCapacity sets the identifier buffer capacity in characters
func WithIDCapacity(capacity int) InspectorOption {
	return func(i *Inspector) {
		i.capacity = capacity
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(log zerolog.Logger) InspectorOption {
	return func(i *Inspector) {
		i.log = log
	}
}

// NewInspector creates an Inspector writing to streams
func NewInspector(svc ports.DeviceQueryService, streams Streams, opts ...InspectorOption) *Inspector {
	i := &Inspector{
		svc:      svc,
		streams:  streams,
		capacity: domain.DefaultIDCapacity,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Streams returns the output streams of the inspector
func (i *Inspector) Streams() Streams {
	return i.streams
}

// Inspect queries the identifier and then the status of node, each exactly
// once. A failed identifier query is returned as a *application.QueryError
// and the status is not queried. A failed status query is not an error:
// the record is returned with StatusKnown unset and the failure in
// StatusErr.
func (i *Inspector) Inspect(node domain.DevInst) (Inspection, error) {
	id, err := i.svc.DeviceID(node, i.capacity)
	if err != nil {
		return Inspection{}, application.NewQueryError("DeviceID", err,
			fmt.Sprintf("node %d, capacity %d", node, i.capacity))
	}

	result := Inspection{Record: domain.Record{Node: node, ID: id}}

	status, problem, err := i.svc.Status(node)
	if err != nil {
		result.StatusErr = application.NewQueryError("Status", err, fmt.Sprintf("node %d", node))
		return result, nil
	}

	result.Record.Status = status
	result.Record.Problem = problem
	result.Record.StatusKnown = true
	return result, nil
}

// Print inspects node and writes its record line. Failures are written to
// the error stream. Returns whether a record was written.
func (i *Inspector) Print(node domain.DevInst) bool {
	result, err := i.Inspect(node)
	if err != nil {
		i.log.Debug().Uint32("node", uint32(node)).Err(err).Msg("identifier query failed")
		fmt.Fprintln(i.streams.Err, err)
		return false
	}

	if result.StatusErr != nil {
		i.log.Debug().Uint32("node", uint32(node)).Str("id", result.Record.ID).Err(result.StatusErr).Msg("status query failed")
		fmt.Fprintln(i.streams.Err, result.StatusErr)
	}

	fmt.Fprintln(i.streams.Out, result.Record)
	return true
}

// Properties reads the detail properties of node, in display order.
// Properties the device does not have are skipped. Other failures are
// logged and the property is skipped too.
func (i *Inspector) Properties(node domain.DevInst) []domain.PropertyValue {
	var values []domain.PropertyValue
	for _, prop := range domain.DetailProperties {
		v, err := i.svc.Property(node, prop)
		if err != nil {
			if !domain.IsPropertyAbsent(err) {
				i.log.Warn().Uint32("node", uint32(node)).Stringer("property", prop).Err(err).Msg("property query failed")
			}
			continue
		}
		values = append(values, v)
	}
	return values
}

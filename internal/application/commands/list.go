package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"devtree/internal/application"
	"devtree/internal/domain"
	"devtree/internal/ports"
)

// ListStats summarises a flat listing
type ListStats struct {
	Identifiers int // entries in the device identifier list
	Located     int // entries whose node was located
	Records     int // records written
}

// ListDevicesCommand lists every device identifier known to the system and
// inspects the node each one locates to, phantom devices included
type ListDevicesCommand struct {
	svc       ports.DeviceQueryService
	inspector *Inspector
	log       zerolog.Logger
}

// NewListDevicesCommand creates a new ListDevicesCommand
func NewListDevicesCommand(svc ports.DeviceQueryService, inspector *Inspector, log zerolog.Logger) *ListDevicesCommand {
	return &ListDevicesCommand{
		svc:       svc,
		inspector: inspector,
		log:       log,
	}
}

// Execute runs the listing. When the list size or the list itself cannot
// be fetched the failure is written to the error stream and returned as a
// *application.QueryError; nothing else is printed.
//
// Every identifier is printed before its record, with " (error <code>)"
// appended when it could not be located. Inspection is attempted even
// then, so the status failure shows up for the unlocatable node.
func (c *ListDevicesCommand) Execute(ctx context.Context) (*ListStats, error) {
	streams := c.inspector.Streams()
	stats := &ListStats{}

	size, err := c.svc.DeviceIDListSize()
	if err != nil {
		qerr := application.NewQueryError("DeviceIDListSize", err, "no filter")
		fmt.Fprintln(streams.Err, qerr)
		return stats, qerr
	}

	ids, err := c.svc.DeviceIDList(size)
	if err != nil {
		qerr := application.NewQueryError("DeviceIDList", err, fmt.Sprintf("no filter, capacity %d", size))
		fmt.Fprintln(streams.Err, qerr)
		return stats, qerr
	}

	c.log.Debug().Int("capacity", size).Int("identifiers", len(ids)).Msg("fetched device identifier list")

	for _, id := range ids {
		stats.Identifiers++

		node, err := c.svc.Locate(id, true)
		if err != nil {
			c.log.Debug().Str("id", id).Err(err).Msg("locate failed")
			fmt.Fprintf(streams.Out, "%s (error %d)\n", id, uint32(domain.Code(err)))
		} else {
			stats.Located++
			fmt.Fprintln(streams.Out, id)
		}

		if c.inspector.Print(node) {
			stats.Records++
		}
	}

	c.log.Info().
		Int("identifiers", stats.Identifiers).
		Int("located", stats.Located).
		Int("records", stats.Records).
		Msg("device list complete")

	return stats, nil
}

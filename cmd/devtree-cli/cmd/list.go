package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"devtree/internal/application/commands"
	"devtree/internal/ports"
)

// runList prints every device identifier and its record. A failure to
// fetch the list has already been written to the error stream and does not
// fail the run.
func runList(cmd *cobra.Command, svc ports.DeviceQueryService, log zerolog.Logger) error {
	listCmd := commands.NewListDevicesCommand(svc, newInspector(cmd, svc, log), log)
	stats, err := listCmd.Execute(cmd.Context())
	if err != nil {
		log.Debug().Err(err).Msg("list aborted")
		return nil
	}

	log.Debug().
		Int("identifiers", stats.Identifiers).
		Int("located", stats.Located).
		Int("records", stats.Records).
		Msg("list done")
	return nil
}

package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"devtree/internal/application/commands"
	"devtree/internal/ports"
)

// runRecurse prints every device below the tree root, depth first
func runRecurse(cmd *cobra.Command, svc ports.DeviceQueryService, log zerolog.Logger) error {
	walkCmd := commands.NewWalkTreeCommand(svc, newInspector(cmd, svc, log), log)
	stats, err := walkCmd.Execute(cmd.Context())
	if err != nil {
		log.Debug().Err(err).Msg("walk aborted")
		return nil
	}

	log.Debug().Int("visited", stats.Visited).Int("records", stats.Records).Msg("walk done")
	return nil
}

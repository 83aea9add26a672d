package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"devtree/internal/adapters/source"
	"devtree/internal/application"
	"devtree/internal/application/commands"
	"devtree/internal/config"
	"devtree/internal/logger"
	"devtree/internal/ports"
)

var (
	snapshotPath string
	logLevel     string
	idCapacity   int

	newService = func(log zerolog.Logger) (ports.DeviceQueryService, error) {
		return source.Open(snapshotPath, log)
	}
)

var rootCmd = &cobra.Command{
	Use:   "devtree-inspect",
	Short: "Explore the device tree known to the Configuration Manager",
	Long: `devtree-inspect renders, searches and captures the Windows device tree.

Set --snapshot (or DEVTREE_SNAPSHOT) to replay a YAML device tree instead
of querying the live system.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Init(logger.Config{Level: logLevel}); err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		return application.ValidateIDCapacity("id_capacity", idCapacity)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	capacity, err := config.IDCapacity()
	if err != nil {
		l := logger.GetLogger()
		l.Warn().Err(err).Msg("ignoring invalid identifier capacity")
	}

	rootCmd.PersistentFlags().StringVarP(&snapshotPath, "snapshot", "s", config.SnapshotPath(), "replay a YAML device snapshot instead of the live system")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.LogLevel(), "diagnostic log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().IntVar(&idCapacity, "id-capacity", capacity, "device identifier buffer capacity in characters")
}

func newInspector(cmd *cobra.Command, svc ports.DeviceQueryService, log zerolog.Logger) *commands.Inspector {
	streams := commands.Streams{Out: cmd.OutOrStdout(), Err: cmd.ErrOrStderr()}
	return commands.NewInspector(svc, streams,
		commands.WithIDCapacity(idCapacity),
		commands.WithLogger(log),
	)
}

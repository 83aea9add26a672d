package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"devtree/internal/application/commands"
	"devtree/internal/logger"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search devices by identifier, status flag or problem",
	Long: `Search the device tree with fuzzy matching. The query is compared with
each device identifier, the names of its status flags and its problem name.

Examples:
  devtree-inspect search usb
  devtree-inspect search disabled`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("search")
		svc, err := newService(log)
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		searchCmd := commands.NewSearchDevicesCommand(svc, newInspector(cmd, svc, log), log, query)
		results, err := searchCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No devices found.")
			return nil
		}
		for _, r := range results {
			fmt.Fprintln(cmd.OutOrStdout(), r.Record)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

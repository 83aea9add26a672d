package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"devtree/internal/adapters/memory"
	"devtree/internal/application/commands"
	"devtree/internal/logger"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Capture the device tree as a replayable snapshot",
	Long: `Capture the current device tree with the registry properties of each
device, and the device identifiers that are not part of it, as a YAML
snapshot for --snapshot. Failed child and sibling queries are captured too,
so a replay reports them the same way.

Examples:
  devtree-inspect export > devices.yaml
  devtree-inspect export -o devices.yaml
  devtree-cli --snapshot devices.yaml recurse`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("export")
		svc, err := newService(log)
		if err != nil {
			return err
		}

		buildCmd := commands.NewBuildTreeCommand(svc, newInspector(cmd, svc, log), log,
			commands.WithProperties(true))
		tree, err := buildCmd.Execute(cmd.Context())
		if err != nil {
			return err
		}

		// the flat list only contributes identifiers missing from the tree
		var listed []string
		if size, err := svc.DeviceIDListSize(); err != nil {
			log.Warn().Err(err).Msg("device list unavailable, exporting the tree only")
		} else if listed, err = svc.DeviceIDList(size); err != nil {
			log.Warn().Err(err).Msg("device list unavailable, exporting the tree only")
		}

		data, err := memory.SnapshotFromTree(tree.Root, listed).Marshal()
		if err != nil {
			return err
		}

		var w io.Writer = cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", exportOutput, err)
			}
			defer f.Close()
			w = f
		}
		_, err = w.Write(data)
		return err
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write the snapshot to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"devtree/internal/adapters/source"
	"devtree/internal/adapters/tui"
	"devtree/internal/config"
	"devtree/internal/logger"
)

func main() {
	snapshotFlag := flag.String("snapshot", config.SnapshotPath(), "replay a YAML device snapshot instead of the live system")
	flag.Parse()

	// the alternate screen owns the terminal, so diagnostics are dropped
	if err := logger.Init(logger.Config{Level: config.LogLevel(), Output: "discard"}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logger.WithComponent("tui")

	capacity, err := config.IDCapacity()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	svc, err := source.Open(*snapshotFlag, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	app := tui.NewApp(svc, tui.WithIDCapacity(capacity), tui.WithLogger(log))

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

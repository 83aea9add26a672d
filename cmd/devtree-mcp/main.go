package main

import (
	"context"
	"flag"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "devtree/internal/adapters/mcp"
	"devtree/internal/adapters/source"
	"devtree/internal/config"
	"devtree/internal/logger"
)

func main() {
	snapshotFlag := flag.String("snapshot", config.SnapshotPath(), "replay a YAML device snapshot instead of the live system")
	flag.Parse()

	// stdout carries the protocol, diagnostics go to stderr
	if err := logger.Init(logger.Config{Level: config.LogLevel(), Output: "stderr"}); err != nil {
		l := logger.GetLogger()
		l.Fatal().Err(err).Msg("devtree-mcp: invalid log level")
	}
	log := logger.WithComponent("mcp")

	capacity, err := config.IDCapacity()
	if err != nil {
		log.Warn().Err(err).Int("capacity", capacity).Msg("using default identifier capacity")
	}

	svc, err := source.Open(*snapshotFlag, log)
	if err != nil {
		log.Fatal().Err(err).Msg("devtree-mcp: no device service")
	}

	mcpServer := server.NewMCPServer(
		"devtree-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, mcpadapter.NewTools(svc, capacity, log))

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatal().Err(err).Msg("devtree-mcp")
	}
}

package mcp

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"devtree/internal/application"
	"devtree/internal/application/commands"
	"devtree/internal/domain"
	"devtree/internal/ports"
)

// Tools serves device queries to MCP clients. Every call takes a fresh
// snapshot; nothing is cached between calls.
type Tools struct {
	svc      ports.DeviceQueryService
	capacity int
	log      zerolog.Logger
}

// NewTools creates the device tools for svc. capacity is the identifier
// buffer capacity, 0 for the default.
func NewTools(svc ports.DeviceQueryService, capacity int, log zerolog.Logger) *Tools {
	if capacity <= 0 {
		capacity = domain.DefaultIDCapacity
	}
	return &Tools{svc: svc, capacity: capacity, log: log}
}

// RegisterReadTools adds all read-only device tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, t *Tools) {
	s.AddTool(enumerateTool(), t.enumerateHandler)
	s.AddTool(listDevicesTool(), t.listDevicesHandler)
	s.AddTool(deviceTreeTool(), t.deviceTreeHandler)
	s.AddTool(deviceStatusTool(), t.deviceStatusHandler)
	s.AddTool(searchDevicesTool(), t.searchDevicesHandler)
}

func (t *Tools) inspector(out, errOut *bytes.Buffer) *commands.Inspector {
	return commands.NewInspector(t.svc, commands.Streams{Out: out, Err: errOut},
		commands.WithIDCapacity(t.capacity),
		commands.WithLogger(t.log),
	)
}

// --- enumerate ---

func enumerateTool() mcp.Tool {
	return mcp.NewTool("enumerate",
		mcp.WithDescription("Run a device enumeration exactly like the command line does and return its output. Each device is one line: 'Device <node>: <identifier> (status=<hex>; problem=<dec>)'."),
		mcp.WithString("mode",
			mcp.Description("'list' for every known identifier (default), 'recurse' for a depth-first walk of the device tree"),
			mcp.Enum("list", "recurse"),
		),
	)
}

func (t *Tools) enumerateHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args []string
	if mode := req.GetString("mode", ""); mode != "" {
		args = []string{mode}
	}
	mode, err := application.ParseMode(args)
	if err != nil {
		return toolError(err)
	}

	var out, errOut bytes.Buffer
	switch mode {
	case application.ModeRecurse:
		_, err = commands.NewWalkTreeCommand(t.svc, t.inspector(&out, &errOut), t.log).Execute(ctx)
	default:
		_, err = commands.NewListDevicesCommand(t.svc, t.inspector(&out, &errOut), t.log).Execute(ctx)
	}
	if err != nil {
		t.log.Debug().Err(err).Str("mode", mode.String()).Msg("enumeration aborted")
	}
	return streamsResult(&out, &errOut), nil
}

// --- list_devices ---

func listDevicesTool() mcp.Tool {
	return mcp.NewTool("list_devices",
		mcp.WithDescription("List every device identifier known to the Configuration Manager, phantom devices included, with status and problem code."),
		mcp.WithString("contains",
			mcp.Description("Only return devices whose identifier contains this text (case-insensitive)"),
		),
	)
}

func (t *Tools) listDevicesHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var out, errOut bytes.Buffer
	if _, err := commands.NewListDevicesCommand(t.svc, t.inspector(&out, &errOut), t.log).Execute(ctx); err != nil {
		return toolError(err)
	}

	filter := strings.ToLower(req.GetString("contains", ""))
	var sb strings.Builder
	for _, line := range strings.Split(out.String(), "\n") {
		if !strings.HasPrefix(line, "Device ") {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(line), filter) {
			continue
		}
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	if sb.Len() == 0 {
		sb.WriteString("No devices found.\n")
	}
	if errOut.Len() > 0 {
		sb.WriteString("\nErrors:\n")
		sb.Write(errOut.Bytes())
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- device_tree ---

func deviceTreeTool() mcp.Tool {
	return mcp.NewTool("device_tree",
		mcp.WithDescription("Display the device tree, indented by depth, with decoded status flags and problem codes."),
		mcp.WithNumber("max_depth",
			mcp.Description("Maximum depth to display below the root. Omit or 0 for the whole tree."),
		),
		mcp.WithBoolean("properties",
			mcp.Description("List the registry properties of every device below it"),
		),
	)
}

func (t *Tools) deviceTreeHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var discard bytes.Buffer
	buildCmd := commands.NewBuildTreeCommand(t.svc, t.inspector(&discard, &discard), t.log,
		commands.WithProperties(req.GetBool("properties", false)))
	result, err := buildCmd.Execute(ctx)
	if err != nil {
		return toolError(err)
	}

	maxDepth := req.GetInt("max_depth", 0)
	var sb strings.Builder
	result.Root.Walk(func(node *domain.TreeNode, depth int) {
		if maxDepth > 0 && depth > maxDepth {
			return
		}
		indent := strings.Repeat("  ", depth)
		sb.WriteString(indent)
		sb.WriteString(formatNode(node))
		sb.WriteByte('\n')
		for _, v := range node.Properties {
			fmt.Fprintf(&sb, "%s    %s: %s\n", indent, v.Property, v)
		}
	})
	for _, problem := range result.Problems {
		fmt.Fprintf(&sb, "error: %v\n", problem)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- device_status ---

func deviceStatusTool() mcp.Tool {
	return mcp.NewTool("device_status",
		mcp.WithDescription("Show status flags, problem code and registry properties (friendly name, service, class, driver, hardware IDs and so on) of one device by its instance identifier."),
		mcp.WithString("id",
			mcp.Description(`Device instance identifier (e.g. ROOT\ACPI_HAL\0000)`),
			mcp.Required(),
		),
	)
}

func (t *Tools) deviceStatusHandler(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("id", "")
	if id == "" {
		return toolError(fmt.Errorf("id is required"))
	}

	node, err := t.svc.Locate(id, true)
	if err != nil {
		return toolError(application.NewQueryError("Locate", err, id+", phantom"))
	}

	var discard bytes.Buffer
	inspection, err := t.inspector(&discard, &discard).Inspect(node)
	if err != nil {
		return toolError(err)
	}

	rec := inspection.Record
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", rec)
	if inspection.StatusErr != nil {
		fmt.Fprintf(&sb, "status: unknown (%v)\n", inspection.StatusErr)
	} else {
		fmt.Fprintf(&sb, "flags: %s\n", strings.Join(rec.Status.Flags(), ", "))
		fmt.Fprintf(&sb, "problem: %s\n", rec.Problem)
	}
	for _, v := range t.inspector(&discard, &discard).Properties(node) {
		fmt.Fprintf(&sb, "%s: %s\n", v.Property, v)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- search_devices ---

func searchDevicesTool() mcp.Tool {
	return mcp.NewTool("search_devices",
		mcp.WithDescription("Fuzzy search over device identifiers, status flag names and problem names. Returns matching devices, best match first."),
		mcp.WithString("query",
			mcp.Description("Search query, at least two characters (e.g. usb, disabled, VEN_8086)"),
			mcp.Required(),
		),
	)
}

func (t *Tools) searchDevicesHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	if query == "" {
		return toolError(fmt.Errorf("query is required"))
	}

	var discard bytes.Buffer
	results, err := commands.NewSearchDevicesCommand(t.svc, t.inspector(&discard, &discard), t.log, query).Execute(ctx)
	if err != nil {
		return toolError(err)
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("No devices found."), nil
	}

	var sb strings.Builder
	for _, r := range results {
		fmt.Fprintf(&sb, "%s  depth=%d score=%d\n", r.Record, r.Depth, r.Score)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func streamsResult(out, errOut *bytes.Buffer) *mcp.CallToolResult {
	if errOut.Len() == 0 {
		return mcp.NewToolResultText(out.String())
	}
	return mcp.NewToolResultText(out.String() + "\nErrors:\n" + errOut.String())
}

func formatNode(node *domain.TreeNode) string {
	rec := node.Record
	if rec.ID == "" {
		return fmt.Sprintf("<node %d> %v", rec.Node, node.Err)
	}
	if !rec.StatusKnown {
		return rec.ID + " (status unknown)"
	}
	s := rec.ID
	if flags := rec.Status.Flags(); len(flags) > 0 {
		s += " [" + strings.Join(flags, " ") + "]"
	}
	if rec.HasProblem() {
		s += " !" + rec.Problem.String()
	}
	return s
}

package tui

import (
	"context"
	"io"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"devtree/internal/adapters/tui/views"
	"devtree/internal/application/commands"
	"devtree/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewBrowser ViewState = iota
	ViewHelp
)

// App is the main TUI application model
type App struct {
	state   ViewState
	browser *views.BrowserModel
	help    *views.HelpModel

	width  int
	height int
}

// Option configures the App
type Option func(*appConfig)

type appConfig struct {
	capacity int
	log      zerolog.Logger
	copyText views.CopyFunc
}

// WithIDCapacity sets the identifier buffer capacity used for each snapshot
func WithIDCapacity(capacity int) Option {
	return func(c *appConfig) {
		c.capacity = capacity
	}
}

// WithLogger sets the diagnostics logger
func WithLogger(log zerolog.Logger) Option {
	return func(c *appConfig) {
		c.log = log
	}
}

// WithClipboard replaces the system clipboard
func WithClipboard(copyText views.CopyFunc) Option {
	return func(c *appConfig) {
		c.copyText = copyText
	}
}

// NewApp creates a new TUI application browsing the devices of svc
func NewApp(svc ports.DeviceQueryService, opts ...Option) *App {
	cfg := appConfig{
		log:      zerolog.Nop(),
		copyText: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	load := func() (*commands.TreeResult, error) {
		inspectorOpts := []commands.InspectorOption{commands.WithLogger(cfg.log)}
		if cfg.capacity > 0 {
			inspectorOpts = append(inspectorOpts, commands.WithIDCapacity(cfg.capacity))
		}
		// failures are kept on the tree nodes, nothing is printed
		inspector := commands.NewInspector(svc, commands.Streams{Out: io.Discard, Err: io.Discard}, inspectorOpts...)
		buildCmd := commands.NewBuildTreeCommand(svc, inspector, cfg.log, commands.WithProperties(true))
		return buildCmd.Execute(context.Background())
	}

	return &App{
		state:   ViewBrowser,
		browser: views.NewBrowserModel(load, cfg.copyText),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.browser.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.browser.SetSize(msg.Width, msg.Height)
		a.help.SetSize(msg.Width, msg.Height)
		return a, nil

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToBrowserMsg:
		a.state = ViewBrowser
		return a, nil
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewBrowser:
		_, cmd = a.browser.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewHelp:
		return a.help.View()
	default:
		return a.browser.View()
	}
}

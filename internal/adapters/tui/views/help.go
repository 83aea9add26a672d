package views

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"devtree/internal/adapters/tui/styles"
	"devtree/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToBrowserMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	v := NewViewBuilder().
		Title("devtree help").
		Subtitle("Configuration Manager device tree")

	v.Section("Navigation")
	for _, b := range []key.Binding{BrowserKeys.Up, BrowserKeys.Down, BrowserKeys.PageUp, BrowserKeys.PageDown} {
		v.Line(helpLine(b))
	}
	v.Line(helpText("h / ←", "Collapse, or go to parent"))
	v.Line(helpText("l / →", "Expand, or go to first child"))
	v.BlankLine()

	v.Section("Tree")
	for _, b := range []key.Binding{BrowserKeys.Enter, BrowserKeys.ExpandAll, BrowserKeys.CollapseAll, BrowserKeys.Reload} {
		v.Line(helpLine(b))
	}
	v.BlankLine()

	v.Section("Actions")
	v.Line(helpText("y", "Copy the device identifier to the clipboard"))
	v.Line(helpText("q / Ctrl+C", "Quit"))
	v.BlankLine()

	v.Section("Colors")
	v.Line("  " + styles.NodeStarted.Render("started") + "  " +
		styles.NodeStopped.Render("not started") + "  " +
		styles.NodeProblem.Render("has problem") + "  " +
		styles.NodeUnknown.Render("status unknown") + "  " +
		styles.NodeFailed.Render("unreadable"))
	v.BlankLine()

	v.Section("Common problem codes")
	for _, p := range []domain.Problem{domain.ProblemDisabled, domain.ProblemPhantom} {
		v.Line(styles.MutedText.Render(fmt.Sprintf("  %-12s%d", p, uint32(p))))
	}
	v.BlankLine()

	return v.Help(HelpKeys.Close).String()
}

func helpLine(b key.Binding) string {
	h := b.Help()
	return helpText(h.Key, h.Desc)
}

func helpText(keys, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(keys, 14)) + styles.HelpDesc.Render(desc)
}

package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"devtree/internal/adapters/tui/styles"
	"devtree/internal/application/commands"
	"devtree/internal/domain"
)

// BrowserKeyMap defines key bindings for the browser view
type BrowserKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Enter       key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Copy        key.Binding
	Reload      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var BrowserKeys = BrowserKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "toggle"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup", "ctrl+u"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown", "ctrl+d"),
		key.WithHelp("pgdn", "page down"),
	),
	ExpandAll: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "expand all"),
	),
	CollapseAll: key.NewBinding(
		key.WithKeys("C"),
		key.WithHelp("C", "collapse all"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy id"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// TreeLoader takes a fresh snapshot of the device tree
type TreeLoader func() (*commands.TreeResult, error)

// CopyFunc places text on the clipboard
type CopyFunc func(text string) error

// rows taken by title, detail pane, message and help line
const browserChrome = 16

// BrowserModel is the model for the device tree browser
type BrowserModel struct {
	ViewState

	load      TreeLoader
	copyText  CopyFunc
	root      *domain.TreeNode
	problems  int
	flatNodes []*domain.TreeNode
	pager     *Paginator
}

// NewBrowserModel creates a new browser model
func NewBrowserModel(load TreeLoader, copyText CopyFunc) *BrowserModel {
	return &BrowserModel{
		load:     load,
		copyText: copyText,
		pager:    NewPaginator(20),
	}
}

// Init initializes the browser
func (m *BrowserModel) Init() tea.Cmd {
	return m.loadTree
}

func (m *BrowserModel) loadTree() tea.Msg {
	result, err := m.load()
	if err != nil {
		return errMsg{err}
	}
	return treeLoadedMsg{result}
}

type treeLoadedMsg struct {
	result *commands.TreeResult
}

type errMsg struct {
	err error
}

type copiedMsg struct {
	id string
}

// Update handles messages for the browser
func (m *BrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case treeLoadedMsg:
		m.root = msg.result.Root
		m.problems = len(msg.result.Problems)
		m.refreshFlatNodes()
		if m.problems > 0 {
			m.SetMessage(fmt.Sprintf("%d tree queries failed, some branches may be missing", m.problems), true)
		}
		return m, nil

	case errMsg:
		m.SetMessage(msg.err.Error(), true)
		return m, nil

	case copiedMsg:
		m.SetMessage(fmt.Sprintf("Copied %s", msg.id), false)
		return m, nil

	case tea.KeyMsg:
		m.ClearMessage()

		switch {
		case key.Matches(msg, BrowserKeys.Quit):
			return m, tea.Quit

		case key.Matches(msg, BrowserKeys.Up):
			m.pager.CursorUp()

		case key.Matches(msg, BrowserKeys.Down):
			m.pager.CursorDown()

		case key.Matches(msg, BrowserKeys.PageUp):
			m.pager.PrevPage()

		case key.Matches(msg, BrowserKeys.PageDown):
			m.pager.NextPage()

		case key.Matches(msg, BrowserKeys.Left):
			m.collapseOrParent()

		case key.Matches(msg, BrowserKeys.Right):
			m.expandOrChild()

		case key.Matches(msg, BrowserKeys.Enter):
			if node := m.SelectedNode(); node != nil && len(node.Children) > 0 {
				node.Toggle()
				m.refreshFlatNodes()
			}

		case key.Matches(msg, BrowserKeys.ExpandAll):
			if m.root != nil {
				m.root.ExpandAll()
				m.refreshFlatNodes()
			}

		case key.Matches(msg, BrowserKeys.CollapseAll):
			if m.root != nil {
				selected := m.SelectedNode()
				m.root.Walk(func(n *domain.TreeNode, _ int) { n.Collapse() })
				m.root.Expand()
				m.refreshFlatNodes()
				m.selectAncestor(selected)
			}

		case key.Matches(msg, BrowserKeys.Copy):
			if node := m.SelectedNode(); node != nil && node.Record.ID != "" {
				return m, m.copyID(node.Record.ID)
			}

		case key.Matches(msg, BrowserKeys.Reload):
			return m, m.Reload()

		case key.Matches(msg, BrowserKeys.Help):
			return m, func() tea.Msg {
				return SwitchToHelpMsg{}
			}
		}
	}

	return m, nil
}

func (m *BrowserModel) collapseOrParent() {
	node := m.SelectedNode()
	if node == nil {
		return
	}
	if node.IsExpanded && len(node.Children) > 0 {
		node.Collapse()
		m.refreshFlatNodes()
		return
	}
	if node.Parent != nil {
		m.selectNode(node.Parent)
	}
}

func (m *BrowserModel) expandOrChild() {
	node := m.SelectedNode()
	if node == nil || len(node.Children) == 0 {
		return
	}
	if !node.IsExpanded {
		node.Expand()
		m.refreshFlatNodes()
		return
	}
	m.pager.CursorDown()
}

func (m *BrowserModel) copyID(id string) tea.Cmd {
	return func() tea.Msg {
		if err := m.copyText(id); err != nil {
			return errMsg{fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{id}
	}
}

// SelectedNode returns the node under the cursor
func (m *BrowserModel) SelectedNode() *domain.TreeNode {
	cursor := m.pager.Cursor()
	if cursor >= 0 && cursor < len(m.flatNodes) {
		return m.flatNodes[cursor]
	}
	return nil
}

func (m *BrowserModel) selectNode(target *domain.TreeNode) bool {
	for i, n := range m.flatNodes {
		if n == target {
			m.pager.SetCursor(i)
			return true
		}
	}
	return false
}

// selectAncestor selects node or, when it is hidden, its nearest visible
// ancestor
func (m *BrowserModel) selectAncestor(node *domain.TreeNode) {
	for n := node; n != nil; n = n.Parent {
		if m.selectNode(n) {
			return
		}
	}
	m.pager.SetCursor(0)
}

func (m *BrowserModel) refreshFlatNodes() {
	if m.root == nil {
		m.flatNodes = nil
	} else {
		m.flatNodes = m.root.Flatten()
	}
	m.pager.SetTotal(len(m.flatNodes))
}

// View renders the browser
func (m *BrowserModel) View() string {
	if m.root == nil {
		if m.Message != "" {
			return NewViewBuilder().Title("devtree").Message(m.Message, m.MessageErr).String()
		}
		return "Loading..."
	}

	v := NewViewBuilder().
		Title("devtree").
		Subtitle(fmt.Sprintf("%d devices below %s", m.root.Count(), nodeLabel(m.root)))

	start, end := m.pager.VisibleRange()
	for i := start; i < end; i++ {
		v.Line(m.renderNode(m.flatNodes[i], i == m.pager.Cursor()))
	}
	if pages := m.pager.TotalPages(); pages > 1 {
		v.Line(styles.MutedText.Render(fmt.Sprintf("page %d/%d", m.pager.CurrentPage(), pages)))
	}

	v.BlankLine().
		Line(RenderDetail(m.SelectedNode())).
		Message(m.Message, m.MessageErr).
		Help(BrowserKeys.Up, BrowserKeys.Down, BrowserKeys.Left, BrowserKeys.Right,
			BrowserKeys.Copy, BrowserKeys.Help, BrowserKeys.Quit)

	return v.String()
}

func (m *BrowserModel) renderNode(node *domain.TreeNode, selected bool) string {
	indent := strings.Repeat("  ", node.Depth())

	var prefix string
	switch {
	case len(node.Children) == 0:
		prefix = styles.TreeLeaf
	case node.IsExpanded:
		prefix = styles.TreeExpanded
	default:
		prefix = styles.TreeCollapsed
	}

	text := nodeLabel(node)
	if selected {
		text = styles.NodeSelected.Render(text)
	} else {
		text = nodeStyle(node).Render(text)
	}

	return indent + styles.TreeBranch.Render(prefix) + text
}

// SetSize updates the view dimensions and the number of visible rows
func (m *BrowserModel) SetSize(width, height int) {
	m.ViewState.SetSize(width, height)
	m.pager.SetPageSize(max(height-browserChrome, 5))
}

// Reload takes a new snapshot of the device tree
func (m *BrowserModel) Reload() tea.Cmd {
	m.root = nil
	m.flatNodes = nil
	m.pager.SetTotal(0)
	return m.loadTree
}

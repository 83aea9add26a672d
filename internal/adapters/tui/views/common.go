package views

import (
	"github.com/charmbracelet/lipgloss"

	"devtree/internal/adapters/tui/styles"
	"devtree/internal/domain"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// nodeStyle picks the tree style for the state of a device
func nodeStyle(node *domain.TreeNode) lipgloss.Style {
	rec := node.Record
	switch {
	case rec.ID == "":
		return styles.NodeFailed
	case !rec.StatusKnown:
		return styles.NodeUnknown
	case rec.HasProblem():
		return styles.NodeProblem
	case rec.Status.Has(domain.DNStarted):
		return styles.NodeStarted
	default:
		return styles.NodeStopped
	}
}

// nodeLabel is the text shown for a device in the tree
func nodeLabel(node *domain.TreeNode) string {
	if node.Record.ID == "" {
		return "<unreadable device>"
	}
	return node.Record.ID
}

// Messages for view switching
type SwitchToHelpMsg struct{}

type SwitchToBrowserMsg struct{}

package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"devtree/internal/adapters/tui/styles"
	"devtree/internal/domain"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// RenderLabelValue renders a label: value pair for the detail pane
func RenderLabelValue(label, value string) string {
	return fmt.Sprintf("%s %s", styles.DetailLabel.Render(padRight(label+":", 12)), value)
}

// RenderDetail renders everything known about one device node
func RenderDetail(node *domain.TreeNode) string {
	if node == nil {
		return ""
	}
	rec := node.Record

	lines := []string{
		RenderLabelValue("Node", fmt.Sprintf("%d", rec.Node)),
		RenderLabelValue("Identifier", nodeLabel(node)),
	}

	switch {
	case rec.ID == "":
	case rec.StatusKnown:
		lines = append(lines,
			RenderLabelValue("Status", fmt.Sprintf("0x%08x", uint32(rec.Status))),
			RenderLabelValue("Flags", renderFlags(rec.Status)),
			RenderLabelValue("Problem", fmt.Sprintf("%d (%s)", uint32(rec.Problem), rec.Problem)),
		)
	default:
		lines = append(lines, RenderLabelValue("Status", styles.MutedText.Render("unknown")))
	}

	if node.Err != nil {
		lines = append(lines, RenderLabelValue("Error", styles.ErrorMsg.Render(node.Err.Error())))
	}
	if node.ChildErr != nil {
		lines = append(lines, RenderLabelValue("Children", styles.ErrorMsg.Render(node.ChildErr.Error())))
	} else if n := node.Count(); n > 0 {
		lines = append(lines, RenderLabelValue("Children", fmt.Sprintf("%d direct, %d total", len(node.Children), n)))
	}
	if node.SiblingErr != nil {
		lines = append(lines, RenderLabelValue("Siblings", styles.ErrorMsg.Render(node.SiblingErr.Error())))
	}

	if len(node.Properties) > 0 {
		lines = append(lines, "", styles.DetailLabel.Render("Properties"))
		for _, v := range node.Properties {
			lines = append(lines, RenderLabelValue(v.Property.String(), v.String()))
		}
	}

	return styles.Detail.Render(strings.Join(lines, "\n"))
}

func renderFlags(s domain.Status) string {
	flags := s.Flags()
	if len(flags) == 0 {
		return styles.MutedText.Render("none")
	}
	return styles.DetailFlag.Render(strings.Join(flags, " "))
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

// ViewBuilder helps construct view output with consistent formatting
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates a new view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title adds a title section
func (v *ViewBuilder) Title(title string) *ViewBuilder {
	v.b.WriteString(styles.Title.Render(title))
	v.b.WriteString("\n")
	return v
}

// Subtitle adds a subtitle section
func (v *ViewBuilder) Subtitle(subtitle string) *ViewBuilder {
	v.b.WriteString(styles.Subtitle.Render(subtitle))
	v.b.WriteString("\n\n")
	return v
}

// Section adds a section heading
func (v *ViewBuilder) Section(name string) *ViewBuilder {
	v.b.WriteString(styles.HelpSection.Render(name))
	v.b.WriteString("\n")
	return v
}

// Line adds a line of text
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteString("\n")
	return v
}

// BlankLine adds a blank line
func (v *ViewBuilder) BlankLine() *ViewBuilder {
	v.b.WriteString("\n")
	return v
}

// Message adds a message if non-empty, with appropriate error/success styling
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	v.b.WriteString(RenderMessage(message, isError))
	v.b.WriteString("\n")
	return v
}

// Help adds a help line with key bindings
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// String returns the built view string wrapped in the app style
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}

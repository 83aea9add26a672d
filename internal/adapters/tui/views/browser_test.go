package views

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"devtree/internal/adapters/memory"
	"devtree/internal/application/commands"
	"devtree/internal/domain"
)

func testTree() *memory.Device {
	return &memory.Device{
		ID:     `HTREE\ROOT\0`,
		Status: uint32(domain.DNStarted),
		Children: []*memory.Device{
			{ID: `ROOT\ACPI_HAL\0000`, Status: uint32(domain.DNStarted), Children: []*memory.Device{
				{ID: `ACPI_HAL\PNP0C08\0`, Status: uint32(domain.DNStarted)},
				{ID: `ACPI\PNP0A03\0`, Status: uint32(domain.DNStarted)},
			}},
			{ID: `ROOT\DISABLED\0000`, Status: uint32(domain.DNHasProblem), Problem: uint32(domain.ProblemDisabled), Properties: &memory.Properties{
				FriendlyName: "Disabled Device",
				HardwareIDs:  []string{`ROOT\DISABLED`, `DISABLED`},
			}},
		},
	}
}

func loaderFor(svc *memory.Service) TreeLoader {
	return func() (*commands.TreeResult, error) {
		inspector := commands.NewInspector(svc, commands.Streams{Out: io.Discard, Err: io.Discard})
		buildCmd := commands.NewBuildTreeCommand(svc, inspector, zerolog.Nop(), commands.WithProperties(true))
		return buildCmd.Execute(context.Background())
	}
}

func newLoadedBrowser(t *testing.T, copyText CopyFunc) *BrowserModel {
	t.Helper()
	m := NewBrowserModel(loaderFor(memory.NewService(testTree())), copyText)
	m.Update(m.Init()())
	if m.root == nil {
		t.Fatalf("tree not loaded: %s", m.Message)
	}
	return m
}

func press(m *BrowserModel, keys string) tea.Cmd {
	var msg tea.KeyMsg
	switch keys {
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func selectedID(m *BrowserModel) string {
	if node := m.SelectedNode(); node != nil {
		return node.Record.ID
	}
	return ""
}

func TestBrowser_InitialTree(t *testing.T) {
	m := newLoadedBrowser(t, nil)

	// only the root is expanded after loading
	if got := len(m.flatNodes); got != 3 {
		t.Fatalf("visible rows = %d, want 3", got)
	}
	if got := selectedID(m); got != `HTREE\ROOT\0` {
		t.Errorf("selected = %q, want the root", got)
	}

	view := m.View()
	for _, want := range []string{"4 devices below", `ROOT\ACPI_HAL\0000`, `ROOT\DISABLED\0000`} {
		if !strings.Contains(view, want) {
			t.Errorf("view does not contain %q", want)
		}
	}
	if strings.Contains(view, `ACPI_HAL\PNP0C08\0`) {
		t.Error("collapsed children should not be rendered")
	}
}

func TestBrowser_ExpandAndCollapse(t *testing.T) {
	m := newLoadedBrowser(t, nil)

	press(m, "j")
	if got := selectedID(m); got != `ROOT\ACPI_HAL\0000` {
		t.Fatalf("selected = %q", got)
	}

	press(m, "right")
	if got := len(m.flatNodes); got != 5 {
		t.Fatalf("rows after expand = %d, want 5", got)
	}

	press(m, "right")
	if got := selectedID(m); got != `ACPI_HAL\PNP0C08\0` {
		t.Errorf("right on expanded node selected %q, want first child", got)
	}

	press(m, "left")
	if got := selectedID(m); got != `ROOT\ACPI_HAL\0000` {
		t.Errorf("left on leaf selected %q, want parent", got)
	}

	press(m, "left")
	if got := len(m.flatNodes); got != 3 {
		t.Errorf("rows after collapse = %d, want 3", got)
	}
}

func TestBrowser_ExpandAllCollapseAll(t *testing.T) {
	m := newLoadedBrowser(t, nil)

	press(m, "E")
	if got := len(m.flatNodes); got != 5 {
		t.Fatalf("rows after expand all = %d, want 5", got)
	}

	m.pager.SetCursor(3) // ACPI\PNP0A03\0
	press(m, "C")
	if got := len(m.flatNodes); got != 3 {
		t.Errorf("rows after collapse all = %d, want 3", got)
	}
	if got := selectedID(m); got != `ROOT\ACPI_HAL\0000` {
		t.Errorf("selected = %q, want nearest visible ancestor", got)
	}
}

func TestBrowser_CopyIdentifier(t *testing.T) {
	var copied string
	m := newLoadedBrowser(t, func(text string) error {
		copied = text
		return nil
	})

	press(m, "j")
	press(m, "j")
	cmd := press(m, "y")
	if cmd == nil {
		t.Fatal("copy returned no command")
	}
	m.Update(cmd())

	if copied != `ROOT\DISABLED\0000` {
		t.Errorf("copied %q", copied)
	}
	if m.MessageErr || !strings.Contains(m.Message, "Copied") {
		t.Errorf("message = %q (err %v)", m.Message, m.MessageErr)
	}
}

func TestBrowser_CopyFailure(t *testing.T) {
	m := newLoadedBrowser(t, func(string) error {
		return errors.New("no clipboard utility")
	})

	m.Update(press(m, "y")())
	if !m.MessageErr || !strings.Contains(m.Message, "no clipboard utility") {
		t.Errorf("message = %q (err %v)", m.Message, m.MessageErr)
	}
}

func TestBrowser_LoadFailure(t *testing.T) {
	svc := memory.NewService(testTree(), memory.WithRootError(domain.CRNoCMServices))
	m := NewBrowserModel(loaderFor(svc), nil)
	m.Update(m.Init()())

	if m.root != nil {
		t.Fatal("root set after failed load")
	}
	if !strings.Contains(m.View(), "CR_NO_CM_SERVICES") {
		t.Errorf("view does not report the failure:\n%s", m.View())
	}
}

func TestBrowser_QueryProblemsReported(t *testing.T) {
	tree := testTree()
	tree.Children[0].ChildError = uint32(domain.CRRegistryError)
	m := NewBrowserModel(loaderFor(memory.NewService(tree)), nil)
	m.Update(m.Init()())

	if !m.MessageErr || !strings.Contains(m.Message, "1 tree queries failed") {
		t.Errorf("message = %q", m.Message)
	}
}

func TestBrowser_HelpSwitch(t *testing.T) {
	m := newLoadedBrowser(t, nil)

	cmd := press(m, "?")
	if cmd == nil {
		t.Fatal("help returned no command")
	}
	if _, ok := cmd().(SwitchToHelpMsg); !ok {
		t.Error("expected SwitchToHelpMsg")
	}
}

func TestRenderDetail(t *testing.T) {
	m := newLoadedBrowser(t, nil)
	press(m, "j")
	press(m, "j")

	detail := RenderDetail(m.SelectedNode())
	for _, want := range []string{"0x00000400", "HasProblem", "22 (Disabled)", "Properties", "FriendlyName", "Disabled Device", `ROOT\DISABLED, DISABLED`} {
		if !strings.Contains(detail, want) {
			t.Errorf("detail does not contain %q:\n%s", want, detail)
		}
	}
}

func TestRenderDetail_ChainFailure(t *testing.T) {
	tree := testTree()
	tree.Children[0].ChildError = uint32(domain.CRRegistryError)
	m := NewBrowserModel(loaderFor(memory.NewService(tree)), nil)
	m.Update(m.Init()())
	press(m, "j")

	detail := RenderDetail(m.SelectedNode())
	if !strings.Contains(detail, "FirstChild(node 2) returned 29 (CR_REGISTRY_ERROR)") {
		t.Errorf("detail does not report the child query failure:\n%s", detail)
	}
	if strings.Contains(detail, "Properties") {
		t.Errorf("node without properties has a properties section:\n%s", detail)
	}
}

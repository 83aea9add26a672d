package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"devtree/internal/application/commands"
	"devtree/internal/domain"
	"devtree/internal/logger"
)

var (
	treeShowFlags      bool
	treeShowProperties bool
	treeMaxDepth       int
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Display the device tree",
	Long: `Display the device tree with decoded status flags and problem codes.
With --properties the registry properties of each device (friendly name,
service, class, hardware IDs and so on) are listed below it.

Examples:
  devtree-inspect tree
  devtree-inspect tree --depth 2 --flags=false
  devtree-inspect tree --properties`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("tree")
		svc, err := newService(log)
		if err != nil {
			return err
		}

		buildCmd := commands.NewBuildTreeCommand(svc, newInspector(cmd, svc, log), log,
			commands.WithProperties(treeShowProperties))
		result, err := buildCmd.Execute(cmd.Context())
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return nil
		}
		for _, problem := range result.Problems {
			fmt.Fprintln(cmd.ErrOrStderr(), problem)
		}

		p := newTreePrinter(cmd.OutOrStdout())
		p.print(result.Root, "", true, 0)
		return nil
	},
}

type treePrinter struct {
	w        io.Writer
	id       lipgloss.Style
	flags    lipgloss.Style
	problem  lipgloss.Style
	failed   lipgloss.Style
	branch   lipgloss.Style
	property lipgloss.Style
}

func newTreePrinter(w io.Writer) *treePrinter {
	r := lipgloss.NewRenderer(w)
	return &treePrinter{
		w:        w,
		id:       r.NewStyle().Bold(true),
		flags:    r.NewStyle().Faint(true),
		problem:  r.NewStyle().Foreground(lipgloss.Color("214")),
		failed:   r.NewStyle().Foreground(lipgloss.Color("196")),
		branch:   r.NewStyle().Foreground(lipgloss.Color("240")),
		property: r.NewStyle().Foreground(lipgloss.Color("109")),
	}
}

func (p *treePrinter) print(node *domain.TreeNode, prefix string, last bool, depth int) {
	if depth == 0 {
		fmt.Fprintln(p.w, p.label(node))
	} else {
		connector := "├── "
		if last {
			connector = "└── "
		}
		fmt.Fprintln(p.w, p.branch.Render(prefix+connector)+p.label(node))
		if last {
			prefix += "    "
		} else {
			prefix += "│   "
		}
	}

	showChildren := treeMaxDepth == 0 || depth < treeMaxDepth
	if len(node.Properties) > 0 {
		guide := "    "
		if showChildren && len(node.Children) > 0 {
			guide = "│   "
		}
		for _, v := range node.Properties {
			fmt.Fprintln(p.w, p.branch.Render(prefix+guide)+p.property.Render(v.Property.String()+": "+v.String()))
		}
	}

	if !showChildren {
		return
	}
	for i, child := range node.Children {
		p.print(child, prefix, i == len(node.Children)-1, depth+1)
	}
}

func (p *treePrinter) label(node *domain.TreeNode) string {
	rec := node.Record
	if rec.ID == "" {
		return p.failed.Render(fmt.Sprintf("<node %d> %v", rec.Node, node.Err))
	}

	var b strings.Builder
	b.WriteString(p.id.Render(rec.ID))
	if !rec.StatusKnown {
		b.WriteString(" " + p.failed.Render("status unknown"))
		return b.String()
	}
	if treeShowFlags {
		if flags := rec.Status.Flags(); len(flags) > 0 {
			b.WriteString(" " + p.flags.Render("["+strings.Join(flags, " ")+"]"))
		}
	}
	if rec.HasProblem() {
		b.WriteString(" " + p.problem.Render("!"+rec.Problem.String()))
	}
	return b.String()
}

func init() {
	treeCmd.Flags().BoolVar(&treeShowFlags, "flags", true, "show decoded status flags")
	treeCmd.Flags().BoolVar(&treeShowProperties, "properties", false, "list the registry properties of every device")
	treeCmd.Flags().IntVar(&treeMaxDepth, "depth", 0, "maximum depth to display (0 for all)")
	rootCmd.AddCommand(treeCmd)
}

package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"devtree/internal/application"
	"devtree/internal/domain"
	"devtree/internal/ports"
)

// WalkStats summarises a tree walk
type WalkStats struct {
	Visited int // nodes reached below the root
	Records int // records written
}

// visitFunc is called once per node below the root, in pre-order. depth is
// 1 for children of the root.
type visitFunc func(node domain.DevInst, depth int)

// Names of the navigation queries, as reported in a QueryError
const (
	opFirstChild  = "FirstChild"
	opNextSibling = "NextSibling"
)

// walker performs the depth-first traversal shared by the tree commands.
// It keeps an explicit stack of ancestors instead of recursing, so deep
// trees do not grow the call stack. errOut receives every failed child or
// sibling query together with the node it was made from.
type walker struct {
	svc    ports.DeviceQueryService
	errOut func(from domain.DevInst, err *application.QueryError)
	log    zerolog.Logger
}

// locateRoot locates the root of the tree, phantom devices included
func (w *walker) locateRoot() (domain.DevInst, error) {
	root, err := w.svc.Locate("", true)
	if err != nil {
		return 0, application.NewQueryError("Locate", err, "root, phantom")
	}
	return root, nil
}

// walk visits every descendant of root. Children are visited in the order
// the service returns them, each before its own children.
func (w *walker) walk(root domain.DevInst, visit visitFunc) int {
	visited := 0
	var stack []domain.DevInst

	child, err := w.svc.FirstChild(root)
	node, ok := w.follow(opFirstChild, root, child, err)
	for {
		if ok {
			visited++
			visit(node, len(stack)+1)
			stack = append(stack, node)
			child, err = w.svc.FirstChild(node)
			node, ok = w.follow(opFirstChild, node, child, err)
			continue
		}
		if len(stack) == 0 {
			break
		}
		last := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		sibling, err := w.svc.NextSibling(last)
		node, ok = w.follow(opNextSibling, last, sibling, err)
	}
	return visited
}

// follow interprets the result of a child or sibling query made from node
// from: a result continues the chain, CR_NO_SUCH_DEVNODE ends it quietly,
// any other failure ends it and is reported.
func (w *walker) follow(op string, from, result domain.DevInst, err error) (domain.DevInst, bool) {
	if err == nil {
		return result, true
	}
	if errors.Is(err, domain.CRNoSuchDevNode) {
		return 0, false
	}
	w.log.Warn().Uint32("node", uint32(from)).Err(err).Msgf("%s failed, chain ends", op)
	w.errOut(from, application.NewQueryError(op, err, fmt.Sprintf("node %d", from)))
	return 0, false
}

// WalkTreeCommand prints every device below the root of the device tree,
// depth first. The root itself is a synthetic anchor and is not printed.
type WalkTreeCommand struct {
	svc       ports.DeviceQueryService
	inspector *Inspector
	log       zerolog.Logger
}

// NewWalkTreeCommand creates a new WalkTreeCommand
func NewWalkTreeCommand(svc ports.DeviceQueryService, inspector *Inspector, log zerolog.Logger) *WalkTreeCommand {
	return &WalkTreeCommand{
		svc:       svc,
		inspector: inspector,
		log:       log,
	}
}

// Execute runs the walk. When the root cannot be located the failure is
// written to the error stream and returned as a *application.QueryError.
func (c *WalkTreeCommand) Execute(ctx context.Context) (*WalkStats, error) {
	streams := c.inspector.Streams()
	w := &walker{
		svc: c.svc,
		errOut: func(_ domain.DevInst, err *application.QueryError) {
			fmt.Fprintln(streams.Err, err)
		},
		log: c.log,
	}

	stats := &WalkStats{}

	root, err := w.locateRoot()
	if err != nil {
		fmt.Fprintln(streams.Err, err)
		return stats, err
	}
	c.log.Debug().Uint32("root", uint32(root)).Msg("located device tree root")

	stats.Visited = w.walk(root, func(node domain.DevInst, _ int) {
		if c.inspector.Print(node) {
			stats.Records++
		}
	})

	c.log.Info().Int("visited", stats.Visited).Int("records", stats.Records).Msg("device tree walk complete")
	return stats, nil
}

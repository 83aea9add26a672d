package commands

import (
	"context"

	"github.com/rs/zerolog"

	"devtree/internal/application"
	"devtree/internal/domain"
	"devtree/internal/ports"
)

// TreeResult is a device tree materialised by BuildTreeCommand
type TreeResult struct {
	Root     *domain.TreeNode
	Problems []error // failed child or sibling queries
}

// BuildTreeCommand walks the device tree like WalkTreeCommand but collects
// the records into a domain.TreeNode instead of printing them
type BuildTreeCommand struct {
	svc        ports.DeviceQueryService
	inspector  *Inspector
	log        zerolog.Logger
	properties bool
}

// BuildTreeOption configures the BuildTreeCommand
type BuildTreeOption func(*BuildTreeCommand)

// WithProperties makes the command read the detail properties of every
// node whose identifier could be read
func WithProperties(enabled bool) BuildTreeOption {
	return func(c *BuildTreeCommand) {
		c.properties = enabled
	}
}

// NewBuildTreeCommand creates a new BuildTreeCommand
func NewBuildTreeCommand(svc ports.DeviceQueryService, inspector *Inspector, log zerolog.Logger, opts ...BuildTreeOption) *BuildTreeCommand {
	c := &BuildTreeCommand{
		svc:       svc,
		inspector: inspector,
		log:       log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Execute builds the tree. The root node is inspected to label the anchor.
// Nodes whose identifier query fails stay in the tree with Err set so that
// their children keep their place. A failed child or sibling query is kept
// on the node it was made from as well as in Problems.
func (c *BuildTreeCommand) Execute(ctx context.Context) (*TreeResult, error) {
	result := &TreeResult{}
	byHandle := make(map[domain.DevInst]*domain.TreeNode)
	w := &walker{
		svc: c.svc,
		errOut: func(from domain.DevInst, err *application.QueryError) {
			result.Problems = append(result.Problems, err)
			n, ok := byHandle[from]
			if !ok {
				return
			}
			switch err.Op {
			case opFirstChild:
				n.ChildErr = err
			case opNextSibling:
				n.SiblingErr = err
			}
		},
		log: c.log,
	}

	rootHandle, err := w.locateRoot()
	if err != nil {
		return nil, err
	}

	result.Root = c.inspect(rootHandle)
	result.Root.Expand()
	byHandle[rootHandle] = result.Root

	// path[d] is the most recent node at depth d
	path := []*domain.TreeNode{result.Root}
	w.walk(rootHandle, func(node domain.DevInst, depth int) {
		tn := c.inspect(node)
		byHandle[node] = tn
		path = path[:depth]
		path[depth-1].AddChild(tn)
		path = append(path, tn)
	})

	c.log.Debug().Int("nodes", result.Root.Count()).Int("problems", len(result.Problems)).Msg("device tree built")
	return result, nil
}

func (c *BuildTreeCommand) inspect(node domain.DevInst) *domain.TreeNode {
	inspection, err := c.inspector.Inspect(node)
	if err != nil {
		return &domain.TreeNode{Record: domain.Record{Node: node}, Err: err}
	}
	tn := &domain.TreeNode{Record: inspection.Record, Err: inspection.StatusErr}
	if c.properties {
		tn.Properties = c.inspector.Properties(node)
	}
	return tn
}

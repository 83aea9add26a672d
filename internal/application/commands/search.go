package commands

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"devtree/internal/domain"
	"devtree/internal/ports"
)

// SearchResult is a device matching a search, with its relevance score
type SearchResult struct {
	Record domain.Record
	Depth  int
	Score  int
}

// SearchDevicesCommand searches the device tree with fuzzy matching on
// identifiers, status flag names and problem names
type SearchDevicesCommand struct {
	svc       ports.DeviceQueryService
	inspector *Inspector
	log       zerolog.Logger
	Query     string
}

// NewSearchDevicesCommand creates a new SearchDevicesCommand
func NewSearchDevicesCommand(svc ports.DeviceQueryService, inspector *Inspector, log zerolog.Logger, query string) *SearchDevicesCommand {
	return &SearchDevicesCommand{
		svc:       svc,
		inspector: inspector,
		log:       log,
		Query:     query,
	}
}

// Execute builds the device tree and returns matching devices, best first.
// Queries shorter than two characters match nothing.
func (c *SearchDevicesCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < 2 {
		return nil, nil
	}

	tree, err := NewBuildTreeCommand(c.svc, c.inspector, c.log).Execute(ctx)
	if err != nil {
		return nil, err
	}

	var results []SearchResult
	tree.Root.Walk(func(node *domain.TreeNode, depth int) {
		if node.Record.ID == "" {
			return
		}
		if score := DeviceScore(node.Record, c.Query); score > 0 {
			results = append(results, SearchResult{Record: node.Record, Depth: depth, Score: score})
		}
	})

	// Sort by score descending, tree order among equals
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	c.log.Debug().Str("query", c.Query).Int("matches", len(results)).Msg("device search complete")
	return results, nil
}

// DeviceScore is the best FuzzyScore of query against the identifier, the
// status flag names and the problem name of rec
func DeviceScore(rec domain.Record, query string) int {
	best := FuzzyScore(rec.ID, query)
	if !rec.StatusKnown {
		return best
	}
	for _, flag := range rec.Status.Flags() {
		best = max(best, FuzzyScore(flag, query))
	}
	if rec.HasProblem() {
		best = max(best, FuzzyScore(rec.Problem.String(), query))
	}
	return best
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Substring matches rank above any scattered match
	if strings.Contains(target, query) {
		score := 100
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] != query[queryIdx] {
			continue
		}
		if prevMatchIdx == i-1 {
			score += 10 // consecutive chars
		}
		if i == 0 {
			score += 15 // start of string
		}
		if i > 0 && isIDSeparator(target[i-1]) {
			score += 10 // start of an identifier segment
		}
		score++
		prevMatchIdx = i
		queryIdx++
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

func isIDSeparator(c byte) bool {
	switch c {
	case '\\', '&', '_', '#', ' ':
		return true
	}
	return false
}

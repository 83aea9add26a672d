package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"devtree/internal/adapters/memory"
)

type capture struct {
	out bytes.Buffer
	err bytes.Buffer
}

func (c *capture) streams() Streams {
	return Streams{Out: &c.out, Err: &c.err}
}

// records returns the record lines written to the output stream
func (c *capture) records() []string {
	var lines []string
	for _, line := range strings.Split(c.out.String(), "\n") {
		if strings.HasPrefix(line, "Device ") {
			lines = append(lines, line)
		}
	}
	return lines
}

func (c *capture) errLines() []string {
	s := strings.TrimSpace(c.err.String())
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func newInspector(svc *memory.Service, c *capture, opts ...InspectorOption) *Inspector {
	return NewInspector(svc, c.streams(), opts...)
}

var nop = zerolog.Nop()

// wideTree has branching factor 3 at the top, 2 below, and depth 3
func wideTree() *memory.Device {
	return &memory.Device{
		ID: `HTREE\ROOT\0`,
		Children: []*memory.Device{
			{ID: "A", Children: []*memory.Device{
				{ID: "A1", Children: []*memory.Device{{ID: "A1a"}, {ID: "A1b"}}},
				{ID: "A2"},
			}},
			{ID: "B", Children: []*memory.Device{
				{ID: "B1"},
				{ID: "B2", Children: []*memory.Device{{ID: "B2a"}}},
			}},
			{ID: "C"},
		},
	}
}

// recordIDs extracts the identifier field of record lines
func recordIDs(t *testing.T, lines []string) []string {
	t.Helper()
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		colon := strings.Index(line, ": ")
		paren := strings.LastIndex(line, " (status=")
		if colon < 0 || paren < colon {
			t.Fatalf("malformed record line %q", line)
		}
		ids = append(ids, line[colon+2:paren])
	}
	return ids
}

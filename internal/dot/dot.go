// Package dot renders blocking records as a Graphviz digraph.
package dot

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/Mr-Slippery/jirascope/internal/model"
)

// Renderer emits a DOT digraph of blocking relationships.
type Renderer struct {
	layout  string
	overlap string
	sep     string
}

// NewRenderer creates a renderer with the given Graphviz styling.
// Empty values fall back to neato with no overlap and "+1" separation.
func NewRenderer(layout, overlap, sep string) *Renderer {
	if layout == "" {
		layout = "neato"
	}
	if overlap == "" {
		overlap = "false"
	}
	if sep == "" {
		sep = "+1"
	}
	return &Renderer{layout: layout, overlap: overlap, sep: sep}
}

// Render writes the digraph. Record keys are sorted so output is
// deterministic. An issue with no known inward blocker gets a triangle
// node marking it as a root blocker; every blocked issue gets a
// default-shape node and an edge from its blocker. Inward relationships
// are not drawn. Duplicate node and edge lines across records are left
// to Graphviz, which tolerates them.
func (r *Renderer) Render(w io.Writer, records map[string]model.BlockingRecord) error {
	keys := make([]string, 0, len(records))
	for key := range records {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph blockers {")
	fmt.Fprintf(bw, "\tlayout=%s;\n", r.layout)
	fmt.Fprintf(bw, "\toverlap=%s;\n", r.overlap)
	fmt.Fprintf(bw, "\tsep=%q;\n", r.sep)

	for _, key := range keys {
		record := records[key]
		if len(record.IsBlockedBy) == 0 {
			fmt.Fprintf(bw, "\t%q [shape=triangle];\n", key)
		}
		for _, target := range record.Blocks {
			fmt.Fprintf(bw, "\t%q;\n", target)
			fmt.Fprintf(bw, "\t%q -> %q;\n", key, target)
		}
	}

	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

// Comment writes a line Graphviz ignores. Used to report the query and
// issue counts alongside the graph.
func Comment(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "# "+format+"\n", args...)
}

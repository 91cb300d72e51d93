// Package ui renders normalizer output for the terminal: document
// summaries and check diagnostics.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/g5becks/blockdoc/internal/doc"
)

// KindCount is one row of a document summary.
type KindCount struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// Summary describes the shape of a normalized document.
type Summary struct {
	Source     string      `json:"source,omitempty"`
	Nodes      int         `json:"nodes"`
	TextLength int         `json:"text_length"`
	Kinds      []KindCount `json:"kinds"`
}

// Summarize walks a document and tallies node kinds.
func Summarize(source string, root *doc.Node) Summary {
	counts := map[string]int{}
	total := 0
	textLength := 0

	doc.Walk(root, func(n *doc.Node) {
		counts[n.Type]++
		total++
		if n.Type == doc.TypeText {
			textLength += len(n.Text)
		}
	})

	kinds := make([]KindCount, 0, len(counts))
	for kind, count := range counts {
		kinds = append(kinds, KindCount{Kind: kind, Count: count})
	}
	sort.Slice(kinds, func(i, j int) bool {
		if kinds[i].Count != kinds[j].Count {
			return kinds[i].Count > kinds[j].Count
		}
		return kinds[i].Kind < kinds[j].Kind
	})

	return Summary{Source: source, Nodes: total, TextLength: textLength, Kinds: kinds}
}

// RenderSummary prints a summary as a table or JSON.
func RenderSummary(w io.Writer, summary Summary, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(summary); err != nil {
			return fmt.Errorf("encode summary json: %w", err)
		}
		return nil
	}

	writer := table.NewWriter()
	writer.SetOutputMirror(w)
	writer.SetStyle(table.StyleRounded)
	writer.AppendHeader(table.Row{"KIND", "COUNT"})
	for _, kind := range summary.Kinds {
		writer.AppendRow(table.Row{kind.Kind, kind.Count})
	}
	writer.AppendFooter(table.Row{"TOTAL", summary.Nodes})
	writer.Render()

	fmt.Fprintf(w, "text: %d bytes\n", summary.TextLength)
	return nil
}

package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/g5becks/blockdoc/internal/schema"
)

type styles struct {
	green *color.Color
	red   *color.Color
	dim   *color.Color
	bold  *color.Color
}

func newStyles() styles {
	return styles{
		green: color.New(color.FgGreen),
		red:   color.New(color.FgRed),
		dim:   color.New(color.Faint),
		bold:  color.New(color.Bold),
	}
}

// RenderIssues prints check diagnostics for one input.
func RenderIssues(w io.Writer, name string, issues []schema.Issue) {
	s := newStyles()

	if len(issues) == 0 {
		fmt.Fprintf(w, "%s %s: no issues\n", s.green.Sprint("✓"), s.bold.Sprint(name))
		return
	}

	fmt.Fprintf(w, "%s %s: %d issue(s)\n", s.red.Sprint("✗"), s.bold.Sprint(name), len(issues))
	for _, issue := range issues {
		location := issue.Location
		if location == "" {
			location = "#"
		}
		fmt.Fprintf(w, "  %s %s\n", s.dim.Sprint(location), issue.Message)
	}
}

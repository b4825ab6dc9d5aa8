// Package render turns structured diffs into styled terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sprintloop/patchkit/pkg/diff"
)

// Renderer holds the lipgloss styles used for each diff line kind.
type Renderer struct {
	fileHeader lipgloss.Style
	hunkHeader lipgloss.Style
	context    lipgloss.Style
	added      lipgloss.Style
	removed    lipgloss.Style
}

// NewRenderer builds a renderer with the default color scheme.
func NewRenderer() *Renderer {
	return &Renderer{
		fileHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63")),
		hunkHeader: lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		context:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		added:      lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		removed:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Diff renders a complete patch: file header with the language tag, then each
// hunk with its context and change lines.
func (r *Renderer) Diff(d *diff.UnifiedDiff) string {
	var builder strings.Builder

	path := d.FilePath
	if path == "" {
		path = diff.UnknownPath
	}
	builder.WriteString(r.fileHeader.Render(fmt.Sprintf("%s (%s)", path, d.Language)))
	builder.WriteString("\n")

	for i := range d.Hunks {
		builder.WriteString(r.Hunk(&d.Hunks[i]))
	}

	return builder.String()
}

// Hunk renders one hunk in unified-diff order.
func (r *Renderer) Hunk(hunk *diff.Hunk) string {
	var builder strings.Builder

	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
	builder.WriteString(r.hunkHeader.Render(header))
	builder.WriteString("\n")

	for _, line := range hunk.ContextBefore {
		builder.WriteString(r.context.Render("  " + line))
		builder.WriteString("\n")
	}
	for _, line := range hunk.OldLines {
		builder.WriteString(r.removed.Render("- " + line))
		builder.WriteString("\n")
	}
	for _, line := range hunk.NewLines {
		builder.WriteString(r.added.Render("+ " + line))
		builder.WriteString("\n")
	}
	for _, line := range hunk.ContextAfter {
		builder.WriteString(r.context.Render("  " + line))
		builder.WriteString("\n")
	}

	return builder.String()
}

package diff

import (
	"fmt"
	"strings"
)

// Format serializes a UnifiedDiff back to unified-diff text. For diffs
// produced by Generate it is the exact inverse of Parse: file headers, then
// per hunk the @@ header followed by context-before, removed lines, inserted
// lines and context-after.
func Format(d *UnifiedDiff) string {
	path := d.FilePath
	if path == "" {
		path = UnknownPath
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for i := range d.Hunks {
		hunk := &d.Hunks[i]
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n", hunk.OldStart, hunk.OldCount, hunk.NewStart, hunk.NewCount)
		for _, line := range hunk.ContextBefore {
			builder.WriteString(" " + line + "\n")
		}
		for _, line := range hunk.OldLines {
			builder.WriteString("-" + line + "\n")
		}
		for _, line := range hunk.NewLines {
			builder.WriteString("+" + line + "\n")
		}
		for _, line := range hunk.ContextAfter {
			builder.WriteString(" " + line + "\n")
		}
	}

	return builder.String()
}

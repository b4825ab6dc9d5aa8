package diff

import (
	"fmt"
	"strings"
)

const (
	errorExcerptLines = 3
	errorExcerptWidth = 80
)

// ApplyError reports a hunk whose removal text could not be located in the
// target content by any matching strategy. Expected carries a truncated
// excerpt of the leading old lines so the failure can be diagnosed and a
// corrected patch requested.
type ApplyError struct {
	HunkID   string
	Expected []string
}

// Error implements the error interface.
func (e *ApplyError) Error() string {
	if len(e.Expected) == 0 {
		return "hunk could not be located: hunk has no old or new lines"
	}
	return fmt.Sprintf("hunk could not be located in content, expected to find: %q", e.Expected)
}

// ApplyHunk applies a single hunk to content and returns the patched text.
//
// It is a pure function: content is never mutated, so callers keep the
// original string as their rollback on failure. Matching falls through three
// strategies in order, first success wins:
//
//  1. trimmed line-by-line comparison at the hunk's stated position
//  2. exact line-window search anywhere in content
//  3. whitespace-normalized window scan, re-indenting the inserted lines to
//     the indentation of the replaced block
//
// A hunk with no old lines but at least one new line is a pure insertion and
// is spliced in at its stated position. A hunk with no lines at all cannot be
// located and fails like any other unmatched hunk; failure is reported as a
// *ApplyError, never a panic.
func ApplyHunk(content string, hunk *Hunk) (string, error) {
	if len(hunk.OldLines) == 0 && len(hunk.NewLines) == 0 {
		return "", notLocatable(hunk)
	}

	lines := splitLines(content)

	if len(hunk.OldLines) == 0 {
		return joinLines(insertAt(lines, hunk.NewStart-1, hunk.NewLines)), nil
	}

	if patched, ok := applyAtPosition(lines, hunk); ok {
		return joinLines(patched), nil
	}
	if patched, ok := applyExact(lines, hunk); ok {
		return joinLines(patched), nil
	}
	if patched, ok := applyNormalized(lines, hunk); ok {
		return joinLines(patched), nil
	}
	return "", notLocatable(hunk)
}

// ApplyDiff applies every hunk of d in order against an accumulating buffer:
// hunk n+1 is matched against the text as mutated by hunk n. The first hunk
// failure aborts the whole diff; content is returned untouched to the caller
// through its own retained copy, so an edit is all-or-nothing.
func ApplyDiff(content string, d *UnifiedDiff) (string, error) {
	buffer := content
	for i := range d.Hunks {
		patched, err := ApplyHunk(buffer, &d.Hunks[i])
		if err != nil {
			return "", fmt.Errorf("hunk %d of %d: %w", i+1, len(d.Hunks), err)
		}
		buffer = patched
	}
	return buffer, nil
}

// applyAtPosition attempts the positional match: every old line must equal,
// after trimming, the content line at its expected offset. The splice removes
// exactly len(OldLines) lines; the advisory OldCount is not trusted.
func applyAtPosition(lines []string, hunk *Hunk) ([]string, bool) {
	start := hunk.OldStart - 1
	if start < 0 || start+len(hunk.OldLines) > len(lines) {
		return nil, false
	}
	for i, expected := range hunk.OldLines {
		if strings.TrimSpace(lines[start+i]) != strings.TrimSpace(expected) {
			return nil, false
		}
	}
	return splice(lines, start, len(hunk.OldLines), hunk.NewLines), true
}

// applyExact scans for the first window of lines matching the old text
// byte-for-byte and splices the new lines over it. Comparison is strict and
// only the position is loose: this recovers from stale line numbers while the
// surrounding code is otherwise unchanged. Working on whole lines keeps a
// deletion from orphaning its line terminator and keeps the needle from
// landing mid-line.
func applyExact(lines []string, hunk *Hunk) ([]string, bool) {
	window := len(hunk.OldLines)
	for start := 0; start+window <= len(lines); start++ {
		matched := true
		for i, expected := range hunk.OldLines {
			if lines[start+i] != expected {
				matched = false
				break
			}
		}
		if matched {
			return splice(lines, start, window, hunk.NewLines), true
		}
	}
	return nil, false
}

// applyNormalized scans every window of len(OldLines) lines for a
// whitespace-insensitive match. On a hit, the leading whitespace of the
// window's first line is re-applied to every inserted line so the replacement
// keeps the indentation level of the block it displaces.
func applyNormalized(lines []string, hunk *Hunk) ([]string, bool) {
	window := len(hunk.OldLines)
	for start := 0; start+window <= len(lines); start++ {
		matched := true
		for i, expected := range hunk.OldLines {
			if strings.TrimSpace(lines[start+i]) != strings.TrimSpace(expected) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		indent := leadingWhitespace(lines[start])
		replacement := make([]string, len(hunk.NewLines))
		for i, line := range hunk.NewLines {
			replacement[i] = indent + strings.TrimLeft(line, " \t")
		}
		return splice(lines, start, window, replacement), true
	}
	return nil, false
}

func splice(target []string, index, deleteCount int, replacement []string) []string {
	result := make([]string, 0, len(target)-deleteCount+len(replacement))
	result = append(result, target[:index]...)
	result = append(result, replacement...)
	result = append(result, target[index+deleteCount:]...)
	return result
}

func insertAt(lines []string, index int, insertion []string) []string {
	if index < 0 {
		index = 0
	}
	if index > len(lines) {
		index = len(lines)
	}
	return splice(lines, index, 0, insertion)
}

func leadingWhitespace(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " \t"))]
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

func notLocatable(hunk *Hunk) *ApplyError {
	excerpt := hunk.OldLines
	if len(excerpt) > errorExcerptLines {
		excerpt = excerpt[:errorExcerptLines]
	}
	expected := make([]string, len(excerpt))
	for i, line := range excerpt {
		expected[i] = truncateLine(line, errorExcerptWidth)
	}
	return &ApplyError{HunkID: hunk.ID, Expected: expected}
}

func truncateLine(line string, limit int) string {
	runes := []rune(line)
	if len(runes) <= limit {
		return line
	}
	return string(runes[:limit]) + "…"
}

package diff

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

var (
	hunkHeaderPattern = regexp.MustCompile(`^@@\s+-(\d+)(?:,(\d+))?\s+\+(\d+)(?:,(\d+))?\s+@@`)
	fileHeaderPattern = regexp.MustCompile(`^(?:---|\+\+\+)\s+(?:a/|b/)?(.+)$`)
)

// Parse converts unified-diff text into a structured UnifiedDiff.
//
// Parsing is deliberately forgiving: text without any hunk headers yields a
// diff with an empty hunk list, which is a valid no-op patch. The only failure
// mode is empty input. Line endings are normalized before scanning so CRLF
// payloads behave identically to LF ones.
func Parse(diffText string) (*UnifiedDiff, error) {
	if strings.TrimSpace(diffText) == "" {
		return nil, errors.New("empty diff text")
	}

	lines := splitLines(diffText)
	result := &UnifiedDiff{FilePath: extractFilePath(lines)}
	result.Language = LanguageForPath(result.FilePath)

	var (
		current  *Hunk
		seenBody bool
	)

	flush := func() {
		if current == nil {
			return
		}
		result.Hunks = append(result.Hunks, *current)
		current = nil
	}

	for _, line := range lines {
		if match := hunkHeaderPattern.FindStringSubmatch(line); match != nil {
			flush()
			current = &Hunk{
				ID:       uuid.NewString(),
				OldStart: countOrDefault(match[1]),
				OldCount: countOrDefault(match[2]),
				NewStart: countOrDefault(match[3]),
				NewCount: countOrDefault(match[4]),
			}
			seenBody = false
			continue
		}
		if current == nil {
			continue
		}
		switch {
		case strings.HasPrefix(line, "-"):
			current.OldLines = append(current.OldLines, line[1:])
			seenBody = true
		case strings.HasPrefix(line, "+"):
			current.NewLines = append(current.NewLines, line[1:])
			seenBody = true
		case strings.HasPrefix(line, " "), line == "":
			context := strings.TrimPrefix(line, " ")
			if seenBody {
				current.ContextAfter = append(current.ContextAfter, context)
			} else {
				current.ContextBefore = append(current.ContextBefore, context)
			}
		}
	}
	flush()

	return result, nil
}

// extractFilePath returns the path named by the first ---/+++ header anywhere
// in the text, or UnknownPath when no header is present.
func extractFilePath(lines []string) string {
	for _, line := range lines {
		match := fileHeaderPattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		path := strings.TrimSpace(match[1])
		if path != "" {
			return path
		}
	}
	return UnknownPath
}

// countOrDefault parses a hunk-header number, defaulting to 1 when the
// ",count" shorthand was omitted.
func countOrDefault(raw string) int {
	if raw == "" {
		return 1
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return value
}

func splitLines(input string) []string {
	normalized := strings.ReplaceAll(input, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return strings.Split(normalized, "\n")
}

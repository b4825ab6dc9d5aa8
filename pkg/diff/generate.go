package diff

import "github.com/google/uuid"

// contextRadius is how many unchanged lines are captured around each
// generated hunk for rendering.
const contextRadius = 3

// Generate computes a unified diff between two versions of a file.
//
// The scan is a greedy two-cursor walk, not a minimal edit script: on
// divergence the old cursor advances until it re-meets the new cursor's line
// and vice versa, so interleaved changes can collapse into one larger hunk.
// That trade-off is acceptable because the output is always self-consistent:
// applying the hunks in order to oldContent reproduces newContent exactly.
// Generate is deterministic and has no failure mode.
func Generate(oldContent, newContent, filePath string) *UnifiedDiff {
	oldLines := splitLines(oldContent)
	newLines := splitLines(newContent)

	result := &UnifiedDiff{
		FilePath:   filePath,
		OldContent: oldContent,
		NewContent: newContent,
		Language:   LanguageForPath(filePath),
	}

	i, j := 0, 0
	for i < len(oldLines) || j < len(newLines) {
		if i < len(oldLines) && j < len(newLines) && oldLines[i] == newLines[j] {
			i++
			j++
			continue
		}

		hunk := Hunk{
			ID:       uuid.NewString(),
			OldStart: i + 1,
			NewStart: j + 1,
		}

		contextStart := i - contextRadius
		if contextStart < 0 {
			contextStart = 0
		}
		hunk.ContextBefore = append([]string(nil), oldLines[contextStart:i]...)

		for i < len(oldLines) && (j >= len(newLines) || oldLines[i] != newLines[j]) {
			hunk.OldLines = append(hunk.OldLines, oldLines[i])
			i++
		}
		for j < len(newLines) && (i >= len(oldLines) || newLines[j] != oldLines[i]) {
			hunk.NewLines = append(hunk.NewLines, newLines[j])
			j++
		}

		hunk.OldCount = len(hunk.OldLines)
		hunk.NewCount = len(hunk.NewLines)

		contextEnd := i + contextRadius
		if contextEnd > len(oldLines) {
			contextEnd = len(oldLines)
		}
		hunk.ContextAfter = append([]string(nil), oldLines[i:contextEnd]...)

		result.Hunks = append(result.Hunks, hunk)
	}

	return result
}

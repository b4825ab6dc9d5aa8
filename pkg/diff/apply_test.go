package diff

import (
	"errors"
	"strings"
	"testing"
)

func TestApplyHunkPositionalMatch(t *testing.T) {
	t.Parallel()

	content := "function f() {\n  return 1;\n}\n"
	hunk := &Hunk{
		OldStart: 2,
		OldLines: []string{"  return 1;"},
		NewLines: []string{"  return 2;"},
	}

	patched, err := ApplyHunk(content, hunk)
	if err != nil {
		t.Fatalf("ApplyHunk returned error: %v", err)
	}
	if got, want := patched, "function f() {\n  return 2;\n}\n"; got != want {
		t.Fatalf("patched content mismatch: got %q want %q", got, want)
	}
}

func TestApplyHunkExactScanFallback(t *testing.T) {
	t.Parallel()

	// The stated line number points nowhere useful; the text moved further
	// down the file.
	content := strings.Join([]string{
		"package main",
		"",
		"func unrelated() {}",
		"",
		"func target() int {",
		"	return 41",
		"}",
		"",
	}, "\n")
	hunk := &Hunk{
		OldStart: 1,
		OldLines: []string{"	return 41"},
		NewLines: []string{"	return 42"},
	}

	patched, err := ApplyHunk(content, hunk)
	if err != nil {
		t.Fatalf("ApplyHunk returned error: %v", err)
	}
	if !strings.Contains(patched, "return 42") || strings.Contains(patched, "return 41") {
		t.Fatalf("substring fallback did not rewrite target: %q", patched)
	}
}

func TestApplyHunkPrefersPositionalOverExactScan(t *testing.T) {
	t.Parallel()

	// "value" appears twice: verbatim on line 1 and indented on line 3. The
	// positional match at line 3 must win over the earlier exact-scan hit.
	content := "value\nmiddle\n  value\nend\n"
	hunk := &Hunk{
		OldStart: 3,
		OldLines: []string{"value"},
		NewLines: []string{"replaced"},
	}

	patched, err := ApplyHunk(content, hunk)
	if err != nil {
		t.Fatalf("ApplyHunk returned error: %v", err)
	}
	if got, want := patched, "value\nmiddle\nreplaced\nend\n"; got != want {
		t.Fatalf("expected positional match to win: got %q want %q", got, want)
	}
}

func TestApplyHunkDeletionTakesItsLineTerminator(t *testing.T) {
	t.Parallel()

	// The stated position is stale, so the exact window scan locates the
	// doomed line. The whole line goes, newline included: no blank line may
	// be left behind.
	hunk := &Hunk{
		OldStart: 99,
		OldLines: []string{"b"},
	}

	patched, err := ApplyHunk("a\nb\nc\n", hunk)
	if err != nil {
		t.Fatalf("ApplyHunk returned error: %v", err)
	}
	if got, want := patched, "a\nc\n"; got != want {
		t.Fatalf("deletion left residue: got %q want %q", got, want)
	}
}

func TestApplyHunkRejectsMidLineMatch(t *testing.T) {
	t.Parallel()

	// "turn 1;" is a substring of "return 1;" but not a line of it. The
	// exact scan must not rewrite inside a line.
	hunk := &Hunk{
		OldStart: 1,
		OldLines: []string{"turn 1;"},
		NewLines: []string{"turn 2;"},
	}

	if _, err := ApplyHunk("return 1;\n", hunk); err == nil {
		t.Fatalf("expected mid-line substring to be rejected")
	}
}

func TestApplyHunkNormalizedMatchAdoptsTargetIndentation(t *testing.T) {
	t.Parallel()

	content := "if ok {\n\t\tdoWork()\n}\n"
	hunk := &Hunk{
		OldStart: 40,
		OldLines: []string{"  doWork()"},
		NewLines: []string{"  doBetterWork()"},
	}

	patched, err := ApplyHunk(content, hunk)
	if err != nil {
		t.Fatalf("ApplyHunk returned error: %v", err)
	}
	if got, want := patched, "if ok {\n\t\tdoBetterWork()\n}\n"; got != want {
		t.Fatalf("inserted lines did not adopt target indentation: got %q want %q", got, want)
	}
}

func TestApplyHunkNotLocatable(t *testing.T) {
	t.Parallel()

	content := "alpha\nbeta\n"
	hunk := &Hunk{
		OldStart: 1,
		OldLines: []string{"does not exist", "anywhere"},
		NewLines: []string{"irrelevant"},
	}

	patched, err := ApplyHunk(content, hunk)
	if err == nil {
		t.Fatalf("expected error for unlocatable hunk")
	}
	if patched != "" {
		t.Fatalf("expected empty result on failure, got %q", patched)
	}
	var applyErr *ApplyError
	if !errors.As(err, &applyErr) {
		t.Fatalf("expected *ApplyError, got %T", err)
	}
	if len(applyErr.Expected) == 0 || applyErr.Expected[0] != "does not exist" {
		t.Fatalf("expected first missing line in error, got %#v", applyErr.Expected)
	}
	if content != "alpha\nbeta\n" {
		t.Fatalf("content mutated on failure")
	}
}

func TestApplyHunkErrorExcerptIsTruncated(t *testing.T) {
	t.Parallel()

	hunk := &Hunk{
		OldStart: 1,
		OldLines: []string{"one", "two", "three", "four", "five"},
		NewLines: []string{"x"},
	}

	_, err := ApplyHunk("nothing here\n", hunk)
	var applyErr *ApplyError
	if !errors.As(err, &applyErr) {
		t.Fatalf("expected *ApplyError, got %v", err)
	}
	if len(applyErr.Expected) != 3 {
		t.Fatalf("expected excerpt capped at three lines, got %d", len(applyErr.Expected))
	}
}

func TestApplyHunkEmptyBodyFailsGracefully(t *testing.T) {
	t.Parallel()

	_, err := ApplyHunk("alpha\n", &Hunk{OldStart: 1})
	if err == nil {
		t.Fatalf("expected empty hunk to fail")
	}
	var applyErr *ApplyError
	if !errors.As(err, &applyErr) {
		t.Fatalf("expected *ApplyError, got %T", err)
	}
}

func TestApplyHunkPureInsertion(t *testing.T) {
	t.Parallel()

	hunk := &Hunk{
		OldStart: 3,
		NewStart: 3,
		NewLines: []string{"gamma"},
	}

	patched, err := ApplyHunk("alpha\nbeta", hunk)
	if err != nil {
		t.Fatalf("ApplyHunk returned error: %v", err)
	}
	if got, want := patched, "alpha\nbeta\ngamma"; got != want {
		t.Fatalf("insertion mismatch: got %q want %q", got, want)
	}
}

func TestApplyDiffSequentialHunks(t *testing.T) {
	t.Parallel()

	content := "one\ntwo\nthree\nfour\n"
	d := &UnifiedDiff{
		Hunks: []Hunk{
			{OldStart: 1, OldLines: []string{"one"}, NewLines: []string{"uno"}},
			{OldStart: 3, OldLines: []string{"three"}, NewLines: []string{"tres"}},
		},
	}

	patched, err := ApplyDiff(content, d)
	if err != nil {
		t.Fatalf("ApplyDiff returned error: %v", err)
	}
	if got, want := patched, "uno\ntwo\ntres\nfour\n"; got != want {
		t.Fatalf("sequential application mismatch: got %q want %q", got, want)
	}
}

func TestApplyDiffAbortsOnFirstFailure(t *testing.T) {
	t.Parallel()

	content := "one\ntwo\n"
	d := &UnifiedDiff{
		Hunks: []Hunk{
			{OldStart: 1, OldLines: []string{"one"}, NewLines: []string{"uno"}},
			{OldStart: 2, OldLines: []string{"missing"}, NewLines: []string{"lost"}},
		},
	}

	patched, err := ApplyDiff(content, d)
	if err == nil {
		t.Fatalf("expected failure for second hunk")
	}
	if patched != "" {
		t.Fatalf("expected no partial result, got %q", patched)
	}
	if !strings.Contains(err.Error(), "hunk 2 of 2") {
		t.Fatalf("expected failing hunk position in error, got %q", err.Error())
	}
	var applyErr *ApplyError
	if !errors.As(err, &applyErr) {
		t.Fatalf("expected wrapped *ApplyError, got %v", err)
	}
}

func TestSpliceReplacesWindow(t *testing.T) {
	t.Parallel()

	got := splice([]string{"a", "b", "c"}, 1, 1, []string{"x", "y"})
	if len(got) != 4 || got[1] != "x" || got[2] != "y" || got[3] != "c" {
		t.Fatalf("unexpected splice result: %#v", got)
	}
}

// Package cli exposes the patchkit engine as a small command line driver.
// The engine itself never touches the filesystem; the CLI is the content
// provider and persister on its behalf.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"
	"github.com/muesli/termenv"

	"github.com/sprintloop/patchkit/internal/render"
	"github.com/sprintloop/patchkit/internal/request"
	"github.com/sprintloop/patchkit/pkg/diff"
	"github.com/sprintloop/patchkit/pkg/edits"
)

const usage = `patchkit <command>

Commands:
  generate <old-file> <new-file> [-path P]   print a unified diff of two files
  preview  <patch-file>                      render a patch for review
  apply    <patch-file> <target-file> [-w]   apply a patch to a file
  apply    -request <envelope.json> [-w]     apply a JSON edit request
`

// Run executes the patchkit CLI with the provided arguments and returns a
// POSIX-style exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	if ctx.Err() != nil {
		return 1
	}

	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine, but other errors should be surfaced to help with debugging.
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			fmt.Fprintf(stderr, "failed to load .env: %v\n", err)
			return 1
		}
	}

	if os.Getenv("PATCHKIT_FORCE_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.TrueColor)
	}

	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	switch args[0] {
	case "generate":
		return runGenerate(args[1:], stdout, stderr)
	case "preview":
		return runPreview(args[1:], stdout, stderr)
	case "apply":
		return runApply(args[1:], stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}
}

func runGenerate(args []string, stdout, stderr io.Writer) int {
	flagSet := flag.NewFlagSet("generate", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	pathOverride := flagSet.String("path", "", "file path recorded in the diff headers (defaults to the new file's path)")
	if err := flagSet.Parse(args); err != nil {
		return 2
	}
	if flagSet.NArg() != 2 {
		fmt.Fprintln(stderr, "generate requires an old file and a new file")
		return 2
	}

	oldContent, err := os.ReadFile(flagSet.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "failed to read %s: %v\n", flagSet.Arg(0), err)
		return 1
	}
	newContent, err := os.ReadFile(flagSet.Arg(1))
	if err != nil {
		fmt.Fprintf(stderr, "failed to read %s: %v\n", flagSet.Arg(1), err)
		return 1
	}

	path := *pathOverride
	if path == "" {
		path = flagSet.Arg(1)
	}

	d := diff.Generate(string(oldContent), string(newContent), path)
	fmt.Fprint(stdout, diff.Format(d))
	return 0
}

func runPreview(args []string, stdout, stderr io.Writer) int {
	flagSet := flag.NewFlagSet("preview", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	if err := flagSet.Parse(args); err != nil {
		return 2
	}
	if flagSet.NArg() != 1 {
		fmt.Fprintln(stderr, "preview requires a patch file")
		return 2
	}

	raw, err := os.ReadFile(flagSet.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "failed to read %s: %v\n", flagSet.Arg(0), err)
		return 1
	}
	d, err := diff.Parse(string(raw))
	if err != nil {
		fmt.Fprintf(stderr, "failed to parse patch: %v\n", err)
		return 1
	}

	fmt.Fprint(stdout, render.NewRenderer().Diff(d))
	return 0
}

func runApply(args []string, stdout, stderr io.Writer) int {
	flagSet := flag.NewFlagSet("apply", flag.ContinueOnError)
	flagSet.SetOutput(stderr)
	requestPath := flagSet.String("request", "", "JSON edit request envelope to apply instead of a raw patch file")
	write := flagSet.Bool("w", false, "write the patched text back to the target file")
	if err := flagSet.Parse(args); err != nil {
		return 2
	}

	var (
		filePath string
		d        *diff.UnifiedDiff
	)
	if *requestPath != "" {
		raw, err := os.ReadFile(*requestPath)
		if err != nil {
			fmt.Fprintf(stderr, "failed to read %s: %v\n", *requestPath, err)
			return 1
		}
		req, err := request.Decode(raw)
		if err != nil {
			fmt.Fprintf(stderr, "invalid edit request: %v\n", err)
			return 1
		}
		d, err = req.Diff()
		if err != nil {
			fmt.Fprintf(stderr, "invalid edit request: %v\n", err)
			return 1
		}
		filePath = req.FilePath
	} else {
		if flagSet.NArg() != 2 {
			fmt.Fprintln(stderr, "apply requires a patch file and a target file")
			return 2
		}
		raw, err := os.ReadFile(flagSet.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "failed to read %s: %v\n", flagSet.Arg(0), err)
			return 1
		}
		d, err = diff.Parse(string(raw))
		if err != nil {
			fmt.Fprintf(stderr, "failed to parse patch: %v\n", err)
			return 1
		}
		filePath = flagSet.Arg(1)
	}

	logger := edits.NewStdLogger(logLevelFromEnv(), stderr)
	options := []edits.Option{edits.WithLogger(logger)}

	current, readErr := os.ReadFile(filePath)
	if readErr == nil {
		content := string(current)
		options = append(options, edits.WithContentSource(func(string) (string, error) {
			return content, nil
		}))
	} else if d.OldContent == "" {
		fmt.Fprintf(stderr, "failed to read %s: %v\n", filePath, readErr)
		return 1
	}

	manager := edits.NewManager(options...)
	id := manager.Submit(filePath, d)
	patched, ok := manager.Apply(id)
	if !ok {
		if edit, found := manager.Get(id); found {
			fmt.Fprintf(stderr, "edit failed: %s\n", edit.Error)
		}
		return 1
	}

	if *write {
		if err := os.WriteFile(filePath, []byte(patched), 0o644); err != nil {
			fmt.Fprintf(stderr, "failed to write %s: %v\n", filePath, err)
			return 1
		}
		fmt.Fprintf(stdout, "applied %d hunk(s) to %s\n", len(d.Hunks), filePath)
		return 0
	}

	fmt.Fprint(stdout, patched)
	return 0
}

func logLevelFromEnv() edits.LogLevel {
	switch strings.ToLower(os.Getenv("PATCHKIT_LOG_LEVEL")) {
	case "debug":
		return edits.LogLevelDebug
	case "info":
		return edits.LogLevelInfo
	case "error":
		return edits.LogLevelError
	default:
		return edits.LogLevelWarn
	}
}

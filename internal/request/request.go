// Package request decodes the JSON edit envelopes the assistant hands to the
// application and resolves them into structured diffs.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/sprintloop/patchkit/pkg/diff"
)

// EditRequest is one file edit as submitted by a model or tool. Either
// DiffText is set (a ready-made unified diff) or both content snapshots are,
// in which case the diff is generated in-process.
type EditRequest struct {
	FilePath   string `json:"file_path"`
	DiffText   string `json:"diff_text,omitempty"`
	OldContent string `json:"old_content,omitempty"`
	NewContent string `json:"new_content,omitempty"`
}

// ValidationError lists the schema issues found in a payload. It satisfies
// the error interface so it can be returned directly from Decode.
type ValidationError struct {
	Issues []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "edit request failed schema validation"
	}
	return strings.Join(e.Issues, "; ")
}

var (
	schemaLoader     gojsonschema.JSONLoader
	schemaLoaderOnce sync.Once
)

// editRequestSchema describes the accepted envelope: file_path is mandatory
// and the payload must carry either diff_text or both content snapshots.
func editRequestSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"file_path":   map[string]any{"type": "string", "minLength": 1},
			"diff_text":   map[string]any{"type": "string", "minLength": 1},
			"old_content": map[string]any{"type": "string"},
			"new_content": map[string]any{"type": "string"},
		},
		"required": []any{"file_path"},
		"anyOf": []any{
			map[string]any{"required": []any{"diff_text"}},
			map[string]any{"required": []any{"old_content", "new_content"}},
		},
	}
}

func loadSchema() gojsonschema.JSONLoader {
	schemaLoaderOnce.Do(func() {
		schemaLoader = gojsonschema.NewGoLoader(editRequestSchema())
	})
	return schemaLoader
}

// Decode parses and validates a raw JSON edit envelope.
func Decode(raw []byte) (*EditRequest, error) {
	if len(strings.TrimSpace(string(raw))) == 0 {
		return nil, errors.New("empty edit request")
	}

	result, err := gojsonschema.Validate(loadSchema(), gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("request: validate edit payload: %w", err)
	}
	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, desc.String())
		}
		return nil, &ValidationError{Issues: issues}
	}

	var req EditRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, fmt.Errorf("request: decode edit payload: %w", err)
	}
	return &req, nil
}

// Diff resolves the request into a structured diff: parsed from the supplied
// diff text when present, generated from the snapshots otherwise.
func (r *EditRequest) Diff() (*diff.UnifiedDiff, error) {
	if r.DiffText != "" {
		parsed, err := diff.Parse(r.DiffText)
		if err != nil {
			return nil, fmt.Errorf("request: parse diff for %s: %w", r.FilePath, err)
		}
		if parsed.FilePath == diff.UnknownPath {
			parsed.FilePath = r.FilePath
			parsed.Language = diff.LanguageForPath(r.FilePath)
		}
		return parsed, nil
	}
	return diff.Generate(r.OldContent, r.NewContent, r.FilePath), nil
}

package request

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sprintloop/patchkit/pkg/diff"
)

func TestDecodeDiffTextEnvelope(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"file_path":"main.go","diff_text":"@@ -1,1 +1,1 @@\n-a\n+b\n"}`)
	req, err := Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "main.go", req.FilePath)

	d, err := req.Diff()
	require.NoError(t, err)
	require.Equal(t, "main.go", d.FilePath)
	require.Equal(t, "go", d.Language)
	require.Len(t, d.Hunks, 1)
}

func TestDecodeSnapshotEnvelope(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"file_path":"notes.txt","old_content":"a\n","new_content":"b\n"}`)
	req, err := Decode(raw)
	require.NoError(t, err)

	d, err := req.Diff()
	require.NoError(t, err)
	require.Equal(t, "notes.txt", d.FilePath)
	require.NotEmpty(t, d.Hunks)

	patched, err := diff.ApplyDiff("a\n", d)
	require.NoError(t, err)
	require.Equal(t, "b\n", patched)
}

func TestDecodeRejectsMissingFilePath(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"diff_text":"@@ -1 +1 @@\n-a\n+b\n"}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.NotEmpty(t, validationErr.Issues)
}

func TestDecodeRejectsEnvelopeWithoutDiffOrSnapshots(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"file_path":"main.go"}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{"file_path":"main.go","diff_text":"@@ -1 +1 @@\n","sneaky":true}`))
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestDecodeRejectsInvalidJSON(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte(`{not json`))
	require.Error(t, err)
}

func TestDecodeRejectsEmptyPayload(t *testing.T) {
	t.Parallel()

	_, err := Decode([]byte("   "))
	require.Error(t, err)
}

func TestDiffKeepsHeaderPathWhenPresent(t *testing.T) {
	t.Parallel()

	raw := []byte(`{"file_path":"fallback.txt","diff_text":"--- a/actual.go\n+++ b/actual.go\n@@ -1,1 +1,1 @@\n-a\n+b\n"}`)
	req, err := Decode(raw)
	require.NoError(t, err)

	d, err := req.Diff()
	require.NoError(t, err)
	require.Equal(t, "actual.go", d.FilePath)
}

// Package diff provides parsing, generation and application of unified-diff
// style patches.
//
// The package is extracted from SprintLoop's desktop editing session so that it
// can be reused by other tools. Patches typically arrive as model-authored text
// whose line numbers have drifted from the file they target, so application
// falls back through progressively looser matching strategies before giving up
// with a typed, recoverable error.
package diff

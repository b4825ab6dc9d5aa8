package diff

import (
	"path/filepath"
	"strings"
)

// languageByExtension maps file extensions to the language tags used when
// rendering diffs with syntax highlighting hints.
var languageByExtension = map[string]string{
	".c":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".cs":    "csharp",
	".css":   "css",
	".dart":  "dart",
	".go":    "go",
	".h":     "c",
	".hpp":   "cpp",
	".html":  "html",
	".java":  "java",
	".js":    "javascript",
	".json":  "json",
	".jsx":   "javascript",
	".kt":    "kotlin",
	".md":    "markdown",
	".php":   "php",
	".py":    "python",
	".rb":    "ruby",
	".rs":    "rust",
	".sh":    "bash",
	".sql":   "sql",
	".swift": "swift",
	".toml":  "toml",
	".ts":    "typescript",
	".tsx":   "typescript",
	".xml":   "xml",
	".yaml":  "yaml",
	".yml":   "yaml",
}

// LanguageForPath derives a rendering language tag from a file extension.
// Unknown extensions map to plain text.
func LanguageForPath(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if language, ok := languageByExtension[ext]; ok {
		return language
	}
	return "plaintext"
}

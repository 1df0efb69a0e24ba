package content

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

const plaintext = "plaintext"

var languageByExtension = map[string]string{
	".js":    "javascript",
	".mjs":   "javascript",
	".cjs":   "javascript",
	".jsx":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".py":    "python",
	".java":  "java",
	".c":     "c",
	".cpp":   "cpp",
	".cs":    "csharp",
	".html":  "html",
	".css":   "css",
	".php":   "php",
	".rb":    "ruby",
	".go":    "go",
	".rs":    "rust",
	".swift": "swift",
	".kt":    "kotlin",
	".scala": "scala",
	".m":     "objective-c",
	".mm":    "objective-cpp",
	".sh":    "bash",
	".ps1":   "powershell",
	".sql":   "sql",
	".r":     "r",
	".vb":    "vbnet",
	".fs":    "fsharp",
	".md":    "markdown",
	".json":  "json",
	".xml":   "xml",
	".yaml":  "yaml",
	".yml":   "yaml",
	".txt":   plaintext,
}

// LanguageFromFilename returns the fence tag for a file. Known extensions
// map case-insensitively; anything else falls back to chroma's lexer
// registry and finally to "plaintext".
func LanguageFromFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if lang, ok := languageByExtension[ext]; ok {
		return lang
	}

	if lexer := lexers.Match(filepath.Base(filename)); lexer != nil {
		if aliases := lexer.Config().Aliases; len(aliases) > 0 {
			return strings.ToLower(aliases[0])
		}
	}
	return plaintext
}

// Package langdetect identifies Python source content.
// It uses go-enry to classify scripts, primarily so file discovery can
// pick up extensionless executables that carry a Python shebang.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language tags returned by Detect.
const (
	langPython = "python"
	langBash   = "bash"
	langText   = "text"
)

// pythonExtensions lists the file extensions treated as Python source.
var pythonExtensions = map[string]bool{
	".py":  true,
	".pyi": true,
	".pyw": true,
}

// IsPythonPath reports whether path has a Python source extension.
func IsPythonPath(path string) bool {
	return pythonExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsPython reports whether a file should be linted as Python source.
// Files with a Python extension always qualify. Extensionless files
// qualify when their content detects as Python; files with any other
// extension never do.
func IsPython(path string, content []byte) bool {
	if IsPythonPath(path) {
		return true
	}
	if filepath.Ext(path) != "" {
		return false
	}
	return Detect(content) == langPython
}

// Detect returns the detected language for script content as a lowercase
// tag. Returns "text" if detection fails or confidence is low.
func Detect(content []byte) string {
	if len(content) == 0 {
		return langText
	}

	// A shebang names the interpreter outright.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	// Cheap Python fingerprints before the statistical classifier.
	if isPythonContent(string(content)) {
		return langPython
	}

	// The classifier wants a candidate set; these are what extensionless
	// scripts usually turn out to be.
	candidates := []string{
		"Python", "Shell", "Ruby", "Perl", "JavaScript", "Lua",
	}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}

	return langText
}

// isPythonContent looks for source patterns few languages other than
// Python produce.
func isPythonContent(src string) bool {
	// def definitions with a closing paren and colon.
	if strings.Contains(src, "def ") && strings.Contains(src, "):") {
		return true
	}

	// Dunder variables.
	if strings.Contains(src, "__name__") || strings.Contains(src, "__main__") {
		return true
	}

	// import lines, excluding Go's parenthesized form.
	if strings.Contains(src, "import ") && !strings.Contains(src, "import (") {
		if strings.Contains(src, "from ") || strings.HasPrefix(strings.TrimSpace(src), "import ") {
			return true
		}
	}

	// PEP 263 encoding cookie near the top.
	head := src
	if len(head) > 256 {
		head = head[:256]
	}
	return strings.Contains(head, "-*- coding:") || strings.Contains(head, "# coding:")
}

// normalize converts go-enry language names to lowercase tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return langBash
	}
	return strings.ToLower(lang)
}

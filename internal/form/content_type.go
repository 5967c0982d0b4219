package form

import "strings"

// contentTypes maps a language name to the content type the embedded code
// editor is switched to when the record's language field changes.
var contentTypes = map[string]string{
	"python":     "text/x-python",
	"java":       "text/x-java",
	"r":          "text/x-rsrc",
	"scala":      "text/x-scala",
	"go":         "text/x-go",
	"javascript": "text/javascript",
	"typescript": "text/typescript",
	"markdown":   "text/markdown",
	"json":       "application/json",
	"yaml":       "text/x-yaml",
	"sql":        "text/x-sql",
	"shell":      "text/x-sh",
	"bash":       "text/x-sh",
}

// ContentTypeForLanguage resolves a language name to a content type, falling
// back to plain text for languages it does not know.
func ContentTypeForLanguage(language string) string {
	if ct, ok := contentTypes[strings.ToLower(strings.TrimSpace(language))]; ok {
		return ct
	}
	return "text/plain"
}

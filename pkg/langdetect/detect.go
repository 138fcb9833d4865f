// Package langdetect classifies file content for the transform pipeline.
// It uses go-enry to tell binary files apart from text and to attach a
// best-effort language tag to results.
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// IsBinary reports whether content looks like binary data. Binary files are
// never transformed.
func IsBinary(content []byte) bool {
	return enry.IsBinary(content)
}

// Detect returns a lowercase language tag for the file, combining filename
// and content signals. It returns "" when nothing can be said with
// confidence.
func Detect(filename string, content []byte) string {
	if lang := enry.GetLanguage(filename, content); lang != "" {
		return normalize(lang)
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe && lang != "" {
		return normalize(lang)
	}

	return ""
}

// normalize converts go-enry language names to conventional lowercase tags.
func normalize(lang string) string {
	if lang == "Shell" {
		return "bash"
	}
	return strings.ToLower(lang)
}

package util

import (
	"errors"
	"path"
	"strings"
	"unicode"
)

// MaxFileNameLen caps download names in runes, extension included.
const MaxFileNameLen = 120

// ErrInvalidFileName is returned when nothing usable is left of a name.
var ErrInvalidFileName = errors.New("invalid file name")

// SanitizeFileName makes name safe for a Content-Disposition header.
// Traversal patterns are rejected; separators become underscores, quotes and
// control characters are dropped and runs of whitespace collapse.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	var b strings.Builder
	space := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r == '/' || r == '\\':
			b.WriteRune('_')
			space = false
		case unicode.IsSpace(r):
			if !space {
				b.WriteRune(' ')
			}
			space = true
		case r == '"' || r == ';' || unicode.IsControl(r):
		default:
			b.WriteRune(r)
			space = false
		}
	}
	s := truncateKeepExt(strings.TrimSpace(b.String()), MaxFileNameLen)
	if s == "" || strings.HasPrefix(s, ".") {
		return "", ErrInvalidFileName
	}
	return s, nil
}

func truncateKeepExt(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	ext := []rune(path.Ext(s))
	if len(ext) >= limit {
		return string(runes[:limit])
	}
	base := runes[:len(runes)-len(ext)]
	base = base[:limit-len(ext)]
	return strings.TrimSpace(string(base)) + string(ext)
}

package slug

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and drops combining marks, turning
// "tai nghe chống ồn" into "tai nghe chong on".
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Make derives a URL-safe slug candidate from a display name. The result
// contains only [a-z0-9-], with no leading, trailing or doubled hyphens.
// An empty result means the name has no transliterable content and must be
// treated as invalid by the caller.
func Make(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" {
		return ""
	}

	// đ/Đ survive NFD decomposition, map them by hand before stripping marks.
	s = strings.ReplaceAll(s, "đ", "d")

	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	prevHyphen := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevHyphen = false
		case r == ' ', r == '\t', r == '\n', r == '_', r == '-':
			if !prevHyphen && b.Len() > 0 {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	return strings.TrimRight(b.String(), "-")
}

// Unique returns candidate unchanged when exists reports it free, otherwise
// appends -1, -2, ... until a free slug is found.
func Unique(candidate string, exists func(slug string) bool) string {
	if !exists(candidate) {
		return candidate
	}
	for i := 1; ; i++ {
		next := fmt.Sprintf("%s-%d", candidate, i)
		if !exists(next) {
			return next
		}
	}
}

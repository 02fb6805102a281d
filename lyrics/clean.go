package lyrics

import (
	"regexp"
	"strings"
)

var (
	angleTags = regexp.MustCompile(`<[^>]*>`)
	braceTags = regexp.MustCompile(`\{[^}]*\}`)
	spaces    = regexp.MustCompile(`\s+`)
)

// CleanText strips style and positioning tags left behind by subtitle
// tooling without touching the lyric content itself. Safe on multi-byte
// text: the patterns match delimiters only.
func CleanText(s string) string {
	s = angleTags.ReplaceAllString(s, "")
	s = braceTags.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

package lyrics

import (
	"strings"

	"golang.org/x/text/width"
)

// DisplayWidth returns the terminal cell width of s. East Asian wide and
// fullwidth runes occupy two cells; everything else one.
func DisplayWidth(s string) int {
	total := 0
	for _, r := range s {
		total += runeWidth(r)
	}
	return total
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	default:
		return 1
	}
}

// Wrap breaks a lyric line into display lines no wider than max cells.
// Space-separated text wraps on word boundaries; CJK-dominant text wraps
// per rune, since those scripts carry no spaces to break on. Overlong
// words are broken mid-word rather than overflowing.
func Wrap(text string, max int) []string {
	if max <= 0 || DisplayWidth(text) <= max {
		if text == "" {
			return nil
		}
		return []string{text}
	}

	if cjkDominant(text) {
		return wrapRunes(text, max)
	}
	return wrapWords(text, max)
}

// cjkDominant reports whether wide runes make up a large enough share of
// the text that word wrapping would be useless.
func cjkDominant(text string) bool {
	wide, total := 0, 0
	for _, r := range text {
		total++
		if runeWidth(r) == 2 {
			wide++
		}
	}
	return total > 0 && wide*5 > total*2
}

func wrapWords(text string, max int) []string {
	var lines []string
	var current string

	for _, word := range strings.Fields(text) {
		if DisplayWidth(word) > max {
			if current != "" {
				lines = append(lines, current)
				current = ""
			}
			lines = append(lines, wrapRunes(word, max)...)
			continue
		}

		test := word
		if current != "" {
			test = current + " " + word
		}
		if DisplayWidth(test) <= max {
			current = test
		} else {
			lines = append(lines, current)
			current = word
		}
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

func wrapRunes(text string, max int) []string {
	var lines []string
	var current strings.Builder
	currentWidth := 0

	for _, r := range text {
		w := runeWidth(r)
		if currentWidth+w > max && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
			currentWidth = 0
		}
		current.WriteRune(r)
		currentWidth += w
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

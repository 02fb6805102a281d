package player

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"karaoke/lyrics"
)

// viewKind tags the render variants the shell can draw. One draw routine
// switches on the tag instead of a widget hierarchy.
type viewKind int

const (
	viewLyrics viewKind = iota
	viewProgress
	viewMeter
)

// view is the render input for one drawn element.
type view struct {
	kind viewKind

	// viewLyrics
	lines []lyricLine
	// viewProgress
	pos, dur float64
	// viewMeter
	level float64
}

type lyricLine struct {
	text   string
	active bool
}

var colorCodes = map[string]string{
	"yellow":  "\033[33;1m",
	"cyan":    "\033[36;1m",
	"green":   "\033[32;1m",
	"magenta": "\033[35;1m",
}

// colorOrder cycles in a fixed sequence so the "color" command is
// predictable.
var colorOrder = []string{"yellow", "cyan", "green", "magenta"}

const (
	ansiReset = "\033[0m"
	ansiDim   = "\033[2m"
)

// renderer draws views as plain text lines, with ANSI highlighting when
// stdout is a terminal.
type renderer struct {
	color     string
	width     int
	colorized bool
}

func newRenderer(activeColor string, width int) *renderer {
	if _, ok := colorCodes[activeColor]; !ok {
		activeColor = "yellow"
	}
	return &renderer{
		color:     activeColor,
		width:     width,
		colorized: isatty.IsTerminal(os.Stdout.Fd()),
	}
}

// cycleColor advances the active-line highlight to the next color and
// returns its name.
func (r *renderer) cycleColor() string {
	for i, name := range colorOrder {
		if name == r.color {
			r.color = colorOrder[(i+1)%len(colorOrder)]
			return r.color
		}
	}
	r.color = colorOrder[0]
	return r.color
}

// draw renders a view to a string, switching on its tag.
func (r *renderer) draw(v view) string {
	switch v.kind {
	case viewLyrics:
		return r.drawLyrics(v.lines)
	case viewProgress:
		return r.drawProgress(v.pos, v.dur)
	case viewMeter:
		return r.drawMeter(v.level)
	}
	return ""
}

// lyricsView assembles the lyric lines around the playback position:
// context segments dimmed, the active segment highlighted, each wrapped
// to the render width (CJK-aware).
func (r *renderer) lyricsView(tl *lyrics.Timeline, pos float64, context int) view {
	lo, hi, active := tl.Window(pos, context, context)

	var lines []lyricLine
	for i := lo; i < hi; i++ {
		text := tl.Segment(i).Text
		if text == "" {
			text = "♪"
		}
		for _, wrapped := range lyrics.Wrap(text, r.width) {
			lines = append(lines, lyricLine{text: wrapped, active: i == active})
		}
	}
	return view{kind: viewLyrics, lines: lines}
}

func (r *renderer) drawLyrics(lines []lyricLine) string {
	var sb strings.Builder
	for _, line := range lines {
		if line.active {
			sb.WriteString(r.highlight("> " + line.text))
		} else {
			sb.WriteString(r.dim("  " + line.text))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (r *renderer) drawProgress(pos, dur float64) string {
	const barWidth = 40
	filled := 0
	if dur > 0 {
		filled = int(pos / dur * barWidth)
		if filled > barWidth {
			filled = barWidth
		}
	}
	bar := strings.Repeat("=", filled) + strings.Repeat("-", barWidth-filled)
	return fmt.Sprintf("[%s] %s / %s", bar, clock(pos), clock(dur))
}

func (r *renderer) drawMeter(level float64) string {
	const meterWidth = 20
	filled := int(level * meterWidth)
	if filled > meterWidth {
		filled = meterWidth
	}
	return "level " + strings.Repeat("#", filled) + strings.Repeat(".", meterWidth-filled)
}

func (r *renderer) highlight(s string) string {
	if !r.colorized {
		return s
	}
	return colorCodes[r.color] + s + ansiReset
}

func (r *renderer) dim(s string) string {
	if !r.colorized {
		return s
	}
	return ansiDim + s + ansiReset
}

// clock formats seconds as mm:ss.
func clock(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d", int(sec)/60, int(sec)%60)
}

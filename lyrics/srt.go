package lyrics

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
)

var blockSplit = regexp.MustCompile(`\n\s*\n`)

// ParseSRT reads whisper-cli style SRT content into raw blocks. Each block
// is a cue number, a "start --> end" line, and one or more text lines.
// Empty input is valid and yields no blocks; non-empty input with no
// recognizable timing line at all is a hard parse failure.
func ParseSRT(r io.Reader) ([]RawBlock, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript: %v", err)
	}

	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil, nil
	}

	var blocks []RawBlock
	sawTiming := false

	for i, raw := range blockSplit.Split(content, -1) {
		lines := strings.Split(strings.TrimSpace(raw), "\n")

		// Find the timing line; the cue number above it is optional.
		timingIdx := -1
		for j, line := range lines {
			if strings.Contains(line, "-->") {
				timingIdx = j
				break
			}
		}
		if timingIdx < 0 || timingIdx == len(lines)-1 {
			continue
		}
		sawTiming = true

		timeParts := strings.SplitN(lines[timingIdx], "-->", 2)
		if len(timeParts) != 2 {
			continue
		}

		blocks = append(blocks, RawBlock{
			Index: i + 1,
			Start: strings.TrimSpace(timeParts[0]),
			End:   strings.TrimSpace(timeParts[1]),
			Text:  strings.Join(lines[timingIdx+1:], " "),
		})
	}

	if !sawTiming {
		return nil, fmt.Errorf("not a valid SRT transcript: no timing lines found")
	}
	return blocks, nil
}

// LoadSRT parses an SRT file into a Timeline.
func LoadSRT(path string) (*Timeline, []Warning, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %v", path, err)
	}
	defer f.Close()

	blocks, err := ParseSRT(f)
	if err != nil {
		return nil, nil, err
	}

	tl, warnings := Build(blocks)
	return tl, warnings, nil
}

// FormatTimestamp renders seconds as an SRT timestamp (00:01:02,500).
func FormatTimestamp(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	millis := int(sec*1000 + 0.5)
	h := millis / 3600000
	m := (millis % 3600000) / 60000
	s := (millis % 60000) / 1000
	ms := millis % 1000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// WriteSRT writes the timeline back out as numbered SRT cues.
func WriteSRT(w io.Writer, t *Timeline) error {
	for i := 0; i < t.Len(); i++ {
		seg := t.Segment(i)
		_, err := fmt.Fprintf(w, "%d\n%s --> %s\n%s\n\n",
			i+1, FormatTimestamp(seg.Start), FormatTimestamp(seg.End), seg.Text)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteText writes just the lyric lines, one per segment.
func WriteText(w io.Writer, t *Timeline) error {
	for i := 0; i < t.Len(); i++ {
		if _, err := fmt.Fprintln(w, t.Segment(i).Text); err != nil {
			return err
		}
	}
	return nil
}

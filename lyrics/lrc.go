package lyrics

import (
	"fmt"
	"io"
)

// WriteLRC writes the timeline in LRC lyric-timing format, one
// [mm:ss.xx] tag per segment start.
func WriteLRC(w io.Writer, t *Timeline) error {
	for i := 0; i < t.Len(); i++ {
		seg := t.Segment(i)
		if _, err := fmt.Fprintf(w, "[%s]%s\n", formatLRCTime(seg.Start), seg.Text); err != nil {
			return err
		}
	}
	return nil
}

// formatLRCTime renders seconds as mm:ss.xx (centisecond precision).
func formatLRCTime(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	centis := int(sec*100 + 0.5)
	m := centis / 6000
	s := (centis % 6000) / 100
	cs := centis % 100
	return fmt.Sprintf("%02d:%02d.%02d", m, s, cs)
}

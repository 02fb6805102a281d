// Package lyrics builds searchable lyric timelines from transcript files.
package lyrics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Segment is one timestamped lyric line. Times are seconds from track start.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// Timeline is an ordered sequence of segments for one song. It is never
// mutated after Build returns it, so concurrent readers need no locking.
type Timeline struct {
	segments []Segment
}

// Warning reports a transcript block that was dropped during a build.
type Warning struct {
	Kind   WarningKind
	Block  int
	Detail string
}

type WarningKind int

const (
	// MalformedTimestamp means a block's timestamp did not parse.
	MalformedTimestamp WarningKind = iota
	// DiscardedSegment means a block parsed but had end before start.
	DiscardedSegment
)

func (k WarningKind) String() string {
	if k == MalformedTimestamp {
		return "malformed timestamp"
	}
	return "discarded segment"
}

func (w Warning) String() string {
	return fmt.Sprintf("block %d: %s (%s)", w.Block, w.Kind, w.Detail)
}

// RawBlock is one subtitle cue before timestamp parsing.
type RawBlock struct {
	Index int
	Start string
	End   string
	Text  string
}

// Build parses raw subtitle blocks into a Timeline. Blocks whose timestamps
// do not parse, or whose end precedes their start, are dropped and reported
// as warnings; one bad cue never aborts the build. An empty input yields a
// valid zero-segment timeline (an instrumental track with no lyrics).
func Build(blocks []RawBlock) (*Timeline, []Warning) {
	var segments []Segment
	var warnings []Warning

	for _, b := range blocks {
		start, err := ParseTimestamp(b.Start)
		if err != nil {
			warnings = append(warnings, Warning{MalformedTimestamp, b.Index, b.Start})
			continue
		}
		end, err := ParseTimestamp(b.End)
		if err != nil {
			warnings = append(warnings, Warning{MalformedTimestamp, b.Index, b.End})
			continue
		}
		segments = append(segments, Segment{Start: start, End: end, Text: CleanText(b.Text)})
	}

	tl, dropWarnings := FromSegments(segments)
	return tl, append(warnings, dropWarnings...)
}

// FromSegments builds a Timeline from already-parsed segments, applying the
// same discard and ordering rules as Build. Source order is not trusted.
func FromSegments(segments []Segment) (*Timeline, []Warning) {
	var warnings []Warning
	kept := make([]Segment, 0, len(segments))

	for i, s := range segments {
		if s.End < s.Start {
			warnings = append(warnings, Warning{DiscardedSegment, i,
				fmt.Sprintf("end %.3f before start %.3f", s.End, s.Start)})
			continue
		}
		if s.Start < 0 {
			s.Start = 0
		}
		kept = append(kept, s)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Start < kept[j].Start
	})

	return &Timeline{segments: kept}, warnings
}

// Len returns the number of segments.
func (t *Timeline) Len() int {
	return len(t.segments)
}

// Segment returns the segment at index i.
func (t *Timeline) Segment(i int) Segment {
	return t.segments[i]
}

// Segments returns a copy of the segment slice.
func (t *Timeline) Segments() []Segment {
	out := make([]Segment, len(t.segments))
	copy(out, t.segments)
	return out
}

// End returns the end time of the last segment, or 0 for an empty timeline.
func (t *Timeline) End() float64 {
	if len(t.segments) == 0 {
		return 0
	}
	return t.segments[len(t.segments)-1].End
}

// IndexAt returns the index of the segment whose [start, end) interval
// contains pos, or -1 when pos falls before the first segment, in a gap,
// or past the end. When overlapping segments both cover pos, the one with
// the later start wins, deterministically.
func (t *Timeline) IndexAt(pos float64) int {
	// First segment starting after pos; every candidate is before it.
	hi := sort.Search(len(t.segments), func(i int) bool {
		return t.segments[i].Start > pos
	})

	for i := hi - 1; i >= 0; i-- {
		if pos < t.segments[i].End {
			return i
		}
	}
	return -1
}

// At returns the segment active at pos, if any.
func (t *Timeline) At(pos float64) (Segment, bool) {
	i := t.IndexAt(pos)
	if i < 0 {
		return Segment{}, false
	}
	return t.segments[i], true
}

// Window returns the segment indices [lo, hi) centered on the segment
// nearest pos, with up to before segments of context above and after
// below. Used by the player to render surrounding lyric lines.
func (t *Timeline) Window(pos float64, before, after int) (lo, hi, active int) {
	active = t.IndexAt(pos)

	center := active
	if center < 0 {
		// Fall back to the next upcoming segment, or the last one.
		center = sort.Search(len(t.segments), func(i int) bool {
			return t.segments[i].Start > pos
		})
		if center >= len(t.segments) {
			center = len(t.segments) - 1
		}
	}
	if center < 0 {
		return 0, 0, -1
	}

	lo = center - before
	if lo < 0 {
		lo = 0
	}
	hi = center + after + 1
	if hi > len(t.segments) {
		hi = len(t.segments)
	}
	return lo, hi, active
}

// ParseTimestamp converts a subtitle timestamp (00:01:02,500 or
// 00:01:02.500) to seconds.
func ParseTimestamp(ts string) (float64, error) {
	ts = strings.TrimSpace(strings.ReplaceAll(ts, ",", "."))
	parts := strings.Split(ts, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q: expected HH:MM:SS,mmm", ts)
	}

	hours, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours in timestamp %q: %v", ts, err)
	}
	minutes, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid minutes in timestamp %q: %v", ts, err)
	}
	seconds, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid seconds in timestamp %q: %v", ts, err)
	}

	return hours*3600 + minutes*60 + seconds, nil
}

package lyrics

import (
	"testing"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"00:00:00,000", 0, false},
		{"00:00:01,500", 1.5, false},
		{"00:01:02,500", 62.5, false},
		{"01:00:00,000", 3600, false},
		{"00:00:05.250", 5.25, false},
		{"  00:00:03,000  ", 3, false},
		{"00:01:02", 62, false},
		{"1:02", 0, true},
		{"garbage", 0, true},
		{"", 0, true},
		{"00:zz:00,000", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseTimestamp(%q) = %v, want error", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTimestamp(%q) unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBuildDiscardsBadBlocks(t *testing.T) {
	blocks := []RawBlock{
		{Index: 0, Start: "00:00:01,000", End: "00:00:02,000", Text: "one"},
		{Index: 1, Start: "bogus", End: "00:00:04,000", Text: "broken start"},
		{Index: 2, Start: "00:00:05,000", End: "nope", Text: "broken end"},
		{Index: 3, Start: "00:00:08,000", End: "00:00:06,000", Text: "ends before it starts"},
		{Index: 4, Start: "00:00:09,000", End: "00:00:10,000", Text: "two"},
	}

	tl, warnings := Build(blocks)
	if tl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 surviving segments", tl.Len())
	}
	if got := tl.Segment(0).Text; got != "one" {
		t.Errorf("first segment = %q, want %q", got, "one")
	}
	if got := tl.Segment(1).Text; got != "two" {
		t.Errorf("second segment = %q, want %q", got, "two")
	}
	if len(warnings) != 3 {
		t.Fatalf("got %d warnings, want 3: %v", len(warnings), warnings)
	}
}

func TestBuildEmptyInput(t *testing.T) {
	tl, warnings := Build(nil)
	if tl == nil {
		t.Fatal("Build(nil) returned nil timeline")
	}
	if tl.Len() != 0 {
		t.Errorf("Len() = %d, want 0", tl.Len())
	}
	if len(warnings) != 0 {
		t.Errorf("got %d warnings, want 0", len(warnings))
	}
	if idx := tl.IndexAt(10); idx != -1 {
		t.Errorf("IndexAt on empty timeline = %d, want -1", idx)
	}
}

func TestFromSegmentsSortsAndClamps(t *testing.T) {
	tl, warnings := FromSegments([]Segment{
		{Start: 10, End: 12, Text: "late"},
		{Start: -2, End: 1, Text: "clamped"},
		{Start: 3, End: 5, Text: "middle"},
	})
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if tl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tl.Len())
	}
	if tl.Segment(0).Start != 0 {
		t.Errorf("negative start not clamped: %v", tl.Segment(0).Start)
	}
	for i := 1; i < tl.Len(); i++ {
		if tl.Segment(i).Start < tl.Segment(i-1).Start {
			t.Errorf("segments not sorted at %d: %v before %v",
				i, tl.Segment(i-1).Start, tl.Segment(i).Start)
		}
	}
}

func TestIndexAt(t *testing.T) {
	tl, _ := FromSegments([]Segment{
		{Start: 1, End: 3, Text: "a"},
		{Start: 5, End: 7, Text: "b"},
		{Start: 10, End: 12, Text: "c"},
	})

	tests := []struct {
		pos  float64
		want int
	}{
		{0, -1},     // before everything
		{1, 0},      // exact start is active
		{2.5, 0},    // inside
		{3, -1},     // end is exclusive
		{4, -1},     // in the gap
		{5, 1},      // next segment
		{11.5, 2},   // last segment
		{12, -1},    // past the last end
		{1000, -1},  // far past
		{-5, -1},    // negative position
	}
	for _, tt := range tests {
		if got := tl.IndexAt(tt.pos); got != tt.want {
			t.Errorf("IndexAt(%v) = %d, want %d", tt.pos, got, tt.want)
		}
	}
}

func TestIndexAtOverlapPrefersLaterStart(t *testing.T) {
	tl, _ := FromSegments([]Segment{
		{Start: 0, End: 10, Text: "background"},
		{Start: 4, End: 6, Text: "overlay"},
	})

	if got, _ := tl.At(5); got.Text != "overlay" {
		t.Errorf("At(5) = %q, want the later-starting segment", got.Text)
	}
	if got, _ := tl.At(2); got.Text != "background" {
		t.Errorf("At(2) = %q, want %q", got.Text, "background")
	}
	// After the overlay ends the earlier segment is active again.
	if got, _ := tl.At(7); got.Text != "background" {
		t.Errorf("At(7) = %q, want %q", got.Text, "background")
	}

	// The same position always resolves to the same segment.
	for i := 0; i < 100; i++ {
		if idx := tl.IndexAt(5); idx != 1 {
			t.Fatalf("IndexAt(5) = %d on repeat call, want 1", idx)
		}
	}
}

func TestWindow(t *testing.T) {
	tl, _ := FromSegments([]Segment{
		{Start: 0, End: 2, Text: "a"},
		{Start: 2, End: 4, Text: "b"},
		{Start: 4, End: 6, Text: "c"},
		{Start: 6, End: 8, Text: "d"},
		{Start: 8, End: 10, Text: "e"},
	})

	lo, hi, active := tl.Window(5, 1, 1)
	if active != 2 {
		t.Fatalf("active = %d, want 2", active)
	}
	if lo != 1 || hi != 4 {
		t.Errorf("window = [%d,%d), want [1,4)", lo, hi)
	}

	// At the very start there is nothing before.
	lo, _, active = tl.Window(0, 2, 2)
	if lo != 0 || active != 0 {
		t.Errorf("window at 0: lo=%d active=%d, want 0 0", lo, active)
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain line", "plain line"},
		{"<i>styled</i> words", "styled words"},
		{"{\\an8}positioned", "positioned"},
		{"  spaced   out  ", "spaced out"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanText(tt.in); got != tt.want {
			t.Errorf("CleanText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

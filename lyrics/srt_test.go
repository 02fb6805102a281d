package lyrics

import (
	"strings"
	"testing"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,500
Is this the real life

2
00:00:04,000 --> 00:00:06,000
Is this just fantasy
Caught in a landslide

3
00:00:07,000 --> 00:00:09,000
No escape from reality
`

func TestParseSRT(t *testing.T) {
	blocks, err := ParseSRT(strings.NewReader(sampleSRT))
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if len(blocks) != 3 {
		t.Fatalf("got %d blocks, want 3", len(blocks))
	}
	if blocks[0].Start != "00:00:01,000" || blocks[0].End != "00:00:03,500" {
		t.Errorf("block 0 timing = %q --> %q", blocks[0].Start, blocks[0].End)
	}
	// Multi-line cue text is joined into one lyric line.
	if blocks[1].Text != "Is this just fantasy Caught in a landslide" {
		t.Errorf("block 1 text = %q", blocks[1].Text)
	}
}

func TestParseSRTWithoutCueNumbers(t *testing.T) {
	in := "00:00:01,000 --> 00:00:02,000\nhello\n\n00:00:03,000 --> 00:00:04,000\nworld\n"
	blocks, err := ParseSRT(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ParseSRT failed: %v", err)
	}
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[1].Text != "world" {
		t.Errorf("block 1 text = %q, want %q", blocks[1].Text, "world")
	}
}

func TestParseSRTEmptyInput(t *testing.T) {
	blocks, err := ParseSRT(strings.NewReader("   \n\n  "))
	if err != nil {
		t.Fatalf("empty input should be valid, got: %v", err)
	}
	if blocks != nil {
		t.Errorf("got %d blocks, want none", len(blocks))
	}
}

func TestParseSRTGarbage(t *testing.T) {
	_, err := ParseSRT(strings.NewReader("this is not\na subtitle file\nat all"))
	if err == nil {
		t.Fatal("expected a parse error for input with no timing lines")
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00:00,000"},
		{1.5, "00:00:01,500"},
		{62.5, "00:01:02,500"},
		{3600, "01:00:00,000"},
		{-3, "00:00:00,000"},
	}
	for _, tt := range tests {
		if got := FormatTimestamp(tt.in); got != tt.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteSRTRoundTrip(t *testing.T) {
	tl, _ := FromSegments([]Segment{
		{Start: 1, End: 3.5, Text: "first line"},
		{Start: 4, End: 6, Text: "second line"},
	})

	var buf strings.Builder
	if err := WriteSRT(&buf, tl); err != nil {
		t.Fatalf("WriteSRT failed: %v", err)
	}

	back, warnings, err := func() (*Timeline, []Warning, error) {
		blocks, err := ParseSRT(strings.NewReader(buf.String()))
		if err != nil {
			return nil, nil, err
		}
		tl, w := Build(blocks)
		return tl, w, nil
	}()
	if err != nil {
		t.Fatalf("reparse failed: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if back.Len() != 2 || back.Segment(0).Text != "first line" || back.Segment(1).Start != 4 {
		t.Errorf("round trip mismatch: %+v", back.Segments())
	}
}

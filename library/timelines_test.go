package library

import (
	"os"
	"path/filepath"
	"testing"
)

const testSRT = `1
00:00:01,000 --> 00:00:02,000
one bad cue follows

2
broken --> 00:00:04,000
this cue is dropped
`

func TestTimelinesLoadAndCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.srt")
	if err := os.WriteFile(path, []byte(testSRT), 0644); err != nil {
		t.Fatal(err)
	}

	cache, err := NewTimelines(4)
	if err != nil {
		t.Fatal(err)
	}

	tl, warnings, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tl.Len() != 1 {
		t.Errorf("Len() = %d, want 1 surviving segment", tl.Len())
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1 for the broken cue", len(warnings))
	}

	// A second load is a cache hit: same timeline, warnings not repeated.
	again, warnings, err := cache.Load(path)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if again != tl {
		t.Error("cache miss on unchanged file")
	}
	if len(warnings) != 0 {
		t.Errorf("cached load repeated %d warnings", len(warnings))
	}
}

func TestTimelinesLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "song.json")
	content := `{"segments": [{"start": 1, "end": 2, "text": "hello"}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cache, _ := NewTimelines(4)
	tl, _, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tl.Len() != 1 || tl.Segment(0).Text != "hello" {
		t.Errorf("unexpected timeline: %+v", tl.Segments())
	}
}

func TestTimelinesMissingFile(t *testing.T) {
	cache, _ := NewTimelines(4)
	if _, _, err := cache.Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected an error for a missing transcript")
	}
}

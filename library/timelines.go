package library

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"karaoke/lyrics"
)

// Timelines caches built lyric timelines so switching back to a recently
// played song skips re-parsing its transcript. Entries are keyed by path
// plus mtime, so an edited transcript is never served stale.
type Timelines struct {
	cache *lru.Cache[string, *lyrics.Timeline]
}

// NewTimelines creates a cache holding up to size built timelines.
func NewTimelines(size int) (*Timelines, error) {
	cache, err := lru.New[string, *lyrics.Timeline](size)
	if err != nil {
		return nil, err
	}
	return &Timelines{cache: cache}, nil
}

// Load returns the timeline for the transcript at path, building it if
// needed. SRT and JSON transcripts are both accepted; build warnings are
// only reported on a cache miss, since a hit means they were shown before.
func (t *Timelines) Load(path string) (*lyrics.Timeline, []lyrics.Warning, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("lyrics file not found: %s", path)
	}

	key := fmt.Sprintf("%s@%d", path, info.ModTime().UnixNano())
	if tl, ok := t.cache.Get(key); ok {
		return tl, nil, nil
	}

	var tl *lyrics.Timeline
	var warnings []lyrics.Warning
	if strings.EqualFold(filepath.Ext(path), ".srt") {
		tl, warnings, err = lyrics.LoadSRT(path)
	} else {
		tl, warnings, err = lyrics.LoadJSON(path)
	}
	if err != nil {
		return nil, nil, err
	}

	t.cache.Add(key, tl)
	return tl, warnings, nil
}

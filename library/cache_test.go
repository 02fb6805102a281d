package library

import (
	"testing"
	"time"
)

func TestCacheDuration(t *testing.T) {
	cache, err := OpenCache(t.TempDir())
	if err != nil {
		t.Fatalf("OpenCache failed: %v", err)
	}
	defer cache.Close()

	mtime := time.Now()
	if _, ok := cache.Duration("song1", mtime); ok {
		t.Fatal("empty cache reported a hit")
	}

	if err := cache.SetDuration("song1", 183.5, mtime); err != nil {
		t.Fatalf("SetDuration failed: %v", err)
	}
	d, ok := cache.Duration("song1", mtime)
	if !ok || d != 183.5 {
		t.Fatalf("Duration = %v, %v; want 183.5, true", d, ok)
	}

	// A newer file mtime invalidates the entry.
	if _, ok := cache.Duration("song1", mtime.Add(time.Second)); ok {
		t.Error("stale entry served after the file changed")
	}

	// Re-probing updates the entry.
	later := mtime.Add(time.Minute)
	if err := cache.SetDuration("song1", 200, later); err != nil {
		t.Fatal(err)
	}
	if d, ok := cache.Duration("song1", later); !ok || d != 200 {
		t.Errorf("updated Duration = %v, %v; want 200, true", d, ok)
	}
}

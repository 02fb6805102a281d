package library

import (
	"os"
	"path/filepath"
	"testing"
)

func testSong(title string) Song {
	return Song{
		Title:            title,
		OriginalPath:     "/music/" + title + ".mp3",
		InstrumentalPath: "/music/" + title + "_Instruments.wav",
		LyricsPath:       "/music/" + title + ".json",
	}
}

func TestStoreAddAndPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")

	store := NewStore(path)
	id, err := store.Add(testSong("bohemian rhapsody"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if len(id) != 32 {
		t.Errorf("ID %q should be a 32-char hex string", id)
	}

	// A fresh store reads the same entry back.
	reloaded := NewStore(path)
	song, ok := reloaded.Get(id)
	if !ok {
		t.Fatal("song not found after reload")
	}
	if song.Title != "bohemian rhapsody" {
		t.Errorf("title = %q", song.Title)
	}
	if song.DateAdded.IsZero() {
		t.Error("DateAdded was not set")
	}
}

func TestStoreAddValidation(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "library.json"))

	if _, err := store.Add(Song{}); err == nil {
		t.Error("expected an error for a song with no title")
	}
	if _, err := store.Add(Song{Title: "no files"}); err == nil {
		t.Error("expected an error for a song with no file paths")
	}
	if len(store.All()) != 0 {
		t.Errorf("invalid songs were stored: %v", store.All())
	}
}

func TestStoreFind(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "library.json"))
	id, err := store.Add(testSong("Yesterday"))
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	store.Add(testSong("Let It Be"))

	if song, ok := store.Find(id); !ok || song.Title != "Yesterday" {
		t.Errorf("Find by full ID failed: %+v %v", song, ok)
	}
	if song, ok := store.Find(id[:8]); !ok || song.Title != "Yesterday" {
		t.Errorf("Find by ID prefix failed: %+v %v", song, ok)
	}
	if song, ok := store.Find("yester"); !ok || song.Title != "Yesterday" {
		t.Errorf("Find by title substring failed: %+v %v", song, ok)
	}
	if _, ok := store.Find("no such song"); ok {
		t.Error("Find matched a nonexistent song")
	}
}

func TestStoreRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	store := NewStore(path)
	id, _ := store.Add(testSong("temporary"))

	removed, err := store.Remove(id)
	if err != nil || !removed {
		t.Fatalf("Remove = %v, %v", removed, err)
	}
	if removed, _ := store.Remove(id); removed {
		t.Error("second Remove of the same ID reported success")
	}
	if len(NewStore(path).All()) != 0 {
		t.Error("removal was not persisted")
	}
}

func TestStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	// A corrupt library starts empty instead of failing.
	store := NewStore(path)
	if len(store.All()) != 0 {
		t.Errorf("corrupt library produced %d songs", len(store.All()))
	}
	if _, err := store.Add(testSong("fresh start")); err != nil {
		t.Errorf("Add after corrupt load failed: %v", err)
	}
}

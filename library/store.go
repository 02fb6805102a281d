// Package library manages the song library: a JSON-backed store of song
// metadata plus caches for durations and parsed lyric timelines.
package library

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Song is one library entry pointing at the files an import produced.
type Song struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Artist           string    `json:"artist,omitempty"`
	OriginalPath     string    `json:"original_file_path"`
	InstrumentalPath string    `json:"instrumental_file_path"`
	VocalsPath       string    `json:"vocals_file_path,omitempty"`
	LyricsPath       string    `json:"lyrics_file_path"`
	DateAdded        time.Time `json:"date_added"`
}

// Store is the JSON-backed song library. It is an explicit object: create
// one at startup and pass it where needed, never a process-wide global.
type Store struct {
	path  string
	songs []Song
}

// NewStore loads the library at path. A missing or unreadable file starts
// an empty library with a warning rather than failing.
func NewStore(path string) *Store {
	s := &Store{path: path}
	s.load()
	return s
}

func (s *Store) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			fmt.Printf("Warning: could not read library file %s: %v, starting empty\n", s.path, err)
		}
		s.songs = nil
		return
	}
	if err := json.Unmarshal(data, &s.songs); err != nil {
		fmt.Printf("Warning: could not decode library file %s: %v, starting empty\n", s.path, err)
		s.songs = nil
	}
}

// Save writes the library back to disk.
func (s *Store) Save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create library directory: %v", err)
		}
	}
	data, err := json.MarshalIndent(s.songs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize library: %v", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write library file %s: %v", s.path, err)
	}
	return nil
}

// Add validates the entry, assigns it an ID and timestamp, and persists
// the library. Returns the new song's ID.
func (s *Store) Add(song Song) (string, error) {
	if song.Title == "" {
		return "", fmt.Errorf("song is missing a title")
	}
	if song.OriginalPath == "" || song.InstrumentalPath == "" || song.LyricsPath == "" {
		return "", fmt.Errorf("song %q is missing required file paths", song.Title)
	}

	song.ID = strings.ReplaceAll(uuid.NewString(), "-", "")
	song.DateAdded = time.Now()
	s.songs = append(s.songs, song)

	if err := s.Save(); err != nil {
		return "", err
	}
	return song.ID, nil
}

// Remove deletes the song with the given ID. Returns false when no such
// song exists.
func (s *Store) Remove(id string) (bool, error) {
	for i, song := range s.songs {
		if song.ID == id {
			s.songs = append(s.songs[:i], s.songs[i+1:]...)
			return true, s.Save()
		}
	}
	return false, nil
}

// Get returns the song with the given ID.
func (s *Store) Get(id string) (Song, bool) {
	for _, song := range s.songs {
		if song.ID == id {
			return song, true
		}
	}
	return Song{}, false
}

// Find resolves a song by ID, ID prefix, or case-insensitive title
// substring, in that order.
func (s *Store) Find(query string) (Song, bool) {
	if song, ok := s.Get(query); ok {
		return song, true
	}
	for _, song := range s.songs {
		if strings.HasPrefix(song.ID, query) {
			return song, true
		}
	}
	lower := strings.ToLower(query)
	for _, song := range s.songs {
		if strings.Contains(strings.ToLower(song.Title), lower) {
			return song, true
		}
	}
	return Song{}, false
}

// All returns a copy of every song in the library.
func (s *Store) All() []Song {
	out := make([]Song, len(s.songs))
	copy(out, s.songs)
	return out
}

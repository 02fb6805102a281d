package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("a missing config file should not be an error: %v", err)
	}
	if cfg.Language != "en" || cfg.TickMillis != 100 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "karaoke.yaml")
	content := "language: zh\nlyric_width: 40\nlibrary_dir: /srv/karaoke\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Language != "zh" {
		t.Errorf("language = %q, want zh", cfg.Language)
	}
	if cfg.LyricWidth != 40 {
		t.Errorf("lyric_width = %d, want 40", cfg.LyricWidth)
	}
	// The library file follows the configured directory when unset.
	if cfg.LibraryFile != filepath.Join("/srv/karaoke", "library.json") {
		t.Errorf("library_file = %q", cfg.LibraryFile)
	}
	// Unrelated fields keep their defaults.
	if cfg.RetryAttempts != 3 {
		t.Errorf("retry_attempts = %d, want default 3", cfg.RetryAttempts)
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "karaoke.yaml")
	if err := os.WriteFile(path, []byte("language: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WHISPER_CPP_PATH", "/opt/whisper.cpp")
	t.Setenv("VOCAL_REMOVER_PATH", "/opt/vocal-remover")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.WhisperDir != "/opt/whisper.cpp" {
		t.Errorf("whisper dir = %q", cfg.WhisperDir)
	}
	if cfg.VocalRemoverDir != "/opt/vocal-remover" {
		t.Errorf("vocal remover dir = %q", cfg.VocalRemoverDir)
	}
}

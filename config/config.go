package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the paths to the external tools and the player defaults.
// Everything has a usable default; the file is optional.
type Config struct {
	// Library
	LibraryDir  string `yaml:"library_dir"`
	LibraryFile string `yaml:"library_file"`

	// Whisper
	WhisperScript string `yaml:"whisper_script"`
	WhisperModel  string `yaml:"whisper_model"`
	WhisperDir    string `yaml:"whisper_dir"`
	Language      string `yaml:"language"`

	// Vocal separation
	VocalRemoverDir string `yaml:"vocal_remover_dir"`

	// Transcription retry
	RetryAttempts int `yaml:"retry_attempts"`
	RetryBackoff  int `yaml:"retry_backoff_seconds"`

	// Player
	TickMillis   int    `yaml:"tick_millis"`
	ActiveColor  string `yaml:"active_lyric_color"`
	ContextLines int    `yaml:"context_lines"`
	LyricWidth   int    `yaml:"lyric_width"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		LibraryDir:    "./data",
		LibraryFile:   "./data/library.json",
		WhisperScript: "./scripts/whisper.sh",
		WhisperModel:  "models/ggml-large-v2.bin",
		Language:      "en",
		RetryAttempts: 3,
		RetryBackoff:  5,
		TickMillis:    100,
		ActiveColor:   "yellow",
		ContextLines:  2,
		LyricWidth:    72,
	}
}

// Path returns the config file location: $KARAOKE_CONFIG if set,
// otherwise ~/.karaoke.yaml.
func Path() string {
	if p := os.Getenv("KARAOKE_CONFIG"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".karaoke.yaml"
	}
	return filepath.Join(home, ".karaoke.yaml")
}

// Load reads the config file at path, falling back to defaults for any
// field left unset. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %v", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %v", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}

// applyDefaults restores defaults for fields the file zeroed out.
func (c *Config) applyDefaults() {
	d := Default()
	if c.LibraryDir == "" {
		c.LibraryDir = d.LibraryDir
	}
	if c.LibraryFile == "" {
		c.LibraryFile = filepath.Join(c.LibraryDir, "library.json")
	}
	if c.WhisperScript == "" {
		c.WhisperScript = d.WhisperScript
	}
	if c.WhisperModel == "" {
		c.WhisperModel = d.WhisperModel
	}
	if c.Language == "" {
		c.Language = d.Language
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = d.RetryAttempts
	}
	if c.RetryBackoff <= 0 {
		c.RetryBackoff = d.RetryBackoff
	}
	if c.TickMillis <= 0 {
		c.TickMillis = d.TickMillis
	}
	if c.ActiveColor == "" {
		c.ActiveColor = d.ActiveColor
	}
	if c.ContextLines <= 0 {
		c.ContextLines = d.ContextLines
	}
	if c.LyricWidth <= 0 {
		c.LyricWidth = d.LyricWidth
	}
}

// applyEnv lets the external tool paths be overridden by environment
// variables, matching how the tools themselves are usually installed.
func (c *Config) applyEnv() {
	if v := os.Getenv("WHISPER_CPP_PATH"); v != "" {
		c.WhisperDir = expandHome(v)
	}
	if v := os.Getenv("VOCAL_REMOVER_PATH"); v != "" {
		c.VocalRemoverDir = expandHome(v)
	}
}

func expandHome(p string) string {
	if len(p) > 0 && p[0] == '~' {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}

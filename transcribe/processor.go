// Package transcribe invokes the external speech-recognition engine and
// turns its subtitle output into lyric timelines.
package transcribe

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"karaoke/lyrics"
)

// Language-specific prompts steer the model toward lyric-shaped output.
var prompts = map[string]string{
	"en": "This is a song transcription. Lyrics should be poetic and structured.",
	"zh": "這是歌曲轉錄，歌詞應該具有詩意和結構性。",
}

// Processor runs the whisper wrapper script on an audio file.
type Processor struct {
	// Script is the whisper.sh wrapper; Model the ggml model it loads.
	Script     string
	Model      string
	WhisperDir string // exported as WHISPER_CPP_PATH for the script
	Language   string // "en" or "zh"
	Retry      RetryPolicy
}

// Transcribe runs speech recognition on audioPath, writing engine output
// under outputDir, and parses the resulting SRT into a timeline. A nonzero
// engine exit is retried per the policy before failing for good.
func (p *Processor) Transcribe(audioPath, outputDir string) (*lyrics.Timeline, []lyrics.Warning, error) {
	if p.Script == "" {
		return nil, nil, fmt.Errorf("whisper script not configured")
	}
	if _, err := os.Stat(p.Script); err != nil {
		return nil, nil, fmt.Errorf("whisper script not found at %s", p.Script)
	}

	language := p.Language
	if language != "en" && language != "zh" {
		fmt.Printf("Warning: language %q not supported, defaulting to English\n", language)
		language = "en"
	}

	// Chinese lines read badly past ~16 characters; English tolerates more.
	maxLength := "60"
	if language == "zh" {
		maxLength = "16"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create output directory %s: %v", outputDir, err)
	}

	fmt.Printf("Transcribing audio: %s\n", audioPath)
	err := p.Retry.Run("transcription", func() error {
		cmd := exec.Command("bash", p.Script,
			"-m", p.Model,
			"-i", audioPath,
			"-o", outputDir,
			"-l", language,
			"--prompt", prompts[language],
			"-f", "srt",
			"--max-length", maxLength)
		if p.WhisperDir != "" {
			cmd.Env = append(os.Environ(), "WHISPER_CPP_PATH="+p.WhisperDir)
		}
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		return cmd.Run()
	})
	if err != nil {
		return nil, nil, err
	}

	srtPath, err := findSRT(outputDir)
	if err != nil {
		return nil, nil, err
	}

	tl, warnings, err := lyrics.LoadSRT(srtPath)
	if err != nil {
		return nil, nil, err
	}
	fmt.Printf("Loaded %d transcript segments from %s\n", tl.Len(), srtPath)
	return tl, warnings, nil
}

// findSRT locates the engine's subtitle output: transcription.srt if
// present, otherwise the first .srt in the directory.
func findSRT(outputDir string) (string, error) {
	preferred := filepath.Join(outputDir, "transcription.srt")
	if _, err := os.Stat(preferred); err == nil {
		return preferred, nil
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return "", fmt.Errorf("failed to read output directory %s: %v", outputDir, err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".srt") {
			return filepath.Join(outputDir, e.Name()), nil
		}
	}
	return "", fmt.Errorf("no SRT file found in %s", outputDir)
}

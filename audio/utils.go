package audio

import (
	"bufio"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// Duration returns the duration of an audio file in seconds via ffprobe.
func Duration(filePath string) (float64, error) {
	cmd := exec.Command("ffprobe",
		"-v", "quiet",
		"-show_entries", "format=duration",
		"-of", "csv=p=0",
		filePath)

	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}

	durationStr := strings.TrimSpace(string(output))
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil {
		return 0, err
	}

	return duration, nil
}

// WaitForKeyPress waits for user input or interrupt signal
func WaitForKeyPress() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	keyChan := make(chan bool, 1)

	go func() {
		reader := bufio.NewReader(os.Stdin)
		reader.ReadByte()
		keyChan <- true
	}()

	select {
	case <-keyChan:
		return
	case <-sigChan:
		fmt.Println("\nInterrupted.")
		return
	}
}

// InstrumentalPath returns the expected instrumental track location for a
// song project. The names match what the vocal-remover writes.
func InstrumentalPath(projectDir, baseName string) string {
	return filepath.Join(projectDir, baseName+"_Instruments.wav")
}

// VocalsPath returns the expected vocals track location for a song project.
func VocalsPath(projectDir, baseName string) string {
	return filepath.Join(projectDir, baseName+"_Vocals.wav")
}

// HasVocals checks whether a separated vocals track exists.
func HasVocals(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

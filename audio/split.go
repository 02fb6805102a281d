package audio

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var silenceEnd = regexp.MustCompile(`silence_end: ([0-9.]+)`)

// ParseSilenceEnds extracts silence_end timestamps from ffmpeg
// silencedetect output.
func ParseSilenceEnds(ffmpegOutput string) []float64 {
	var stamps []float64
	for _, m := range silenceEnd.FindAllStringSubmatch(ffmpegOutput, -1) {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			stamps = append(stamps, v)
		}
	}
	return stamps
}

// SplitOnSilence cuts inputFile at detected silences and writes the parts
// into outputDir as part_000.wav, part_001.wav, ... The part paths are
// returned in order. A file with no detectable silence comes back as a
// single part.
func SplitOnSilence(inputFile, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %v", outputDir, err)
	}

	detectCmd := exec.Command("ffmpeg", "-hide_banner", "-i", inputFile,
		"-af", "silencedetect=noise=-35dB:d=0.5", "-f", "null", "-")
	detectOutput, err := detectCmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("silence detection failed: %v (%s)", err, string(detectOutput))
	}

	stamps := ParseSilenceEnds(string(detectOutput))
	if len(stamps) == 0 {
		fmt.Println("No silence detected, using single part.")
		single := filepath.Join(outputDir, "part_000.wav")
		if err := copyFile(inputFile, single); err != nil {
			return nil, err
		}
		return []string{single}, nil
	}

	parts := make([]string, len(stamps))
	for i, s := range stamps {
		parts[i] = fmt.Sprintf("%.4f", s)
	}

	outputPattern := filepath.Join(outputDir, "part_%03d.wav")
	splitCmd := exec.Command("ffmpeg", "-hide_banner", "-y", "-i", inputFile,
		"-c", "copy", "-f", "segment",
		"-segment_times", strings.Join(parts, ","),
		outputPattern)
	if output, err := splitCmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("failed to split file: %v (%s)", err, string(output))
	}

	matches, err := filepath.Glob(filepath.Join(outputDir, "part_*.wav"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	if len(matches) == 0 {
		return nil, fmt.Errorf("split produced no parts in %s", outputDir)
	}
	return matches, nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %v", src, err)
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", dst, err)
	}
	return nil
}

package audio

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ConvertToWAV converts any input the transcoder understands into a WAV
// suitable for separation and transcription. High quality first (CD rate,
// 24-bit), falling back to a 16 kHz conversion if that fails.
func ConvertToWAV(inputFile, outputFile string) error {
	cmd := exec.Command("ffmpeg", "-y", "-hide_banner", "-loglevel", "error",
		"-i", inputFile,
		"-ar", "44100",
		"-ac", "2",
		"-acodec", "pcm_s24le",
		outputFile)

	if output, err := cmd.CombinedOutput(); err != nil {
		fmt.Printf("High-quality conversion failed, falling back to standard quality: %v\n", err)
		if len(output) > 0 {
			fmt.Printf("Output: %s\n", string(output))
		}

		fallback := exec.Command("ffmpeg", "-y", "-hide_banner", "-loglevel", "error",
			"-i", inputFile,
			"-ar", "16000",
			"-ac", "2",
			outputFile)
		if output, err := fallback.CombinedOutput(); err != nil {
			return fmt.Errorf("failed to convert %s to WAV: %v (%s)", inputFile, err, string(output))
		}
	}

	return nil
}

// ConcatFiles joins multiple audio files into one WAV using the ffmpeg
// concat demuxer. Inputs should already share a sample rate and channel
// layout (ConvertToWAV output qualifies).
func ConcatFiles(inputFiles []string, outputFile string) error {
	if len(inputFiles) == 0 {
		return fmt.Errorf("no input files to concatenate")
	}
	if len(inputFiles) == 1 {
		return ConvertToWAV(inputFiles[0], outputFile)
	}

	listFile, err := os.CreateTemp("", "karaoke_concat_*.txt")
	if err != nil {
		return fmt.Errorf("failed to create concat list: %v", err)
	}
	defer os.Remove(listFile.Name())

	for _, f := range inputFiles {
		abs, err := filepath.Abs(f)
		if err != nil {
			listFile.Close()
			return err
		}
		fmt.Fprintf(listFile, "file '%s'\n", abs)
	}
	listFile.Close()

	cmd := exec.Command("ffmpeg", "-y", "-hide_banner", "-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", listFile.Name(),
		"-ar", "44100",
		"-ac", "2",
		outputFile)

	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to concatenate files: %v (%s)", err, string(output))
	}
	return nil
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"karaoke/audio"
	"karaoke/config"
	"karaoke/lyrics"
	"karaoke/util"
)

func handleTranscribe(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("transcribe", flag.ExitOnError)
	language := fs.String("language", cfg.Language, "Transcription language (en, zh)")
	format := fs.String("format", "srt", "Output format: txt, srt, json, lrc")
	outPath := fs.String("o", "", "Output file (default: next to the input)")
	chunked := fs.Bool("chunked", false, "Transcribe in silence-split chunks")
	fs.Usage = func() {
		fmt.Println("Usage: karaoke transcribe [options] <audio file>")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  karaoke transcribe song.wav")
		fmt.Println("  karaoke transcribe -language zh -format lrc song.wav")
		fmt.Println("  karaoke transcribe -chunked -o lyrics.srt long_recording.mp3")
		fmt.Println()
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	inputFile := fs.Arg(0)
	if _, err := os.Stat(inputFile); err != nil {
		fmt.Printf("Input file not found: %s\n", inputFile)
		os.Exit(1)
	}

	workDir, err := util.TempDir()
	if err != nil {
		fmt.Printf("Error creating temp directory: %v\n", err)
		os.Exit(1)
	}
	defer os.RemoveAll(workDir)

	// Whisper wants WAV input; convert anything else up front.
	audioPath := inputFile
	if filepath.Ext(inputFile) != ".wav" {
		audioPath = filepath.Join(workDir, util.BaseName(inputFile)+".wav")
		fmt.Printf("Converting %s to WAV...\n", inputFile)
		if err := audio.ConvertToWAV(inputFile, audioPath); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	proc := newProcessor(cfg, *language)
	var (
		timeline *lyrics.Timeline
		warnings []lyrics.Warning
	)
	if *chunked {
		timeline, warnings, err = proc.TranscribeChunked(audioPath, workDir, workDir)
	} else {
		timeline, warnings, err = proc.Transcribe(audioPath, workDir)
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		fmt.Printf("Warning: %s\n", w)
	}

	target := *outPath
	if target == "" {
		base := inputFile[:len(inputFile)-len(filepath.Ext(inputFile))]
		target = base + "." + *format
	}
	if err := writeLyrics(target, *format, timeline); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d lines to %s\n", timeline.Len(), target)
}

// writeLyrics saves a timeline in the requested lyric format.
func writeLyrics(path, format string, t *lyrics.Timeline) error {
	if format == "json" {
		return lyrics.SaveJSON(path, t)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch format {
	case "txt":
		return lyrics.WriteText(f, t)
	case "srt":
		return lyrics.WriteSRT(f, t)
	case "lrc":
		return lyrics.WriteLRC(f, t)
	default:
		return fmt.Errorf("unknown format: %s (want txt, srt, json, or lrc)", format)
	}
}

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"karaoke/audio"
	"karaoke/config"
	"karaoke/util"
)

func handleSeparate(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("separate", flag.ExitOnError)
	output := fs.String("output", "", "Output directory (default: next to the input file)")
	fs.Usage = func() {
		fmt.Println("Usage: karaoke separate [options] <audio file>")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  karaoke separate song.wav")
		fmt.Println("  karaoke separate -output ./tracks song.mp3")
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

	projectDir, baseName, err := util.ProjectDir(inputFile, *output)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	checkDiskSpace(projectDir)

	// The separation model expects WAV.
	wavPath := inputFile
	if filepath.Ext(inputFile) != ".wav" {
		wavPath = filepath.Join(projectDir, baseName+".wav")
		fmt.Printf("Converting %s to WAV...\n", inputFile)
		if err := audio.ConvertToWAV(inputFile, wavPath); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	sep := &audio.Separator{Dir: cfg.VocalRemoverDir}
	instrumental, vocals, err := sep.Separate(wavPath, projectDir)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Instrumental: %s\n", instrumental)
	fmt.Printf("Vocals:       %s\n", vocals)
}

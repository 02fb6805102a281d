package main

import (
	"fmt"
	"os"

	"karaoke/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "import":
		handleImport(cfg, args)
	case "play":
		handlePlay(cfg, args)
	case "transcribe":
		handleTranscribe(cfg, args)
	case "separate":
		handleSeparate(cfg, args)
	case "ls", "list":
		handleList(cfg, args)
	case "rm":
		handleRemove(cfg, args)
	case "export":
		handleExport(cfg, args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: karaoke <command> [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  import      Prepare songs: convert, separate vocals, transcribe lyrics")
	fmt.Println("  play        Play a song from the library in the interactive player")
	fmt.Println("  transcribe  Transcribe an audio file to timed lyrics")
	fmt.Println("  separate    Split an audio file into instrumental and vocal tracks")
	fmt.Println("  ls          List the songs in the library")
	fmt.Println("  rm          Remove a song from the library")
	fmt.Println("  export      Export a song's lyrics (txt, srt, lrc, json)")
	fmt.Println("  help        Show this help")
	fmt.Println()
	fmt.Println("Config is read from ~/.karaoke.yaml (override with KARAOKE_CONFIG).")
}

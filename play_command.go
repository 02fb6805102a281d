package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"time"

	"karaoke/audio"
	"karaoke/config"
	"karaoke/library"
	"karaoke/lyrics"
	"karaoke/player"
)

func handlePlay(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	vocals := fs.Bool("vocals", false, "Start with the vocals track audible")
	fs.Usage = func() {
		fmt.Println("Usage: karaoke play [options] <song id, title, or audio file>")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  karaoke play bohemian")
		fmt.Println("  karaoke play 3f2a9c1d")
		fmt.Println("  karaoke play some_random_file.mp3   (quick preview, no library)")
		fmt.Println()
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	query := fs.Arg(0)

	store := library.NewStore(cfg.LibraryFile)
	song, found := store.Find(query)
	if !found {
		// Not a library song, but maybe a plain audio file.
		if _, err := os.Stat(query); err == nil {
			previewFile(query)
			return
		}
		fmt.Printf("No song matches %q. Try 'karaoke ls'.\n", query)
		os.Exit(1)
	}

	if _, err := os.Stat(song.InstrumentalPath); err != nil {
		fmt.Printf("Audio file missing: %s\n", song.InstrumentalPath)
		fmt.Println("Re-import the song or fix the path in the library file.")
		os.Exit(1)
	}

	timelines, err := library.NewTimelines(16)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	timeline, warnings, err := timelines.Load(song.LyricsPath)
	if err != nil {
		fmt.Printf("Warning: Could not load lyrics: %v\n", err)
		timeline, _ = lyrics.FromSegments(nil)
	}
	for _, w := range warnings {
		fmt.Printf("Warning: %s\n", w)
	}

	duration := songDuration(cfg, song)

	vocalsPath := song.VocalsPath
	if !audio.HasVocals(vocalsPath) {
		vocalsPath = ""
	}

	shell := player.NewShell(timeline, player.ShellOptions{
		Title:            song.Title,
		Artist:           song.Artist,
		InstrumentalPath: song.InstrumentalPath,
		VocalsPath:       vocalsPath,
		Duration:         duration,
		TickInterval:     time.Duration(cfg.TickMillis) * time.Millisecond,
		ActiveColor:      cfg.ActiveColor,
		ContextLines:     cfg.ContextLines,
		LyricWidth:       cfg.LyricWidth,
		StartWithVocals:  *vocals,
	})
	shell.Run()
}

// songDuration returns the song length, served from the sqlite cache when
// the instrumental file has not changed since it was measured.
func songDuration(cfg *config.Config, song library.Song) float64 {
	info, err := os.Stat(song.InstrumentalPath)
	if err != nil {
		return 0
	}
	mtime := info.ModTime()

	cache, cerr := library.OpenCache(cfg.LibraryDir)
	if cerr == nil {
		defer cache.Close()
		if d, ok := cache.Duration(song.ID, mtime); ok {
			return d
		}
	}

	d, err := audio.Duration(song.InstrumentalPath)
	if err != nil {
		fmt.Printf("Warning: Could not probe duration: %v\n", err)
		return 0
	}
	if cerr == nil {
		if err := cache.SetDuration(song.ID, d, mtime); err != nil {
			fmt.Printf("Warning: Could not cache duration: %v\n", err)
		}
	}
	return d
}

// previewFile plays an arbitrary audio file with ffplay until a key is
// pressed. No library entry, no lyrics, no transport control.
func previewFile(path string) {
	fmt.Printf("Previewing %s (press any key to stop)...\n", path)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cmd := exec.CommandContext(ctx, "ffplay", "-autoexit", "-nodisp", "-loglevel", "quiet", path)
	if err := cmd.Start(); err != nil {
		fmt.Printf("Error starting ffplay: %v\n", err)
		os.Exit(1)
	}
	done := make(chan struct{})
	go func() {
		cmd.Wait()
		close(done)
	}()

	audio.WaitForKeyPress()
	cancel()
	<-done
}

package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dustin/go-humanize"

	"karaoke/audio"
	"karaoke/config"
	"karaoke/library"
	"karaoke/lyrics"
	"karaoke/util"
)

func handleList(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("ls", flag.ExitOnError)
	long := fs.Bool("l", false, "Long listing with paths and dates")
	fs.Usage = func() {
		fmt.Println("Usage: karaoke ls [-l]")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	store := library.NewStore(cfg.LibraryFile)
	songs := store.All()
	if len(songs) == 0 {
		fmt.Println("Library is empty. Add songs with 'karaoke import'.")
		return
	}

	cache, err := library.OpenCache(cfg.LibraryDir)
	if err != nil {
		cache = nil
	} else {
		defer cache.Close()
	}

	fmt.Printf("%-10s %-32s %-20s %8s %10s %7s\n",
		"ID", "TITLE", "ARTIST", "LENGTH", "SIZE", "VOCALS")
	for _, song := range songs {
		length := "?"
		size := "?"
		if info, err := os.Stat(song.InstrumentalPath); err == nil {
			size = humanize.IBytes(uint64(info.Size()))
			if d, ok := cachedDuration(cache, song, info); ok {
				length = formatClock(d)
			}
		}
		hasVocals := "no"
		if audio.HasVocals(song.VocalsPath) {
			hasVocals = "yes"
		}
		fmt.Printf("%-10s %-32s %-20s %8s %10s %7s\n",
			shortID(song.ID),
			util.TruncateString(song.Title, 32),
			util.TruncateString(song.Artist, 20),
			length, size, hasVocals)
		if *long {
			fmt.Printf("           added %s\n", song.DateAdded.Format("2006-01-02"))
			fmt.Printf("           instrumental: %s\n", song.InstrumentalPath)
			if song.VocalsPath != "" {
				fmt.Printf("           vocals:       %s\n", song.VocalsPath)
			}
			fmt.Printf("           lyrics:       %s\n", song.LyricsPath)
		}
	}
	fmt.Printf("\n%d songs\n", len(songs))
}

// cachedDuration serves the song length from the sqlite cache, probing
// with ffprobe and backfilling the cache on a miss.
func cachedDuration(cache *library.Cache, song library.Song, info os.FileInfo) (float64, bool) {
	if cache != nil {
		if d, ok := cache.Duration(song.ID, info.ModTime()); ok {
			return d, true
		}
	}
	d, err := audio.Duration(song.InstrumentalPath)
	if err != nil {
		return 0, false
	}
	if cache != nil {
		cache.SetDuration(song.ID, d, info.ModTime())
	}
	return d, true
}

func handleRemove(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("rm", flag.ExitOnError)
	force := fs.Bool("f", false, "Remove without confirmation")
	fs.Usage = func() {
		fmt.Println("Usage: karaoke rm [-f] <song id or title>")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	store := library.NewStore(cfg.LibraryFile)
	song, found := store.Find(fs.Arg(0))
	if !found {
		fmt.Printf("No song matches %q.\n", fs.Arg(0))
		os.Exit(1)
	}

	if !*force {
		fmt.Printf("Remove \"%s\" from the library? Generated files stay on disk. [y/N] ", song.Title)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return
		}
	}

	removed, err := store.Remove(song.ID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	if !removed {
		fmt.Printf("Song %s is no longer in the library.\n", song.ID)
		return
	}
	fmt.Printf("Removed \"%s\".\n", song.Title)
}

func handleExport(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "srt", "Output format: txt, srt, json, lrc")
	outPath := fs.String("o", "", "Output file (default: stdout)")
	fs.Usage = func() {
		fmt.Println("Usage: karaoke export [options] <song id or title>")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  karaoke export bohemian")
		fmt.Println("  karaoke export -format lrc -o song.lrc bohemian")
		fmt.Println()
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	store := library.NewStore(cfg.LibraryFile)
	song, found := store.Find(fs.Arg(0))
	if !found {
		fmt.Printf("No song matches %q.\n", fs.Arg(0))
		os.Exit(1)
	}

	timelines, err := library.NewTimelines(16)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	timeline, warnings, err := timelines.Load(song.LyricsPath)
	if err != nil {
		fmt.Printf("Error loading lyrics: %v\n", err)
		os.Exit(1)
	}
	for _, w := range warnings {
		fmt.Printf("Warning: %s\n", w)
	}

	if *outPath == "" {
		if err := exportTo(os.Stdout, *format, timeline); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := writeLyrics(*outPath, *format, timeline); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d lines to %s\n", timeline.Len(), *outPath)
}

func exportTo(w io.Writer, format string, t *lyrics.Timeline) error {
	switch format {
	case "txt":
		return lyrics.WriteText(w, t)
	case "srt":
		return lyrics.WriteSRT(w, t)
	case "lrc":
		return lyrics.WriteLRC(w, t)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Segments []lyrics.Segment `json:"segments"`
		}{t.Segments()})
	default:
		return fmt.Errorf("unknown format: %s (want txt, srt, json, or lrc)", format)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatClock(sec float64) string {
	if sec < 0 {
		sec = 0
	}
	total := int(sec)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

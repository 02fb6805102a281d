package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"karaoke/audio"
	"karaoke/config"
	"karaoke/library"
	"karaoke/lyrics"
	"karaoke/transcribe"
	"karaoke/util"
)

// minFreeBytes is a soft floor: a vocal-remover run on a long track can
// easily produce a couple of gigabytes of intermediate WAV data.
const minFreeBytes = 2 << 30

func handleImport(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	output := fs.String("output", "", "Output directory (default: next to the input file)")
	title := fs.String("title", "", "Song title (default: input filename)")
	artist := fs.String("artist", "", "Artist name")
	language := fs.String("language", cfg.Language, "Transcription language (en, zh)")
	skipSeparation := fs.Bool("skip-separation", false, "Skip vocal separation")
	skipTranscription := fs.Bool("skip-transcription", false, "Skip lyric transcription")
	chunked := fs.Bool("chunked", false, "Transcribe in silence-split chunks")
	merge := fs.Bool("merge", false, "Concatenate all inputs into one song")
	fs.Usage = func() {
		fmt.Println("Usage: karaoke import [options] <audio file> [more files...]")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  karaoke import song.mp3")
		fmt.Println("  karaoke import -artist \"Queen\" -title \"Bohemian Rhapsody\" song.flac")
		fmt.Println("  karaoke import -merge -title \"Full Set\" part1.mp3 part2.mp3")
		fmt.Println("  karaoke import -language zh -chunked long_song.mp3")
		fmt.Println()
		fs.PrintDefaults()
	}
	fs.Parse(args)

	inputs := fs.Args()
	if len(inputs) == 0 {
		fs.Usage()
		os.Exit(1)
	}
	for _, in := range inputs {
		if _, err := os.Stat(in); err != nil {
			fmt.Printf("Input file not found: %s\n", in)
			os.Exit(1)
		}
	}

	store := library.NewStore(cfg.LibraryFile)

	imp := &importer{
		cfg:               cfg,
		store:             store,
		output:            *output,
		title:             *title,
		artist:            *artist,
		language:          *language,
		skipSeparation:    *skipSeparation,
		skipTranscription: *skipTranscription,
		chunked:           *chunked,
	}

	if *merge && len(inputs) > 1 {
		if err := imp.importMerged(inputs); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	queue := NewImportQueue()
	for _, in := range inputs {
		queue.Add(in)
	}
	if failed := queue.Run(imp.importFile); failed > 0 {
		fmt.Printf("\n%d of %d imports failed.\n", failed, queue.Len())
		os.Exit(1)
	}
}

type importer struct {
	cfg               *config.Config
	store             *library.Store
	output            string
	title             string
	artist            string
	language          string
	skipSeparation    bool
	skipTranscription bool
	chunked           bool
}

// importFile runs the full pipeline for one input: convert to WAV,
// separate vocals, transcribe, and register the song in the library.
func (im *importer) importFile(inputFile string) error {
	projectDir, baseName, err := util.ProjectDir(inputFile, im.output)
	if err != nil {
		return err
	}
	checkDiskSpace(projectDir)

	wavPath := filepath.Join(projectDir, baseName+".wav")
	if exists(wavPath) {
		fmt.Printf("Reusing existing WAV: %s\n", wavPath)
	} else {
		fmt.Printf("Converting %s to WAV...\n", inputFile)
		if err := audio.ConvertToWAV(inputFile, wavPath); err != nil {
			return err
		}
	}

	return im.finishImport(inputFile, projectDir, baseName, wavPath)
}

// importMerged concatenates several inputs into one WAV and imports the
// result as a single song.
func (im *importer) importMerged(inputs []string) error {
	name := im.title
	if name == "" {
		name = util.BaseName(inputs[0])
	}

	first := inputs[0]
	projectDir, _, err := util.ProjectDir(first, im.output)
	if err != nil {
		return err
	}
	checkDiskSpace(projectDir)

	wavPath := filepath.Join(projectDir, name+".wav")
	fmt.Printf("Merging %d files into %s...\n", len(inputs), wavPath)
	if err := audio.ConcatFiles(inputs, wavPath); err != nil {
		return err
	}

	return im.finishImport(first, projectDir, name, wavPath)
}

// finishImport handles the separation and transcription stages shared by
// single-file and merged imports, then adds the song to the library.
func (im *importer) finishImport(inputFile, projectDir, baseName, wavPath string) error {
	instrumental := wavPath
	vocals := ""

	if im.skipSeparation {
		fmt.Println("Skipping vocal separation.")
	} else {
		sep := &audio.Separator{Dir: im.cfg.VocalRemoverDir}
		inst, voc, err := sep.Separate(wavPath, projectDir)
		if err != nil {
			fmt.Printf("Warning: Vocal separation failed: %v\n", err)
			fmt.Println("Falling back to the original mix as the instrumental track.")
		} else {
			instrumental = inst
			vocals = voc
		}
	}

	lyricsPath := filepath.Join(projectDir, baseName+".json")
	if im.skipTranscription {
		fmt.Println("Skipping transcription.")
		if !exists(lyricsPath) {
			// An empty timeline keeps the player usable without lyrics.
			empty, _ := lyrics.FromSegments(nil)
			if err := lyrics.SaveJSON(lyricsPath, empty); err != nil {
				return err
			}
		}
	} else if exists(lyricsPath) {
		fmt.Printf("Reusing existing lyrics: %s\n", lyricsPath)
	} else {
		timeline, warnings, err := im.transcribe(wavPath, vocals, projectDir)
		if err != nil {
			return err
		}
		for _, w := range warnings {
			fmt.Printf("Warning: %s\n", w)
		}
		if err := lyrics.SaveJSON(lyricsPath, timeline); err != nil {
			return err
		}
		fmt.Printf("Lyrics saved to %s\n", lyricsPath)
	}

	title := im.title
	if title == "" {
		title = baseName
	}
	id, err := im.store.Add(library.Song{
		Title:            title,
		Artist:           im.artist,
		OriginalPath:     inputFile,
		InstrumentalPath: instrumental,
		VocalsPath:       vocals,
		LyricsPath:       lyricsPath,
		DateAdded:        time.Now(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Imported \"%s\" (id %s)\n", title, id)
	return nil
}

// transcribe runs whisper over the best available source. The isolated
// vocal track transcribes noticeably better than the full mix when the
// separator produced one.
func (im *importer) transcribe(wavPath, vocalsPath, projectDir string) (*lyrics.Timeline, []lyrics.Warning, error) {
	source := wavPath
	if vocalsPath != "" && exists(vocalsPath) {
		source = vocalsPath
	}

	proc := newProcessor(im.cfg, im.language)
	if im.chunked {
		workDir, err := util.TempDir()
		if err != nil {
			return nil, nil, err
		}
		defer os.RemoveAll(workDir)
		return proc.TranscribeChunked(source, projectDir, workDir)
	}
	return proc.Transcribe(source, projectDir)
}

func newProcessor(cfg *config.Config, language string) *transcribe.Processor {
	return &transcribe.Processor{
		Script:     cfg.WhisperScript,
		Model:      cfg.WhisperModel,
		WhisperDir: cfg.WhisperDir,
		Language:   language,
		Retry: transcribe.RetryPolicy{
			MaxAttempts: cfg.RetryAttempts,
			Backoff:     time.Duration(cfg.RetryBackoff) * time.Second,
		},
	}
}

func checkDiskSpace(dir string) {
	total, _, free, err := util.DiskUsage(dir)
	if err != nil {
		return
	}
	if free < minFreeBytes {
		fmt.Printf("Warning: Low disk space: %s free of %s at %s\n",
			humanize.IBytes(free), humanize.IBytes(total), dir)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

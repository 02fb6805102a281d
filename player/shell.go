package player

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"

	"karaoke/lyrics"
	"karaoke/util"
)

// ShellOptions configures a player shell session.
type ShellOptions struct {
	Title            string
	Artist           string
	InstrumentalPath string
	VocalsPath       string
	Duration         float64
	TickInterval     time.Duration
	ActiveColor      string
	ContextLines     int
	LyricWidth       int
	StartWithVocals  bool
}

// Shell is the interactive karaoke player for one song session. It owns
// the synchronizer and serializes every mutation — commands and the tick
// loop — behind one mutex, as the synchronizer itself is not reentrant.
type Shell struct {
	opts     ShellOptions
	timeline *lyrics.Timeline

	mu   sync.Mutex
	sync *Synchronizer
	out  *trackOutput

	render *renderer
	meter  *levelMeter
	rl     *readline.Instance
	done   chan struct{}
}

// NewShell creates a player shell for the given timeline and audio pair.
func NewShell(timeline *lyrics.Timeline, opts ShellOptions) *Shell {
	if opts.TickInterval <= 0 {
		opts.TickInterval = 100 * time.Millisecond
	}
	if opts.ContextLines <= 0 {
		opts.ContextLines = 2
	}
	if opts.LyricWidth <= 0 {
		opts.LyricWidth = 72
	}

	ks := &Shell{
		opts:     opts,
		timeline: timeline,
		sync:     NewSynchronizer(timeline, opts.Duration),
		out:      newTrackOutput(opts.InstrumentalPath, opts.VocalsPath),
		render:   newRenderer(opts.ActiveColor, opts.LyricWidth),
		done:     make(chan struct{}),
	}

	if opts.StartWithVocals && ks.out.hasVocals() {
		ks.sync.ToggleTrack()
	}
	if meter, err := openLevelMeter(opts.InstrumentalPath); err == nil {
		ks.meter = meter
	}
	return ks
}

// Run starts the interactive player shell and blocks until exit.
func (ks *Shell) Run() {
	fmt.Printf("=== Karaoke Player ===\n")
	title := ks.opts.Title
	if ks.opts.Artist != "" {
		title = fmt.Sprintf("%s — %s", ks.opts.Artist, ks.opts.Title)
	}
	fmt.Printf("Song: %s (%s)\n", title, clock(ks.opts.Duration))
	if ks.timeline.Len() == 0 {
		fmt.Printf("No lyrics: instrumental-only timeline.\n")
	} else {
		fmt.Printf("Lyrics: %d lines\n", ks.timeline.Len())
	}
	if !ks.out.hasVocals() {
		fmt.Printf("Note: no vocals track, toggle is unavailable.\n")
	}
	ks.printCommands()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		fmt.Printf("Warning: Could not get home directory: %v\n", err)
		homeDir = "."
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "karaoke> ",
		HistoryFile:  filepath.Join(homeDir, ".karaoke_history"),
		AutoComplete: ks.completer(),
	})
	if err != nil {
		fmt.Printf("Error initializing readline: %v\n", err)
		return
	}
	ks.rl = rl
	defer rl.Close()

	go ks.tickLoop()
	defer close(ks.done)
	defer ks.out.stop()
	if ks.meter != nil {
		defer ks.meter.close()
	}

	for {
		input, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				fmt.Println("\nExiting player...")
				break
			}
			fmt.Printf("Error reading input: %v\n", err)
			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !ks.handleCommand(input) {
			break
		}
	}
}

// tickLoop advances the synchronizer once per tick interval and prints
// each lyric line the moment it becomes active.
func (ks *Shell) tickLoop() {
	ticker := time.NewTicker(ks.opts.TickInterval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ks.done:
			return
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now

			ks.mu.Lock()
			prevIdx := ks.sync.ActiveIndex()
			playing := ks.sync.Transport() == Playing
			ended := ks.sync.Tick(elapsed)
			newIdx := ks.sync.ActiveIndex()
			ks.mu.Unlock()

			if ended {
				ks.out.stop()
				fmt.Fprintf(ks.rl, "Song ended.\n")
				continue
			}
			if playing && newIdx != prevIdx && newIdx >= 0 {
				line := ks.timeline.Segment(newIdx).Text
				if line == "" {
					line = "♪"
				}
				fmt.Fprintf(ks.rl, "%s\n", ks.render.highlight(line))
			}
		}
	}
}

func (ks *Shell) printCommands() {
	fmt.Printf("\nCommands:\n")
	fmt.Printf("  play [pos]       Start or resume playback (optional mm:ss or seconds)\n")
	fmt.Printf("  pause            Pause, keeping the position\n")
	fmt.Printf("  stop             Stop and rewind to the beginning\n")
	fmt.Printf("  seek <pos>       Jump to a position (mm:ss or seconds)\n")
	fmt.Printf("  vocals           Toggle vocals / instrumental\n")
	fmt.Printf("  now              Show the lyrics around the current position\n")
	fmt.Printf("  lyrics           Show the full timed lyrics\n")
	fmt.Printf("  status           Show transport, position and level\n")
	fmt.Printf("  color            Cycle the highlight color\n")
	fmt.Printf("  width <n>        Set the lyric wrap width\n")
	fmt.Printf("  help             Show this help\n")
	fmt.Printf("  exit             Leave the player\n")
	fmt.Printf("\n")
}

func (ks *Shell) completer() readline.AutoCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("play"),
		readline.PcItem("pause"),
		readline.PcItem("stop"),
		readline.PcItem("seek"),
		readline.PcItem("vocals"),
		readline.PcItem("now"),
		readline.PcItem("lyrics"),
		readline.PcItem("status"),
		readline.PcItem("color"),
		readline.PcItem("width"),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

// handleCommand processes one shell command. Returns false on exit.
func (ks *Shell) handleCommand(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	args := parts[1:]

	switch cmd {
	case "exit", "quit", "q":
		fmt.Println("Exiting player...")
		return false

	case "help", "h":
		ks.printCommands()

	case "play", "p":
		ks.handlePlay(args)

	case "pause":
		ks.mu.Lock()
		ks.sync.Pause()
		ks.mu.Unlock()
		ks.out.stop()
		fmt.Printf("Paused at %s\n", clock(ks.position()))

	case "stop":
		ks.mu.Lock()
		ks.sync.Stop()
		ks.mu.Unlock()
		ks.out.stop()
		fmt.Println("Stopped.")

	case "seek":
		if len(args) == 0 {
			fmt.Println("Usage: seek <mm:ss or seconds>")
			break
		}
		target, err := parsePosition(args[0])
		if err != nil {
			fmt.Printf("Invalid position: %s\n", args[0])
			break
		}
		ks.handleSeek(target)

	case "vocals", "v":
		ks.handleToggle()

	case "now", "n":
		ks.showNow()

	case "lyrics":
		ks.showLyrics()

	case "status", "s":
		ks.showStatus()

	case "color":
		fmt.Printf("Highlight color: %s\n", ks.render.cycleColor())

	case "width":
		if len(args) == 0 {
			fmt.Printf("Usage: width <columns> (current: %d)\n", ks.render.width)
			break
		}
		if n, err := strconv.Atoi(args[0]); err == nil {
			ks.render.width = util.Clamp(n, 20, 200)
			fmt.Printf("Lyric width set to %d\n", ks.render.width)
		} else {
			fmt.Printf("Invalid width: %s\n", args[0])
		}

	default:
		fmt.Printf("Unknown command: %s (try 'help')\n", cmd)
	}

	return true
}

func (ks *Shell) handlePlay(args []string) {
	ks.mu.Lock()
	if len(args) > 0 {
		target, err := parsePosition(args[0])
		if err != nil {
			ks.mu.Unlock()
			fmt.Printf("Invalid start position: %s\n", args[0])
			return
		}
		if ks.sync.Transport() == Stopped {
			ks.sync.SetResume(target)
		} else {
			ks.sync.Seek(target)
		}
	}
	ks.sync.Play()
	pos := ks.sync.Position()
	track := ks.sync.ActiveTrack()
	ks.mu.Unlock()

	ks.out.start(track, pos)
	fmt.Printf("Playing (%s) from %s\n", track, clock(pos))
}

func (ks *Shell) handleSeek(target float64) {
	ks.mu.Lock()
	ks.sync.Seek(target)
	pos := ks.sync.Position()
	playing := ks.sync.Transport() == Playing
	track := ks.sync.ActiveTrack()
	ks.mu.Unlock()

	if playing {
		ks.out.start(track, pos)
	}
	fmt.Printf("Position: %s\n", clock(pos))
	ks.showNow()
}

func (ks *Shell) handleToggle() {
	if !ks.out.hasVocals() {
		fmt.Println("No vocals track loaded to toggle.")
		return
	}

	ks.mu.Lock()
	ks.sync.ToggleTrack()
	track := ks.sync.ActiveTrack()
	pos := ks.sync.Position()
	playing := ks.sync.Transport() == Playing
	ks.mu.Unlock()

	// Restart the other stream at the same offset; the position is
	// owned by the synchronizer and survives the swap.
	if playing {
		ks.out.start(track, pos)
	}
	fmt.Printf("Audible track: %s\n", track)
}

func (ks *Shell) showNow() {
	ks.mu.Lock()
	pos := ks.sync.Position()
	ks.mu.Unlock()

	if ks.timeline.Len() == 0 {
		fmt.Println("No lyrics for this song.")
		return
	}
	fmt.Print(ks.render.draw(ks.render.lyricsView(ks.timeline, pos, ks.opts.ContextLines)))
}

func (ks *Shell) showLyrics() {
	if ks.timeline.Len() == 0 {
		fmt.Println("No lyrics for this song.")
		return
	}
	for i := 0; i < ks.timeline.Len(); i++ {
		seg := ks.timeline.Segment(i)
		fmt.Printf("[%s] %s\n", clock(seg.Start), seg.Text)
	}
}

func (ks *Shell) showStatus() {
	ks.mu.Lock()
	transport := ks.sync.Transport()
	pos := ks.sync.Position()
	dur := ks.sync.Duration()
	track := ks.sync.ActiveTrack()
	ks.mu.Unlock()

	fmt.Printf("Transport: %s, track: %s\n", transport, track)
	fmt.Println(ks.render.draw(view{kind: viewProgress, pos: pos, dur: dur}))
	if ks.meter != nil && transport == Playing {
		fmt.Println(ks.render.draw(view{kind: viewMeter, level: ks.meter.levelAt(pos)}))
	}
	if seg, ok := ks.currentSegment(); ok {
		fmt.Printf("Current line: %s\n", seg.Text)
	}
}

func (ks *Shell) currentSegment() (lyrics.Segment, bool) {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	return ks.sync.CurrentSegment()
}

func (ks *Shell) position() float64 {
	ks.mu.Lock()
	defer ks.mu.Unlock()
	return ks.sync.Position()
}

// parsePosition accepts plain seconds ("83.5") or mm:ss ("1:23").
func parsePosition(s string) (float64, error) {
	if strings.Contains(s, ":") {
		parts := strings.SplitN(s, ":", 2)
		m, err := strconv.Atoi(parts[0])
		if err != nil {
			return 0, err
		}
		sec, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return 0, err
		}
		return float64(m)*60 + sec, nil
	}
	return strconv.ParseFloat(s, 64)
}

// Package player drives synchronized lyric playback: a transport state
// machine over a lyric timeline, an interactive shell, and ffplay-backed
// audio output.
package player

import (
	"karaoke/lyrics"
	"karaoke/util"
)

// Transport is the playback state machine's state.
type Transport int

const (
	Stopped Transport = iota
	Playing
	Paused
)

func (t Transport) String() string {
	switch t {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	default:
		return "stopped"
	}
}

// Track identifies which audio stream is audible.
type Track int

const (
	Instrumental Track = iota
	Vocals
)

func (t Track) String() string {
	if t == Vocals {
		return "vocals"
	}
	return "instrumental"
}

// Synchronizer owns the playback state for one song session: transport,
// position, audible track, and the active lyric segment. It holds a
// read-only timeline, does no I/O, and is not safe for overlapping calls;
// the host serializes access.
type Synchronizer struct {
	timeline *lyrics.Timeline
	duration float64

	transport Transport
	position  float64
	track     Track
	activeIdx int

	resume    float64
	hasResume bool
}

// NewSynchronizer creates a stopped synchronizer for the given timeline
// and track duration.
func NewSynchronizer(timeline *lyrics.Timeline, duration float64) *Synchronizer {
	return &Synchronizer{
		timeline:  timeline,
		duration:  duration,
		transport: Stopped,
		activeIdx: -1,
	}
}

// SetResume records a position for the next Play from Stopped, used when
// a session is resumed mid-song.
func (s *Synchronizer) SetResume(pos float64) {
	s.resume = util.ClampFloat(pos, 0, s.duration)
	s.hasResume = true
}

// Play starts playback. From Stopped the position resets to zero (or the
// recorded resume position); from Paused it continues where it froze.
func (s *Synchronizer) Play() {
	switch s.transport {
	case Stopped:
		s.position = 0
		if s.hasResume {
			s.position = s.resume
			s.hasResume = false
		}
		s.transport = Playing
		s.recompute()
	case Paused:
		s.transport = Playing
	}
}

// Pause freezes the position. No-op unless playing.
func (s *Synchronizer) Pause() {
	if s.transport == Playing {
		s.transport = Paused
	}
}

// Stop halts playback and resets the position to zero.
func (s *Synchronizer) Stop() {
	s.transport = Stopped
	s.position = 0
	s.activeIdx = -1
}

// Seek moves the position to target seconds, clamped into the track.
// Overshooting is expected from UI scrubbing, so out-of-range targets are
// clamped rather than rejected. The active segment is recomputed here,
// not deferred to the next tick, so a read right after seeking is correct.
// The transport state is unchanged.
func (s *Synchronizer) Seek(target float64) {
	s.position = util.ClampFloat(target, 0, s.duration)
	s.recompute()
}

// Tick advances the position by elapsed seconds while playing and
// recomputes the active segment. Calling with zero elapsed is safe and
// changes nothing but the recompute. Returns true once when the position
// reaches the end of the track; the transport is left paused at the end
// so the caller decides whether to stop or replay.
func (s *Synchronizer) Tick(elapsed float64) bool {
	if s.transport != Playing || elapsed <= 0 {
		s.recompute()
		return false
	}

	s.position += elapsed
	if s.duration > 0 && s.position >= s.duration {
		s.position = s.duration
		s.transport = Paused
		s.recompute()
		return true
	}

	s.recompute()
	return false
}

// ToggleTrack flips the audible track between vocals and instrumental.
// Position and transport are untouched: switching streams must never
// restart the song or lose the playback offset.
func (s *Synchronizer) ToggleTrack() {
	if s.track == Vocals {
		s.track = Instrumental
	} else {
		s.track = Vocals
	}
}

func (s *Synchronizer) recompute() {
	s.activeIdx = s.timeline.IndexAt(s.position)
}

// CurrentSegment returns the lyric segment active at the current
// position, if any.
func (s *Synchronizer) CurrentSegment() (lyrics.Segment, bool) {
	if s.activeIdx < 0 {
		return lyrics.Segment{}, false
	}
	return s.timeline.Segment(s.activeIdx), true
}

// ActiveIndex returns the active segment index, or -1.
func (s *Synchronizer) ActiveIndex() int {
	return s.activeIdx
}

// Transport returns the current transport state.
func (s *Synchronizer) Transport() Transport {
	return s.transport
}

// Position returns the playback offset in seconds.
func (s *Synchronizer) Position() float64 {
	return s.position
}

// Duration returns the track duration in seconds.
func (s *Synchronizer) Duration() float64 {
	return s.duration
}

// ActiveTrack returns which audio stream is currently audible.
func (s *Synchronizer) ActiveTrack() Track {
	return s.track
}

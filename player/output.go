package player

import (
	"context"
	"fmt"
	"os/exec"
)

// trackOutput plays one of the two audio streams through an ffplay child
// process. ffplay cannot seek or switch files once started, so every
// position or track change restarts the process at the wanted offset;
// the synchronizer's position is the source of truth throughout.
type trackOutput struct {
	instrumentalPath string
	vocalsPath       string
	cancel           context.CancelFunc
}

func newTrackOutput(instrumentalPath, vocalsPath string) *trackOutput {
	return &trackOutput{
		instrumentalPath: instrumentalPath,
		vocalsPath:       vocalsPath,
	}
}

// hasVocals reports whether a separate vocals stream is available.
func (o *trackOutput) hasVocals() bool {
	return o.vocalsPath != ""
}

// start begins audible playback of the given track at pos seconds,
// replacing whatever was playing before.
func (o *trackOutput) start(track Track, pos float64) {
	o.stop()

	path := o.instrumentalPath
	if track == Vocals && o.hasVocals() {
		path = o.vocalsPath
	}

	ctx, cancel := context.WithCancel(context.Background())
	o.cancel = cancel

	go func() {
		cmd := exec.CommandContext(ctx, "ffplay",
			"-ss", fmt.Sprintf("%.2f", pos),
			"-autoexit",
			"-nodisp",
			"-loglevel", "quiet",
			path)
		cmd.Run()
	}()
}

// stop kills the current ffplay process, if any.
func (o *trackOutput) stop() {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}

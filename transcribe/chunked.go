package transcribe

import (
	"fmt"
	"path/filepath"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"karaoke/audio"
	"karaoke/lyrics"
)

// TranscribeChunked splits the audio at silences, transcribes each chunk
// separately, and merges the results into one timeline. Long tracks
// transcribe noticeably faster this way and a failed chunk only retries
// that chunk.
//
// Each chunk's timestamps are re-based by the accumulated measured
// durations of the chunks before it. The segment muxer cuts on frame
// boundaries, so requested silence timestamps drift from the real cut
// points; probing every part is what keeps the merged timeline aligned.
func (p *Processor) TranscribeChunked(audioPath, outputDir, workDir string) (*lyrics.Timeline, []lyrics.Warning, error) {
	parts, err := audio.SplitOnSilence(audioPath, filepath.Join(workDir, "chunks"))
	if err != nil {
		return nil, nil, err
	}
	fmt.Printf("Split into %d chunks for transcription\n", len(parts))

	progress := mpb.New(mpb.WithWidth(64))
	bar := progress.AddBar(int64(len(parts)),
		mpb.PrependDecorators(
			decor.Name("Transcribing: "),
			decor.CountersNoUnit("%d / %d"),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)

	var merged []lyrics.Segment
	var warnings []lyrics.Warning
	offset := 0.0

	for i, part := range parts {
		chunkDir := filepath.Join(outputDir, fmt.Sprintf("chunk_%03d", i))
		tl, w, err := p.Transcribe(part, chunkDir)
		if err != nil {
			return nil, nil, fmt.Errorf("chunk %d: %v", i, err)
		}
		warnings = append(warnings, w...)

		for _, seg := range tl.Segments() {
			merged = append(merged, lyrics.Segment{
				Start: seg.Start + offset,
				End:   seg.End + offset,
				Text:  seg.Text,
			})
		}

		dur, err := audio.Duration(part)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to measure chunk %d duration: %v", i, err)
		}
		offset += dur
		bar.Increment()
	}
	progress.Wait()

	tl, w := lyrics.FromSegments(merged)
	return tl, append(warnings, w...), nil
}

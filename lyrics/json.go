package lyrics

import (
	"encoding/json"
	"fmt"
	"os"
)

// transcriptFile is the saved transcript format: {"segments": [...]}.
type transcriptFile struct {
	Segments []Segment `json:"segments"`
}

// LoadJSON reads a saved transcript. Both the wrapped {"segments": [...]}
// form and a bare segment array are accepted.
func LoadJSON(path string) (*Timeline, []Warning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %v", path, err)
	}

	var wrapped transcriptFile
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Segments != nil {
		tl, warnings := FromSegments(cleanAll(wrapped.Segments))
		return tl, warnings, nil
	}

	var bare []Segment
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, nil, fmt.Errorf("not a valid JSON transcript %s: %v", path, err)
	}

	tl, warnings := FromSegments(cleanAll(bare))
	return tl, warnings, nil
}

// SaveJSON writes the timeline as a {"segments": [...]} transcript file.
func SaveJSON(path string, t *Timeline) error {
	data, err := json.MarshalIndent(transcriptFile{Segments: t.Segments()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize transcript: %v", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %v", path, err)
	}
	return nil
}

func cleanAll(segments []Segment) []Segment {
	for i := range segments {
		segments[i].Text = CleanText(segments[i].Text)
	}
	return segments
}

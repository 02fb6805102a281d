package audio

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Separator runs the external vocal-remover model to split a track into
// instrumental and vocals stems.
type Separator struct {
	// Dir is the vocal-remover checkout containing inference.py.
	Dir string
}

// Separate splits inputFile into instrumental and vocals WAVs inside
// outputDir. Existing outputs are reused. The model writes
// <base>_Instruments.wav and <base>_Vocals.wav, though not always where
// asked, so known drop locations are searched and the files moved.
func (s *Separator) Separate(inputFile, outputDir string) (string, string, error) {
	if s.Dir == "" {
		return "", "", fmt.Errorf("vocal-remover path not configured")
	}

	baseName := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	instrumentalPath := InstrumentalPath(outputDir, baseName)
	vocalsPath := VocalsPath(outputDir, baseName)

	if exists(instrumentalPath) && exists(vocalsPath) {
		fmt.Printf("Separated files already exist: %s and %s\n", instrumentalPath, vocalsPath)
		return instrumentalPath, vocalsPath, nil
	}

	fmt.Printf("Separating vocals from instruments: %s\n", inputFile)
	cmd := exec.Command("python",
		filepath.Join(s.Dir, "inference.py"),
		"--input", inputFile,
		"--tta",
		"--gpu", "0")
	cmd.Dir = s.Dir

	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", "", fmt.Errorf("vocal separation failed: %v (%s)", err, string(output))
	}

	if exists(instrumentalPath) && exists(vocalsPath) {
		return instrumentalPath, vocalsPath, nil
	}

	// The model version decides where output lands; check the usual spots.
	fmt.Println("Warning: separated files not at expected location, searching...")
	locations := []string{".", s.Dir, filepath.Dir(inputFile)}
	for _, loc := range locations {
		instr := filepath.Join(loc, baseName+"_Instruments.wav")
		voc := filepath.Join(loc, baseName+"_Vocals.wav")
		if exists(instr) && exists(voc) {
			if err := os.Rename(instr, instrumentalPath); err != nil {
				return "", "", fmt.Errorf("failed to move %s: %v", instr, err)
			}
			if err := os.Rename(voc, vocalsPath); err != nil {
				return "", "", fmt.Errorf("failed to move %s: %v", voc, err)
			}
			fmt.Printf("Found and moved separated files to %s\n", outputDir)
			return instrumentalPath, vocalsPath, nil
		}
	}

	return "", "", fmt.Errorf("separated files not found in any expected location")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

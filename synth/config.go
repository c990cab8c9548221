package synth

import (
	"github.com/pkg/errors"
)

// SynthesisConfig describes one synthesis run. It is passed by value and
// never mutated.
type SynthesisConfig struct {
	DrummerID         uint32
	OutputCount       int
	NoteCountPerGroup int
	// beats between nominal hits, 0.25 is a 16th note grid
	GridSpacing float64
	Tempo       uint32
	Style       string
	// 0 picks a seed from the clock
	Seed    uint64
	Workers int
}

func DefaultConfig(drummerID uint32) SynthesisConfig {
	return SynthesisConfig{
		DrummerID:   drummerID,
		OutputCount: 100,
		// every 16th from beat 0 through beat 200
		NoteCountPerGroup: 801,
		GridSpacing:       0.25,
		Tempo:             120,
		Style:             "rock",
		Workers:           4,
	}
}

func (c SynthesisConfig) Validate() error {
	switch {
	case c.OutputCount < 1:
		return errors.Errorf("output count must be positive, got %v", c.OutputCount)
	case c.NoteCountPerGroup < 1:
		return errors.Errorf("note count must be positive, got %v", c.NoteCountPerGroup)
	case !(c.GridSpacing > 0):
		return errors.Errorf("grid spacing must be positive, got %v", c.GridSpacing)
	case c.Tempo == 0:
		return errors.New("tempo must be positive")
	case c.Style == "":
		return errors.New("style must be set")
	}
	return nil
}

// Package distribution turns coarse aggregate histograms into fine grained
// sampling distributions and draws from them.
package distribution

import (
	"math"

	"github.com/jpclemente97/MCT4052FinalProject/model"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
)

var (
	// ErrEmptyDistribution means there is no positive weight left to sample from.
	ErrEmptyDistribution = errors.New("empty distribution")
	ErrInvalidWeights    = errors.New("invalid distribution weights")
)

const sumTolerance = 1e-6

// Sampling pairs candidate values with their probabilities.
type Sampling struct {
	Values        []float64 `json:"values"`
	Probabilities []float64 `json:"probabilities"`
}

func (s Sampling) Validate() error {
	if len(s.Values) != len(s.Probabilities) {
		return errors.Wrapf(ErrInvalidWeights, "%v values but %v probabilities", len(s.Values), len(s.Probabilities))
	}
	if len(s.Values) == 0 {
		return ErrEmptyDistribution
	}
	for _, p := range s.Probabilities {
		if p < 0 || math.IsNaN(p) {
			return errors.Wrapf(ErrInvalidWeights, "probability %v", p)
		}
	}
	if sum := floats.Sum(s.Probabilities); math.Abs(sum-1) > sumTolerance {
		return errors.Wrapf(ErrInvalidWeights, "probabilities sum to %v", sum)
	}
	return nil
}

// Clean returns a copy of h with negative (and NaN) weights set to zero,
// rescaled to sum to 1.
func Clean(h []float64) ([]float64, error) {
	res := make([]float64, len(h))
	for i, w := range h {
		if w > 0 {
			res[i] = w
		}
	}
	total := floats.Sum(res)
	if total == 0 || math.IsInf(total, 0) {
		return nil, errors.Wrapf(ErrEmptyDistribution, "no positive weight in %v bins", len(h))
	}
	floats.Scale(1/total, res)
	return res, nil
}

// Reconstruct spreads every bin of h evenly over subdivisions candidate
// values. Bin i covers [lo+i*binWidth, lo+(i+1)*binWidth) and each of its
// candidates gets h[i]/subdivisions of the (cleaned) weight.
func Reconstruct(h []float64, lo, binWidth float64, subdivisions int) (Sampling, error) {
	var s Sampling
	if subdivisions < 1 {
		return s, errors.Wrapf(ErrInvalidWeights, "%v subdivisions per bin", subdivisions)
	}
	if !(binWidth > 0) {
		return s, errors.Wrapf(ErrInvalidWeights, "bin width %v", binWidth)
	}

	weights, err := Clean(h)
	if err != nil {
		return s, err
	}

	step := binWidth / float64(subdivisions)
	s.Values = make([]float64, 0, len(h)*subdivisions)
	s.Probabilities = make([]float64, 0, len(h)*subdivisions)
	for i, w := range weights {
		start := lo + float64(i)*binWidth
		for j := 0; j < subdivisions; j++ {
			s.Values = append(s.Values, start+float64(j)*step)
			s.Probabilities = append(s.Probabilities, w/float64(subdivisions))
		}
	}
	return s, nil
}

const (
	VelocitySubdivisions    = 8
	MicrotimingSubdivisions = 10
)

// Velocity reconstructs a VelocityBins histogram over [0, 128). With 8
// subdivisions every integer velocity is a candidate.
func Velocity(h []float64) (Sampling, error) {
	if len(h) != model.VelocityBins {
		return Sampling{}, errors.Wrapf(ErrInvalidWeights, "velocity histogram has %v bins", len(h))
	}
	width := (model.VelocityMax - model.VelocityMin) / model.VelocityBins
	return Reconstruct(h, model.VelocityMin, width, VelocitySubdivisions)
}

// Microtiming reconstructs a MicrotimingBins histogram over [-0.5, 0.5).
func Microtiming(h []float64) (Sampling, error) {
	if len(h) != model.MicrotimingBins {
		return Sampling{}, errors.Wrapf(ErrInvalidWeights, "microtiming histogram has %v bins", len(h))
	}
	width := (model.MicrotimingMax - model.MicrotimingMin) / model.MicrotimingBins
	return Reconstruct(h, model.MicrotimingMin, width, MicrotimingSubdivisions)
}

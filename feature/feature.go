package feature

import (
	"math"
	"sort"

	"github.com/jpclemente97/MCT4052FinalProject/grid"
	"github.com/jpclemente97/MCT4052FinalProject/model"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrDegenerateHistogram means at least one group has no hits, so the
	// performance can't be aggregated.
	ErrDegenerateHistogram = errors.New("degenerate histogram")
	ErrInvalidResolution   = errors.New("ticks per quarter note must be positive")
)

type samples struct {
	velocities   []float64
	microtimings []float64
}

func collect(p model.Performance) map[model.InstrumentGroup]*samples {
	res := make(map[model.InstrumentGroup]*samples)
	for _, g := range model.FeatureOrder {
		res[g] = &samples{}
	}

	for instrument, notes := range p.Instruments {
		g, ok := model.GroupOf(instrument)
		if !ok {
			continue
		}
		s := res[g]
		for _, note := range notes {
			s.velocities = append(s.velocities, float64(note.Velocity))
			s.microtimings = append(s.microtimings, grid.EighthOffset(note.BeginTick, p.TicksPerQuarter))
		}
	}
	return res
}

// bucket fills h with the values in [lo, hi]. The last bin includes hi, the
// other bins are half open.
func bucket(h model.Histogram, values []float64) model.Histogram {
	lo := h.Dividers[0]
	hi := h.Dividers[len(h.Dividers)-1]

	var inRange []float64
	for _, v := range values {
		if v >= lo && v <= hi {
			inRange = append(inRange, v)
		}
	}
	sort.Float64s(inRange)

	// stat.Histogram excludes the top divider, nudge it up so hi lands in the last bin
	dividers := append([]float64(nil), h.Dividers...)
	dividers[len(dividers)-1] = math.Nextafter(hi, math.Inf(1))
	stat.Histogram(h.Weights, dividers, inRange, nil)
	return h
}

// Histograms buckets a performance's hits into per group velocity and
// microtiming counts. Unlike Extract it never fails on empty groups.
func Histograms(p model.Performance) (velocity, microtiming map[model.InstrumentGroup]model.Histogram, err error) {
	if p.TicksPerQuarter == 0 {
		return nil, nil, ErrInvalidResolution
	}

	velocity = make(map[model.InstrumentGroup]model.Histogram)
	microtiming = make(map[model.InstrumentGroup]model.Histogram)
	for g, s := range collect(p) {
		velocity[g] = bucket(model.NewVelocityHistogram(), s.velocities)
		microtiming[g] = bucket(model.NewMicrotimingHistogram(), s.microtimings)
	}
	return velocity, microtiming, nil
}

// Extract computes the normalized velocity and microtiming histograms of
// every instrument group and concatenates them in model.FeatureOrder.
//
// If any of the six histograms is empty it returns ErrDegenerateHistogram and
// the performance should be left out of aggregation.
func Extract(p model.Performance) (model.Features, error) {
	var f model.Features

	velocity, microtiming, err := Histograms(p)
	if err != nil {
		return f, err
	}

	for _, g := range model.FeatureOrder {
		if velocity[g].Total() == 0 {
			return f, errors.Wrapf(ErrDegenerateHistogram, "%v has no velocity samples", g)
		}
		if microtiming[g].Total() == 0 {
			return f, errors.Wrapf(ErrDegenerateHistogram, "%v has no microtiming samples", g)
		}
	}

	f.Velocity = make([]float64, 0, len(model.FeatureOrder)*model.VelocityBins)
	f.Microtiming = make([]float64, 0, len(model.FeatureOrder)*model.MicrotimingBins)
	for _, g := range model.FeatureOrder {
		f.Velocity = append(f.Velocity, velocity[g].Normalized().Weights...)
		f.Microtiming = append(f.Microtiming, microtiming[g].Normalized().Weights...)
	}
	return f, nil
}

// Summary counts the tracked hits of a performance.
type Summary struct {
	Hits      map[model.InstrumentGroup]int
	Untracked map[uint8]int
}

func Summarize(p model.Performance) Summary {
	s := Summary{
		Hits:      make(map[model.InstrumentGroup]int),
		Untracked: make(map[uint8]int),
	}
	for instrument, notes := range p.Instruments {
		if g, ok := model.GroupOf(instrument); ok {
			s.Hits[g] += len(notes)
		} else {
			s.Untracked[instrument] += len(notes)
		}
	}
	return s
}

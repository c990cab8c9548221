package model

import (
	"gonum.org/v1/gonum/floats"
)

const (
	VelocityBins    = 16
	MicrotimingBins = 10

	VelocityMin    = 0.0
	VelocityMax    = 128.0
	MicrotimingMin = -0.5
	MicrotimingMax = 0.5
)

type Histogram struct {
	// len(Dividers) == len(Weights)+1
	Dividers []float64
	Weights  []float64
}

func NewHistogram(lo, hi float64, bins int) Histogram {
	return Histogram{
		Dividers: floats.Span(make([]float64, bins+1), lo, hi),
		Weights:  make([]float64, bins),
	}
}

func NewVelocityHistogram() Histogram {
	return NewHistogram(VelocityMin, VelocityMax, VelocityBins)
}

func NewMicrotimingHistogram() Histogram {
	return NewHistogram(MicrotimingMin, MicrotimingMax, MicrotimingBins)
}

func (h Histogram) Total() float64 {
	return floats.Sum(h.Weights)
}

func (h Histogram) BinWidth() float64 {
	return (h.Dividers[len(h.Dividers)-1] - h.Dividers[0]) / float64(len(h.Weights))
}

// Normalized returns a copy whose weights sum to 1. An empty histogram is
// returned unchanged.
func (h Histogram) Normalized() Histogram {
	res := Histogram{
		Dividers: append([]float64(nil), h.Dividers...),
		Weights:  append([]float64(nil), h.Weights...),
	}
	total := res.Total()
	if total == 0 {
		return res
	}
	floats.Scale(1/total, res.Weights)
	return res
}

package model

import "encoding/json"

// GrooveProfile is a drummer's aggregate feel: per instrument group, a
// VelocityBins velocity histogram and a MicrotimingBins microtiming histogram.
// Weights are normally probabilities but stores may hand back raw values,
// negatives included.
type GrooveProfile struct {
	Velocity    map[InstrumentGroup][]float64
	Microtiming map[InstrumentGroup][]float64
}

func NewGrooveProfile() GrooveProfile {
	p := GrooveProfile{
		Velocity:    make(map[InstrumentGroup][]float64),
		Microtiming: make(map[InstrumentGroup][]float64),
	}
	for _, g := range FeatureOrder {
		p.Velocity[g] = make([]float64, VelocityBins)
		p.Microtiming[g] = make([]float64, MicrotimingBins)
	}
	return p
}

type SynthNote struct {
	Pitch uint8
	// Time and Duration are in beats (quarter notes).
	Time     float64
	Duration float64
	Velocity uint8
}

// VelocityColumn and MicrotimingColumn name a group's histogram in tabular and
// JSON form, e.g. "snareVelocity", "hihatMicrotiming".
func VelocityColumn(g InstrumentGroup) string {
	return g.String() + "Velocity"
}

func MicrotimingColumn(g InstrumentGroup) string {
	return g.String() + "Microtiming"
}

func (p GrooveProfile) MarshalJSON() ([]byte, error) {
	m := make(map[string][]float64)
	for _, g := range FeatureOrder {
		m[VelocityColumn(g)] = p.Velocity[g]
		m[MicrotimingColumn(g)] = p.Microtiming[g]
	}
	return json.Marshal(m)
}

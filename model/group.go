package model

import "fmt"

type InstrumentGroup uint8

const (
	BassDrum InstrumentGroup = iota
	Snare
	HiHat
)

// FeatureOrder is the order groups are concatenated in a Features vector.
var FeatureOrder = []InstrumentGroup{Snare, BassDrum, HiHat}

var groupByInstrument = map[uint8]InstrumentGroup{
	35: BassDrum,
	36: BassDrum,
	38: Snare,
	40: Snare,
	42: HiHat,
	44: HiHat,
	46: HiHat,
	49: HiHat,
	57: HiHat,
}

// GroupOf reports which group a drum map key belongs to. ok is false for keys
// that are not tracked (toms, ride, percussion...).
func GroupOf(instrument uint8) (g InstrumentGroup, ok bool) {
	g, ok = groupByInstrument[instrument]
	return g, ok
}

func (g InstrumentGroup) String() string {
	switch g {
	case BassDrum:
		return "bassDrum"
	case Snare:
		return "snare"
	case HiHat:
		return "hihat"
	}
	return fmt.Sprintf("InstrumentGroup(%d)", uint8(g))
}

// Pitch is the drum map key used when writing synthesized notes for g.
func (g InstrumentGroup) Pitch() uint8 {
	switch g {
	case BassDrum:
		return 35
	case Snare:
		return 38
	}
	return 42
}

package model

type Note struct {
	Velocity  uint8
	BeginTick uint64
	// zero until the release arrives
	EndTick uint64
}

func (n *Note) AddEndTick(endTick uint64) {
	n.EndTick = endTick
}

// InstrumentNotes maps a drum map key (35 = acoustic bass drum, 38 = snare, ...)
// to its hits in begin order.
type InstrumentNotes = map[uint8][]Note

type Performance struct {
	Name            string
	TicksPerQuarter uint64
	Style           string
	Tempo           uint32
	IsBeat          bool
	TimeSignature   string
	Instruments     InstrumentNotes
}

// TicksPerSixteenth isn't always whole, e.g. 22.5 at 90 ticks per quarter.
func (p Performance) TicksPerSixteenth() float64 {
	return float64(p.TicksPerQuarter) / 4
}

type Drummer struct {
	Name  string
	ID    uint32
	Files []string
}

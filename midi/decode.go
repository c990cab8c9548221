package midi

import (
	"sort"

	"github.com/jpclemente97/MCT4052FinalProject/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	// ErrUnmatchedRelease is a note off (or note on with velocity 0) for a key
	// that has no open hit.
	ErrUnmatchedRelease      = errors.New("unmatched release")
	ErrUnsupportedTimeFormat = errors.New("unsupported time format")
)

// Tracker turns hit begin/end events into notes. Ticks are absolute: callers
// reading delta times accumulate them before calling Begin or End.
//
// Every key is either idle or has exactly one open note.
type Tracker struct {
	notes model.InstrumentNotes
	// key -> index of its open note in notes[key], missing when idle
	open map[uint8]int
}

func NewTracker() *Tracker {
	return &Tracker{
		notes: make(model.InstrumentNotes),
		open:  make(map[uint8]int),
	}
}

// Begin opens a hit. Velocity 0 is a release, as in running status note on
// streams. Hitting a key that is still open closes the previous hit first.
func (t *Tracker) Begin(key, velocity uint8, tick uint64) error {
	if velocity == 0 {
		return t.End(key, tick)
	}
	if _, ok := t.open[key]; ok {
		t.release(key, tick)
	}
	t.notes[key] = append(t.notes[key], model.Note{Velocity: velocity, BeginTick: tick})
	t.open[key] = len(t.notes[key]) - 1
	return nil
}

func (t *Tracker) End(key uint8, tick uint64) error {
	if _, ok := t.open[key]; !ok {
		return errors.Wrapf(ErrUnmatchedRelease, "key %v at tick %v", key, tick)
	}
	t.release(key, tick)
	return nil
}

func (t *Tracker) release(key uint8, tick uint64) {
	t.notes[key][t.open[key]].AddEndTick(tick)
	delete(t.open, key)
}

// Close releases every hit that is still open at tick and returns the notes.
func (t *Tracker) Close(tick uint64) model.InstrumentNotes {
	for key := range t.open {
		t.release(key, tick)
	}
	return t.notes
}

// TicksPerQuarter reads the resolution out of a metric time format.
func TicksPerQuarter(s *smf.SMF) (uint64, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return 0, errors.Wrapf(ErrUnsupportedTimeFormat, "%v", s.TimeFormat)
	}
	if mt == 0 {
		return 0, errors.Wrapf(ErrUnsupportedTimeFormat, "%v ticks per quarter note", uint64(mt))
	}
	return uint64(mt), nil
}

func decodeTrack(track smf.Track) (model.InstrumentNotes, error) {
	tracker := NewTracker()
	var absTicks uint64
	for _, event := range track {
		absTicks += uint64(event.Delta)
		var channel, key, velocity uint8
		switch {
		case event.Message.GetNoteOn(&channel, &key, &velocity):
			if err := tracker.Begin(key, velocity, absTicks); err != nil {
				return nil, err
			}
		case event.Message.GetNoteOff(&channel, &key, &velocity):
			if err := tracker.End(key, absTicks); err != nil {
				return nil, err
			}
		}
	}
	return tracker.Close(absTicks), nil
}

// Decode collects the hits of every track, keyed by drum map key and sorted
// by begin tick.
func Decode(s *smf.SMF) (ticksPerQuarter uint64, instruments model.InstrumentNotes, err error) {
	ticksPerQuarter, err = TicksPerQuarter(s)
	if err != nil {
		return 0, nil, err
	}

	instruments = make(model.InstrumentNotes)
	for i, track := range s.Tracks {
		notes, err := decodeTrack(track)
		if err != nil {
			return 0, nil, errors.Wrapf(err, "track %v", i)
		}
		for key, n := range notes {
			instruments[key] = append(instruments[key], n...)
		}
	}

	for _, notes := range instruments {
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].BeginTick < notes[j].BeginTick
		})
	}
	return ticksPerQuarter, instruments, nil
}

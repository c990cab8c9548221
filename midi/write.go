package midi

import (
	"io"
	"math"
	"sort"

	"github.com/jpclemente97/MCT4052FinalProject/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"go.uber.org/zap"
)

const (
	Resolution = 960
	// General MIDI percussion, channel 10
	DrumChannel = 9
)

type timedEvent struct {
	tick     uint32
	isOff    bool
	key      uint8
	velocity uint8
}

func toTicks(beats float64) uint32 {
	return uint32(math.Round(math.Max(0, beats) * Resolution))
}

func events(notes []model.SynthNote) []timedEvent {
	byPitch := make(map[uint8][]model.SynthNote)
	for _, n := range notes {
		byPitch[n.Pitch] = append(byPitch[n.Pitch], n)
	}

	res := make([]timedEvent, 0, 2*len(notes))
	for pitch, hits := range byPitch {
		sort.SliceStable(hits, func(i, j int) bool { return hits[i].Time < hits[j].Time })

		// a pitch can't strike twice on one tick, push the later hit back
		ons := make([]uint32, len(hits))
		for i, n := range hits {
			ons[i] = toTicks(n.Time)
			if i > 0 && ons[i] <= ons[i-1] {
				zap.L().Named("midi").Debug("moving colliding hit",
					zap.Uint8("pitch", pitch), zap.Uint32("tick", ons[i]), zap.Uint32("to", ons[i-1]+1))
				ons[i] = ons[i-1] + 1
			}
		}

		for i, n := range hits {
			on := ons[i]
			off := toTicks(n.Time + n.Duration)
			if off <= on {
				off = on + 1
			}
			// release before the next hit of the same pitch
			if i+1 < len(hits) && ons[i+1] < off {
				off = ons[i+1]
			}
			res = append(res,
				timedEvent{tick: on, key: pitch, velocity: n.Velocity},
				timedEvent{tick: off, isOff: true, key: pitch},
			)
		}
	}

	// releases first so a hit starting where another ends isn't cut off
	sort.Slice(res, func(i, j int) bool {
		if res[i].tick != res[j].tick {
			return res[i].tick < res[j].tick
		}
		if res[i].isOff != res[j].isOff {
			return res[i].isOff
		}
		return res[i].key < res[j].key
	})
	return res
}

// Groove builds a single track SMF named "Drums" at the given tempo in 4/4.
func Groove(notes []model.SynthNote, tempo float64) (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(Resolution)

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName("Drums"))
	track.Add(0, smf.MetaTempo(tempo))
	track.Add(0, smf.MetaMeter(4, 4))

	var last uint32
	for _, evt := range events(notes) {
		delta := evt.tick - last
		last = evt.tick
		if evt.isOff {
			track.Add(delta, midi.NoteOff(DrumChannel, evt.key))
		} else {
			track.Add(delta, midi.NoteOn(DrumChannel, evt.key, evt.velocity))
		}
	}
	track.Close(0)

	if err := s.Add(track); err != nil {
		return nil, errors.Wrap(err, "adding drum track")
	}
	return s, nil
}

func WriteGroove(w io.Writer, notes []model.SynthNote, tempo float64) error {
	s, err := Groove(notes, tempo)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing groove")
	}
	return nil
}

func WriteGrooveFile(path string, notes []model.SynthNote, tempo float64) error {
	s, err := Groove(notes, tempo)
	if err != nil {
		return err
	}
	return errors.Wrapf(s.WriteFile(path), "writing %v", path)
}

package midi

import (
	"path/filepath"

	"github.com/jpclemente97/MCT4052FinalProject/file"
	"github.com/jpclemente97/MCT4052FinalProject/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
	"go.uber.org/zap"
)

// NewPerformance decodes s and fills in whatever the file name says about it.
func NewPerformance(name string, s *smf.SMF) (model.Performance, error) {
	p := model.Performance{Name: filepath.Base(name)}

	ticksPerQuarter, instruments, err := Decode(s)
	if err != nil {
		return p, errors.Wrapf(err, "decoding %v", name)
	}
	p.TicksPerQuarter = ticksPerQuarter
	p.Instruments = instruments

	meta, err := file.ParseName(name)
	if err != nil {
		zap.L().Named("midi").Debug("no metadata in file name", zap.String("name", name), zap.Error(err))
		return p, nil
	}
	p.Style = meta.Style
	p.Tempo = meta.Tempo
	p.IsBeat = meta.IsBeat
	p.TimeSignature = meta.TimeSignature
	return p, nil
}

func LoadPerformance(path string) (model.Performance, error) {
	s, err := ReadMidiFile(path)
	if err != nil {
		return model.Performance{}, errors.Wrapf(err, "reading %v", path)
	}
	return NewPerformance(path, s)
}

package file

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Meta is what a performance's file name says about it, following
// "{id}_{style}_{tempo}_{beat|fill}_{timeSignature}[_{n}].mid".
type Meta struct {
	ID            string
	Style         string
	Tempo         uint32
	IsBeat        bool
	TimeSignature string
	Sequence      int
}

var ErrUnrecognizedName = errors.New("unrecognized file name")

func ParseName(path string) (Meta, error) {
	var m Meta
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.Split(base, "_")
	if len(parts) < 5 {
		return m, errors.Wrapf(ErrUnrecognizedName, "%v", base)
	}

	tempo, err := strconv.ParseUint(parts[2], 10, 32)
	if err != nil {
		return m, errors.Wrapf(ErrUnrecognizedName, "%v: tempo %q", base, parts[2])
	}

	m.ID = parts[0]
	m.Style = parts[1]
	m.Tempo = uint32(tempo)
	m.IsBeat = parts[3] == "beat"
	m.TimeSignature = parts[4]
	if len(parts) > 5 {
		if n, err := strconv.Atoi(parts[5]); err == nil {
			m.Sequence = n
		}
	}
	return m, nil
}

func role(isBeat bool) string {
	if isBeat {
		return "beat"
	}
	return "fill"
}

// Name formats m back into the naming convention, always with a sequence
// number.
func (m Meta) Name() string {
	return fmt.Sprintf("%v_%v_%v_%v_%v_%v.mid", m.ID, m.Style, m.Tempo, role(m.IsBeat), m.TimeSignature, m.Sequence)
}

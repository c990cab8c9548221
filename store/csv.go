package store

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jpclemente97/MCT4052FinalProject/model"
	"github.com/pkg/errors"
)

// CSV keeps a drummer's profile in two tables under Dir, one row per bin and
// one column per instrument group:
//
//	drummer{N}Velocity.csv     snareVelocity,bassDrumVelocity,hihatVelocity
//	drummer{N}Microtiming.csv  snareMicrotiming,bassDrumMicrotiming,hihatMicrotiming
type CSV struct {
	Dir string
}

type table struct {
	suffix string
	bins   int
	column func(model.InstrumentGroup) string
	data   func(model.GrooveProfile) map[model.InstrumentGroup][]float64
}

var tables = []table{
	{
		suffix: "Velocity",
		bins:   model.VelocityBins,
		column: model.VelocityColumn,
		data:   func(p model.GrooveProfile) map[model.InstrumentGroup][]float64 { return p.Velocity },
	},
	{
		suffix: "Microtiming",
		bins:   model.MicrotimingBins,
		column: model.MicrotimingColumn,
		data:   func(p model.GrooveProfile) map[model.InstrumentGroup][]float64 { return p.Microtiming },
	},
}

func (c CSV) path(drummerID uint32, t table) string {
	return filepath.Join(c.Dir, drummerKey(drummerID)+t.suffix+".csv")
}

func (c CSV) Load(ctx context.Context, drummerID uint32) (model.GrooveProfile, error) {
	p := model.NewGrooveProfile()
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return p, err
		}
		if err := c.readTable(c.path(drummerID, t), t, t.data(p)); err != nil {
			return p, err
		}
	}
	return p, nil
}

func (c CSV) readTable(path string, t table, dst map[model.InstrumentGroup][]float64) error {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return errors.Wrapf(ErrMissingInput, "%v", path)
	}
	if err != nil {
		return errors.Wrapf(err, "opening %v", path)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return errors.Wrapf(ErrMalformedTable, "%v: %v", path, err)
	}
	if len(records) != t.bins+1 {
		return errors.Wrapf(ErrMalformedTable, "%v: %v rows, want %v", path, len(records)-1, t.bins)
	}

	columns := make(map[string]int)
	for i, name := range records[0] {
		columns[name] = i
	}
	for _, g := range model.FeatureOrder {
		col, ok := columns[t.column(g)]
		if !ok {
			return errors.Wrapf(ErrMalformedTable, "%v: no %v column", path, t.column(g))
		}
		for row, record := range records[1:] {
			v, err := strconv.ParseFloat(record[col], 64)
			if err != nil {
				return errors.Wrapf(ErrMalformedTable, "%v row %v: %v", path, row+1, err)
			}
			dst[g][row] = v
		}
	}
	return nil
}

func (c CSV) Save(ctx context.Context, drummerID uint32, profile model.GrooveProfile) error {
	if err := checkProfile(profile); err != nil {
		return err
	}
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return errors.Wrapf(err, "creating %v", c.Dir)
	}
	for _, t := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := c.writeTable(c.path(drummerID, t), t, t.data(profile)); err != nil {
			return err
		}
	}
	return nil
}

func (c CSV) writeTable(path string, t table, src map[model.InstrumentGroup][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %v", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := make([]string, 0, len(model.FeatureOrder))
	for _, g := range model.FeatureOrder {
		header = append(header, t.column(g))
	}
	if err := w.Write(header); err != nil {
		return errors.Wrapf(err, "writing %v", path)
	}
	for row := 0; row < t.bins; row++ {
		record := make([]string, 0, len(model.FeatureOrder))
		for _, g := range model.FeatureOrder {
			record = append(record, strconv.FormatFloat(src[g][row], 'g', -1, 64))
		}
		if err := w.Write(record); err != nil {
			return errors.Wrapf(err, "writing %v", path)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return errors.Wrapf(err, "writing %v", path)
	}
	return errors.Wrapf(f.Close(), "closing %v", path)
}

package store

import (
	"context"
	"fmt"

	"github.com/jpclemente97/MCT4052FinalProject/model"
	"github.com/pkg/errors"
)

var (
	ErrMissingInput   = errors.New("missing input")
	ErrMalformedTable = errors.New("malformed histogram table")
)

// Store persists the aggregate histograms of each drummer.
type Store interface {
	Load(ctx context.Context, drummerID uint32) (model.GrooveProfile, error)
	Save(ctx context.Context, drummerID uint32, profile model.GrooveProfile) error
}

func drummerKey(drummerID uint32) string {
	return fmt.Sprintf("drummer%d", drummerID)
}

func checkProfile(p model.GrooveProfile) error {
	for _, g := range model.FeatureOrder {
		if len(p.Velocity[g]) != model.VelocityBins {
			return errors.Errorf("%v has %v velocity bins", g, len(p.Velocity[g]))
		}
		if len(p.Microtiming[g]) != model.MicrotimingBins {
			return errors.Errorf("%v has %v microtiming bins", g, len(p.Microtiming[g]))
		}
	}
	return nil
}

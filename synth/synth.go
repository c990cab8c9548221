package synth

import (
	"math"
	"sort"

	"github.com/jpclemente97/MCT4052FinalProject/distribution"
	"github.com/jpclemente97/MCT4052FinalProject/model"
	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

const (
	// offsets are fractions of an eighth, a 16th note grid step is a quarter of
	// that unit's beat
	offsetDivisor = 4

	minVelocity = 1
	maxVelocity = 127
)

// Order is the order group streams are generated in.
var Order = []model.InstrumentGroup{model.HiHat, model.BassDrum, model.Snare}

var ErrMissingGroup = errors.New("missing instrument group distribution")

type GroupDistributions struct {
	Velocity    distribution.Sampling
	Microtiming distribution.Sampling
}

// Distributions reconstructs sampling distributions for every group of a
// profile.
func Distributions(p model.GrooveProfile) (map[model.InstrumentGroup]GroupDistributions, error) {
	res := make(map[model.InstrumentGroup]GroupDistributions)
	for _, g := range Order {
		v, err := distribution.Velocity(p.Velocity[g])
		if err != nil {
			return nil, errors.Wrapf(err, "%v velocity", g)
		}
		m, err := distribution.Microtiming(p.Microtiming[g])
		if err != nil {
			return nil, errors.Wrapf(err, "%v microtiming", g)
		}
		res[g] = GroupDistributions{Velocity: v, Microtiming: m}
	}
	return res, nil
}

func noteVelocity(drawn float64) uint8 {
	v := math.Floor(drawn)
	return uint8(math.Min(maxVelocity, math.Max(minVelocity, v)))
}

func noteTime(step int, gridSpacing, offset float64) float64 {
	return math.Max(0, float64(step)*gridSpacing+offset/offsetDivisor)
}

// Synthesize draws noteCount hits per instrument group, one per grid step of
// gridSpacing beats, each nudged by a drawn microtiming offset and struck with
// a drawn velocity. Groups are independent streams. The result is ordered by
// time.
func Synthesize(dists map[model.InstrumentGroup]GroupDistributions, noteCount int, gridSpacing float64, src rand.Source) ([]model.SynthNote, error) {
	if noteCount < 0 || !(gridSpacing > 0) {
		return nil, errors.Errorf("invalid grid: %v notes every %v beats", noteCount, gridSpacing)
	}

	res := make([]model.SynthNote, 0, len(Order)*noteCount)
	for _, g := range Order {
		d, ok := dists[g]
		if !ok {
			return nil, errors.Wrapf(ErrMissingGroup, "%v", g)
		}
		velocities, err := distribution.NewSampler(d.Velocity, src)
		if err != nil {
			return nil, errors.Wrapf(err, "%v velocity", g)
		}
		offsets, err := distribution.NewSampler(d.Microtiming, src)
		if err != nil {
			return nil, errors.Wrapf(err, "%v microtiming", g)
		}

		drawnOffsets := offsets.DrawN(noteCount)
		drawnVelocities := velocities.DrawN(noteCount)
		for k := 0; k < noteCount; k++ {
			res = append(res, model.SynthNote{
				Pitch:    g.Pitch(),
				Time:     noteTime(k, gridSpacing, drawnOffsets[k]),
				Duration: gridSpacing,
				Velocity: noteVelocity(drawnVelocities[k]),
			})
		}
	}

	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Time < res[j].Time
	})
	return res, nil
}

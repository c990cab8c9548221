package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGroupOf(t *testing.T) {
	cases := map[uint8]InstrumentGroup{
		35: BassDrum, 36: BassDrum,
		38: Snare, 40: Snare,
		42: HiHat, 44: HiHat, 46: HiHat, 49: HiHat, 57: HiHat,
	}
	for key, want := range cases {
		g, ok := GroupOf(key)
		assert.True(t, ok, "key %v", key)
		assert.Equal(t, want, g, "key %v", key)
	}

	for _, key := range []uint8{0, 37, 39, 41, 45, 51, 127} {
		_, ok := GroupOf(key)
		assert.False(t, ok, "key %v", key)
	}
}

func TestHistogramEdges(t *testing.T) {
	assert := assert.New(t)
	v := NewVelocityHistogram()
	assert.Len(v.Dividers, 17)
	assert.Equal(0.0, v.Dividers[0])
	assert.Equal(128.0, v.Dividers[16])
	assert.InDelta(8.0, v.BinWidth(), 1e-12)

	m := NewMicrotimingHistogram()
	assert.Len(m.Dividers, 11)
	assert.InDelta(-0.5, m.Dividers[0], 1e-12)
	assert.InDelta(0.5, m.Dividers[10], 1e-12)
	assert.InDelta(0.1, m.BinWidth(), 1e-12)
}

func TestNormalizedDoesNotMutate(t *testing.T) {
	assert := assert.New(t)
	h := NewMicrotimingHistogram()
	h.Weights[2] = 3
	h.Weights[7] = 1

	n := h.Normalized()
	assert.InDelta(1.0, n.Total(), 1e-12)
	assert.InDelta(0.75, n.Weights[2], 1e-12)
	assert.Equal(3.0, h.Weights[2])

	empty := NewVelocityHistogram().Normalized()
	assert.Equal(0.0, empty.Total())
}

func TestFeaturesGroup(t *testing.T) {
	f := Features{
		Velocity:    make([]float64, 3*VelocityBins),
		Microtiming: make([]float64, 3*MicrotimingBins),
	}
	// snare first, then bass drum, then hi-hat
	f.Velocity[0] = 1
	f.Velocity[VelocityBins] = 2
	f.Velocity[2*VelocityBins] = 3
	f.Microtiming[2*MicrotimingBins+9] = 4

	assert := assert.New(t)
	v, _ := f.Group(Snare)
	assert.Equal(1.0, v[0])
	v, _ = f.Group(BassDrum)
	assert.Equal(2.0, v[0])
	v, m := f.Group(HiHat)
	assert.Equal(3.0, v[0])
	assert.Equal(4.0, m[9])
}

func TestGrooveProfileJSON(t *testing.T) {
	p := NewGrooveProfile()
	p.Velocity[Snare][15] = 1

	data, err := json.Marshal(p)
	assert.NoError(t, err)

	var decoded map[string][]float64
	assert.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 6)
	assert.Equal(t, 1.0, decoded["snareVelocity"][15])
	assert.Len(t, decoded["hihatMicrotiming"], MicrotimingBins)
}

package model

// Features is one performance's normalized histograms, concatenated in
// FeatureOrder: 3 x VelocityBins velocity weights and 3 x MicrotimingBins
// microtiming weights.
type Features struct {
	Velocity    []float64 `json:"velocity"`
	Microtiming []float64 `json:"microtiming"`
}

func featureIndex(g InstrumentGroup) int {
	for i, v := range FeatureOrder {
		if v == g {
			return i
		}
	}
	panic("unknown instrument group: " + g.String())
}

// Group slices the velocity and microtiming histograms of g back out of f.
func (f Features) Group(g InstrumentGroup) (velocity []float64, microtiming []float64) {
	i := featureIndex(g)
	velocity = f.Velocity[i*VelocityBins : (i+1)*VelocityBins]
	microtiming = f.Microtiming[i*MicrotimingBins : (i+1)*MicrotimingBins]
	return velocity, microtiming
}

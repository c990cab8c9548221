// Package grid maps absolute tick positions onto the quantization grid used to
// measure microtiming.
package grid

// OffsetFraction returns how far beginTick sits from the nearest grid point,
// as a fraction of one grid unit in (-0.5, 0.5]. Using a fraction instead of
// ticks keeps files with different resolutions comparable.
//
// unitTicks must be greater than zero.
func OffsetFraction(beginTick, unitTicks uint64) float64 {
	r := int64(beginTick % unitTicks)
	unit := int64(unitTicks)
	// the exact half way point stays late
	if 2*r > unit {
		r -= unit
	}
	return float64(r) / float64(unit)
}

// EighthOffset is OffsetFraction on an eighth note grid. An eighth is half a
// quarter, which isn't a whole number of ticks for odd resolutions, so tick
// and unit are both doubled.
func EighthOffset(beginTick, ticksPerQuarter uint64) float64 {
	return OffsetFraction(2*beginTick, ticksPerQuarter)
}

package statspipe

// shouldEmit decides whether one occurrence of a metric sampled at rate is
// transmitted. It consumes one uniform draw in [0, 1) from the injected
// source and emits iff the draw falls strictly below the rate; rates of 1 and
// above always emit without drawing.
//
// The decision is separate from formatting so tests can substitute a fixed
// draw source for the backend's Rand function.
func shouldEmit(rate float64, draw func() float64) bool {
	if rate >= 1 {
		return true
	}
	return draw() < rate
}

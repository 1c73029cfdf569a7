package game

import "time"

// FixedTimestep accumulates frame time and drains it in whole steps. Time
// is never dropped: a long frame runs as many steps as it covers.
type FixedTimestep struct {
	Step    time.Duration
	Elapsed time.Duration

	overstep time.Duration
}

// Advance adds delta and calls fn once for each whole step.
func (f *FixedTimestep) Advance(delta time.Duration, fn func()) int {
	f.overstep += delta

	var steps int
	for f.overstep >= f.Step {
		f.overstep -= f.Step
		f.Elapsed += f.Step

		fn()
		steps += 1
	}

	return steps
}

// Overstep returns the time accumulated towards the next step.
func (f *FixedTimestep) Overstep() time.Duration {
	return f.overstep
}

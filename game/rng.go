package game

import "math/rand/v2"

// LCG constants as used by glibc.
const (
	rngM = 1 << 31
	rngA = 1103515245
	rngC = 12345
)

// RestartDirections are the candidates drawn from when a match restarts.
var RestartDirections = [4]Direction{SE, SW, NW, NE}

// RNG is a linear congruential generator. It is a plain value: copying it
// forks the sequence, which is how states stay immutable.
type RNG struct {
	state uint64
}

// NewRNG seeds a generator. A zero seed picks a random starting state.
func NewRNG(seed int64) RNG {
	if seed == 0 {
		return RNG{state: rand.Uint64N(rngM - 1)}
	}
	return RNG{state: uint64(seed) % rngM}
}

func (r *RNG) NextInt() uint64 {
	r.state = (rngA*r.state + rngC) % rngM
	return r.state
}

// NextFloat returns a value in [0, 1].
func (r *RNG) NextFloat() float64 {
	return float64(r.NextInt()) / (rngM - 1)
}

// State exposes the internal generator state for snapshots.
func (r RNG) State() uint64 {
	return r.state
}

// RestartDirection draws the direction a new match starts with.
func RestartDirection(r *RNG) Direction {
	return RestartDirections[restartIndex(r.NextFloat())]
}

func restartIndex(f float64) int {
	i := int(f * float64(len(RestartDirections)))
	if i >= len(RestartDirections) {
		// NextFloat is inclusive of 1
		i = len(RestartDirections) - 1
	}
	return i
}

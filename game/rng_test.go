package game

import "testing"

func TestRNGFirstValue(t *testing.T) {
	r := NewRNG(1)
	if got := r.NextInt(); got != 1103527590 {
		t.Fatalf("NextInt = %d, want %d", got, 1103527590)
	}
	if got := r.State(); got != 1103527590 {
		t.Fatalf("State = %d, want %d", got, 1103527590)
	}
}

func TestRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 1000; i++ {
		fa, fb := a.NextFloat(), b.NextFloat()
		if fa != fb {
			t.Fatalf("step %d: %f != %f", i, fa, fb)
		}
		if fa < 0 || fa > 1 {
			t.Fatalf("step %d: NextFloat = %f outside [0,1]", i, fa)
		}
	}
}

func TestRNGCopyForks(t *testing.T) {
	a := NewRNG(7)
	a.NextInt()
	b := a
	if a.NextInt() != b.NextInt() {
		t.Fatalf("copied generator diverged")
	}
}

func TestRNGStaysBelowModulus(t *testing.T) {
	r := NewRNG(-5)
	for i := 0; i < 1000; i++ {
		if v := r.NextInt(); v >= rngM {
			t.Fatalf("NextInt = %d, want < %d", v, uint64(rngM))
		}
	}
}

func TestRNGZeroSeedIsRandomised(t *testing.T) {
	r := NewRNG(0)
	if r.State() >= rngM {
		t.Fatalf("zero seed state %d outside modulus", r.State())
	}
}

func TestRestartDirection(t *testing.T) {
	r := NewRNG(1)
	if got := RestartDirection(&r); got != NW {
		t.Fatalf("RestartDirection(seed 1) = %v, want NW", got)
	}

	seen := map[Direction]bool{}
	for seed := int64(1); seed < 200; seed++ {
		r := NewRNG(seed)
		d := RestartDirection(&r)
		if d.Edge() {
			t.Fatalf("seed %d: restart direction %v is an edge variant", seed, d)
		}
		seen[d] = true
	}
	if len(seen) != len(RestartDirections) {
		t.Fatalf("saw %d distinct restart directions, want %d", len(seen), len(RestartDirections))
	}
}

func TestRestartIndexClampsTopOfRange(t *testing.T) {
	tests := []struct {
		f    float64
		want int
	}{
		{0, 0},
		{0.2499, 0},
		{0.25, 1},
		{0.75, 3},
		{1, 3},
	}
	for _, test := range tests {
		if got := restartIndex(test.f); got != test.want {
			t.Errorf("restartIndex(%v) = %d, want %d", test.f, got, test.want)
		}
	}
}

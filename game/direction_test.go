package game

import "testing"

func TestDirectionText(t *testing.T) {
	for _, d := range Directions {
		b, err := d.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", d, err)
		}
		var back Direction
		if err := back.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%s): %v", b, err)
		}
		if back != d {
			t.Fatalf("round trip %v -> %s -> %v", d, b, back)
		}
	}
	if EdgeNW.String() != "eNW" {
		t.Fatalf("EdgeNW.String() = %q, want %q", EdgeNW.String(), "eNW")
	}
}

func TestDirectionInvalid(t *testing.T) {
	if _, err := ParseDirection("N"); err == nil {
		t.Fatalf("expected error parsing N")
	}
	if _, err := Direction(8).MarshalText(); err == nil {
		t.Fatalf("expected error marshalling Direction(8)")
	}
	if Direction(8).Valid() {
		t.Fatalf("Direction(8) reported valid")
	}
}

func TestDirectionEdgeAndBase(t *testing.T) {
	tests := []struct {
		d    Direction
		edge bool
		base Direction
	}{
		{NE, false, NE},
		{SW, false, SW},
		{EdgeNE, true, NE},
		{EdgeSE, true, SE},
		{EdgeSW, true, SW},
		{EdgeNW, true, NW},
	}
	for _, test := range tests {
		t.Run(test.d.String(), func(t *testing.T) {
			if test.d.Edge() != test.edge {
				t.Errorf("Edge() = %v, want %v", test.d.Edge(), test.edge)
			}
			if test.d.Base() != test.base {
				t.Errorf("Base() = %v, want %v", test.d.Base(), test.base)
			}
			if test.base.WithEdge(test.edge) != test.d {
				t.Errorf("WithEdge(%v) = %v, want %v", test.edge, test.base.WithEdge(test.edge), test.d)
			}
		})
	}
}

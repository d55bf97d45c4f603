package game

import "fmt"

// Direction is the ball's heading. The Edge variants follow a hit on the
// outer band of a paddle and move faster along the same diagonal.
type Direction uint8

const (
	NE Direction = iota
	SE
	SW
	NW
	EdgeNE
	EdgeSE
	EdgeSW
	EdgeNW
)

var directionNames = [...]string{"NE", "SE", "SW", "NW", "eNE", "eSE", "eSW", "eNW"}

// Directions lists the whole domain.
var Directions = [...]Direction{NE, SE, SW, NW, EdgeNE, EdgeSE, EdgeSW, EdgeNW}

func (d Direction) Valid() bool {
	return int(d) < len(directionNames)
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

func (d Direction) Edge() bool {
	return d >= EdgeNE && d <= EdgeNW
}

// Base strips the edge flag.
func (d Direction) Base() Direction {
	if d.Edge() {
		return d - EdgeNE
	}
	return d
}

// WithEdge returns the edge variant of d's base direction when edge is set,
// the base direction otherwise.
func (d Direction) WithEdge(edge bool) Direction {
	if edge {
		return d.Base() + EdgeNE
	}
	return d.Base()
}

// Signs returns the unit x and y signs of the diagonal.
func (d Direction) Signs() (sx, sy float64) {
	switch d.Base() {
	case NE:
		return 1, -1
	case SE:
		return 1, 1
	case SW:
		return -1, 1
	default:
		return -1, -1
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", uint8(d))
	}
	return []byte(directionNames[d]), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	p, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = p
	return nil
}

func ParseDirection(s string) (Direction, error) {
	for i, n := range directionNames {
		if n == s {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

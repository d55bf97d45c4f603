package game

import "math"

type Vec struct{ X, Y float64 }

func NewVec(x, y float64) Vec {
	return Vec{x, y}
}

func (v Vec) Add(o Vec) Vec {
	return Vec{v.X + o.X, v.Y + o.Y}
}

func (v Vec) Sub(o Vec) Vec {
	return v.Add(o.Scale(-1))
}

func (v Vec) Scale(s float64) Vec {
	return Vec{v.X * s, v.Y * s}
}

func (v Vec) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Ortho rotates v by 90 degrees.
func (v Vec) Ortho() Vec {
	return Vec{v.Y, -v.X}
}

func (v Vec) Rotate(deg float64) Vec {
	rad := math.Pi * deg / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return Vec{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// UnitVecInDirection returns the unit vector pointing deg degrees clockwise from up.
func UnitVecInDirection(deg float64) Vec {
	return Vec{0, -1}.Rotate(deg)
}

// Wrap maps v into [0, ArenaSize) so a paddle leaving one edge reappears at the other.
func Wrap(v float64) float64 {
	r := math.Mod(v, ArenaSize)
	if r < 0 {
		r += ArenaSize
	}
	if r >= ArenaSize {
		// a tiny negative remainder plus ArenaSize can round up to ArenaSize
		r = 0
	}
	return r
}

func TorusWrap(v Vec) Vec {
	return Vec{Wrap(v.X), Wrap(v.Y)}
}

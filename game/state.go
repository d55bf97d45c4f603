package game

import (
	"errors"
	"fmt"
)

// Body is a paddle or the ball. For the ball Height is the radius.
type Body struct {
	Height float64
	Pos    Vec
}

// State is one immutable snapshot of the game. Reduce never modifies the
// State it is given; it returns a new one.
type State struct {
	Pad1          Body
	Pad2          Body
	Ball          Body
	BallDirection Direction
	Score1        int
	Score2        int
	MatchOver     bool
	GameOver      bool
	Seed          int64
	RNG           RNG
}

func NewPad1() Body {
	return Body{Height: PaddleHeight, Pos: Vec{Pad1X, PadStartY}}
}

func NewPad2() Body {
	return Body{Height: PaddleHeight, Pos: Vec{Pad2X, PadStartY}}
}

func NewBall() Body {
	return Body{Height: BallRadius, Pos: Vec{BallStart, BallStart}}
}

// Initial is the state every game starts from.
func Initial() State {
	return State{
		Pad1:          NewPad1(),
		Pad2:          NewPad2(),
		Ball:          NewBall(),
		BallDirection: NE,
		Seed:          InitialSeed,
		RNG:           NewRNG(InitialSeed),
	}
}

// Winner names the side ahead: "player" or "opponent".
func (s State) Winner() string {
	if s.Score1 > s.Score2 {
		return "player"
	}
	return "opponent"
}

// Validate reports every broken invariant. Reachable states always pass.
func (s State) Validate() error {
	var errs []error
	if !s.BallDirection.Valid() {
		errs = append(errs, fmt.Errorf("ball direction %d out of domain", uint8(s.BallDirection)))
	}
	if s.Score1 < 0 || s.Score2 < 0 {
		errs = append(errs, fmt.Errorf("negative score %d:%d", s.Score1, s.Score2))
	}
	if want := s.Score1 >= WinScore || s.Score2 >= WinScore; s.GameOver != want {
		errs = append(errs, fmt.Errorf("gameOver=%v with score %d:%d", s.GameOver, s.Score1, s.Score2))
	}
	if s.Pad1.Height != PaddleHeight || s.Pad2.Height != PaddleHeight {
		errs = append(errs, fmt.Errorf("paddle height %v/%v, want %v", s.Pad1.Height, s.Pad2.Height, PaddleHeight))
	}
	if s.Ball.Height != BallRadius {
		errs = append(errs, fmt.Errorf("ball radius %v, want %v", s.Ball.Height, BallRadius))
	}
	if y := s.Pad1.Pos.Y; y < 0 || y >= ArenaSize {
		errs = append(errs, fmt.Errorf("pad1 y %v outside arena", y))
	}
	return errors.Join(errs...)
}

package game

// StepFor is the ball's per-tick travel along each axis for the given score.
func StepFor(score1, score2 int) float64 {
	if score1 > SpeedUpAfter || score2 > SpeedUpAfter {
		return FastStep
	}
	return BaseStep
}

// NextPosition moves pos one tick along dir. Edge directions travel
// EdgeBoost further on both axes.
func NextPosition(pos Vec, dir Direction, step float64) Vec {
	if dir.Edge() {
		step += EdgeBoost
	}
	sx, sy := dir.Signs()
	return pos.Add(Vec{sx, sy}.Scale(step))
}

// Reduce folds one paddle delta into s and returns the next state.
func Reduce(s State, delta float64, rules Rules) State {
	switch {
	case s.GameOver:
		return s
	case s.MatchOver:
		return restartMatch(s)
	}

	next := s
	step := StepFor(s.Score1, s.Score2)
	dir := NextDirection(s, s.BallDirection)

	next.Pad1.Pos = Vec{s.Pad1.Pos.X, Wrap(s.Pad1.Pos.Y + delta)}
	next.Pad2.Pos = Vec{s.Pad2.Pos.X, rules.AIRatio * s.Ball.Pos.Y}
	next.Ball.Pos = NextPosition(s.Ball.Pos, dir, step)
	next.BallDirection = dir

	// scoring reads the ball where this tick found it, like the collision checks
	wall2, wall1 := HitsWall2(s.Ball), HitsWall1(s.Ball)
	if wall2 {
		next.Score1++
	}
	if wall1 {
		next.Score2++
	}
	next.MatchOver = wall1 || wall2
	next.GameOver = next.Score1 >= WinScore || next.Score2 >= WinScore

	next.Seed = s.Seed + 1
	if rules.RNGMode == RNGReseed {
		next.RNG = NewRNG(s.Seed)
	}
	return next
}

// restartMatch puts the bodies back in place and serves in a random
// direction. Scores, seed and the game-over flag carry over.
func restartMatch(s State) State {
	next := s
	rng := s.RNG
	next.Pad1 = NewPad1()
	next.Pad2 = NewPad2()
	next.Ball = NewBall()
	next.BallDirection = RestartDirection(&rng)
	next.RNG = rng
	next.MatchOver = false
	return next
}

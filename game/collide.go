package game

// Wall2 is the opponent's (left) wall, Wall1 the player's (right) wall.
func HitsWall2(ball Body) bool { return ball.Pos.X <= WallMin }
func HitsWall1(ball Body) bool { return ball.Pos.X >= WallMax }

func HitsTopWall(ball Body) bool { return ball.Pos.Y <= WallMin }
func HitsBotWall(ball Body) bool { return ball.Pos.Y >= WallMax }

func withinFace(ball, pad Body) bool {
	return ball.Pos.Y >= pad.Pos.Y && ball.Pos.Y <= pad.Pos.Y+pad.Height
}

func withinWidth(ball, pad Body) bool {
	return ball.Pos.X >= pad.Pos.X && ball.Pos.X <= pad.Pos.X+PaddleWidth
}

func HitsPad1(ball, pad Body) bool {
	return withinWidth(ball, pad) && withinFace(ball, pad)
}

func HitsPad2(ball, pad Body) bool {
	return withinWidth(ball, pad) && withinFace(ball, pad)
}

// Edge reports whether the ball is level with either outer band of the paddle.
func Edge(ball, pad Body) bool {
	y, top := ball.Pos.Y, pad.Pos.Y
	return (y >= top && y <= top+EdgeBand) ||
		(y >= top+pad.Height-EdgeBand && y <= top+pad.Height)
}

// Hits is every collision flag the resolver looks at, taken before the ball moves.
type Hits struct {
	Top, Bottom bool
	Pad1, Pad2  bool
	Pad1Edge    bool
}

func HitsOf(s State) Hits {
	return Hits{
		Top:      HitsTopWall(s.Ball),
		Bottom:   HitsBotWall(s.Ball),
		Pad1:     HitsPad1(s.Ball, s.Pad1),
		Pad2:     HitsPad2(s.Ball, s.Pad2),
		Pad1Edge: Edge(s.Ball, s.Pad1),
	}
}

// NextDirection resolves where the ball heads next from state s travelling dir.
func NextDirection(s State, dir Direction) Direction {
	return Resolve(dir, HitsOf(s))
}

// Resolve is the direction automaton. Eastbound directions only meet the top
// or bottom wall and paddle 1; westbound ones the walls and paddle 2. A wall
// bounce keeps the edge flag, a paddle bounce sets or clears it.
func Resolve(dir Direction, h Hits) Direction {
	edge := dir.Edge()
	switch dir.Base() {
	case NE:
		switch {
		case h.Top:
			return SE.WithEdge(edge)
		case h.Pad1:
			return NW.WithEdge(h.Pad1Edge)
		}
	case SE:
		switch {
		case h.Bottom:
			return NE.WithEdge(edge)
		case h.Pad1:
			return SW.WithEdge(h.Pad1Edge)
		}
	case NW:
		switch {
		case h.Top:
			return SW.WithEdge(edge)
		case h.Pad2:
			return NE
		}
	case SW:
		switch {
		case h.Bottom:
			return NW.WithEdge(edge)
		case h.Pad2:
			return SE
		}
	default:
		// out of domain; restart eastbound rather than stall
		return NE
	}
	return dir
}

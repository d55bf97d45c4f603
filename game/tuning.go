package game

const (
	ArenaSize    = 600.0
	BallRadius   = 5.0
	PaddleWidth  = 10.0
	PaddleHeight = 60.0
	EdgeBand     = 15.0 // outer band of a paddle face that deflects steeper

	Pad1X     = 540.0 // player, right side
	Pad2X     = 60.0  // opponent, left side
	PadStartY = 270.0
	BallStart = 300.0

	WallMin = 5.0
	WallMax = 595.0

	BaseStep     = 0.5
	FastStep     = 0.8
	SpeedUpAfter = 3 // either score above this switches to FastStep
	EdgeBoost    = 0.5
	WinScore     = 7

	DefaultAIRatio = 0.7
	InitialSeed    = 1
)

// RNGMode selects how the restart generator evolves between ticks.
type RNGMode uint8

const (
	// RNGReseed rebuilds the generator from the pre-increment seed every tick.
	RNGReseed RNGMode = iota
	// RNGAdvance carries one generator forward for the whole game.
	RNGAdvance
)

func (m RNGMode) String() string {
	if m == RNGAdvance {
		return "advance"
	}
	return "reseed"
}

// Rules holds the few knobs the reducer takes from configuration.
type Rules struct {
	AIRatio float64
	RNGMode RNGMode
}

func DefaultRules() Rules {
	return Rules{AIRatio: DefaultAIRatio, RNGMode: RNGReseed}
}

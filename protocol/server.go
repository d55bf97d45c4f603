package protocol

type Welcome struct {
	Room     string  `json:"room"`
	Arena    float64 `json:"arena"`
	RepeatMs int     `json:"repeatMs"`
}

// State is one rendered frame of a game.
type State struct {
	Tick      int     `json:"tick"`
	Pad1Y     float64 `json:"pad1y"`
	Pad2Y     float64 `json:"pad2y"`
	BallX     float64 `json:"ballx"`
	BallY     float64 `json:"bally"`
	Score1    int     `json:"score1"`
	Score2    int     `json:"score2"`
	Direction string  `json:"dir"`
	MatchOver bool    `json:"matchOver,omitempty"`
	GameOver  bool    `json:"gameOver,omitempty"`
	Winner    string  `json:"winner,omitempty"` // "player" or "opponent", set once the game is over
}

type Error struct {
	Message string `json:"message"`
}

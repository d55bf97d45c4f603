package room

import (
	"pong/game"
	"pong/protocol"
)

// Sink renders frames. Render must not block for long; the room calls it
// from its only goroutine.
type Sink interface {
	Render(protocol.State) error
	Close() error
}

// Join: issued once per connection. Watch joins as a spectator. The sink
// gets the current frame straight away.
type Join struct {
	Sink  Sink
	Watch bool
	Reply chan<- JoinResult
}

type JoinResult struct {
	ViewerID string
	Driver   bool // only the driver's Input and Restart are applied
	Frame    protocol.State
}

// Input: one paddle delta from the driver's input adapter
type Input struct {
	ViewerID string
	Delta    float64
}

// Restart: rebuild the initial state once the game is over. Reply reports
// whether a new game started.
type Restart struct {
	ViewerID string
	Reply    chan<- bool
}

// Leave: issued on disconnect
type Leave struct {
	ViewerID string
}

// Snapshot: read the current state
type Snapshot struct {
	Reply chan<- game.State
}

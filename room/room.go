package room

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"pong/game"
	"pong/protocol"
)

var ErrStopped = errors.New("room stopped")

type Room struct {
	Inbox   chan any
	rules   game.Rules
	state   game.State
	tick    int
	halted  bool
	sinks   map[string]Sink
	driver  string
	nextID  int
	quit    chan struct{}
	stop    sync.Once
	viewers atomic.Int32
	last    atomic.Pointer[protocol.State]
	log     *slog.Logger

	Code    string            // room code (e.g. "ABC123")
	OnEmpty func(code string) // called when last viewer leaves
}

func New(rules game.Rules) *Room {
	r := &Room{
		Inbox:  make(chan any, 256),
		rules:  rules,
		state:  game.Initial(),
		sinks:  make(map[string]Sink),
		nextID: 1,
		quit:   make(chan struct{}),
		log:    slog.Default(),
	}
	r.publish()
	return r
}

func (r *Room) Stop() {
	r.stop.Do(func() { close(r.quit) })
}

// Done is closed once the room is stopped.
func (r *Room) Done() <-chan struct{} {
	return r.quit
}

// Send queues msg for the room, failing once the room is stopped.
func (r *Room) Send(msg any) error {
	select {
	case <-r.quit:
		return ErrStopped
	case r.Inbox <- msg:
		return nil
	}
}

// NumViewers returns the current number of attached sinks.
func (r *Room) NumViewers() int {
	return int(r.viewers.Load())
}

// LastFrame returns the most recently rendered frame.
func (r *Room) LastFrame() protocol.State {
	return *r.last.Load()
}

// Run folds inbox messages into the game until Stop. There is no clock: the
// game advances exactly once per Input.
func (r *Room) Run() {
	r.log = r.log.With("room", r.Code)
	for {
		select {
		case <-r.quit:
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		}
	}
}

func (r *Room) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case Join:
		id := fmt.Sprintf("v%d", r.nextID)
		r.nextID++
		r.sinks[id] = c.Sink
		r.viewers.Store(int32(len(r.sinks)))
		driver := !c.Watch && r.driver == ""
		if driver {
			r.driver = id
		}
		r.log.Info("viewer joined", "viewer", id, "driver", driver, "viewers", len(r.sinks))
		frame := r.buildFrame()
		// rendered here so it is ordered before any later broadcast
		if err := c.Sink.Render(frame); err != nil {
			r.log.Warn("render failed", "viewer", id, "err", err)
		}
		c.Reply <- JoinResult{ViewerID: id, Driver: driver, Frame: frame}
	case Input:
		if c.ViewerID != r.driver {
			return
		}
		r.apply(c.Delta)
	case Restart:
		ok := c.ViewerID == r.driver && r.restart()
		if c.Reply != nil {
			c.Reply <- ok
		}
	case Leave:
		r.handleLeave(c.ViewerID)
	case Snapshot:
		c.Reply <- r.state
	}
}

func (r *Room) apply(delta float64) {
	if r.halted {
		return
	}
	r.state = game.Reduce(r.state, delta, r.rules)
	r.tick++
	if err := r.state.Validate(); err != nil {
		r.log.Warn("state invariant broken", "tick", r.tick, "err", err)
	}
	r.broadcastState()
	if r.state.GameOver {
		r.halted = true
		r.log.Info("game over", "tick", r.tick, "score1", r.state.Score1, "score2", r.state.Score2, "winner", r.state.Winner())
	}
}

func (r *Room) restart() bool {
	if !r.halted {
		return false
	}
	r.state = game.Initial()
	r.tick = 0
	r.halted = false
	r.log.Info("game restarted")
	r.broadcastState()
	return true
}

func (r *Room) handleLeave(id string) {
	s, ok := r.sinks[id]
	if ok {
		_ = s.Close()
		r.removeViewer(id)
	}
	r.checkEmpty()
}

func (r *Room) checkEmpty() {
	if len(r.sinks) == 0 && r.OnEmpty != nil && r.Code != "" {
		r.OnEmpty(r.Code)
	}
}

func (r *Room) removeViewer(id string) {
	delete(r.sinks, id)
	r.viewers.Store(int32(len(r.sinks)))
	if r.driver == id {
		r.driver = ""
	}
}

func (r *Room) broadcastState() {
	frame := r.publish()

	var failed []string
	for id, s := range r.sinks {
		if err := s.Render(frame); err != nil {
			r.log.Warn("render failed", "viewer", id, "err", err)
			failed = append(failed, id)
		}
	}
	for _, id := range failed {
		_ = r.sinks[id].Close()
		r.removeViewer(id)
	}
	if len(failed) > 0 {
		r.checkEmpty()
	}
}

func (r *Room) publish() protocol.State {
	frame := r.buildFrame()
	r.last.Store(&frame)
	return frame
}

func (r *Room) buildFrame() protocol.State {
	return Frame(r.tick, r.state)
}

// Frame converts a game state into its wire form.
func Frame(tick int, s game.State) protocol.State {
	f := protocol.State{
		Tick:      tick,
		Pad1Y:     s.Pad1.Pos.Y,
		Pad2Y:     s.Pad2.Pos.Y,
		BallX:     s.Ball.Pos.X,
		BallY:     s.Ball.Pos.Y,
		Score1:    s.Score1,
		Score2:    s.Score2,
		Direction: s.BallDirection.String(),
		MatchOver: s.MatchOver,
		GameOver:  s.GameOver,
	}
	if s.GameOver {
		f.Winner = s.Winner()
	}
	return f
}

package input

import (
	"context"
	"time"
)

// Key is a movement key of the player paddle.
type Key uint8

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
)

const (
	DefaultInterval = 5 * time.Millisecond
	Step            = 3.0
)

// ParseKey maps a DOM style key code to a movement key.
func ParseKey(code string) Key {
	switch code {
	case "KeyW", "ArrowUp":
		return KeyUp
	case "KeyS", "ArrowDown":
		return KeyDown
	}
	return KeyNone
}

func (k Key) delta() float64 {
	switch k {
	case KeyUp:
		return -Step
	case KeyDown:
		return Step
	}
	return 0
}

// Event is one raw key transition. Repeat marks OS auto-repeat key-downs.
type Event struct {
	Key     Key
	Pressed bool
	Repeat  bool
}

// Adapter turns key transitions into paddle deltas: -Step or +Step every
// Interval while a key is held, a single 0 when it is released.
type Adapter struct {
	Interval time.Duration
	// KeepAlive keeps emitting 0 every Interval while nothing is held,
	// once the first key has been released.
	KeepAlive bool
	Clock     Clock
}

func New(interval time.Duration, keepAlive bool) *Adapter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Adapter{Interval: interval, KeepAlive: keepAlive, Clock: RealClock{}}
}

type repeat struct {
	key Key
	gen uint64
}

type hold struct {
	gen  uint64
	stop context.CancelFunc
}

// Run merges key events and repeat signals, in arrival order, into out. It
// returns nil when events is closed and ctx.Err() when ctx is done.
func (a *Adapter) Run(ctx context.Context, events <-chan Event, out chan<- float64) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		ticks    = make(chan repeat)
		held     = make(map[Key]hold)
		gen      uint64
		released bool
		idle     Ticker
		idleC    <-chan time.Time
	)
	stopIdle := func() {
		if idle != nil {
			idle.Stop()
			idle, idleC = nil, nil
		}
	}
	defer stopIdle()

	emit := func(d float64) error {
		select {
		case out <- d:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Key == KeyNone {
				continue
			}
			if ev.Pressed {
				if ev.Repeat {
					continue
				}
				if _, ok := held[ev.Key]; ok {
					continue
				}
				stopIdle()
				gen++
				kctx, stop := context.WithCancel(ctx)
				held[ev.Key] = hold{gen: gen, stop: stop}
				go a.repeat(kctx, a.Clock.NewTicker(a.Interval), repeat{ev.Key, gen}, ticks)
				continue
			}
			h, ok := held[ev.Key]
			if !ok {
				continue
			}
			h.stop()
			delete(held, ev.Key)
			released = true
			if err := emit(0); err != nil {
				return err
			}
			if a.KeepAlive && len(held) == 0 && idle == nil {
				idle = a.Clock.NewTicker(a.Interval)
				idleC = idle.Chan()
			}

		case r := <-ticks:
			if h, ok := held[r.key]; !ok || h.gen != r.gen {
				continue
			}
			if err := emit(r.key.delta()); err != nil {
				return err
			}

		case <-idleC:
			if !released || len(held) > 0 {
				continue
			}
			if err := emit(0); err != nil {
				return err
			}
		}
	}
}

func (a *Adapter) repeat(ctx context.Context, t Ticker, r repeat, ticks chan<- repeat) {
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.Chan():
			select {
			case ticks <- r:
			case <-ctx.Done():
				return
			}
		}
	}
}

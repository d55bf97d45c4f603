package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"pong/config"
	"pong/input"
	"pong/protocol"
	"pong/room"
)

// controller is what the screen talks to: it forwards key transitions and
// hands back the latest frame.
type controller interface {
	Key(code string, down bool) error
	Frame() (protocol.State, bool)
	Close() error
}

// frameStore keeps the latest frame for Draw.
type frameStore struct {
	last atomic.Pointer[protocol.State]
}

func (fs *frameStore) Render(f protocol.State) error {
	fs.last.Store(&f)
	return nil
}

func (fs *frameStore) Frame() (protocol.State, bool) {
	f := fs.last.Load()
	if f == nil {
		return protocol.State{}, false
	}
	return *f, true
}

// local runs the game in process: a private room driven by an input adapter.
type local struct {
	frameStore
	room      *room.Room
	viewerID  string
	interval  time.Duration
	keepAlive bool

	ctx    context.Context
	cancel context.CancelFunc
	events chan input.Event
}

func startLocal(cfg config.Config) (*local, error) {
	l := &local{
		room:      room.New(cfg.Rules()),
		interval:  cfg.RepeatInterval(),
		keepAlive: cfg.KeepAlive,
	}
	go l.room.Run()

	reply := make(chan room.JoinResult, 1)
	if err := l.room.Send(room.Join{Sink: l, Reply: reply}); err != nil {
		return nil, err
	}
	l.viewerID = (<-reply).ViewerID
	l.startInput()
	return l, nil
}

// Close is shared by room.Sink and controller. The room calls it on leave,
// the client calls it on exit.
func (l *local) Close() error {
	if l.cancel != nil {
		l.cancel()
	}
	l.room.Stop()
	return nil
}

func (l *local) startInput() {
	l.ctx, l.cancel = context.WithCancel(context.Background())
	l.events = make(chan input.Event, 16)
	deltas := make(chan float64)

	ctx, events := l.ctx, l.events
	a := input.New(l.interval, l.keepAlive)
	go func() {
		if err := a.Run(ctx, events, deltas); err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("input adapter stopped", "err", err)
		}
	}()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d := <-deltas:
				if err := l.room.Send(room.Input{ViewerID: l.viewerID, Delta: d}); err != nil {
					return
				}
			}
		}
	}()
}

func (l *local) Key(code string, down bool) error {
	if code == "Space" {
		if !down {
			return nil
		}
		ok := make(chan bool, 1)
		if err := l.room.Send(room.Restart{ViewerID: l.viewerID, Reply: ok}); err != nil {
			return err
		}
		select {
		case restarted := <-ok:
			if restarted {
				l.cancel()
				l.startInput()
			}
		case <-l.room.Done():
			return room.ErrStopped
		}
		return nil
	}

	select {
	case l.events <- input.Event{Key: input.ParseKey(code), Pressed: down}:
		return nil
	case <-l.ctx.Done():
		return l.ctx.Err()
	}
}

// remote plays a session on a server.
type remote struct {
	frameStore
	conn  *websocket.Conn
	codec protocol.Codec
	mu    sync.Mutex
}

func dialRemote(url, code, codecName string, watch bool) (*remote, error) {
	codec, err := protocol.CodecByName(codecName)
	if err != nil {
		return nil, err
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", url, err)
	}
	r := &remote{conn: conn, codec: codec}

	if err := r.send(protocol.MsgHello, protocol.Hello{V: protocol.Version, Room: code, Codec: codec.Name(), Watch: watch}); err != nil {
		conn.Close()
		return nil, err
	}
	go r.readLoop()
	return r, nil
}

func (r *remote) send(t string, payload any) error {
	b, err := r.codec.Encode(t, payload)
	if err != nil {
		return err
	}
	msgType := websocket.TextMessage
	if r.codec.Binary() {
		msgType = websocket.BinaryMessage
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conn.WriteMessage(msgType, b)
}

func (r *remote) readLoop() {
	for {
		_, msg, err := r.conn.ReadMessage()
		if err != nil {
			slog.Info("disconnected from server", "err", err)
			return
		}
		env, err := r.codec.Decode(msg)
		if err != nil {
			slog.Warn("bad frame", "err", err)
			continue
		}
		switch env.T {
		case protocol.MsgWelcome:
			w, err := protocol.DecodePayload[protocol.Welcome](env)
			if err == nil {
				slog.Info("joined room", "room", w.Room, "repeatMs", w.RepeatMs)
			}
		case protocol.MsgState:
			f, err := protocol.DecodePayload[protocol.State](env)
			if err != nil {
				slog.Warn("bad state", "err", err)
				continue
			}
			r.Render(f)
		case protocol.MsgError:
			e, _ := protocol.DecodePayload[protocol.Error](env)
			slog.Error("server error", "message", e.Message)
		}
	}
}

func (r *remote) Key(code string, down bool) error {
	return r.send(protocol.MsgKey, protocol.Key{Code: code, Down: down})
}

func (r *remote) Close() error {
	r.mu.Lock()
	_ = r.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	r.mu.Unlock()
	return r.conn.Close()
}

package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"pong/game"
	"pong/input"
	"pong/protocol"
	"pong/room"
)

const (
	readLimit  = 1 << 20 // 1MB
	readWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
	writeWait  = 10 * time.Second
)

// Server upgrades websocket connections into game sessions: the first
// non-spectating connection of a room drives its paddle, every connection
// receives its frames.
type Server struct {
	Manager   *room.Manager
	Interval  time.Duration
	KeepAlive bool
	Upgrader  websocket.Upgrader
}

func NewServer(m *room.Manager, interval time.Duration, keepAlive bool) *Server {
	return &Server{
		Manager:   m,
		Interval:  interval,
		KeepAlive: keepAlive,
		Upgrader: websocket.Upgrader{
			// For dev, allow all origins. Lock this down in prod.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler serves /ws and the /rooms list.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.wsHandler)
	mux.HandleFunc("/rooms", s.roomsHandler)
	return mux
}

func (s *Server) roomsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.Manager.ListRooms()); err != nil {
		slog.Error("encode room list", "err", err)
	}
}

func (s *Server) wsHandler(w http.ResponseWriter, r *http.Request) {
	// Upgrade HTTP -> WebSocket
	conn, err := s.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("upgrade failed", "err", err)
		return
	}
	defer conn.Close()

	// Basic timeouts + pong handling (keeps connections healthy)
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readWait))
	})

	if err := s.serve(r.Context(), conn); err != nil {
		slog.Info("session ended", "remote", conn.RemoteAddr().String(), "err", err)
	}
}

func (s *Server) serve(ctx context.Context, conn *websocket.Conn) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hello, codec, err := readHello(conn)
	if err != nil {
		writeError(conn, err)
		return err
	}

	var rm *room.Room
	if hello.Room == "" {
		rm = s.Manager.CreateRoom()
	} else {
		rm = s.Manager.GetOrCreateRoom(strings.ToUpper(hello.Room))
	}

	sess := newSession(conn, codec, slog.Default().With("room", rm.Code, "remote", conn.RemoteAddr().String()))
	go sess.writeLoop()
	defer sess.Close()
	go func() {
		select {
		case <-rm.Done():
			sess.Close()
		case <-ctx.Done():
		}
	}()

	welcome, err := codec.Encode(protocol.MsgWelcome, protocol.Welcome{
		Room:     rm.Code,
		Arena:    game.ArenaSize,
		RepeatMs: int(s.Interval / time.Millisecond),
	})
	if err != nil {
		return err
	}
	sess.enqueue(welcome)

	reply := make(chan room.JoinResult, 1)
	if err := rm.Send(room.Join{Sink: sess, Watch: hello.Watch, Reply: reply}); err != nil {
		return err
	}
	var joined room.JoinResult
	select {
	case joined = <-reply:
	case <-rm.Done():
		return room.ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { _ = rm.Send(room.Leave{ViewerID: joined.ViewerID}) }()

	var drv *driver
	if joined.Driver {
		drv = s.startDriver(ctx, rm, joined.ViewerID)
		defer func() { drv.stop() }()
	}

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		env, err := decodeFrame(msgType, msg)
		if err != nil {
			sess.log.Debug("bad frame", "err", err)
			continue
		}
		if env.T != protocol.MsgKey || drv == nil {
			continue
		}
		key, err := protocol.DecodePayload[protocol.Key](env)
		if err != nil {
			sess.log.Debug("bad key message", "err", err)
			continue
		}

		if key.Code == "Space" {
			if !key.Down || key.Repeat {
				continue
			}
			restarted := make(chan bool, 1)
			if err := rm.Send(room.Restart{ViewerID: joined.ViewerID, Reply: restarted}); err != nil {
				return err
			}
			select {
			case ok := <-restarted:
				if ok {
					// a new game gets a new input stream
					drv.stop()
					drv = s.startDriver(ctx, rm, joined.ViewerID)
				}
			case <-rm.Done():
				return room.ErrStopped
			}
			continue
		}
		drv.feed(input.Event{Key: input.ParseKey(key.Code), Pressed: key.Down, Repeat: key.Repeat})
	}
}

func readHello(conn *websocket.Conn) (protocol.Hello, protocol.Codec, error) {
	msgType, msg, err := conn.ReadMessage()
	if err != nil {
		return protocol.Hello{}, nil, fmt.Errorf("read hello: %w", err)
	}
	env, err := decodeFrame(msgType, msg)
	if err != nil {
		return protocol.Hello{}, nil, fmt.Errorf("read hello: %w", err)
	}
	if env.T != protocol.MsgHello {
		return protocol.Hello{}, nil, fmt.Errorf("expected %q, got %q", protocol.MsgHello, env.T)
	}
	hello, err := protocol.DecodePayload[protocol.Hello](env)
	if err != nil {
		return protocol.Hello{}, nil, fmt.Errorf("decode hello: %w", err)
	}
	if hello.V != protocol.Version {
		return protocol.Hello{}, nil, fmt.Errorf("unsupported protocol version %d", hello.V)
	}
	codec, err := protocol.CodecByName(hello.Codec)
	if err != nil {
		return protocol.Hello{}, nil, err
	}
	return hello, codec, nil
}

// decodeFrame picks the codec from the websocket message type.
func decodeFrame(msgType int, msg []byte) (protocol.Envelope, error) {
	if msgType == websocket.BinaryMessage {
		return protocol.Proto{}.Decode(msg)
	}
	return protocol.DecodeEnvelope(msg)
}

func writeError(conn *websocket.Conn, cause error) {
	b, err := protocol.Encode(protocol.MsgError, protocol.Error{Message: cause.Error()})
	if err != nil {
		return
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.TextMessage, b)
}

// driver owns the input adapter of one game.
type driver struct {
	ctx    context.Context
	cancel context.CancelFunc
	keys   chan input.Event
}

func (s *Server) startDriver(parent context.Context, rm *room.Room, viewerID string) *driver {
	ctx, cancel := context.WithCancel(parent)
	d := &driver{ctx: ctx, cancel: cancel, keys: make(chan input.Event, 16)}
	deltas := make(chan float64)

	a := input.New(s.Interval, s.KeepAlive)
	go func() {
		if err := a.Run(ctx, d.keys, deltas); err != nil && !errors.Is(err, context.Canceled) {
			slog.Warn("input adapter stopped", "err", err)
		}
	}()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case delta := <-deltas:
				if err := rm.Send(room.Input{ViewerID: viewerID, Delta: delta}); err != nil {
					cancel()
					return
				}
			}
		}
	}()
	return d
}

func (d *driver) feed(ev input.Event) {
	select {
	case d.keys <- ev:
	case <-d.ctx.Done():
	}
}

func (d *driver) stop() {
	d.cancel()
}

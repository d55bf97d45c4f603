package network

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pong/protocol"
)

var errSessionClosed = errors.New("session closed")

// session is the websocket side of a room viewer. Frames are queued and
// written by one goroutine so a slow client never stalls the room.
type session struct {
	conn  *websocket.Conn
	codec protocol.Codec
	out   chan []byte
	done  chan struct{}
	once  sync.Once
	log   *slog.Logger
}

func newSession(conn *websocket.Conn, codec protocol.Codec, log *slog.Logger) *session {
	return &session{
		conn:  conn,
		codec: codec,
		out:   make(chan []byte, 64),
		done:  make(chan struct{}),
		log:   log,
	}
}

func (s *session) Render(f protocol.State) error {
	b, err := s.codec.Encode(protocol.MsgState, f)
	if err != nil {
		return err
	}
	return s.enqueue(b)
}

func (s *session) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *session) enqueue(b []byte) error {
	select {
	case <-s.done:
		return errSessionClosed
	default:
	}
	select {
	case s.out <- b:
	default:
		s.log.Debug("client too slow, frame dropped")
	}
	return nil
}

func (s *session) writeLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	msgType := websocket.TextMessage
	if s.codec.Binary() {
		msgType = websocket.BinaryMessage
	}
	for {
		select {
		case <-s.done:
			_ = s.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(writeWait))
			return
		case b := <-s.out:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(msgType, b); err != nil {
				s.log.Debug("write failed", "err", err)
				s.Close()
				return
			}
		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.Close()
				return
			}
		}
	}
}

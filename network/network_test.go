package network

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"pong/game"
	"pong/protocol"
	"pong/room"
)

func newTestServer(t *testing.T) (*httptest.Server, *room.Manager) {
	t.Helper()
	m := room.NewManager(game.DefaultRules())
	ts := httptest.NewServer(NewServer(m, 20*time.Millisecond, false).Handler())
	t.Cleanup(func() {
		ts.Close()
		m.StopAll()
	})
	return ts, m
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	return conn
}

func sendJSON(t *testing.T, conn *websocket.Conn, typ string, payload any) {
	t.Helper()
	b, err := protocol.Encode(typ, payload)
	if err != nil {
		t.Fatalf("encode %s: %v", typ, err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		t.Fatalf("write %s: %v", typ, err)
	}
}

func readEnv(t *testing.T, conn *websocket.Conn, codec protocol.Codec) protocol.Envelope {
	t.Helper()
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	env, err := codec.Decode(msg)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return env
}

func readAs[T any](t *testing.T, conn *websocket.Conn, codec protocol.Codec, want string) T {
	t.Helper()
	env := readEnv(t, conn, codec)
	if env.T != want {
		t.Fatalf("got message %q, want %q", env.T, want)
	}
	v, err := protocol.DecodePayload[T](env)
	if err != nil {
		t.Fatalf("payload %s: %v", want, err)
	}
	return v
}

func TestHandshakeAndFirstFrame(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts)

	sendJSON(t, conn, protocol.MsgHello, protocol.Hello{V: protocol.Version, Room: "PONG22"})

	w := readAs[protocol.Welcome](t, conn, protocol.JSON{}, protocol.MsgWelcome)
	if w.Room != "PONG22" || w.Arena != game.ArenaSize || w.RepeatMs != 20 {
		t.Fatalf("welcome = %+v", w)
	}
	st := readAs[protocol.State](t, conn, protocol.JSON{}, protocol.MsgState)
	if st.Tick != 0 || st.Pad1Y != game.PadStartY || st.BallX != game.BallStart || st.Direction != "NE" {
		t.Fatalf("initial frame = %+v", st)
	}
}

func TestKeyMovesPaddle(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts)

	sendJSON(t, conn, protocol.MsgHello, protocol.Hello{V: protocol.Version})
	readAs[protocol.Welcome](t, conn, protocol.JSON{}, protocol.MsgWelcome)
	readAs[protocol.State](t, conn, protocol.JSON{}, protocol.MsgState)

	sendJSON(t, conn, protocol.MsgKey, protocol.Key{Code: "KeyW", Down: true})
	st := readAs[protocol.State](t, conn, protocol.JSON{}, protocol.MsgState)
	if st.Tick != 1 {
		t.Fatalf("tick = %d, want 1", st.Tick)
	}
	if st.Pad1Y != 267 {
		t.Fatalf("pad1 = %v, want 267", st.Pad1Y)
	}
	if st.BallX != 300.5 || st.BallY != 299.5 {
		t.Fatalf("ball = (%v,%v), want (300.5,299.5)", st.BallX, st.BallY)
	}
	sendJSON(t, conn, protocol.MsgKey, protocol.Key{Code: "KeyW", Down: false})
}

func TestSpectatorSeesDriver(t *testing.T) {
	ts, _ := newTestServer(t)
	drv := dial(t, ts)
	sendJSON(t, drv, protocol.MsgHello, protocol.Hello{V: protocol.Version, Room: "WATCH2"})
	readAs[protocol.Welcome](t, drv, protocol.JSON{}, protocol.MsgWelcome)
	readAs[protocol.State](t, drv, protocol.JSON{}, protocol.MsgState)

	watcher := dial(t, ts)
	sendJSON(t, watcher, protocol.MsgHello, protocol.Hello{V: protocol.Version, Room: "WATCH2", Watch: true})
	readAs[protocol.Welcome](t, watcher, protocol.JSON{}, protocol.MsgWelcome)
	readAs[protocol.State](t, watcher, protocol.JSON{}, protocol.MsgState)

	// spectator keys are ignored
	sendJSON(t, watcher, protocol.MsgKey, protocol.Key{Code: "KeyS", Down: true})
	sendJSON(t, drv, protocol.MsgKey, protocol.Key{Code: "KeyS", Down: true})

	st := readAs[protocol.State](t, watcher, protocol.JSON{}, protocol.MsgState)
	if st.Tick != 1 || st.Pad1Y != 273 {
		t.Fatalf("spectator frame = %+v, want tick 1 pad1 273", st)
	}
}

func TestProtoCodec(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts)

	b, err := protocol.Proto{}.Encode(protocol.MsgHello, protocol.Hello{V: protocol.Version, Codec: "proto"})
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, b); err != nil {
		t.Fatal(err)
	}

	typ, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatal(err)
	}
	if typ != websocket.BinaryMessage {
		t.Fatalf("message type = %d, want binary", typ)
	}
	env, err := protocol.Proto{}.Decode(msg)
	if err != nil {
		t.Fatal(err)
	}
	w, err := protocol.DecodePayload[protocol.Welcome](env)
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Room) != 6 {
		t.Fatalf("generated room code = %q", w.Room)
	}
	st := readAs[protocol.State](t, conn, protocol.Proto{}, protocol.MsgState)
	if st.Pad2Y != game.PadStartY {
		t.Fatalf("initial frame = %+v", st)
	}
}

func TestBadHello(t *testing.T) {
	ts, _ := newTestServer(t)

	tests := []struct {
		name    string
		typ     string
		payload any
	}{
		{"not hello", protocol.MsgKey, protocol.Key{Code: "KeyW", Down: true}},
		{"wrong version", protocol.MsgHello, protocol.Hello{V: 99}},
		{"unknown codec", protocol.MsgHello, protocol.Hello{V: protocol.Version, Codec: "xml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := dial(t, ts)
			sendJSON(t, conn, tt.typ, tt.payload)
			e := readAs[protocol.Error](t, conn, protocol.JSON{}, protocol.MsgError)
			if e.Message == "" {
				t.Fatal("empty error message")
			}
		})
	}
}

func TestRoomsHandler(t *testing.T) {
	ts, _ := newTestServer(t)
	conn := dial(t, ts)
	sendJSON(t, conn, protocol.MsgHello, protocol.Hello{V: protocol.Version, Room: "LIST22"})
	readAs[protocol.Welcome](t, conn, protocol.JSON{}, protocol.MsgWelcome)
	readAs[protocol.State](t, conn, protocol.JSON{}, protocol.MsgState)

	resp, err := http.Get(ts.URL + "/rooms")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	var rooms []room.RoomInfo
	if err := json.NewDecoder(resp.Body).Decode(&rooms); err != nil {
		t.Fatal(err)
	}
	if len(rooms) != 1 || rooms[0].Code != "LIST22" || rooms[0].Viewers != 1 {
		t.Fatalf("rooms = %+v", rooms)
	}
}

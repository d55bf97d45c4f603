package room

import (
	"testing"
	"time"

	"pong/game"
)

func TestManagerCreateAndList(t *testing.T) {
	m := NewManager(game.DefaultRules())
	defer m.StopAll()

	r := m.CreateRoom()
	if len(r.Code) != 6 {
		t.Fatalf("code %q, want 6 chars", r.Code)
	}
	if got, ok := m.Get(r.Code); !ok || got != r {
		t.Fatalf("Get(%q) did not return the created room", r.Code)
	}
	if again := m.GetOrCreateRoom(r.Code); again != r {
		t.Fatalf("GetOrCreateRoom created a second room for %q", r.Code)
	}
	if m.GetOrCreateRoom("") != nil {
		t.Fatalf("expected nil room for empty code")
	}

	m.GetOrCreateRoom("222222")
	list := m.ListRooms()
	if len(list) != 2 {
		t.Fatalf("ListRooms returned %d rooms, want 2", len(list))
	}
	if list[0].Code != "222222" {
		t.Fatalf("rooms not sorted: %+v", list)
	}
}

func TestManagerRemovesEmptyRoom(t *testing.T) {
	m := NewManager(game.DefaultRules())
	defer m.StopAll()

	r := m.GetOrCreateRoom("EMPTY1")
	res := join(t, r, newFakeSink(), false)
	r.Inbox <- Leave{ViewerID: res.ViewerID}

	deadline := time.After(time.Second)
	for {
		if _, ok := m.Get("EMPTY1"); !ok {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("room not removed after last viewer left")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestGenerateCodeAlphabet(t *testing.T) {
	code := generateCode(32)
	for _, c := range code {
		found := false
		for _, a := range codeChars {
			if a == c {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("code %q contains %q outside the alphabet", code, c)
		}
	}
}

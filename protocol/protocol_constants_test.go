package protocol

import "testing"

func TestMessageConstants(t *testing.T) {
	if MsgHello != "hello" {
		t.Fatalf("MsgHello = %q, want %q", MsgHello, "hello")
	}
	if MsgKey != "key" {
		t.Fatalf("MsgKey = %q, want %q", MsgKey, "key")
	}
	if MsgWelcome != "welcome" {
		t.Fatalf("MsgWelcome = %q, want %q", MsgWelcome, "welcome")
	}
	if MsgState != "state" {
		t.Fatalf("MsgState = %q, want %q", MsgState, "state")
	}
	if MsgError != "error" {
		t.Fatalf("MsgError = %q, want %q", MsgError, "error")
	}
}

package protocol

// messages coming in from the client.

type Hello struct {
	V     int    `json:"v"`               // version
	Room  string `json:"room,omitempty"`  // join this room, or create one when empty
	Codec string `json:"codec,omitempty"` // "json" (default) or "proto"
	Watch bool   `json:"watch,omitempty"` // spectate without sending input
}

// Key is a raw key transition, DOM style codes ("KeyW", "KeyS", "Space").
type Key struct {
	Code   string `json:"code"`
	Down   bool   `json:"down"`
	Repeat bool   `json:"repeat,omitempty"`
}

package protocol

import (
	"encoding/json"
)

const (
	MsgHello   = "hello"
	MsgKey     = "key"
	MsgWelcome = "welcome"
	MsgState   = "state"
	MsgError   = "error"
)

const Version = 1

type Envelope struct {
	T string          `json:"t"`
	P json.RawMessage `json:"p"` // raw payload bytes
}

package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrEmptyPayload = errors.New("empty payload")

// Codec turns envelopes into frames and back.
type Codec interface {
	Name() string
	Encode(t string, payload any) ([]byte, error)
	Decode(b []byte) (Envelope, error)
	// Binary reports whether frames must go out as binary websocket messages.
	Binary() bool
}

func CodecByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSON{}, nil
	case "proto":
		return Proto{}, nil
	}
	return nil, fmt.Errorf("unknown codec %q", name)
}

type JSON struct{}

func (JSON) Name() string                                 { return "json" }
func (JSON) Binary() bool                                 { return false }
func (JSON) Encode(t string, payload any) ([]byte, error) { return Encode(t, payload) }
func (JSON) Decode(b []byte) (Envelope, error)            { return DecodeEnvelope(b) }

func Encode(t string, payload any) ([]byte, error) {
	if t == "" {
		return nil, fmt.Errorf("trying to encode envelope type nil")
	}
	if payload == nil {
		return nil, fmt.Errorf("trying to encode nil payload")
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	var e = Envelope{t, pb}

	return json.Marshal(e)
}

func DecodeEnvelope(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode envelope: zero bytes")
	}
	var e Envelope
	err := json.Unmarshal(b, &e)
	if err != nil {
		return Envelope{}, err
	}
	return e, nil
}

func DecodePayload[T any](env Envelope) (T, error) {
	// zero value of whatever T is, say T is Key then out is Key{}
	var out T
	if len(env.P) == 0 {
		return out, fmt.Errorf("%w for type %q", ErrEmptyPayload, env.T)
	}
	err := json.Unmarshal(env.P, &out)
	return out, err
}

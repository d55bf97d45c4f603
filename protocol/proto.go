package protocol

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// Proto carries the same envelope as a protobuf Struct {"t": ..., "p": {...}}.
type Proto struct{}

func (Proto) Name() string { return "proto" }
func (Proto) Binary() bool { return true }

func (Proto) Encode(t string, payload any) ([]byte, error) {
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
	var fields map[string]any
	if err := json.Unmarshal(pb, &fields); err != nil {
		return nil, fmt.Errorf("payload for %q is not an object: %w", t, err)
	}
	st, err := structpb.NewStruct(map[string]any{"t": t, "p": fields})
	if err != nil {
		return nil, fmt.Errorf("build struct for %q: %w", t, err)
	}
	return proto.Marshal(st)
}

func (Proto) Decode(b []byte) (Envelope, error) {
	if len(b) == 0 {
		return Envelope{}, fmt.Errorf("decode envelope: zero bytes")
	}
	var st structpb.Struct
	if err := proto.Unmarshal(b, &st); err != nil {
		return Envelope{}, err
	}
	m := st.AsMap()
	t, _ := m["t"].(string)
	if t == "" {
		return Envelope{}, fmt.Errorf("decode envelope: missing type")
	}
	env := Envelope{T: t}
	if p, ok := m["p"]; ok && p != nil {
		raw, err := json.Marshal(p)
		if err != nil {
			return Envelope{}, err
		}
		env.P = raw
	}
	return env, nil
}

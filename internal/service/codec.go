package service

import (
	"bytes"
	"encoding/json"
)

// jsonCodec replaces Connect's protojson codec so plain Go structs can be
// exchanged. Numbers decode as json.Number, which keeps prices exact and lets
// the calculator tell integers from reals.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (jsonCodec) Unmarshal(data []byte, v any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec.Decode(v)
}

package db

import "encoding/json"

// Codec converts structured task fields to and from their stored text
// form. Conversation and steps columns go through the codec, so the
// storage encoding can change without touching the operation contracts.
//
// Implementations must round-trip losslessly: Decode(Encode(x)) == x
// for any representable value.
type Codec interface {
	Encode(v any) (string, error)
	Decode(data string, v any) error
}

// jsonCodec is the default codec. The original store kept these columns
// as JSON text, so JSON stays the on-disk format.
type jsonCodec struct{}

// DefaultCodec returns the JSON codec used unless WithCodec overrides it.
func DefaultCodec() Codec {
	return jsonCodec{}
}

func (jsonCodec) Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (jsonCodec) Decode(data string, v any) error {
	if data == "" {
		return nil
	}
	return json.Unmarshal([]byte(data), v)
}

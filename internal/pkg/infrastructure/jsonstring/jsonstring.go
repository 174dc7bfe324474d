package jsonstring

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotAString       = errors.New("value is not a json string")
	ErrMalformedContent = errors.New("string does not contain valid json")
)

// Value decodes a document field whose value is another json document
// serialized as a string, e.g. {"Stats": "{\"v\":1.0}"}. The string is read
// first and its contents are then unmarshalled into Value.
type Value[T any] struct {
	Value T
}

func (s *Value[T]) UnmarshalJSON(data []byte) error {
	if !bytes.HasPrefix(bytes.TrimSpace(data), []byte(`"`)) {
		return fmt.Errorf("%w: %s", ErrNotAString, kindOf(data))
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("%w: %s", ErrNotAString, err.Error())
	}

	v, err := Decode[T](str)
	if err != nil {
		return err
	}

	s.Value = v
	return nil
}

// Decode unmarshals the json document held in str into a T.
func Decode[T any](str string) (T, error) {
	var v T

	if !json.Valid([]byte(str)) {
		return v, ErrMalformedContent
	}

	if err := json.Unmarshal([]byte(str), &v); err != nil {
		return v, err
	}

	return v, nil
}

func kindOf(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "empty"
	}

	switch data[0] {
	case '{':
		return "object"
	case '[':
		return "array"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}

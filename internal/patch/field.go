// Package patch provides a tri-state field for partial updates: a Field is
// either absent, explicitly null, or set to a value.
package patch

import (
	"bytes"
	"encoding/json"
)

type state uint8

const (
	absent state = iota
	null
	set
)

// Field is absent in its zero value. When decoded from JSON, an omitted key
// stays absent and a literal null becomes Null.
type Field[T any] struct {
	state state
	value T
}

func Value[T any](v T) Field[T] {
	return Field[T]{state: set, value: v}
}

func Null[T any]() Field[T] {
	return Field[T]{state: null}
}

// Present reports whether the field was supplied, either as null or as a value.
func (f Field[T]) Present() bool { return f.state != absent }

func (f Field[T]) IsNull() bool { return f.state == null }

// Get returns the value and true only when the field holds a non-null value.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == set
}

// Ptr returns nil for null or absent, otherwise a pointer to a copy of the value.
func (f Field[T]) Ptr() *T {
	if f.state != set {
		return nil
	}
	v := f.value
	return &v
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.state, f.value = null, zero
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.state, f.value = set, v
	return nil
}

// MarshalJSON encodes absent and null alike as null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.state != set {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

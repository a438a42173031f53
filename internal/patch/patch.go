// Package patch models partial updates: which JSON fields a client sent, and
// the resulting column assignments.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is a JSON value that remembers whether it was present in the payload
// and whether it was an explicit null.
type Field[T any] struct {
	Set   bool
	Null  bool
	Value T
}

// Of returns a Field holding v.
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null returns a Field that was sent as null.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Present reports whether the field carries a non-null value.
func (f Field[T]) Present() bool {
	return f.Set && !f.Null
}

// Ptr returns nil for absent or null fields, else a pointer to the value.
func (f Field[T]) Ptr() *T {
	if !f.Present() {
		return nil
	}
	v := f.Value
	return &v
}

// Patch maps column names to new values. A nil value writes NULL.
type Patch map[string]any

// Set records the column when the field was supplied.
func Set[T any](p Patch, column string, f Field[T]) {
	if !f.Set {
		return
	}
	if f.Null {
		p[column] = nil
		return
	}
	p[column] = f.Value
}

// SetMapped is Set with a conversion applied to non-null values.
func SetMapped[T any, U any](p Patch, column string, f Field[T], conv func(T) U) {
	if !f.Set {
		return
	}
	if f.Null {
		p[column] = nil
		return
	}
	p[column] = conv(f.Value)
}

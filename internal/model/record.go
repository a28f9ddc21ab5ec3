package model

import (
	"errors"
	"fmt"
)

// ErrMalformedResponse reports a response section with an unexpected shape.
var ErrMalformedResponse = errors.New("malformed forecast response")

// Record is one decoded JSON object.
type Record map[string]any

// Fields plucks names from rec in order. Missing keys yield absent values.
func Fields(rec Record, names ...string) []Value {
	out := make([]Value, len(names))
	for i, name := range names {
		out[i] = rec.Value(name)
	}
	return out
}

// FieldMap plucks names from rec into a map keyed by field name.
func FieldMap(rec Record, names ...string) map[string]Value {
	out := make(map[string]Value, len(names))
	for _, name := range names {
		out[name] = rec.Value(name)
	}
	return out
}

// Value returns the field name, absent if rec is nil or lacks it.
func (r Record) Value(name string) Value {
	if r == nil {
		return Absent()
	}
	v, ok := r[name]
	if !ok {
		return Absent()
	}
	return Present(v)
}

// Section returns the nested object stored under name.
func (r Record) Section(name string) (Record, error) {
	raw, ok := r.Value(name).Get()
	if !ok {
		return nil, fmt.Errorf("%w: missing %q", ErrMalformedResponse, name)
	}
	rec, ok := asRecord(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, not an object", ErrMalformedResponse, name, raw)
	}
	return rec, nil
}

// Entries returns the list of objects stored under name. An absent list is empty.
func (r Record) Entries(name string) ([]Record, error) {
	raw, ok := r.Value(name).Get()
	if !ok {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, not a list", ErrMalformedResponse, name, raw)
	}
	entries := make([]Record, 0, len(list))
	for i, item := range list {
		rec, ok := asRecord(item)
		if !ok {
			return nil, fmt.Errorf("%w: %s[%d] is %T, not an object", ErrMalformedResponse, name, i, item)
		}
		entries = append(entries, rec)
	}
	return entries, nil
}

func asRecord(v any) (Record, bool) {
	switch m := v.(type) {
	case Record:
		return m, true
	case map[string]any:
		return Record(m), true
	}
	return nil, false
}

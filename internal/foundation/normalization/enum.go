// Package normalization maps loosely written configuration strings onto typed
// enum values.
package normalization

import (
	"fmt"
	"sort"
	"strings"
)

// Enum resolves raw strings to values of T after trimming and lower-casing.
type Enum[T comparable] struct {
	name     string
	values   map[string]T
	fallback T
	keys     []string
}

// NewEnum builds an Enum. fallback is returned by Normalize for unknown input.
func NewEnum[T comparable](name string, values map[string]T, fallback T) *Enum[T] {
	e := &Enum[T]{name: name, values: make(map[string]T, len(values)), fallback: fallback}
	for k, v := range values {
		key := Clean(k)
		e.values[key] = v
		e.keys = append(e.keys, key)
	}
	sort.Strings(e.keys)
	return e
}

// Clean is the canonical string form used for lookups.
func Clean(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Lookup reports the value for raw and whether raw named a known value.
func (e *Enum[T]) Lookup(raw string) (T, bool) {
	v, ok := e.values[Clean(raw)]
	return v, ok
}

// Normalize returns the value for raw or the fallback.
func (e *Enum[T]) Normalize(raw string) T {
	if v, ok := e.Lookup(raw); ok {
		return v
	}
	return e.fallback
}

// Parse is Normalize with an error for unknown input.
func (e *Enum[T]) Parse(raw string) (T, error) {
	if v, ok := e.Lookup(raw); ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q, valid options: %s", e.name, raw, strings.Join(e.keys, ", "))
}

// Keys returns the accepted spellings in sorted order.
func (e *Enum[T]) Keys() []string {
	out := make([]string, len(e.keys))
	copy(out, e.keys)
	return out
}

// Result describes one normalization step for warning output.
type Result[T comparable] struct {
	Value   T
	Changed bool
	Known   bool
	Warning string
}

// NormalizeField normalizes raw and describes any coercion applied to field.
func (e *Enum[T]) NormalizeField(field, raw string) Result[T] {
	v, ok := e.Lookup(raw)
	if !ok {
		return Result[T]{
			Value:   e.fallback,
			Changed: true,
			Warning: fmt.Sprintf("unknown %s %q, using %v", field, raw, e.fallback),
		}
	}
	r := Result[T]{Value: v, Known: true}
	if Clean(raw) != raw {
		r.Changed = true
		r.Warning = fmt.Sprintf("normalized %s from %q to %q", field, raw, Clean(raw))
	}
	return r
}

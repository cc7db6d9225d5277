// Package normalization maps loosely written user input onto enum values.
package normalization

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/sitegen/internal/foundation/errors"
)

// Normalizer maps case- and whitespace-insensitive strings onto values of T.
type Normalizer[T comparable] struct {
	name         string
	values       map[string]T
	defaultValue T
	keys         []string
}

// NewNormalizer builds a normalizer for the enum called name. Keys of values
// are normalized the same way input is.
func NewNormalizer[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	n := &Normalizer[T]{
		name:         name,
		values:       make(map[string]T, len(values)),
		defaultValue: defaultValue,
		keys:         make([]string, 0, len(values)),
	}
	for k, v := range values {
		key := normalize(k)
		n.values[key] = v
		n.keys = append(n.keys, key)
	}
	sort.Strings(n.keys)
	return n
}

// Normalize returns the value for raw, or the default when raw is unknown.
// Blank input also yields the default.
func (n *Normalizer[T]) Normalize(raw string) T {
	if v, ok := n.values[normalize(raw)]; ok {
		return v
	}
	return n.defaultValue
}

// Parse is Normalize with a validation error for unknown non-blank input.
func (n *Normalizer[T]) Parse(raw string) (T, error) {
	key := normalize(raw)
	if key == "" {
		return n.defaultValue, nil
	}
	if v, ok := n.values[key]; ok {
		return v, nil
	}
	var zero T
	return zero, errors.ValidationError("invalid "+n.name+" "+strings.TrimSpace(raw)).
		WithContext("valid", strings.Join(n.keys, ", ")).
		Build()
}

// Keys returns the accepted spellings in sorted order.
func (n *Normalizer[T]) Keys() []string {
	return append([]string(nil), n.keys...)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

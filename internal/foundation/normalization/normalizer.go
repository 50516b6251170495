// Package normalization maps user-supplied names (flags, config values,
// query parameters) onto typed enum values.
package normalization

import (
	"sort"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// Normalizer provides type-safe string-to-enum normalization with error handling.
type Normalizer[T comparable] struct {
	name         string
	normalize    Func
	validValues  map[string]T
	defaultValue T
	validKeys    []string // cached for error messages
}

// NewNormalizer creates a normalizer for the enum called name. Keys are
// accepted spellings (aliases included), normalized with defaultNormalization.
func NewNormalizer[T comparable](name string, values map[string]T, defaultValue T) *Normalizer[T] {
	return WithCustomNormalizer(name, values, defaultValue, defaultNormalization)
}

// Func allows custom normalization behavior.
type Func func(string) string

// WithCustomNormalizer creates a normalizer with custom string normalization.
func WithCustomNormalizer[T comparable](name string, values map[string]T, defaultValue T, normalize Func) *Normalizer[T] {
	normalized := make(map[string]T, len(values))
	validKeys := make([]string, 0, len(values))
	for k, v := range values {
		key := normalize(k)
		normalized[key] = v
		validKeys = append(validKeys, key)
	}
	sort.Strings(validKeys)

	return &Normalizer[T]{
		name:         name,
		normalize:    normalize,
		validValues:  normalized,
		defaultValue: defaultValue,
		validKeys:    validKeys,
	}
}

// Normalize converts raw to the enum value, returning the default when the
// spelling is unknown.
func (n *Normalizer[T]) Normalize(raw string) T {
	if value, ok := n.validValues[n.normalize(raw)]; ok {
		return value
	}
	return n.defaultValue
}

// NormalizeWithError converts raw to the enum value or returns a validation
// error listing the accepted spellings.
func (n *Normalizer[T]) NormalizeWithError(raw string) (T, error) {
	if value, ok := n.validValues[n.normalize(raw)]; ok {
		return value, nil
	}
	var zero T
	return zero, errors.ValidationError("unknown "+n.name).
		WithContext(n.name, raw).
		WithContext("valid", strings.Join(n.validKeys, ", ")).
		Build()
}

// IsValid reports whether raw is an accepted spelling.
func (n *Normalizer[T]) IsValid(raw string) bool {
	_, ok := n.validValues[n.normalize(raw)]
	return ok
}

// ValidKeys returns all valid normalized keys.
func (n *Normalizer[T]) ValidKeys() []string {
	out := make([]string, len(n.validKeys))
	copy(out, n.validKeys)
	return out
}

func defaultNormalization(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

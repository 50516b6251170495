package normalization

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

type color string

const (
	red  color = "red"
	blue color = "blue"
)

func newColors() *Normalizer[color] {
	return NewNormalizer("color", map[string]color{"red": red, "Blue": blue, "azure": blue}, red)
}

func TestNormalize(t *testing.T) {
	n := newColors()
	assert.Equal(t, blue, n.Normalize("  BLUE "))
	assert.Equal(t, blue, n.Normalize("azure"))
	assert.Equal(t, red, n.Normalize("green"), "unknown falls back to default")
	assert.True(t, n.IsValid("Red"))
	assert.False(t, n.IsValid("green"))
	assert.Equal(t, []string{"azure", "blue", "red"}, n.ValidKeys())
}

func TestNormalizeWithError(t *testing.T) {
	n := newColors()
	got, err := n.NormalizeWithError("Azure")
	require.NoError(t, err)
	assert.Equal(t, blue, got)

	_, err = n.NormalizeWithError("green")
	require.Error(t, err)
	ce, ok := errors.AsClassified(err)
	require.True(t, ok)
	assert.Equal(t, errors.CategoryValidation, ce.Category())
	assert.Equal(t, "unknown color", ce.Message())
	assert.Equal(t, "green", ce.Context()["color"])
	assert.Equal(t, "azure, blue, red", ce.Context()["valid"])
}

func TestWithCustomNormalizer(t *testing.T) {
	n := WithCustomNormalizer("color", map[string]color{"RED": red}, blue, strings.ToUpper)
	assert.Equal(t, []string{"RED"}, n.ValidKeys())
	assert.Equal(t, red, n.Normalize("red"))
	assert.Equal(t, blue, n.Normalize("green"))
}

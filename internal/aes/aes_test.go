package aes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionalFamilies(t *testing.T) {
	for _, a := range []Aes{X, XMin, XMax, XEnd} {
		assert.True(t, IsPositionalX(a), a.String())
		assert.False(t, IsPositionalY(a), a.String())
	}
	for _, a := range []Aes{Y, YMin, YMax, YEnd, Middle} {
		assert.True(t, IsPositionalY(a), a.String())
	}
	assert.False(t, IsPositional(Color))
	assert.False(t, IsPositional(Size))
}

func TestParse(t *testing.T) {
	got, err := Parse("xmin")
	require.NoError(t, err)
	assert.Equal(t, XMin, got)

	got, err = Parse("colour")
	require.NoError(t, err)
	assert.Equal(t, Color, got)

	_, err = Parse("nope")
	assert.Error(t, err)
}

func TestValuesCoverNames(t *testing.T) {
	assert.Len(t, Values(), len(names))
	for _, a := range Values() {
		assert.NotContains(t, a.String(), "unknown")
	}
}

package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanChunkDirectives_BareForm(t *testing.T) {
	dirs, err := ScanChunkDirectives("a plain @Jewelry chunk reference")
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	assert.Equal(t, "Jewelry", dirs[0].Name)
	assert.Nil(t, dirs[0].Overrides)
	assert.Equal(t, "@Jewelry", dirs[0].Raw)
}

func TestScanChunkDirectives_BracedFormWithOverrides(t *testing.T) {
	dirs, err := ScanChunkDirectives("text @{Jewelry metal=gold, cut=round} more")
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	assert.Equal(t, "Jewelry", dirs[0].Name)
	assert.Equal(t, map[string]string{"metal": "gold", "cut": "round"}, dirs[0].Overrides)
}

func TestScanChunkDirectives_BracedFormNoOverrides(t *testing.T) {
	dirs, err := ScanChunkDirectives("@{Jewelry}")
	require.NoError(t, err)
	require.Len(t, dirs, 1)
	assert.Equal(t, "Jewelry", dirs[0].Name)
	assert.Empty(t, dirs[0].Overrides)
}

func TestScanChunkDirectives_Multiple(t *testing.T) {
	dirs, err := ScanChunkDirectives("@A and @{B k=v} and @C")
	require.NoError(t, err)
	require.Len(t, dirs, 3)
	assert.Equal(t, "A", dirs[0].Name)
	assert.Equal(t, "B", dirs[1].Name)
	assert.Equal(t, "C", dirs[2].Name)
}

func TestScanChunkDirectives_IgnoresEmailLikeText(t *testing.T) {
	dirs, err := ScanChunkDirectives("contact user@ domain, or an email at @")
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestScanChunkDirectives_UnterminatedBraceIsSkipped(t *testing.T) {
	dirs, err := ScanChunkDirectives("@{Unterminated no closing brace")
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestScanChunkDirectives_NoneFound(t *testing.T) {
	dirs, err := ScanChunkDirectives("plain text with {placeholder} only")
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

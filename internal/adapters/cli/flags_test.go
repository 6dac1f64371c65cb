package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSeeds_ExplicitList(t *testing.T) {
	seeds, err := ParseSeeds("1000,1001,1002")
	require.NoError(t, err)
	assert.Equal(t, []int64{1000, 1001, 1002}, seeds)
}

func TestParseSeeds_Range(t *testing.T) {
	seeds, err := ParseSeeds("100-103")
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 101, 102, 103}, seeds)
}

func TestParseSeeds_CountAtStart(t *testing.T) {
	seeds, err := ParseSeeds("5#100")
	require.NoError(t, err)
	assert.Equal(t, []int64{100, 101, 102, 103, 104}, seeds)
}

func TestParseSeeds_Empty(t *testing.T) {
	seeds, err := ParseSeeds("")
	require.NoError(t, err)
	assert.Nil(t, seeds)
}

func TestParseSeeds_InvalidRange(t *testing.T) {
	_, err := ParseSeeds("105-100")
	assert.Error(t, err)
}

func TestParseFixedValues(t *testing.T) {
	vals, err := ParseFixedValues("Hair:blonde|Mood:happy")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Hair": "blonde", "Mood": "happy"}, vals)
}

func TestParseFixedValues_Empty(t *testing.T) {
	vals, err := ParseFixedValues("")
	require.NoError(t, err)
	assert.Nil(t, vals)
}

func TestParseFixedValues_Malformed(t *testing.T) {
	_, err := ParseFixedValues("Hairblonde")
	assert.Error(t, err)
}

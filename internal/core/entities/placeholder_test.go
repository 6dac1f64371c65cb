package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanPlaceholders_Simple(t *testing.T) {
	refs, err := ScanPlaceholders("portrait, {Hair}, {Mood}")
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "Hair", refs[0].Name)
	assert.Equal(t, "Mood", refs[1].Name)
	assert.Nil(t, refs[0].Selector)
	assert.Empty(t, refs[0].Part)
}

func TestScanPlaceholders_Part(t *testing.T) {
	refs, err := ScanPlaceholders("{H:main}, detailed, {H:lora}")
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "main", refs[0].Part)
	assert.Equal(t, "lora", refs[1].Part)
}

func TestScanPlaceholders_Selector(t *testing.T) {
	refs, err := ScanPlaceholders("{H[random:1]}")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	require.NotNil(t, refs[0].Selector)
	assert.Equal(t, SelectorKindRandom, refs[0].Selector.Kind)
}

func TestScanPlaceholders_ComboSelector(t *testing.T) {
	refs, err := ScanPlaceholders("{A[random:10;$5]}")
	require.NoError(t, err)
	require.Len(t, refs, 1)
	require.NotNil(t, refs[0].Selector)
	assert.Equal(t, SelectorKindCombo, refs[0].Selector.Kind)
}

func TestScanPlaceholders_PartAndSelectorIsError(t *testing.T) {
	_, err := ScanPlaceholders("{H:main[random:1]}")
	require.Error(t, err)
	var synErr *SelectorSyntaxError
	assert.ErrorAs(t, err, &synErr)
}

func TestScanPlaceholders_PlainBracesIgnored(t *testing.T) {
	refs, err := ScanPlaceholders("not a { placeholder } at all, nor this {}")
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestScanPlaceholders_UnmatchedBraceIgnored(t *testing.T) {
	refs, err := ScanPlaceholders("dangling { brace with no close")
	require.NoError(t, err)
	assert.Empty(t, refs)
}

func TestScanPlaceholders_FirstOccurrenceOrder(t *testing.T) {
	refs, err := ScanPlaceholders("{B}, {A}, {B}")
	require.NoError(t, err)
	require.Len(t, refs, 3)
	assert.Equal(t, []string{"B", "A", "B"}, []string{refs[0].Name, refs[1].Name, refs[2].Name})
}

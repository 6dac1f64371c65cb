package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_RoundTripSimple(t *testing.T) {
	hair := NewVariationSet("Hair")
	hair.Add("blonde", PartMap{MainPart: "blonde hair"})
	hair.Add("red", PartMap{MainPart: "red hair"})

	mood := NewVariationSet("Mood")
	mood.Add("happy", PartMap{MainPart: "smiling"})
	mood.Add("sad", PartMap{MainPart: "crying"})

	imports := map[string]*VariationSet{"Hair": hair, "Mood": mood}
	applied := map[string]AppliedVariation{
		"Hair": {Key: "blonde"},
		"Mood": {Key: "happy"},
	}

	out, err := Render("portrait, {Hair}, {Mood}", applied, imports)
	require.NoError(t, err)
	assert.Equal(t, "portrait, blonde hair, smiling", out)
}

func TestRender_RoundTripMultiPart(t *testing.T) {
	h := NewVariationSet("H")
	h.Add("pt", PartMap{"main": "ponytail", "lora": "<lora:pt:0.8>"})

	imports := map[string]*VariationSet{"H": h}
	applied := map[string]AppliedVariation{"H": {Key: "pt"}}

	out, err := Render("{H:main}, detailed, {H:lora}, {H}", applied, imports)
	require.NoError(t, err)
	assert.Equal(t, "ponytail, detailed, <lora:pt:0.8>, ponytail", out)
}

func TestRender_UnknownVariationKey(t *testing.T) {
	h := NewVariationSet("H")
	h.Add("a", PartMap{MainPart: "1"})
	imports := map[string]*VariationSet{"H": h}
	applied := map[string]AppliedVariation{"H": {Key: "nope"}}

	_, err := Render("{H}", applied, imports)
	require.Error(t, err)
	var kErr *UnknownVariationKeyError
	assert.ErrorAs(t, err, &kErr)
}

func TestRender_UnknownPart(t *testing.T) {
	h := NewVariationSet("H")
	h.Add("a", PartMap{MainPart: "1"})
	imports := map[string]*VariationSet{"H": h}
	applied := map[string]AppliedVariation{"H": {Key: "a"}}

	_, err := Render("{H:lora}", applied, imports)
	require.Error(t, err)
	var pErr *UnknownPartError
	assert.ErrorAs(t, err, &pErr)
}

func TestRender_MissingApplied(t *testing.T) {
	imports := map[string]*VariationSet{}
	_, err := Render("{Ghost}", map[string]AppliedVariation{}, imports)
	require.Error(t, err)
	var phErr *UnknownPlaceholderError
	assert.ErrorAs(t, err, &phErr)
}

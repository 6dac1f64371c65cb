package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshotFixture struct {
	Prompt     string            `json:"prompt"`
	Negative   string            `json:"negative,omitempty"`
	Seed       int64             `json:"seed"`
	Parameters map[string]string `json:"parameters,omitempty"`
	Warnings   []string          `json:"warnings,omitempty"`
}

func TestEncoder_EncodeJSON_DecodeJSON_RoundTrip(t *testing.T) {
	e := NewEncoder()
	in := snapshotFixture{
		Prompt:     "a photo of a cat",
		Seed:       1234,
		Parameters: map[string]string{"steps": "20"},
	}

	data, err := e.EncodeJSON(in)
	require.NoError(t, err)

	var out snapshotFixture
	require.NoError(t, e.DecodeJSON(data, &out))
	assert.Equal(t, in, out)
}

func TestEncoder_EncodeTOON_SimpleStruct(t *testing.T) {
	e := NewEncoder()
	in := snapshotFixture{
		Prompt: "a-cat",
		Seed:   42,
	}

	data, err := e.EncodeTOON(in)
	require.NoError(t, err)
	s := string(data)

	assert.Contains(t, s, "p:a-cat")
	assert.Contains(t, s, "sd:42")
	// omitempty fields should not appear
	assert.NotContains(t, s, "ng:")
}

func TestEncoder_EncodeTOON_NestedMapAndSlice(t *testing.T) {
	e := NewEncoder()
	in := snapshotFixture{
		Prompt:     "x",
		Seed:       1,
		Parameters: map[string]string{"cfg_scale": "7"},
		Warnings:   []string{"missing-part"},
	}

	data, err := e.EncodeTOON(in)
	require.NoError(t, err)
	s := string(data)

	assert.Contains(t, s, "pr:{cfg_scale:7}")
	assert.Contains(t, s, "w:[missing-part]")
}

func TestEncoder_EncodeTOON_EmptyCollectionsOmitted(t *testing.T) {
	e := NewEncoder()
	in := snapshotFixture{Prompt: "x", Seed: 0}

	data, err := e.EncodeTOON(in)
	require.NoError(t, err)
	s := string(data)

	assert.NotContains(t, s, "pr:")
	assert.NotContains(t, s, "w:")
}

func TestEncoder_EncodeTOON_QuotesComplexStrings(t *testing.T) {
	e := NewEncoder()
	in := snapshotFixture{Prompt: "a photo, with spaces", Seed: 1}

	data, err := e.EncodeTOON(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `p:"a photo, with spaces"`)
}

func TestEncoder_EncodeTOON_BooleanAndNil(t *testing.T) {
	e := NewEncoder()

	type flags struct {
		Enabled bool    `json:"enabled"`
		Label   *string `json:"label"`
	}

	data, err := e.EncodeTOON(flags{Enabled: true, Label: nil})
	require.NoError(t, err)
	s := string(data)
	assert.Contains(t, s, "enabled:T")
	assert.NotContains(t, s, "label:")
}

func TestEncoder_DecodeTOON_FallsBackToJSONForJSONShapedInput(t *testing.T) {
	e := NewEncoder()
	var out snapshotFixture
	err := e.DecodeTOON([]byte(`{"prompt":"x","seed":5}`), &out)
	require.NoError(t, err)
	assert.Equal(t, "x", out.Prompt)
	assert.Equal(t, int64(5), out.Seed)
}

func TestEncoder_DecodeTOON_ErrorsOnNonJSONShapedInput(t *testing.T) {
	e := NewEncoder()
	var out snapshotFixture
	err := e.DecodeTOON([]byte("p:x;sd:5"), &out)
	assert.Error(t, err)
}

func TestAbbreviateKey_KnownAndUnknown(t *testing.T) {
	assert.Equal(t, "p", abbreviateKey("prompt"))
	assert.Equal(t, "sd", abbreviateKey("seed"))
	assert.Equal(t, "custom_field", abbreviateKey("custom_field"))
}

func TestIsSimpleString(t *testing.T) {
	assert.True(t, isSimpleString("seed-42"))
	assert.False(t, isSimpleString("has spaces"))
	assert.False(t, isSimpleString(""))
}

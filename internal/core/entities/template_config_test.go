package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountPromptMarkers(t *testing.T) {
	assert.Equal(t, 0, CountPromptMarkers("no marker here"))
	assert.Equal(t, 1, CountPromptMarkers("a {prompt} b"))
	assert.Equal(t, 2, CountPromptMarkers("{prompt} and {prompt} again"))
}

func TestTemplateConfig_Validate(t *testing.T) {
	valid := &TemplateConfig{Text: "portrait of {prompt}, detailed"}
	assert.NoError(t, valid.Validate())

	noMarker := &TemplateConfig{Text: "portrait, detailed"}
	require.Error(t, noMarker.Validate())

	doubleMarker := &TemplateConfig{Text: "{prompt} {prompt}"}
	require.Error(t, doubleMarker.Validate())
}

func TestInjectPrompt(t *testing.T) {
	out := InjectPrompt("portrait of {prompt}, detailed", "a cat")
	assert.Equal(t, "portrait of a cat, detailed", out)
}

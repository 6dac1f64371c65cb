package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madstone-tech/loko/internal/core/entities"
)

func TestTemplateResolver_ExpandsChunksThenScansPlaceholders(t *testing.T) {
	reader := newFakeReader()
	reader.add("ring.chunk.yaml", entities.SourceKindChunk, map[string]any{
		"text": "{Metal} ring",
	}, nil)

	expander := NewChunkExpander(NewInheritanceResolver(NewLoader(reader), 0), 0)
	resolver := NewTemplateResolver(expander)

	merged := &MergedConfig{
		TemplateText: "wearing @Ring, {Mood}",
		Imports: map[string]entities.ImportRef{
			"Ring": {Kind: entities.ImportRefChunkPath, Path: "ring.chunk.yaml"},
		},
	}

	rc, names, _, err := resolver.Resolve(context.Background(), merged)
	require.NoError(t, err)
	assert.Equal(t, "wearing {Metal} ring, {Mood}", rc.TemplateText)
	assert.Equal(t, []string{"Metal", "Mood"}, names)
	require.Len(t, rc.References, 2)
}

func TestTemplateResolver_LastOccurrenceWeightWins(t *testing.T) {
	expander := NewChunkExpander(NewInheritanceResolver(NewLoader(newFakeReader()), 0), 0)
	resolver := NewTemplateResolver(expander)

	merged := &MergedConfig{TemplateText: "{A[$1]} and {A[$5]}"}
	rc, _, _, err := resolver.Resolve(context.Background(), merged)
	require.NoError(t, err)
	require.Len(t, rc.References, 2)
	for _, ref := range rc.References {
		w, ok := ref.Selector.HasExplicitWeight()
		require.True(t, ok)
		assert.Equal(t, 5, w)
	}
}

package usecases

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madstone-tech/loko/internal/core/entities"
)

func TestDecodeTemplateConfig(t *testing.T) {
	src := &entities.Source{
		Path: "t.yaml",
		Kind: entities.SourceKindTemplate,
		Raw: map[string]any{
			"text":     "before {prompt} after",
			"negative": "blurry",
			"parent":   "base.yaml",
			"imports": map[string]any{
				"Hair": "hair.yaml",
			},
		},
	}

	cfg, err := decodeTemplateConfig(src)
	require.NoError(t, err)
	assert.Equal(t, "before {prompt} after", cfg.Text)
	assert.Equal(t, "base.yaml", cfg.Parent)
	require.Contains(t, cfg.Imports, "Hair")
	assert.Equal(t, entities.ImportRefPath, cfg.Imports["Hair"].Kind)
}

func TestDecodePromptConfig_DefaultsGenerationFields(t *testing.T) {
	src := &entities.Source{
		Path: "p.yaml",
		Kind: entities.SourceKindPrompt,
		Raw: map[string]any{
			"text":       "a prompt",
			"generation": map[string]any{},
		},
	}

	cfg, err := decodePromptConfig(src)
	require.NoError(t, err)
	assert.Equal(t, entities.GenerationModeCombinatorial, cfg.Generation.Mode)
	assert.Equal(t, entities.SeedModeFixed, cfg.Generation.SeedMode)
}

func TestDecodePromptConfig_HonoursExplicitGenerationFields(t *testing.T) {
	src := &entities.Source{
		Path: "p.yaml",
		Kind: entities.SourceKindPrompt,
		Raw: map[string]any{
			"text": "a prompt",
			"generation": map[string]any{
				"mode":       "random",
				"seed_mode":  "random",
				"seed":       42,
				"max_images": 10,
			},
		},
	}

	cfg, err := decodePromptConfig(src)
	require.NoError(t, err)
	assert.Equal(t, entities.GenerationModeRandom, cfg.Generation.Mode)
	assert.Equal(t, entities.SeedModeRandom, cfg.Generation.SeedMode)
	assert.EqualValues(t, 42, cfg.Generation.Seed)
	assert.Equal(t, 10, cfg.Generation.MaxImages)
}

func TestDecodeChunkConfig(t *testing.T) {
	src := &entities.Source{
		Path: "c.yaml",
		Kind: entities.SourceKindChunk,
		Raw: map[string]any{
			"text":       "a <metal> ring",
			"defaults":   map[string]string{"metal": "gold"},
			"sub_chunks": []string{"sub.chunk.yaml"},
			"parent":     "base.chunk.yaml",
		},
	}

	cfg, err := decodeChunkConfig(src)
	require.NoError(t, err)
	assert.Equal(t, "a <metal> ring", cfg.Text)
	assert.Equal(t, "gold", cfg.Defaults["metal"])
	assert.Equal(t, []string{"sub.chunk.yaml"}, cfg.SubChunks)
	assert.Equal(t, "base.chunk.yaml", cfg.Parent)
}

func TestDecodeVariationSetSource_PreservesOrderAndSkipsTypeKey(t *testing.T) {
	src := &entities.Source{
		Path:  "hair.yaml",
		Kind:  entities.SourceKindVariationSet,
		Raw:   map[string]any{"type": "variations", "blonde": "blonde hair", "red": "red hair"},
		Order: []string{"type", "blonde", "red"},
	}

	vs, err := decodeVariationSetSource(src)
	require.NoError(t, err)
	assert.Equal(t, []string{"blonde", "red"}, vs.Keys)
}

func TestDecodeImportRefValue_AllKinds(t *testing.T) {
	pathRef, err := decodeImportRefValue("p.yaml", "Hair", "hair.yaml")
	require.NoError(t, err)
	assert.Equal(t, entities.ImportRefPath, pathRef.Kind)

	listRef, err := decodeImportRefValue("p.yaml", "Hair", []any{"a.yaml", "b.yaml"})
	require.NoError(t, err)
	assert.Equal(t, entities.ImportRefPathList, listRef.Kind)
	assert.Equal(t, []string{"a.yaml", "b.yaml"}, listRef.Paths)

	literalRef, err := decodeImportRefValue("p.yaml", "Hair", map[string]any{"blonde": "blonde hair"})
	require.NoError(t, err)
	assert.Equal(t, entities.ImportRefLiteral, literalRef.Kind)
	assert.Equal(t, []string{"blonde"}, literalRef.LiteralOrder)

	_, err = decodeImportRefValue("p.yaml", "Hair", 5)
	require.Error(t, err)
}

package usecases

import (
	"fmt"
	"sort"

	"github.com/go-viper/mapstructure/v2"

	"github.com/madstone-tech/loko/internal/core/entities"
)

// rawGenerationDoc mirrors the authored "generation" block (spec §4.1 rule
// 1, §4.6.2) prior to typed conversion.
type rawGenerationDoc struct {
	Mode      string `mapstructure:"mode"`
	SeedMode  string `mapstructure:"seed_mode"`
	Seed      int64  `mapstructure:"seed"`
	MaxImages int    `mapstructure:"max_images"`
}

type rawTemplateDoc struct {
	Text       string         `mapstructure:"text"`
	Negative   string         `mapstructure:"negative"`
	Parameters map[string]any `mapstructure:"parameters"`
	Parent     string         `mapstructure:"parent"`
}

type rawPromptDoc struct {
	Parent     string           `mapstructure:"parent"`
	Text       string           `mapstructure:"text"`
	Negative   string           `mapstructure:"negative"`
	Parameters map[string]any   `mapstructure:"parameters"`
	Generation rawGenerationDoc `mapstructure:"generation"`
	Theme      string           `mapstructure:"theme"`
	ThemeFile  string           `mapstructure:"theme_file"`
	Style      string           `mapstructure:"style"`
}

type rawChunkDoc struct {
	Text      string            `mapstructure:"text"`
	Defaults  map[string]string `mapstructure:"defaults"`
	SubChunks []string          `mapstructure:"sub_chunks"`
	Parent    string            `mapstructure:"parent"`
}

// decodeInto decodes a loosely-typed YAML mapping into a strongly-typed
// struct, tolerating the usual YAML scalar looseness (ints parsed as
// strings, etc.) via weak typing.
func decodeInto(raw map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

func decodeTemplateConfig(src *entities.Source) (*entities.TemplateConfig, error) {
	var doc rawTemplateDoc
	if err := decodeInto(src.Raw, &doc); err != nil {
		return nil, &entities.MalformedSourceError{Path: src.Path, Detail: err.Error(), Err: err}
	}
	imports, err := decodeImportRefs(src.Path, src.Raw)
	if err != nil {
		return nil, err
	}
	return &entities.TemplateConfig{
		Text:       doc.Text,
		Negative:   doc.Negative,
		Parameters: doc.Parameters,
		Imports:    imports,
		Parent:     doc.Parent,
	}, nil
}

func decodePromptConfig(src *entities.Source) (*entities.PromptConfig, error) {
	var doc rawPromptDoc
	if err := decodeInto(src.Raw, &doc); err != nil {
		return nil, &entities.MalformedSourceError{Path: src.Path, Detail: err.Error(), Err: err}
	}
	imports, err := decodeImportRefs(src.Path, src.Raw)
	if err != nil {
		return nil, err
	}

	mode := entities.GenerationMode(doc.Generation.Mode)
	if mode == "" {
		mode = entities.GenerationModeCombinatorial
	}
	seedMode := entities.SeedMode(doc.Generation.SeedMode)
	if seedMode == "" {
		seedMode = entities.SeedModeFixed
	}

	return &entities.PromptConfig{
		Parent:     doc.Parent,
		Text:       doc.Text,
		Negative:   doc.Negative,
		Parameters: doc.Parameters,
		Imports:    imports,
		Generation: entities.GenerationBlock{
			Mode:      mode,
			SeedMode:  seedMode,
			Seed:      doc.Generation.Seed,
			MaxImages: doc.Generation.MaxImages,
		},
		Theme:     doc.Theme,
		ThemeFile: doc.ThemeFile,
		Style:     doc.Style,
	}, nil
}

func decodeChunkConfig(src *entities.Source) (*entities.ChunkConfig, error) {
	var doc rawChunkDoc
	if err := decodeInto(src.Raw, &doc); err != nil {
		return nil, &entities.MalformedSourceError{Path: src.Path, Detail: err.Error(), Err: err}
	}
	imports, err := decodeImportRefs(src.Path, src.Raw)
	if err != nil {
		return nil, err
	}
	return &entities.ChunkConfig{
		Text:      doc.Text,
		Defaults:  doc.Defaults,
		Imports:   imports,
		SubChunks: doc.SubChunks,
		Parent:    doc.Parent,
	}, nil
}

// decodeVariationSetSource builds a VariationSet directly from a loaded
// source's raw body, preserving the authored top-level key order recorded
// by the loader. The "type" key, if present (spec §4.1 rule 2), is not
// itself a variation entry and is skipped.
func decodeVariationSetSource(src *entities.Source) (*entities.VariationSet, error) {
	order := make([]string, 0, len(src.Order))
	for _, k := range src.Order {
		if k == "type" {
			continue
		}
		order = append(order, k)
	}
	name := src.Path
	vs, ok := entities.BuildVariationSet(name, order, src.Raw)
	if !ok {
		return nil, &entities.SchemaViolationError{
			Detail: fmt.Sprintf("variation set %q mixes unsupported entry shapes", src.Path),
		}
	}
	return vs, nil
}

// decodeImportRefs parses the "imports" mapping of a template/prompt/chunk
// document into typed ImportRef values (spec §4.4 step 1).
func decodeImportRefs(path string, raw map[string]any) (map[string]entities.ImportRef, error) {
	importsRaw, ok := raw["imports"]
	if !ok {
		return nil, nil
	}
	m, ok := importsRaw.(map[string]any)
	if !ok {
		return nil, &entities.SchemaViolationError{Detail: fmt.Sprintf("%s: imports must be a mapping", path)}
	}

	out := make(map[string]entities.ImportRef, len(m))
	for name, v := range m {
		ref, err := decodeImportRefValue(path, name, v)
		if err != nil {
			return nil, err
		}
		out[name] = ref
	}
	return out, nil
}

func decodeImportRefValue(path, name string, v any) (entities.ImportRef, error) {
	switch val := v.(type) {
	case string:
		return entities.ImportRef{Kind: entities.ImportRefPath, Path: val}, nil

	case []any:
		paths := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return entities.ImportRef{}, &entities.SchemaViolationError{
					Detail: fmt.Sprintf("%s: import %q path-list entries must be strings", path, name),
				}
			}
			paths = append(paths, s)
		}
		return entities.ImportRef{Kind: entities.ImportRefPathList, Paths: paths}, nil

	case map[string]any:
		// Inline literal variation set. Authoring order of a nested mapping
		// cannot be recovered from map[string]any; sorted key order is used
		// as a stable, documented fallback (spec §9's open-question policy
		// applies equally here: pick a stable rule and keep it fixed).
		order := sortedKeys(val)
		return entities.ImportRef{Kind: entities.ImportRefLiteral, Literal: val, LiteralOrder: order}, nil

	default:
		return entities.ImportRef{}, &entities.SchemaViolationError{
			Detail: fmt.Sprintf("%s: import %q has an unsupported value type", path, name),
		}
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Package config provides the on-disk SourceReader and theme-discovery
// adapters for the template resolution core, plus XDG path resolution and
// the CoreDefaults TOML loader.
package config

import (
	"context"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/madstone-tech/loko/internal/core/entities"
)

// suffixClassification maps the filename suffix convention of spec §4.1
// rule 3 to a SourceKind. It is consulted only when the document carries
// neither a generation block nor a type field.
var suffixClassification = []struct {
	pattern *entities.GlobMatcher
	kind    entities.SourceKind
}{
	{entities.NewGlobMatcher("*.chunk.*"), entities.SourceKindChunk},
	{entities.NewGlobMatcher("*.adetailer.*"), entities.SourceKindChunk},
	{entities.NewGlobMatcher("*.controlnet.*"), entities.SourceKindChunk},
	{entities.NewGlobMatcher("*.template.*"), entities.SourceKindTemplate},
	{entities.NewGlobMatcher("*.prompt.*"), entities.SourceKindPrompt},
}

// typeFieldKind maps the authored "type" field value to a SourceKind
// (spec §4.1 rule 2).
var typeFieldKind = map[string]entities.SourceKind{
	"template":     entities.SourceKindTemplate,
	"prompt":       entities.SourceKindPrompt,
	"chunk":        entities.SourceKindChunk,
	"theme_config": entities.SourceKindTheme,
	"variations":   entities.SourceKindVariationSet,
}

// Loader implements usecases.SourceReader, reading YAML source documents
// from a configs-root directory on disk.
type Loader struct {
	root string
}

// NewLoader creates a source reader rooted at configsRoot. Relative paths
// passed to Read and Canonicalize are resolved against it.
func NewLoader(configsRoot string) *Loader {
	return &Loader{root: configsRoot}
}

// Canonicalize resolves path relative to the configs-root and cleans it,
// so that two relative spellings of the same file collapse to one cache
// key and one cycle-detection stack entry (spec §4.1).
func (l *Loader) Canonicalize(ctx context.Context, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Clean(filepath.Join(l.root, path)), nil
}

// Read loads and parses the YAML document at path and classifies it per
// spec §4.1's three-rule cascade, in evaluation order: generation block,
// then type field, then filename suffix, defaulting to template.
func (l *Loader) Read(ctx context.Context, path string) (*entities.Source, error) {
	canonical, err := l.Canonicalize(ctx, path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(canonical)
	if err != nil {
		return nil, &entities.MissingSourceError{Path: path, Err: err}
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, &entities.MalformedSourceError{Path: path, Detail: err.Error(), Err: err}
	}
	if raw == nil {
		raw = map[string]any{}
	}

	order, err := topLevelKeyOrder(data)
	if err != nil {
		return nil, &entities.MalformedSourceError{Path: path, Detail: err.Error(), Err: err}
	}

	kind, err := classify(canonical, raw)
	if err != nil {
		return nil, err
	}

	return &entities.Source{Path: canonical, Kind: kind, Raw: raw, Order: order}, nil
}

// topLevelKeyOrder re-parses data via yaml.Node to recover the authored
// top-level key order, which a plain map[string]any decode discards. Needed
// for variation-set entries, whose positional order the selector grammar
// and combinatorial enumeration depend on (spec §4.5.3, §9).
func topLevelKeyOrder(data []byte) ([]string, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	mapping := doc.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, nil
	}
	order := make([]string, 0, len(mapping.Content)/2)
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		order = append(order, mapping.Content[i].Value)
	}
	return order, nil
}

func classify(path string, raw map[string]any) (entities.SourceKind, error) {
	if _, hasGeneration := raw["generation"]; hasGeneration {
		return entities.SourceKindPrompt, nil
	}

	if typeVal, ok := raw["type"]; ok {
		if typeStr, ok := typeVal.(string); ok {
			if kind, known := typeFieldKind[typeStr]; known {
				return kind, nil
			}
		}
	}

	name := filepath.Base(path)
	for _, rule := range suffixClassification {
		if rule.pattern.Match(name) {
			return rule.kind, nil
		}
	}

	return entities.SourceKindTemplate, nil
}

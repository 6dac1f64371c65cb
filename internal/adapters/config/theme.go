package config

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/madstone-tech/loko/internal/core/entities"
)

// ThemeStore implements explicit and implicit theme discovery (spec §4.3).
// An explicit theme is a single YAML source carrying its own import map; an
// implicit theme is discovered from a directory of per-placeholder files
// named "{theme}-{placeholder}[.{style}].yaml".
type ThemeStore struct {
	themesDir string
}

// NewThemeStore creates a theme store rooted at themesDir, the directory
// implicit discovery scans.
func NewThemeStore(themesDir string) *ThemeStore {
	return &ThemeStore{themesDir: themesDir}
}

// themeDoc is the YAML shape of an explicit theme file: a flat mapping
// from "N" or "N.style" to either an import path/path-list or the
// RemoveSentinel string.
type themeDoc struct {
	Name    string         `yaml:"name"`
	Imports map[string]any `yaml:"imports"`
}

// LoadExplicit parses a single theme file at path into a ThemeConfig.
func (s *ThemeStore) LoadExplicit(path string) (*entities.ThemeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &entities.MissingSourceError{Path: path, Err: err}
	}

	var doc themeDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &entities.MalformedSourceError{Path: path, Detail: err.Error(), Err: err}
	}

	name := doc.Name
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	theme := entities.NewThemeConfig(name)

	for key, val := range doc.Imports {
		if err := applyThemeValue(theme, key, val); err != nil {
			return nil, err
		}
	}
	return theme, nil
}

// LoadImplicit discovers a theme's per-placeholder files within themesDir
// by the "{theme}-{placeholder}[.{style}].yaml" naming convention and
// assembles them into one ThemeConfig, keyed by "N" or "N.style".
func (s *ThemeStore) LoadImplicit(theme string) (*entities.ThemeConfig, error) {
	entries, err := os.ReadDir(s.themesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return entities.NewThemeConfig(theme), nil
		}
		return nil, &entities.MissingSourceError{Path: s.themesDir, Err: err}
	}

	cfg := entities.NewThemeConfig(theme)
	prefix := theme + "-"

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !hasYAMLSuffix(name) || !strings.HasPrefix(name, prefix) {
			continue
		}

		placeholder, style := parseImplicitThemeFile(name, prefix)
		path := filepath.Join(s.themesDir, name)

		value, err := readImplicitValue(path)
		if err != nil {
			return nil, err
		}

		key := placeholder
		if style != "" {
			key = placeholder + "." + style
		}
		if err := applyThemeValue(cfg, key, value); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// parseImplicitThemeFile strips prefix (the "{theme}-" part) from name and
// splits the remaining "{placeholder}[.{style}].yaml" into its placeholder
// and optional style components.
func parseImplicitThemeFile(name, prefix string) (placeholder, style string) {
	trimmed := strings.TrimPrefix(name, prefix)
	trimmed = strings.TrimSuffix(trimmed, filepath.Ext(trimmed))

	if idx := strings.LastIndex(trimmed, "."); idx >= 0 {
		return trimmed[:idx], trimmed[idx+1:]
	}
	return trimmed, ""
}

// readImplicitValue reads a per-placeholder theme file, which contains
// either the bare RemoveSentinel string or a "path"/"paths" import value.
func readImplicitValue(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &entities.MissingSourceError{Path: path, Err: err}
	}
	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, &entities.MalformedSourceError{Path: path, Detail: err.Error(), Err: err}
	}
	return value, nil
}

// applyThemeValue normalises one theme import-map entry into cfg's
// Imports/Removed sets.
func applyThemeValue(cfg *entities.ThemeConfig, key string, value any) error {
	if s, ok := value.(string); ok && s == entities.RemoveSentinel {
		cfg.Removed[key] = true
		return nil
	}

	switch v := value.(type) {
	case string:
		cfg.Imports[key] = entities.ImportRef{Kind: entities.ImportRefPath, Path: v}
	case map[string]any:
		if pathVal, ok := v["path"].(string); ok {
			cfg.Imports[key] = entities.ImportRef{Kind: entities.ImportRefPath, Path: pathVal}
			return nil
		}
		if pathsVal, ok := v["paths"].([]any); ok {
			paths := make([]string, 0, len(pathsVal))
			for _, p := range pathsVal {
				if ps, ok := p.(string); ok {
					paths = append(paths, ps)
				}
			}
			cfg.Imports[key] = entities.ImportRef{Kind: entities.ImportRefPathList, Paths: paths}
			return nil
		}
		return &entities.SchemaViolationError{Detail: "theme import " + key + " is neither a path, path-list, nor [Remove]"}
	default:
		return &entities.SchemaViolationError{Detail: "theme import " + key + " has an unrecognised shape"}
	}
	return nil
}

// hasYAMLSuffix reports whether name ends in .yaml or .yml.
func hasYAMLSuffix(name string) bool {
	return strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")
}

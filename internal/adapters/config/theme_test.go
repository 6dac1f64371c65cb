package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madstone-tech/loko/internal/core/entities"
)

func TestThemeStore_LoadExplicit_ParsesImportsAndRemove(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "fancy.yaml", `
name: fancy
imports:
  Hair: hair-fancy.yaml
  Jewelry: "[Remove]"
  Makeup.bold:
    paths:
      - makeup-a.yaml
      - makeup-b.yaml
`)

	store := NewThemeStore(root)
	theme, err := store.LoadExplicit(filepath.Join(root, "fancy.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "fancy", theme.Name)
	assert.Equal(t, "hair-fancy.yaml", theme.Imports["Hair"].Path)
	assert.True(t, theme.Removed["Jewelry"])
	assert.Equal(t, []string{"makeup-a.yaml", "makeup-b.yaml"}, theme.Imports["Makeup.bold"].Paths)
}

func TestThemeStore_LoadExplicit_DefaultsNameFromFilename(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "restricted.yaml", "imports: {}\n")

	store := NewThemeStore(root)
	theme, err := store.LoadExplicit(filepath.Join(root, "restricted.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "restricted", theme.Name)
}

func TestThemeStore_LoadExplicit_MissingFile(t *testing.T) {
	store := NewThemeStore(t.TempDir())
	_, err := store.LoadExplicit("/nope/fancy.yaml")
	require.Error(t, err)
	var missing *entities.MissingSourceError
	require.ErrorAs(t, err, &missing)
}

func TestThemeStore_LoadImplicit_AssemblesFromPerPlaceholderFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "fancy-Hair.yaml", "hair-fancy.yaml\n")
	writeFile(t, root, "fancy-Jewelry.safe.yaml", "\"[Remove]\"\n")
	writeFile(t, root, "other-Hair.yaml", "hair-other.yaml\n")

	store := NewThemeStore(root)
	theme, err := store.LoadImplicit("fancy")
	require.NoError(t, err)
	assert.Equal(t, "hair-fancy.yaml", theme.Imports["Hair"].Path)
	assert.True(t, theme.Removed["Jewelry.safe"])
	assert.NotContains(t, theme.Imports, "Hair.other")
}

func TestThemeStore_LoadImplicit_MissingDirReturnsEmptyTheme(t *testing.T) {
	store := NewThemeStore(filepath.Join(t.TempDir(), "does-not-exist"))
	theme, err := store.LoadImplicit("fancy")
	require.NoError(t, err)
	assert.Empty(t, theme.Imports)
	assert.Empty(t, theme.Removed)
}

func TestThemeStore_LoadExplicit_UnrecognisedImportShapeFails(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "bad.yaml", "imports:\n  Hair:\n    bogus: true\n")

	store := NewThemeStore(root)
	_, err := store.LoadExplicit(filepath.Join(root, "bad.yaml"))
	require.Error(t, err)
	var schemaErr *entities.SchemaViolationError
	require.ErrorAs(t, err, &schemaErr)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/madstone-tech/loko/internal/core/entities"
)

func newResolverForTest(t *testing.T, configHome string) *XDGPathResolver {
	t.Helper()
	return &XDGPathResolver{paths: entities.XDGPaths{
		ConfigHome: configHome,
		DataHome:   filepath.Join(configHome, "data"),
		CacheHome:  filepath.Join(configHome, "cache"),
	}}
}

func TestDefaultsLoader_Load_FallsBackToBuiltInsWhenNoFilesExist(t *testing.T) {
	resolver := newResolverForTest(t, filepath.Join(t.TempDir(), "config"))
	loader := NewDefaultsLoader(resolver)

	cfg, err := loader.Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:7860", cfg.BackendURL)
	assert.Equal(t, "default", cfg.DefaultStyle)
	assert.Equal(t, 16, cfg.MaxImportDepth)
}

func TestDefaultsLoader_Load_GlobalThenProjectOverride(t *testing.T) {
	configHome := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.MkdirAll(configHome, 0o755))
	resolver := newResolverForTest(t, configHome)
	loader := NewDefaultsLoader(resolver)

	require.NoError(t, os.WriteFile(resolver.ConfigFile(), []byte("default_style = \"moody\"\n"), 0o644))

	projectRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(projectRoot, "lokoprompt.toml"), []byte("default_style = \"vivid\"\n"), 0o644))

	cfg, err := loader.Load(projectRoot)
	require.NoError(t, err)
	assert.Equal(t, "vivid", cfg.DefaultStyle)
}

func TestDefaultsLoader_Load_MalformedGlobalFileFails(t *testing.T) {
	configHome := filepath.Join(t.TempDir(), "config")
	require.NoError(t, os.MkdirAll(configHome, 0o755))
	resolver := newResolverForTest(t, configHome)
	loader := NewDefaultsLoader(resolver)

	require.NoError(t, os.WriteFile(resolver.ConfigFile(), []byte("not = [valid toml"), 0o644))

	_, err := loader.Load("")
	require.Error(t, err)
}

func TestDefaultsLoader_Save_WritesGlobalFile(t *testing.T) {
	configHome := filepath.Join(t.TempDir(), "config")
	resolver := newResolverForTest(t, configHome)
	loader := NewDefaultsLoader(resolver)

	cfg := entities.DefaultCoreDefaults()
	cfg.DefaultStyle = "noir"
	require.NoError(t, loader.Save(cfg))

	loaded, err := loader.Load("")
	require.NoError(t, err)
	assert.Equal(t, "noir", loaded.DefaultStyle)
}

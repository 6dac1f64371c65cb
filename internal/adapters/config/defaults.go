package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/madstone-tech/loko/internal/core/entities"
)

// DefaultsLoader reads the CoreDefaults configuration object from
// config.toml, global then project-local, mirroring the teacher's
// loko.toml loading convention (global overridden by project-local).
type DefaultsLoader struct {
	paths *XDGPathResolver
}

// NewDefaultsLoader creates a defaults loader rooted at the given
// XDG path resolver.
func NewDefaultsLoader(paths *XDGPathResolver) *DefaultsLoader {
	return &DefaultsLoader{paths: paths}
}

// Load reads the global config file, then a project-local "lokoprompt.toml"
// under projectRoot if present, applying each on top of
// entities.DefaultCoreDefaults(). An absent file at either location is not
// an error; a malformed one is.
func (l *DefaultsLoader) Load(projectRoot string) (*entities.CoreDefaults, error) {
	cfg := entities.DefaultCoreDefaults()
	cfg.ConfigsRoot = l.paths.Paths().ConfigsDir()
	cfg.ThemesRoot = l.paths.Paths().ThemesDir()
	cfg.OutputRoot = l.paths.DataDir()

	globalPath := l.paths.ConfigFile()
	if err := l.applyFile(globalPath, cfg); err != nil {
		return nil, fmt.Errorf("loading global defaults: %w", err)
	}

	if projectRoot != "" {
		projectPath := filepath.Join(projectRoot, "lokoprompt.toml")
		if err := l.applyFile(projectPath, cfg); err != nil {
			return nil, fmt.Errorf("loading project defaults: %w", err)
		}
	}

	return cfg, nil
}

func (l *DefaultsLoader) applyFile(path string, cfg *entities.CoreDefaults) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	return toml.Unmarshal(data, cfg)
}

// Save persists cfg to the global config file, creating its parent
// directory if necessary.
func (l *DefaultsLoader) Save(cfg *entities.CoreDefaults) error {
	path := l.paths.ConfigFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding defaults: %w", err)
	}

	header := "# lokoprompt core defaults\n\n"
	return os.WriteFile(path, append([]byte(header), data...), 0o644)
}

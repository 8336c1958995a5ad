package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// LoadAsteroids loads and validates the asteroids configuration.
// Search order: customPath -> ~/.skirmish/asteroids.yaml -> ./configs/asteroids.yaml -> embedded default
func LoadAsteroids(customPath string) (AsteroidsConfig, error) {
	cfg, err := load("asteroids.yaml", customPath, defaultAsteroidsYAML, DefaultAsteroidsConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("asteroids config: %w", err)
	}
	return cfg, nil
}

// LoadTurns loads and validates the battle configuration.
// Search order: customPath -> ~/.skirmish/turns.yaml -> ./configs/turns.yaml -> embedded default
func LoadTurns(customPath string) (TurnsConfig, error) {
	cfg, err := load("turns.yaml", customPath, defaultTurnsYAML, DefaultTurnsConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("turns config: %w", err)
	}
	return cfg, nil
}

// load decodes on top of the hardcoded defaults, so a file only has to name the keys it
// changes. A custom path that cannot be read or parsed is an error. A missing file in the
// other locations is skipped, and one that does not parse is skipped with a warning.
func load[T any](filename, customPath string, embedded []byte, fallback func() T) (T, error) {
	cfg := fallback()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := fallback()
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			log.Warn("ignoring config", "path", path, "err", err)
			continue
		}
		return candidate, nil
	}

	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skirmish", filename)
}

package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/plus3/skirmish/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestEmbeddedAsteroidsDefaults(t *testing.T) {
	isolate(t)

	cfg, err := config.LoadAsteroids("")
	require.NoError(t, err)

	assert.Equal(t, float32(1200), cfg.Arena.Width)
	assert.Equal(t, float32(640), cfg.Arena.Height)
	assert.Equal(t, 60.0, cfg.Arena.FixedHz)
	assert.Equal(t, float32(100), cfg.Player.MovementSpeed)
	assert.Equal(t, float32(5), cfg.Player.RotationSpeed)
	assert.Equal(t, float32(3), cfg.Ships.RotationSpeed)
	assert.Equal(t, float32(50), cfg.Rocks.RotationSpeed)
	assert.Equal(t, []config.RockSize{{Radius: 10, Sides: 5}, {Radius: 25, Sides: 8}, {Radius: 30, Sides: 6}, {Radius: 40, Sides: 9}}, cfg.Rocks.Sizes)
	assert.Equal(t, 5, cfg.Spawners.Life)
	assert.InDelta(t, 1.0/3, cfg.Arena.ExclusionScale, 1e-6)
}

func TestEmbeddedMatchesHardcoded(t *testing.T) {
	isolate(t)

	turns, err := config.LoadTurns("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTurnsConfig(), turns)

	asteroids, err := config.LoadAsteroids("")
	require.NoError(t, err)
	want := config.DefaultAsteroidsConfig()
	want.Arena.ExclusionScale = asteroids.Arena.ExclusionScale
	assert.Equal(t, want, asteroids)
}

func TestCustomPathOverridesOnlyGivenKeys(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "fast.yaml")
	writeFile(t, path, "player:\n  movement_speed: 250\nrocks:\n  sizes:\n    - { radius: 12, sides: 3 }\n")

	cfg, err := config.LoadAsteroids(path)
	require.NoError(t, err)
	assert.Equal(t, float32(250), cfg.Player.MovementSpeed)
	assert.Equal(t, float32(5), cfg.Player.RotationSpeed)
	assert.Equal(t, []config.RockSize{{Radius: 12, Sides: 3}}, cfg.Rocks.Sizes)
}

func TestUserConfigDirectory(t *testing.T) {
	home := isolate(t)
	writeFile(t, filepath.Join(home, ".skirmish", "turns.yaml"), "turn_seconds: 3\n")

	cfg, err := config.LoadTurns("")
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.TurnSeconds)
	assert.Len(t, cfg.Players, 4)
}

func TestBrokenUserConfigIsSkippedWithWarning(t *testing.T) {
	defer log.SetDefault(log.Default())
	var buf bytes.Buffer
	log.SetDefault(log.New(&buf))

	home := isolate(t)
	path := filepath.Join(home, ".skirmish", "turns.yaml")
	writeFile(t, path, "turn_seconds: [\n")

	cfg, err := config.LoadTurns("")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTurnsConfig().TurnSeconds, cfg.TurnSeconds)
	assert.Contains(t, buf.String(), "ignoring config")
	assert.Contains(t, buf.String(), path)
}

func TestCustomPathErrors(t *testing.T) {
	isolate(t)

	_, err := config.LoadAsteroids(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	writeFile(t, bad, "arena: [1, 2\n")
	_, err = config.LoadAsteroids(bad)
	assert.ErrorContains(t, err, "failed to parse config")

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	writeFile(t, invalid, "rocks:\n  sizes: []\n")
	_, err = config.LoadAsteroids(invalid)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestAsteroidsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.AsteroidsConfig)
	}{
		{"zero width", func(c *config.AsteroidsConfig) { c.Arena.Width = 0 }},
		{"exclusion covers spawn area", func(c *config.AsteroidsConfig) { c.Arena.ExclusionScale = 1 }},
		{"play area too big", func(c *config.AsteroidsConfig) { c.Arena.PlayScale = 1.5 }},
		{"no fixed rate", func(c *config.AsteroidsConfig) { c.Arena.FixedHz = 0 }},
		{"still player", func(c *config.AsteroidsConfig) { c.Player.MovementSpeed = 0 }},
		{"no ship interval", func(c *config.AsteroidsConfig) { c.Ships.SpawnInterval = 0 }},
		{"no rock sizes", func(c *config.AsteroidsConfig) { c.Rocks.Sizes = nil }},
		{"degenerate rock", func(c *config.AsteroidsConfig) { c.Rocks.Sizes[0].Sides = 2 }},
		{"no life", func(c *config.AsteroidsConfig) { c.Spawners.Life = 0 }},
		{"no attempts", func(c *config.AsteroidsConfig) { c.Spawners.MaxAttempts = 0 }},
	}

	assert.NoError(t, config.DefaultAsteroidsConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultAsteroidsConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}
}

func TestTurnsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.TurnsConfig)
	}{
		{"no timer", func(c *config.TurnsConfig) { c.TurnSeconds = 0 }},
		{"no enemies", func(c *config.TurnsConfig) { c.Enemies = nil }},
		{"nameless", func(c *config.TurnsConfig) { c.Players[0].Name = "" }},
		{"dead on arrival", func(c *config.TurnsConfig) { c.Enemies[0].Health = 0 }},
		{"negative defense", func(c *config.TurnsConfig) { c.Players[1].Defense = -1 }},
		{"unknown element", func(c *config.TurnsConfig) { c.Players[2].Element = "lightning" }},
	}

	assert.NoError(t, config.DefaultTurnsConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultTurnsConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid)
		})
	}
}

func TestConfigureLogging(t *testing.T) {
	defer log.SetDefault(log.Default())

	require.NoError(t, config.ConfigureLogging("debug", "test"))
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	require.NoError(t, config.ConfigureLogging("WARN", "test"))
	assert.Equal(t, log.WarnLevel, log.GetLevel())

	assert.Error(t, config.ConfigureLogging("loud", "test"))
}

// Package config loads the YAML settings for both games. Every Load* function searches
// a custom path, then ~/.skirmish/<name>.yaml, then ./configs/<name>.yaml, and finally
// falls back to the defaults embedded in the binary.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// AsteroidsConfig holds all tunable parameters for the asteroids arena.
type AsteroidsConfig struct {
	Arena    ArenaConfig   `yaml:"arena"`
	Player   PlayerConfig  `yaml:"player"`
	Ships    ShipConfig    `yaml:"ships"`
	Rocks    RockConfig    `yaml:"rocks"`
	Spawners SpawnerConfig `yaml:"spawners"`
}

// ArenaConfig sizes the three arena rectangles. The spawn area spans ±Width by ±Height,
// the exclusion zone and the play area are that rect scaled down.
type ArenaConfig struct {
	Width          float32 `yaml:"width"`
	Height         float32 `yaml:"height"`
	ExclusionScale float32 `yaml:"exclusion_scale"`
	PlayScale      float32 `yaml:"play_scale"`
	FixedHz        float64 `yaml:"fixed_hz"`
}

type PlayerConfig struct {
	MovementSpeed float32 `yaml:"movement_speed"`
	RotationSpeed float32 `yaml:"rotation_speed"`
	Radius        float32 `yaml:"radius"`
	Health        int     `yaml:"health"`
}

type ShipConfig struct {
	SpawnInterval float64 `yaml:"spawn_interval"`
	MovementSpeed float32 `yaml:"movement_speed"`
	RotationSpeed float32 `yaml:"rotation_speed"`
	Radius        float32 `yaml:"radius"`
	Damage        int     `yaml:"damage"`
}

type RockConfig struct {
	SpawnInterval float64    `yaml:"spawn_interval"`
	MovementSpeed float32    `yaml:"movement_speed"`
	RotationSpeed float32    `yaml:"rotation_speed"`
	Damage        int        `yaml:"damage"`
	Sizes         []RockSize `yaml:"sizes"`
}

// RockSize is one of the shapes a rock spawner picks from.
type RockSize struct {
	Radius float32 `yaml:"radius"`
	Sides  int     `yaml:"sides"`
}

type SpawnerConfig struct {
	RockRadius  float32 `yaml:"rock_radius"`
	ShipRadius  float32 `yaml:"ship_radius"`
	Life        int     `yaml:"life"`
	MaxAttempts int     `yaml:"max_attempts"`
}

// TurnsConfig holds the battle setup.
type TurnsConfig struct {
	TurnSeconds float64           `yaml:"turn_seconds"`
	Players     []CombatantConfig `yaml:"players"`
	Enemies     []CombatantConfig `yaml:"enemies"`
}

// CombatantConfig describes one participant. Width, Height and Color only matter to
// the window that draws it.
type CombatantConfig struct {
	Name    string  `yaml:"name"`
	Health  int     `yaml:"health"`
	Attack  int     `yaml:"attack"`
	Defense int     `yaml:"defense"`
	Element string  `yaml:"element"`
	Width   float32 `yaml:"width"`
	Height  float32 `yaml:"height"`
	Color   string  `yaml:"color"`
}

// Elements lists the accepted element names. An empty name means void.
var Elements = []string{"earth", "fire", "water", "air", "void"}

// Validate checks the config for values the game cannot run with.
func (c AsteroidsConfig) Validate() error {
	a := c.Arena
	switch {
	case a.Width <= 0 || a.Height <= 0:
		return fmt.Errorf("%w: arena must have positive width and height", ErrInvalid)
	case a.ExclusionScale <= 0 || a.ExclusionScale >= 1:
		return fmt.Errorf("%w: exclusion zone must lie inside the spawn area (scale %v)", ErrInvalid, a.ExclusionScale)
	case a.PlayScale <= 0 || a.PlayScale > 1:
		return fmt.Errorf("%w: play area must lie inside the spawn area (scale %v)", ErrInvalid, a.PlayScale)
	case a.FixedHz <= 0:
		return fmt.Errorf("%w: fixed_hz must be positive", ErrInvalid)
	case c.Player.MovementSpeed <= 0 || c.Player.RotationSpeed <= 0:
		return fmt.Errorf("%w: player speeds must be positive", ErrInvalid)
	case c.Player.Radius <= 0 || c.Player.Health <= 0:
		return fmt.Errorf("%w: player needs a positive radius and health", ErrInvalid)
	case c.Ships.SpawnInterval <= 0 || c.Rocks.SpawnInterval <= 0:
		return fmt.Errorf("%w: spawn intervals must be positive", ErrInvalid)
	case c.Ships.MovementSpeed <= 0 || c.Ships.RotationSpeed <= 0:
		return fmt.Errorf("%w: ship speeds must be positive", ErrInvalid)
	case c.Rocks.MovementSpeed <= 0 || c.Rocks.RotationSpeed <= 0:
		return fmt.Errorf("%w: rock speeds must be positive", ErrInvalid)
	case c.Ships.Radius <= 0:
		return fmt.Errorf("%w: ship radius must be positive", ErrInvalid)
	case len(c.Rocks.Sizes) == 0:
		return fmt.Errorf("%w: at least one rock size is required", ErrInvalid)
	case c.Spawners.Life <= 0:
		return fmt.Errorf("%w: spawner life must be positive", ErrInvalid)
	case c.Spawners.MaxAttempts <= 0:
		return fmt.Errorf("%w: max_attempts must be positive", ErrInvalid)
	}

	for i, size := range c.Rocks.Sizes {
		if size.Radius <= 0 || size.Sides < 3 {
			return fmt.Errorf("%w: rock size %d needs a positive radius and at least 3 sides", ErrInvalid, i)
		}
	}
	return nil
}

// Validate checks the battle setup.
func (c TurnsConfig) Validate() error {
	if c.TurnSeconds <= 0 {
		return fmt.Errorf("%w: turn_seconds must be positive", ErrInvalid)
	}
	if len(c.Players) == 0 || len(c.Enemies) == 0 {
		return fmt.Errorf("%w: a battle needs at least one player and one enemy", ErrInvalid)
	}
	for _, team := range [][]CombatantConfig{c.Players, c.Enemies} {
		for _, p := range team {
			if err := p.validate(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p CombatantConfig) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: combatant without a name", ErrInvalid)
	}
	if p.Health <= 0 {
		return fmt.Errorf("%w: %s needs positive health", ErrInvalid, p.Name)
	}
	if p.Attack < 0 || p.Defense < 0 {
		return fmt.Errorf("%w: %s has negative attack or defense", ErrInvalid, p.Name)
	}
	if p.Element != "" && !slices.Contains(Elements, strings.ToLower(p.Element)) {
		return fmt.Errorf("%w: %s has unknown element %q", ErrInvalid, p.Name, p.Element)
	}
	return nil
}

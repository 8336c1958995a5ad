package config

import (
	_ "embed"
)

//go:embed defaults/asteroids.yaml
var defaultAsteroidsYAML []byte

//go:embed defaults/turns.yaml
var defaultTurnsYAML []byte

// DefaultAsteroidsConfig is used when the embedded YAML cannot be parsed.
func DefaultAsteroidsConfig() AsteroidsConfig {
	return AsteroidsConfig{
		Arena: ArenaConfig{
			Width:          1200,
			Height:         640,
			ExclusionScale: 1.0 / 3,
			PlayScale:      0.5,
			FixedHz:        60,
		},
		Player: PlayerConfig{
			MovementSpeed: 100,
			RotationSpeed: 5,
			Radius:        25,
			Health:        100,
		},
		Ships: ShipConfig{
			SpawnInterval: 5,
			MovementSpeed: 50,
			RotationSpeed: 3,
			Radius:        25,
			Damage:        25,
		},
		Rocks: RockConfig{
			SpawnInterval: 5,
			MovementSpeed: 50,
			RotationSpeed: 50,
			Damage:        10,
			Sizes: []RockSize{
				{Radius: 10, Sides: 5},
				{Radius: 25, Sides: 8},
				{Radius: 30, Sides: 6},
				{Radius: 40, Sides: 9},
			},
		},
		Spawners: SpawnerConfig{
			RockRadius:  25,
			ShipRadius:  10,
			Life:        5,
			MaxAttempts: 64,
		},
	}
}

// DefaultTurnsConfig is used when the embedded YAML cannot be parsed.
func DefaultTurnsConfig() TurnsConfig {
	return TurnsConfig{
		TurnSeconds: 10,
		Players: []CombatantConfig{
			{Name: "Silver", Health: 50, Attack: 8, Defense: 2, Element: "earth", Width: 25, Height: 23, Color: "silver"},
			{Name: "Blue", Health: 45, Attack: 7, Defense: 3, Element: "water", Width: 20, Height: 25, Color: "blue"},
			{Name: "Red", Health: 40, Attack: 9, Defense: 1, Element: "fire", Width: 18, Height: 20, Color: "red"},
			{Name: "Green", Health: 35, Attack: 6, Defense: 2, Element: "air", Width: 15, Height: 18, Color: "green"},
		},
		Enemies: []CombatantConfig{
			{Name: "Enemy", Health: 50, Attack: 8, Defense: 2, Element: "void", Width: 30, Height: 30, Color: "purple"},
			{Name: "Brute", Health: 70, Attack: 10, Defense: 4, Element: "earth", Width: 36, Height: 36, Color: "brown"},
		},
	}
}

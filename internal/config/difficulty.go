package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// DifficultyPresets lists the accepted preset names.
var DifficultyPresets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParseDifficulty maps a flag value to a preset. The empty string keeps the
// loaded tuning untouched and is returned as DifficultyNormal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// IsFixedPreset returns true if the preset disables escalation.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) {
	cfg.Difficulty.Escalate = !IsFixedPreset(preset)

	switch preset {
	case DifficultyEasy:
		cfg.Enemies.ContactDamage = 10
		cfg.Spawning.IntervalMS = 5000
		cfg.Spawning.MaxEnemies = 30
		cfg.Pickups.PowerUpIntervalMS = 20000
	case DifficultyHard:
		cfg.Enemies.ContactDamage = 20
		cfg.Spawning.IntervalMS = 3000
		cfg.Spawning.MaxEnemies = 50
		cfg.Pickups.PowerUpIntervalMS = 45000
	}
}

// Minutes returns the elapsed minutes used for enemy escalation. A run that
// does not escalate stays at minute zero.
func (d DifficultyConfig) Minutes(elapsedSeconds float64) float64 {
	if !d.Escalate {
		return 0
	}
	return elapsedSeconds / 60
}

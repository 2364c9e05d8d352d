// Package config provides YAML-based gameplay tuning, extra map presets and
// difficulty presets.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/core"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/registry"
)

// GameConfig contains every tunable gameplay constant of a run.
type GameConfig struct {
	Player     PlayerConfig     `yaml:"player" json:"player"`
	Enemies    EnemiesConfig    `yaml:"enemies" json:"enemies"`
	Spawning   SpawningConfig   `yaml:"spawning" json:"spawning"`
	Pickups    PickupsConfig    `yaml:"pickups" json:"pickups"`
	Combat     CombatConfig     `yaml:"combat" json:"combat"`
	Difficulty DifficultyConfig `yaml:"difficulty" json:"difficulty"`
}

// PlayerConfig defines the survivor's body and damage window.
type PlayerConfig struct {
	Radius            float64 `yaml:"radius" json:"radius"`
	SprintMultiplier  float64 `yaml:"sprint_multiplier" json:"sprint_multiplier"`
	InvulnerabilityMS int     `yaml:"invulnerability_ms" json:"invulnerability_ms"` // shared cooldown after any hit
}

// EnemyProfile is the base stat block of one enemy type.
type EnemyProfile struct {
	Speed          float64 `yaml:"speed" json:"speed"`
	SpeedPerMinute float64 `yaml:"speed_per_minute" json:"speed_per_minute"`
	Health         float64 `yaml:"health" json:"health"`
}

// EnemiesConfig defines enemy bodies, contact damage and rewards.
type EnemiesConfig struct {
	Radius            float64      `yaml:"radius" json:"radius"`
	ContactDamage     float64      `yaml:"contact_damage" json:"contact_damage"`
	AttackRangeBuffer float64      `yaml:"attack_range_buffer" json:"attack_range_buffer"`
	StopDistanceSq    float64      `yaml:"stop_distance_sq" json:"stop_distance_sq"` // enemies stop advancing inside this squared distance
	MoneyPerKill      int          `yaml:"money_per_kill" json:"money_per_kill"`
	Zombie            EnemyProfile `yaml:"zombie" json:"zombie"`
	Demon             EnemyProfile `yaml:"demon" json:"demon"`
	Crow              EnemyProfile `yaml:"crow" json:"crow"`
}

// SpawningConfig defines wave cadence and placement.
type SpawningConfig struct {
	InitialEnemies int        `yaml:"initial_enemies" json:"initial_enemies"`
	MaxEnemies     int        `yaml:"max_enemies" json:"max_enemies"`
	IntervalMS     int        `yaml:"interval_ms" json:"interval_ms"`
	MaxBatch       int        `yaml:"max_batch" json:"max_batch"`
	BatchPerMinute float64    `yaml:"batch_per_minute" json:"batch_per_minute"`
	Range          float64    `yaml:"range" json:"range"`
	Clearance      float64    `yaml:"clearance" json:"clearance"`
	BuildingMargin float64    `yaml:"building_margin" json:"building_margin"`
	Attempts       int        `yaml:"attempts" json:"attempts"`
	Fallback       [2]float64 `yaml:"fallback" json:"fallback"`
}

// PickupsConfig defines health packs and experience bones.
type PickupsConfig struct {
	PowerUpIntervalMS int     `yaml:"powerup_interval_ms" json:"powerup_interval_ms"`
	PowerUpRadius     float64 `yaml:"powerup_radius" json:"powerup_radius"`
	HealAmount        float64 `yaml:"heal_amount" json:"heal_amount"`
	BoneRadius        float64 `yaml:"bone_radius" json:"bone_radius"`
	BoneExp           int     `yaml:"bone_exp" json:"bone_exp"`
}

// ReloadPolicy decides how a pending reload relates to pausing.
type ReloadPolicy string

const (
	// ReloadShiftsWithPause freezes the reload timer with the rest of the run.
	ReloadShiftsWithPause ReloadPolicy = "shift_with_pause"
	// ReloadIgnoresPause lets a reload finish while the run is frozen.
	ReloadIgnoresPause ReloadPolicy = "ignore_pause"
)

// CombatConfig defines projectiles and reloading.
type CombatConfig struct {
	ProjectileTTLMS int          `yaml:"projectile_ttl_ms" json:"projectile_ttl_ms"`
	HitPadding      float64      `yaml:"hit_padding" json:"hit_padding"` // added to the enemy radius for projectile hits
	ReloadPolicy    ReloadPolicy `yaml:"reload_policy" json:"reload_policy" jsonschema:"enum=shift_with_pause,enum=ignore_pause"`
}

// DifficultyConfig defines how enemy types are rolled and how the run
// escalates over time.
type DifficultyConfig struct {
	Escalate          bool    `yaml:"escalate" json:"escalate"` // false pins the run at minute zero
	DemonRoll         float64 `yaml:"demon_roll" json:"demon_roll"`
	DemonAfterMinutes float64 `yaml:"demon_after_minutes" json:"demon_after_minutes"`
	CrowRoll          float64 `yaml:"crow_roll" json:"crow_roll"`
	CrowAfterMinutes  float64 `yaml:"crow_after_minutes" json:"crow_after_minutes"`
	SpeedJitter       float64 `yaml:"speed_jitter" json:"speed_jitter"`
}

// Invulnerability returns the hit cooldown.
func (c GameConfig) Invulnerability() time.Duration { return ms(c.Player.InvulnerabilityMS) }

// SpawnInterval returns the time between enemy waves.
func (c GameConfig) SpawnInterval() time.Duration { return ms(c.Spawning.IntervalMS) }

// PowerUpInterval returns the time between health packs.
func (c GameConfig) PowerUpInterval() time.Duration { return ms(c.Pickups.PowerUpIntervalMS) }

// ProjectileTTL returns a projectile's lifetime.
func (c GameConfig) ProjectileTTL() time.Duration { return ms(c.Combat.ProjectileTTLMS) }

// SpawnFallback returns the fallback spawn point.
func (c GameConfig) SpawnFallback() core.Vec2 {
	return core.V2(c.Spawning.Fallback[0], c.Spawning.Fallback[1])
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// Validate rejects values that would stall or break a run.
func (c GameConfig) Validate() error {
	var errs []error
	positive := []struct {
		name  string
		value float64
	}{
		{"player.radius", c.Player.Radius},
		{"player.sprint_multiplier", c.Player.SprintMultiplier},
		{"enemies.radius", c.Enemies.Radius},
		{"spawning.interval_ms", float64(c.Spawning.IntervalMS)},
		{"spawning.max_enemies", float64(c.Spawning.MaxEnemies)},
		{"spawning.max_batch", float64(c.Spawning.MaxBatch)},
		{"spawning.attempts", float64(c.Spawning.Attempts)},
		{"pickups.powerup_interval_ms", float64(c.Pickups.PowerUpIntervalMS)},
		{"combat.projectile_ttl_ms", float64(c.Combat.ProjectileTTLMS)},
		{"enemies.zombie.health", c.Enemies.Zombie.Health},
		{"enemies.demon.health", c.Enemies.Demon.Health},
		{"enemies.crow.health", c.Enemies.Crow.Health},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", p.name, p.value))
		}
	}
	if c.Spawning.InitialEnemies < 0 || c.Spawning.InitialEnemies > c.Spawning.MaxEnemies {
		errs = append(errs, fmt.Errorf("spawning.initial_enemies must be in [0, max_enemies], got %d", c.Spawning.InitialEnemies))
	}
	switch c.Combat.ReloadPolicy {
	case ReloadShiftsWithPause, ReloadIgnoresPause:
	default:
		errs = append(errs, fmt.Errorf("combat.reload_policy %q is not one of %q, %q",
			c.Combat.ReloadPolicy, ReloadShiftsWithPause, ReloadIgnoresPause))
	}
	return errors.Join(errs...)
}

// MapPresets is the shape of a map preset file.
type MapPresets struct {
	Presets []registry.Preset `yaml:"presets" json:"presets"`
}

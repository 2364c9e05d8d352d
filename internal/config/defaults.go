package config

import (
	_ "embed"
)

//go:embed defaults/tuning.yaml
var defaultTuningYAML []byte

//go:embed defaults/maps.yaml
var defaultMapsYAML []byte

// DefaultGameConfig returns the built-in gameplay tuning.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Player: PlayerConfig{
			Radius:            0.3,
			SprintMultiplier:  1.5,
			InvulnerabilityMS: 1000,
		},
		Enemies: EnemiesConfig{
			Radius:            0.35,
			ContactDamage:     15,
			AttackRangeBuffer: 0.4,
			StopDistanceSq:    0.5,
			MoneyPerKill:      10,
			Zombie:            EnemyProfile{Speed: 2.5, Health: 100},
			Demon:             EnemyProfile{Speed: 4.5, SpeedPerMinute: 0.2, Health: 80},
			Crow:              EnemyProfile{Speed: 6.0, Health: 30},
		},
		Spawning: SpawningConfig{
			InitialEnemies: 3,
			MaxEnemies:     40,
			IntervalMS:     4000,
			MaxBatch:       6,
			BatchPerMinute: 2,
			Range:          45,
			Clearance:      12,
			BuildingMargin: 1,
			Attempts:       50,
			Fallback:       [2]float64{20, 20},
		},
		Pickups: PickupsConfig{
			PowerUpIntervalMS: 30000,
			PowerUpRadius:     0.5,
			HealAmount:        50,
			BoneRadius:        0.5,
			BoneExp:           20,
		},
		Combat: CombatConfig{
			ProjectileTTLMS: 2000,
			HitPadding:      0.1,
			ReloadPolicy:    ReloadShiftsWithPause,
		},
		Difficulty: DifficultyConfig{
			Escalate:          true,
			DemonRoll:         0.8,
			DemonAfterMinutes: 2,
			CrowRoll:          0.9,
			CrowAfterMinutes:  4,
			SpeedJitter:       1,
		},
	}
}

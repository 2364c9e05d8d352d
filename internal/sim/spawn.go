package sim

import (
	"math"
	"time"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/config"
)

var (
	defaultDifficulty = config.DefaultGameConfig().Difficulty
	defaultEnemies    = config.DefaultGameConfig().Enemies
)

// Classify picks the enemy type for a roll in [0,1) at the given survival
// minute using the default curve:
//
//	ZOMBIE  otherwise
//	DEMON   roll > 0.8 or minutes > 2
//	CROW    roll > 0.9 or minutes > 4
//
// Later breakpoints override earlier ones, so past minute four every spawn
// is a crow.
func Classify(roll, minutes float64) EnemyType {
	return ClassifyWith(defaultDifficulty, roll, minutes)
}

// ClassifyWith is Classify with explicit breakpoints.
func ClassifyWith(d config.DifficultyConfig, roll, minutes float64) EnemyType {
	t := EnemyZombie
	if roll > d.DemonRoll || minutes > d.DemonAfterMinutes {
		t = EnemyDemon
	}
	if roll > d.CrowRoll || minutes > d.CrowAfterMinutes {
		t = EnemyCrow
	}
	return t
}

// EnemyProfile returns the default base speed and health of t at the given
// survival minute, before jitter.
func EnemyProfile(t EnemyType, minutes float64) (speed, health float64) {
	return EnemyProfileWith(defaultEnemies, t, minutes)
}

// EnemyProfileWith is EnemyProfile with explicit stat blocks.
func EnemyProfileWith(e config.EnemiesConfig, t EnemyType, minutes float64) (speed, health float64) {
	p := e.Zombie
	switch t {
	case EnemyDemon:
		p = e.Demon
	case EnemyCrow:
		p = e.Crow
	}
	return p.Speed + minutes*p.SpeedPerMinute, p.Health
}

// spawnEnemy places one enemy. Draw order: position, type roll, speed
// jitter. Initial enemies are forced to zombies but still consume the roll.
func (s *Simulation) spawnEnemy(minutes float64, forceZombie bool) {
	t := s.cfg.Tuning
	pos := s.index.FindValidSpawn(s.rng)
	typ := ClassifyWith(t.Difficulty, s.rng.Next(), minutes)
	if forceZombie {
		typ = EnemyZombie
	}
	speed, hp := EnemyProfileWith(t.Enemies, typ, minutes)
	speed += s.rng.Next() * t.Difficulty.SpeedJitter

	e := Enemy{
		ID:        s.newID(),
		Type:      typ,
		Position:  pos,
		MaxHealth: hp,
		Health:    hp,
		Speed:     speed,
	}
	s.enemies = append(s.enemies, e)
	s.positions[e.ID] = e.Position
}

// scheduleSpawns releases a wave every spawn interval while below the cap.
// The batch grows with survival time.
func (s *Simulation) scheduleSpawns(now time.Duration) {
	t := s.cfg.Tuning
	if now-s.lastSpawn <= t.SpawnInterval() {
		return
	}
	if len(s.enemies) < t.Spawning.MaxEnemies {
		minutes := s.minutes(now)
		batch := min(t.Spawning.MaxBatch, int(math.Floor(1+minutes*t.Spawning.BatchPerMinute)))
		for i := 0; i < batch && len(s.enemies) < t.Spawning.MaxEnemies; i++ {
			s.spawnEnemy(minutes, false)
		}
		s.logger.Debug("wave spawned", "enemies", len(s.enemies), "minutes", minutes)
	}
	s.lastSpawn = now
}

func (s *Simulation) schedulePowerUps(now time.Duration) {
	t := s.cfg.Tuning
	if now-s.lastPowerUp <= t.PowerUpInterval() {
		return
	}
	s.powerUps = append(s.powerUps, PowerUp{
		ID:       s.newID(),
		Position: s.index.FindValidSpawn(s.rng),
		Kind:     PowerUpHealth,
		Value:    t.Pickups.HealAmount,
	})
	s.lastPowerUp = now
}

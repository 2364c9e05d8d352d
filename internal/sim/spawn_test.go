package sim

import (
	"testing"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/core"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		roll    float64
		minutes float64
		want    EnemyType
	}{
		{0.0, 0, EnemyZombie},
		{0.8, 0, EnemyZombie},
		{0.81, 0, EnemyDemon},
		{0.9, 0, EnemyDemon},
		{0.91, 0, EnemyCrow},
		{0.1, 2, EnemyZombie},
		{0.1, 2.01, EnemyDemon},
		{0.1, 4, EnemyDemon},
		{0.1, 4.01, EnemyCrow},
		{0.95, 3, EnemyCrow},
	}

	for _, tt := range tests {
		if got := Classify(tt.roll, tt.minutes); got != tt.want {
			t.Errorf("Classify(%v, %v) = %v, expected %v", tt.roll, tt.minutes, got, tt.want)
		}
	}
}

func TestEnemyProfile(t *testing.T) {
	tests := []struct {
		typ     EnemyType
		minutes float64
		speed   float64
		health  float64
	}{
		{EnemyZombie, 3, 2.5, 100},
		{EnemyDemon, 0, 4.5, 80},
		{EnemyDemon, 5, 5.5, 80},
		{EnemyCrow, 10, 6.0, 30},
	}

	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			speed, health := EnemyProfile(tt.typ, tt.minutes)
			if speed != tt.speed || health != tt.health {
				t.Errorf("EnemyProfile(%v, %v) = (%v, %v), expected (%v, %v)",
					tt.typ, tt.minutes, speed, health, tt.speed, tt.health)
			}
		})
	}
}

func TestEnemyTypeText(t *testing.T) {
	for _, typ := range []EnemyType{EnemyZombie, EnemyDemon, EnemyCrow} {
		b, _ := typ.MarshalText()
		var back EnemyType
		if err := back.UnmarshalText(b); err != nil || back != typ {
			t.Errorf("text round trip of %v gave %v, %v", typ, back, err)
		}
	}
	var bad EnemyType
	if err := bad.UnmarshalText([]byte("GHOST")); err == nil {
		t.Error("UnmarshalText(GHOST) = nil, expected error")
	}
}

func TestSpawnWaves(t *testing.T) {
	tests := []struct {
		name     string
		at       int // milliseconds since start of the single tick
		maxCount int
		escalate bool
		want     int
	}{
		{"first wave", 4001, 40, true, 1},
		{"batch grows", 90_001, 40, true, 4},
		{"batch capped at six", 200_000, 40, true, 6},
		{"enemy cap", 200_000, 2, true, 2},
		{"no escalation", 200_000, 40, false, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newQuietSim(t, func(c *Config) {
				c.Tuning.Spawning.MaxEnemies = tt.maxCount
				c.Tuning.Difficulty.Escalate = tt.escalate
			})
			s.Tick(msDur(tt.at), core.Input{})
			if len(s.enemies) != tt.want {
				t.Errorf("enemies = %d, expected %d", len(s.enemies), tt.want)
			}
			if s.lastSpawn != msDur(tt.at) {
				t.Errorf("lastSpawn = %v, expected %v", s.lastSpawn, msDur(tt.at))
			}
		})
	}
}

func TestSpawnAtCapStillResetsTimer(t *testing.T) {
	s, _ := newQuietSim(t, func(c *Config) { c.Tuning.Spawning.MaxEnemies = 1 })
	s.addEnemy(core.V2(40, 40), 100, 0)
	s.Tick(4001*ms, core.Input{})
	if len(s.enemies) != 1 {
		t.Errorf("enemies = %d at the cap, expected 1", len(s.enemies))
	}
	if s.lastSpawn != 4001*ms {
		t.Errorf("lastSpawn = %v, expected the timer to reset at the cap", s.lastSpawn)
	}
}

func TestLateSpawnsAreCrows(t *testing.T) {
	s, _ := newQuietSim(t, nil)
	s.Tick(5*60*1000*ms, core.Input{})
	if len(s.enemies) == 0 {
		t.Fatal("no enemies spawned")
	}
	for _, e := range s.enemies {
		if e.Type != EnemyCrow || e.Health != 30 {
			t.Errorf("enemy at minute 5 = %v with %v HP, expected a 30 HP crow", e.Type, e.Health)
		}
	}
}

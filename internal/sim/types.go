package sim

import (
	"fmt"
	"time"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/core"
)

// State is the run lifecycle.
type State uint8

const (
	StateInitializing State = iota
	StateRunning
	StateFrozen // paused or waiting for a perk choice
	StateTerminated
)

var stateNames = [...]string{"initializing", "running", "frozen", "terminated"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", s)
}

// EntityID identifies a runtime entity. IDs increase monotonically within a
// run and are never reused.
type EntityID uint64

// EnemyType is the enemy archetype.
type EnemyType uint8

const (
	EnemyZombie EnemyType = iota
	EnemyDemon
	EnemyCrow
)

var enemyTypeNames = [...]string{"ZOMBIE", "DEMON", "CROW"}

func (t EnemyType) String() string {
	if int(t) < len(enemyTypeNames) {
		return enemyTypeNames[t]
	}
	return fmt.Sprintf("EnemyType(%d)", t)
}

// MarshalText encodes the type by name.
func (t EnemyType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText decodes a type name.
func (t *EnemyType) UnmarshalText(b []byte) error {
	for i, name := range enemyTypeNames {
		if name == string(b) {
			*t = EnemyType(i)
			return nil
		}
	}
	return fmt.Errorf("sim: unknown enemy type %q", b)
}

// Enemy chases the player and deals contact damage.
type Enemy struct {
	ID        EntityID
	Type      EnemyType
	Position  core.Vec2
	MaxHealth float64
	Health    float64
	Speed     float64
}

// Projectile flies in a straight line until it hits something or expires.
type Projectile struct {
	ID        EntityID
	Position  core.Vec2
	Direction core.Vec2
	Speed     float64
	Damage    float64
	CreatedAt time.Duration
}

// PowerUpKind is the effect of a power-up.
type PowerUpKind string

const PowerUpHealth PowerUpKind = "HEALTH"

// PowerUp is a pickup placed on the map by the scheduler.
type PowerUp struct {
	ID       EntityID
	Position core.Vec2
	Kind     PowerUpKind
	Value    float64
}

// Bone is the experience pickup dropped by a dead enemy.
type Bone struct {
	ID        EntityID
	Position  core.Vec2
	Value     int
	CreatedAt time.Duration
}

// Report summarizes a finished run.
type Report struct {
	EnemiesKilled int `json:"enemiesKilled"`
	MoneyEarned   int `json:"moneyEarned"`
	MoneySpent    int `json:"moneySpent"`
	TimeSurvived  int `json:"timeSurvived"` // whole seconds
	LevelReached  int `json:"levelReached"`
}

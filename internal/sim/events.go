package sim

import (
	"github.com/TJ42-dev/Block-Town-Survivors/internal/core"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
)

// Event is a notification emitted by the simulation. The set of events is
// closed.
type Event interface {
	// Name is the stable wire name of the event.
	Name() string
	event()
}

// AmmoChanged is emitted when the magazine or its size changes.
type AmmoChanged struct {
	Current int `json:"current"`
	Max     int `json:"max"`
}

// ReloadChanged is emitted when a reload starts or finishes.
type ReloadChanged struct {
	Reloading bool `json:"isReloading"`
}

// HealthChanged is emitted when health or effective max health changes.
type HealthChanged struct {
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"maxHealth"`
}

// WaveChanged is emitted when the number of live enemies changes.
type WaveChanged struct {
	Enemies int `json:"wave"`
}

// MoneyChanged is emitted when run money changes.
type MoneyChanged struct {
	Money int `json:"money"`
}

// ExpChanged is emitted when experience, the requirement or the level changes.
type ExpChanged struct {
	Current  int `json:"current"`
	Required int `json:"max"`
	Level    int `json:"level"`
}

// LevelUpReady carries the choices of a pending level-up. The run stays
// frozen until one is selected.
type LevelUpReady struct {
	Level   int                `json:"level"`
	Options []progression.Perk `json:"options"`
}

// GameOver is emitted once when the player dies.
type GameOver struct {
	Report Report `json:"report"`
}

// TimeElapsed is emitted once per survived second.
type TimeElapsed struct {
	Seconds int `json:"seconds"`
}

// ShotFired is emitted for every trigger pull that fires.
type ShotFired struct {
	Weapon  progression.WeaponID `json:"weapon"`
	Stance  progression.Stance   `json:"stance"`
	Pellets int                  `json:"pellets"`
}

// EnemyHit is emitted when projectiles damage an enemy without killing it.
type EnemyHit struct {
	ID     EntityID  `json:"id"`
	Type   EnemyType `json:"type"`
	Damage float64   `json:"damage"`
	Health float64   `json:"health"`
}

// EnemyKilled is emitted when an enemy dies.
type EnemyKilled struct {
	ID       EntityID  `json:"id"`
	Type     EnemyType `json:"type"`
	Position core.Vec2 `json:"position"`
}

// PlayerHit is emitted when an enemy damages the player.
type PlayerHit struct {
	Damage float64 `json:"damage"`
	Health float64 `json:"health"`
}

func (AmmoChanged) Name() string   { return "ammoChange" }
func (ReloadChanged) Name() string { return "reloadState" }
func (HealthChanged) Name() string { return "healthChange" }
func (WaveChanged) Name() string   { return "waveChange" }
func (MoneyChanged) Name() string  { return "moneyChange" }
func (ExpChanged) Name() string    { return "expChange" }
func (LevelUpReady) Name() string  { return "showLevelUp" }
func (GameOver) Name() string      { return "gameOver" }
func (TimeElapsed) Name() string   { return "timeElapsed" }
func (ShotFired) Name() string     { return "shotFired" }
func (EnemyHit) Name() string      { return "enemyHit" }
func (EnemyKilled) Name() string   { return "enemyKilled" }
func (PlayerHit) Name() string     { return "playerHit" }

func (AmmoChanged) event()   {}
func (ReloadChanged) event() {}
func (HealthChanged) event() {}
func (WaveChanged) event()   {}
func (MoneyChanged) event()  {}
func (ExpChanged) event()    {}
func (LevelUpReady) event()  {}
func (GameOver) event()      {}
func (TimeElapsed) event()   {}
func (ShotFired) event()     {}
func (EnemyHit) event()      {}
func (EnemyKilled) event()   {}
func (PlayerHit) event()     {}

// Listener receives simulation events. OnEvent runs synchronously inside
// Tick and must not call back into the simulation.
type Listener interface {
	OnEvent(Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

func (f ListenerFunc) OnEvent(e Event) { f(e) }

// Multicast fans an event out to several listeners in order.
type Multicast []Listener

func (m Multicast) OnEvent(e Event) {
	for _, l := range m {
		if l != nil {
			l.OnEvent(e)
		}
	}
}

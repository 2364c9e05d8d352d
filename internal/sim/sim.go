// Package sim runs one survival session: the player, enemy waves, projectiles,
// pickups, leveling and the game-over report. It is deterministic for a given
// seed, map and sequence of (time, input) pairs and performs no I/O; callers
// observe it through a Listener and Snapshot.
//
// A Simulation is not safe for concurrent use.
package sim

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/config"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/core"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/mapgen"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/rng"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/world"
)

// MaxStep caps the time a single tick may integrate, so a stalled frontend
// does not tunnel actors through walls.
const MaxStep = 100 * time.Millisecond

// longAgo marks cooldown timestamps that have never been set.
const longAgo = -24 * time.Hour

// Config is everything a run needs besides the map.
type Config struct {
	Tuning    config.GameConfig
	Stats     progression.PlayerStats
	Options   progression.GameOptions
	Seed      int32
	WorldSize float64 // walkable square side; zero leaves the world unbounded
}

// DefaultConfig returns a run with default tuning and no upgrades.
func DefaultConfig() Config {
	return Config{
		Tuning:  config.DefaultGameConfig(),
		Stats:   progression.CalculateStats(progression.DefaultSave().Upgrades),
		Options: progression.DefaultOptions(),
		Seed:    1,
	}
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithListener adds a listener. May be given several times.
func WithListener(l Listener) Option {
	return func(s *Simulation) {
		s.listeners = append(s.listeners, l)
	}
}

// WithLogger sets the logger used for run milestones.
func WithLogger(l *log.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// Simulation is one run.
type Simulation struct {
	cfg       Config
	index     *world.Index
	rng       *rng.Random
	listeners Multicast
	logger    *log.Logger

	state      State
	paused     bool
	levelingUp bool
	frozenAt   time.Duration

	// Clock. All timestamps are readings of the caller's monotonic clock.
	now         time.Duration
	lastTick    time.Duration
	start       time.Duration
	lastSpawn   time.Duration
	lastPowerUp time.Duration
	lastHit     time.Duration
	lastShot    time.Duration
	reloadAt    time.Duration

	// Player
	character   progression.Character
	weapon      progression.Weapon
	weaponLevel int
	mods        progression.Modifiers
	player      core.Vec2
	health      float64
	ammo        int
	reloading   bool
	fireHeld    bool

	// Progress
	level       int
	exp         int
	expReq      int
	pending     []progression.Perk
	money       int
	moneyEarned int
	kills       int
	report      Report

	// Entities
	nextID      EntityID
	enemies     []Enemy
	projectiles []Projectile
	powerUps    []PowerUp
	bones       []Bone
	positions   map[EntityID]core.Vec2

	hud      hud
	hudSent  bool
	lastSecs int
}

// New creates a run on m. The run does nothing until Start.
func New(cfg Config, m *mapgen.Map, opts ...Option) *Simulation {
	t := cfg.Tuning
	char := progression.CharacterByID(cfg.Options.CharacterID)

	s := &Simulation{
		cfg: cfg,
		index: world.NewIndex(m, cfg.WorldSize, world.Options{
			SpawnRange:     t.Spawning.Range,
			SpawnClearance: t.Spawning.Clearance,
			SpawnMargin:    t.Spawning.BuildingMargin,
			SpawnAttempts:  t.Spawning.Attempts,
			SpawnFallback:  t.SpawnFallback(),
		}),
		rng:         rng.New(cfg.Seed),
		logger:      log.New(io.Discard),
		character:   char,
		weaponLevel: 1,
		mods:        progression.NewModifiers(),
		health:      cfg.Stats.MaxHealth,
		level:       1,
		expReq:      progression.ExpRequirement(1),
		positions:   make(map[EntityID]core.Vec2),
	}
	s.weapon = progression.WeaponAt(char.Weapon, s.weaponLevel)
	s.ammo = s.weapon.MaxAmmo
	if cfg.Options.UnlimitedCash {
		s.money = progression.UnlimitedCashAmount
		s.moneyEarned = progression.UnlimitedCashAmount
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start places the initial enemies and begins the run at now.
func (s *Simulation) Start(now time.Duration) {
	if s.state != StateInitializing {
		return
	}
	s.now = now
	s.start = now
	s.lastTick = now
	s.lastSpawn = now
	s.lastPowerUp = now
	s.lastHit = now + longAgo
	s.lastShot = now + longAgo

	for range s.cfg.Tuning.Spawning.InitialEnemies {
		s.spawnEnemy(0, true)
	}
	s.state = StateRunning
	s.updateFrozen(now)

	s.logger.Info("run started",
		"seed", s.cfg.Seed,
		"character", s.character.ID,
		"weapon", s.weapon.ID,
		"enemies", len(s.enemies))
	s.notify()
}

// Tick advances the run to now. Ticks while frozen or after game over do
// nothing, except that a reload under ReloadIgnoresPause still completes.
func (s *Simulation) Tick(now time.Duration, in core.Input) {
	switch s.state {
	case StateRunning:
	case StateFrozen:
		if s.cfg.Tuning.Combat.ReloadPolicy == config.ReloadIgnoresPause {
			s.finishReload(now)
			s.notify()
		}
		return
	default:
		return
	}

	dt := now - s.lastTick
	if dt < 0 {
		dt = 0
	}
	dt = min(dt, MaxStep)
	s.lastTick = now
	s.now = now
	secs := dt.Seconds()

	s.finishReload(now)
	s.handleTrigger(now, in)
	s.scheduleSpawns(now)
	s.schedulePowerUps(now)
	s.collectPickups(now)
	if s.state != StateRunning {
		s.notify()
		return
	}
	s.movePlayer(in, secs)
	s.moveEnemies(now, secs)
	if s.state == StateTerminated {
		s.notify()
		return
	}
	s.advanceProjectiles(now, secs)
	s.notify()
}

// Pause freezes the run.
func (s *Simulation) Pause(now time.Duration) {
	s.paused = true
	s.updateFrozen(now)
}

// Resume lifts an explicit pause. The run stays frozen while a perk choice
// is pending.
func (s *Simulation) Resume(now time.Duration) {
	s.paused = false
	s.updateFrozen(now)
}

// updateFrozen enters or leaves StateFrozen when the combined
// paused/leveling flag changes. Leaving shifts every run timer by the frozen
// span.
func (s *Simulation) updateFrozen(now time.Duration) {
	frozen := s.paused || s.levelingUp
	switch {
	case frozen && s.state == StateRunning:
		s.state = StateFrozen
		s.frozenAt = now
	case !frozen && s.state == StateFrozen:
		s.shift(now - s.frozenAt)
		s.state = StateRunning
		s.lastTick = now
		s.now = now
	}
}

func (s *Simulation) shift(d time.Duration) {
	s.start += d
	s.lastSpawn += d
	s.lastPowerUp += d
	s.lastHit += d
	s.lastShot += d
	if s.cfg.Tuning.Combat.ReloadPolicy == config.ReloadShiftsWithPause {
		s.reloadAt += d
	}
	for i := range s.projectiles {
		s.projectiles[i].CreatedAt += d
	}
	for i := range s.bones {
		s.bones[i].CreatedAt += d
	}
}

// Derived stats. Damage and fire rate scale the weapon by the ratio of the
// upgraded stat to the reference weapon, so shop upgrades matter equally for
// every character.

func (s *Simulation) maxHealth() float64 {
	return math.Floor(s.cfg.Stats.MaxHealth * s.mods.MaxHP)
}

func (s *Simulation) speed() float64 {
	return s.cfg.Stats.MovementSpeed * s.mods.Speed
}

func (s *Simulation) damage() float64 {
	ref := progression.Weapons[progression.ReferenceWeapon]
	return s.weapon.Damage * (s.cfg.Stats.Damage / ref.Damage) * s.mods.Damage
}

func (s *Simulation) fireInterval() time.Duration {
	ref := progression.Weapons[progression.ReferenceWeapon]
	ratio := ref.FireRate / s.cfg.Stats.FireRate
	return msf((s.weapon.FireRate / ratio) / s.mods.FireRate)
}

func msf(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func (s *Simulation) elapsed(now time.Duration) time.Duration {
	return now - s.start
}

func (s *Simulation) minutes(now time.Duration) float64 {
	return s.cfg.Tuning.Difficulty.Minutes(s.elapsed(now).Seconds())
}

func (s *Simulation) newID() EntityID {
	s.nextID++
	return s.nextID
}

func (s *Simulation) emit(e Event) {
	s.listeners.OnEvent(e)
}

// State returns the lifecycle state.
func (s *Simulation) State() State { return s.state }

// Paused reports whether the run is explicitly paused.
func (s *Simulation) Paused() bool { return s.paused }

// PendingPerks returns the open level-up choices, or nil.
func (s *Simulation) PendingPerks() []progression.Perk {
	return append([]progression.Perk(nil), s.pending...)
}

// Player returns the player's ground position.
func (s *Simulation) Player() core.Vec2 { return s.player }

// Index returns the collision view of the run's map.
func (s *Simulation) Index() *world.Index { return s.index }

// Report returns the run summary. After game over it is the final report.
func (s *Simulation) Report() Report {
	if s.state == StateTerminated {
		return s.report
	}
	return s.buildReport(s.now)
}

func (s *Simulation) buildReport(now time.Duration) Report {
	return Report{
		EnemiesKilled: s.kills,
		MoneyEarned:   s.moneyEarned,
		MoneySpent:    0,
		TimeSurvived:  int(s.elapsed(now) / time.Second),
		LevelReached:  s.level,
	}
}

func (s *Simulation) gameOver(now time.Duration) {
	s.state = StateTerminated
	s.report = s.buildReport(now)
	s.logger.Info("game over",
		"survived", s.report.TimeSurvived,
		"kills", s.report.EnemiesKilled,
		"level", s.report.LevelReached,
		"earned", s.report.MoneyEarned)
	s.emit(GameOver{Report: s.report})
}

// ErrNoPerkPending is returned by SelectPerk when no level-up is open.
var ErrNoPerkPending = errors.New("sim: no level-up choice pending")

// SelectPerk applies the chosen level-up option and unfreezes the run unless
// it is also paused. If the carried experience already covers the next
// requirement, a new choice opens immediately.
func (s *Simulation) SelectPerk(now time.Duration, index int) error {
	if !s.levelingUp || len(s.pending) == 0 {
		return ErrNoPerkPending
	}
	if index < 0 || index >= len(s.pending) {
		return fmt.Errorf("sim: perk index %d out of range [0, %d)", index, len(s.pending))
	}

	perk := s.pending[index]
	s.applyPerk(perk)
	s.pending = nil
	s.levelingUp = false
	s.logger.Debug("perk selected", "perk", perk.Label, "level", s.level)

	if s.exp >= s.expReq {
		s.levelUp(now, s.exp-s.expReq)
	}
	s.updateFrozen(now)
	s.notify()
	return nil
}

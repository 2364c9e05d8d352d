package sim

import (
	"math"
)

// EnemyView is an enemy in a Snapshot.
type EnemyView struct {
	ID        uint64
	Type      string
	X, Z      float64
	Health    float64
	MaxHealth float64
}

// PointView is a positioned entity in a Snapshot.
type PointView struct {
	ID   uint64
	X, Z float64
}

// Snapshot contains the complete run state for rendering, replay checks
// and the event feed. Uses primitive types only for stable serialization.
type Snapshot struct {
	NowMS     int64
	ElapsedMS int64
	State     string
	Paused    bool
	RNGState  uint32

	PlayerX, PlayerZ float64
	Health           float64
	MaxHealth        float64
	Ammo             int
	MaxAmmo          int
	Reloading        bool
	Character        string
	Weapon           string
	WeaponName       string
	WeaponLevel      int

	// Perk modifiers
	SpeedMod, DamageMod, FireRateMod, MaxHPMod float64

	Level       int
	Exp         int
	ExpRequired int
	Money       int
	MoneyEarned int
	Kills       int

	Enemies      []EnemyView
	Projectiles  []PointView
	PowerUps     []PointView
	Bones        []PointView
	PendingPerks []string
}

// Snapshot returns the current run state.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		NowMS:     s.now.Milliseconds(),
		ElapsedMS: s.elapsed(s.now).Milliseconds(),
		State:     s.state.String(),
		Paused:    s.paused,
		RNGState:  s.rng.State(),

		PlayerX:     s.player.X,
		PlayerZ:     s.player.Z,
		Health:      s.health,
		MaxHealth:   s.maxHealth(),
		Ammo:        s.ammo,
		MaxAmmo:     s.weapon.MaxAmmo,
		Reloading:   s.reloading,
		Character:   string(s.character.ID),
		Weapon:      string(s.weapon.ID),
		WeaponName:  s.weapon.Name,
		WeaponLevel: s.weaponLevel,

		SpeedMod:    s.mods.Speed,
		DamageMod:   s.mods.Damage,
		FireRateMod: s.mods.FireRate,
		MaxHPMod:    s.mods.MaxHP,

		Level:       s.level,
		Exp:         s.exp,
		ExpRequired: s.expReq,
		Money:       s.money,
		MoneyEarned: s.moneyEarned,
		Kills:       s.kills,
	}
	if s.state == StateInitializing {
		snap.ElapsedMS = 0
	}

	snap.Enemies = make([]EnemyView, len(s.enemies))
	for i, e := range s.enemies {
		snap.Enemies[i] = EnemyView{
			ID:        uint64(e.ID),
			Type:      e.Type.String(),
			X:         e.Position.X,
			Z:         e.Position.Z,
			Health:    e.Health,
			MaxHealth: e.MaxHealth,
		}
	}
	snap.Projectiles = make([]PointView, len(s.projectiles))
	for i, p := range s.projectiles {
		snap.Projectiles[i] = PointView{ID: uint64(p.ID), X: p.Position.X, Z: p.Position.Z}
	}
	snap.PowerUps = make([]PointView, len(s.powerUps))
	for i, p := range s.powerUps {
		snap.PowerUps[i] = PointView{ID: uint64(p.ID), X: p.Position.X, Z: p.Position.Z}
	}
	snap.Bones = make([]PointView, len(s.bones))
	for i, b := range s.bones {
		snap.Bones[i] = PointView{ID: uint64(b.ID), X: b.Position.X, Z: b.Position.Z}
	}
	for _, p := range s.pending {
		snap.PendingPerks = append(snap.PendingPerks, p.Label)
	}
	return snap
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := u(snap.NowMS)
	h = h*31 + u(snap.ElapsedMS)
	h = h*31 + uint64(snap.RNGState)
	h = h*31 + hashString(snap.State)
	h = h*31 + f64(snap.PlayerX)
	h = h*31 + f64(snap.PlayerZ)
	h = h*31 + f64(snap.Health)
	h = h*31 + f64(snap.MaxHealth)
	h = h*31 + u(snap.Ammo)
	h = h*31 + u(snap.WeaponLevel)
	h = h*31 + f64(snap.SpeedMod) + f64(snap.DamageMod) + f64(snap.FireRateMod) + f64(snap.MaxHPMod)
	h = h*31 + u(snap.Level)
	h = h*31 + u(snap.Exp)
	h = h*31 + u(snap.Money)
	h = h*31 + u(snap.Kills)

	for _, e := range snap.Enemies {
		h = h*31 + e.ID
		h = h*31 + hashString(e.Type)
		h = h*31 + f64(e.X)
		h = h*31 + f64(e.Z)
		h = h*31 + f64(e.Health)
	}
	for _, group := range [][]PointView{snap.Projectiles, snap.PowerUps, snap.Bones} {
		h = h*31 + uint64(len(group))
		for _, p := range group {
			h = h*31 + p.ID
			h = h*31 + f64(p.X)
			h = h*31 + f64(p.Z)
		}
	}
	for _, label := range snap.PendingPerks {
		h = h*31 + hashString(label)
	}
	return h
}

func u[T int | int64](v T) uint64 {
	return uint64(v) //#nosec G115 -- hash computation
}

func f64(v float64) uint64 {
	return math.Float64bits(v)
}

func hashString(s string) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = h*31 + uint64(s[i])
	}
	return h
}

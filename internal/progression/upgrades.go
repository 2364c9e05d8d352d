// Package progression holds the persistent economy and the per-run
// progression tables: upgrade costs, weapon tiers, characters, perks and the
// experience curve. Everything here is pure; I/O lives in storage.
package progression

import "math"

// UpgradeKind names one of the four shop upgrades.
type UpgradeKind string

const (
	UpgradeHealth   UpgradeKind = "health"
	UpgradeSpeed    UpgradeKind = "speed"
	UpgradeDamage   UpgradeKind = "damage"
	UpgradeFireRate UpgradeKind = "fireRate"
)

// UpgradeKinds lists the upgrades in shop order.
var UpgradeKinds = []UpgradeKind{UpgradeHealth, UpgradeSpeed, UpgradeDamage, UpgradeFireRate}

// UpgradeSpec is one row of the upgrade table. Min is zero when the stat has
// no floor.
type UpgradeSpec struct {
	Name     string
	Base     float64
	PerLevel float64
	Min      float64
	BaseCost float64
	CostMult float64
}

// Upgrades is the shop table.
var Upgrades = map[UpgradeKind]UpgradeSpec{
	UpgradeHealth:   {Name: "Max Health", Base: 100, PerLevel: 25, BaseCost: 100, CostMult: 1.5},
	UpgradeSpeed:    {Name: "Move Speed", Base: 5, PerLevel: 0.5, BaseCost: 150, CostMult: 1.5},
	UpgradeDamage:   {Name: "Damage", Base: 35, PerLevel: 10, BaseCost: 200, CostMult: 1.6},
	UpgradeFireRate: {Name: "Fire Rate", Base: 250, PerLevel: -20, Min: 50, BaseCost: 250, CostMult: 1.7},
}

// ValueAt returns the stat value at a 1-based upgrade level.
func (s UpgradeSpec) ValueAt(level int) float64 {
	v := s.Base + float64(level-1)*s.PerLevel
	if s.Min > 0 {
		v = math.Max(s.Min, v)
	}
	return v
}

// CostAt returns the price of buying the level after level.
func (s UpgradeSpec) CostAt(level int) int {
	return UpgradeCost(s.BaseCost, level, s.CostMult)
}

// UpgradeState holds the 1-based level of every upgrade.
type UpgradeState struct {
	HealthLevel   int `json:"healthLevel"`
	SpeedLevel    int `json:"speedLevel"`
	DamageLevel   int `json:"damageLevel"`
	FireRateLevel int `json:"fireRateLevel"`
}

// Level returns the level of kind.
func (u UpgradeState) Level(kind UpgradeKind) int {
	switch kind {
	case UpgradeHealth:
		return u.HealthLevel
	case UpgradeSpeed:
		return u.SpeedLevel
	case UpgradeDamage:
		return u.DamageLevel
	case UpgradeFireRate:
		return u.FireRateLevel
	}
	return 0
}

func (u UpgradeState) withLevel(kind UpgradeKind, level int) UpgradeState {
	switch kind {
	case UpgradeHealth:
		u.HealthLevel = level
	case UpgradeSpeed:
		u.SpeedLevel = level
	case UpgradeDamage:
		u.DamageLevel = level
	case UpgradeFireRate:
		u.FireRateLevel = level
	}
	return u
}

// PersistentData is everything kept between runs. TotalCash is never
// negative.
type PersistentData struct {
	TotalCash int          `json:"totalCash"`
	Upgrades  UpgradeState `json:"upgrades"`
}

// DefaultSave is the state of a fresh profile.
func DefaultSave() PersistentData {
	return PersistentData{
		Upgrades: UpgradeState{HealthLevel: 1, SpeedLevel: 1, DamageLevel: 1, FireRateLevel: 1},
	}
}

// Normalize repairs hand-edited or legacy saves: levels below 1 become 1 and
// negative cash becomes 0.
func (d PersistentData) Normalize() PersistentData {
	if d.TotalCash < 0 {
		d.TotalCash = 0
	}
	for _, k := range UpgradeKinds {
		if d.Upgrades.Level(k) < 1 {
			d.Upgrades = d.Upgrades.withLevel(k, 1)
		}
	}
	return d
}

// UpgradeCost is floor(baseCost * multiplier^(level-1)).
func UpgradeCost(baseCost float64, level int, multiplier float64) int {
	return int(math.Floor(baseCost * math.Pow(multiplier, float64(level-1))))
}

// NextCost is the price of the next level of kind for this save.
func (d PersistentData) NextCost(kind UpgradeKind) int {
	return Upgrades[kind].CostAt(d.Upgrades.Level(kind))
}

// ApplyUpgrade buys one level of kind. The purchase is all or nothing: when
// the save cannot afford it (or kind is unknown) d is returned unchanged
// with ok false.
func ApplyUpgrade(d PersistentData, kind UpgradeKind) (PersistentData, bool) {
	spec, known := Upgrades[kind]
	if !known {
		return d, false
	}
	level := d.Upgrades.Level(kind)
	cost := spec.CostAt(level)
	if d.TotalCash < cost {
		return d, false
	}
	d.TotalCash -= cost
	d.Upgrades = d.Upgrades.withLevel(kind, level+1)
	return d, true
}

// DepositEarnings adds a run's earnings. Negative amounts are ignored.
func DepositEarnings(d PersistentData, amount int) PersistentData {
	if amount > 0 {
		d.TotalCash += amount
	}
	return d
}

// PlayerStats are the base stats a run starts with.
type PlayerStats struct {
	MaxHealth     float64 `json:"maxHealth"`
	MovementSpeed float64 `json:"movementSpeed"`
	Damage        float64 `json:"damage"`
	FireRate      float64 `json:"fireRate"` // milliseconds between shots
}

// CalculateStats derives run stats from upgrade levels.
func CalculateStats(u UpgradeState) PlayerStats {
	return PlayerStats{
		MaxHealth:     Upgrades[UpgradeHealth].ValueAt(u.HealthLevel),
		MovementSpeed: Upgrades[UpgradeSpeed].ValueAt(u.SpeedLevel),
		Damage:        Upgrades[UpgradeDamage].ValueAt(u.DamageLevel),
		FireRate:      Upgrades[UpgradeFireRate].ValueAt(u.FireRateLevel),
	}
}

// ParseUpgradeKind accepts the kind names plus their save-file spelling
// ("healthLevel").
func ParseUpgradeKind(s string) (UpgradeKind, bool) {
	for _, k := range UpgradeKinds {
		if s == string(k) || s == string(k)+"Level" {
			return k, true
		}
	}
	return "", false
}

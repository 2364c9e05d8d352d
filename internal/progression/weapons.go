package progression

// WeaponID identifies a weapon family.
type WeaponID string

const (
	WeaponPistol  WeaponID = "PISTOL"
	WeaponUzi     WeaponID = "UZI"
	WeaponShotgun WeaponID = "SHOTGUN"
)

// Stance only affects presentation: two-handed weapons use the heavy
// firing cue.
type Stance string

const (
	StanceOneHanded Stance = "ONE_HANDED"
	StanceTwoHanded Stance = "TWO_HANDED"
)

// Weapon is the effective stat block of a weapon at a tier. Times are in
// milliseconds.
type Weapon struct {
	ID              WeaponID
	Name            string
	Stance          Stance
	MaxAmmo         int
	Damage          float64
	FireRate        float64
	ReloadTime      float64
	ProjectileSpeed float64
	PelletCount     int
	Spread          float64
	Automatic       bool
}

// WeaponTier overrides the base weapon at one upgrade level.
type WeaponTier struct {
	MaxAmmo    int
	Damage     float64
	ReloadTime float64
}

// Weapons holds the level-1 stat blocks.
var Weapons = map[WeaponID]Weapon{
	WeaponPistol: {
		ID: WeaponPistol, Name: "Silver Enforcer", Stance: StanceOneHanded,
		MaxAmmo: 12, Damage: 40, FireRate: 250, ReloadTime: 1200,
		ProjectileSpeed: 20, PelletCount: 1,
	},
	WeaponUzi: {
		ID: WeaponUzi, Name: "Micro Silencer", Stance: StanceOneHanded,
		MaxAmmo: 20, Damage: 26, FireRate: 50, ReloadTime: 900,
		ProjectileSpeed: 24, PelletCount: 1, Spread: 0.1, Automatic: true,
	},
	WeaponShotgun: {
		ID: WeaponShotgun, Name: "Demon Breaker", Stance: StanceTwoHanded,
		MaxAmmo: 6, Damage: 22, FireRate: 900, ReloadTime: 2200,
		ProjectileSpeed: 18, PelletCount: 5, Spread: 0.3,
	},
}

// WeaponTiers lists per-level overrides; index 0 is level 1.
var WeaponTiers = map[WeaponID][]WeaponTier{
	WeaponPistol: {
		{MaxAmmo: 12, Damage: 40, ReloadTime: 1200},
		{MaxAmmo: 20, Damage: 60, ReloadTime: 1000},
		{MaxAmmo: 32, Damage: 85, ReloadTime: 800},
	},
	WeaponUzi: {
		{MaxAmmo: 20, Damage: 26, ReloadTime: 900},
		{MaxAmmo: 32, Damage: 34, ReloadTime: 800},
		{MaxAmmo: 50, Damage: 42, ReloadTime: 700},
	},
	WeaponShotgun: {
		{MaxAmmo: 6, Damage: 22, ReloadTime: 2200},
		{MaxAmmo: 10, Damage: 32, ReloadTime: 1900},
		{MaxAmmo: 16, Damage: 45, ReloadTime: 1500},
	},
}

// ReferenceWeapon anchors the damage and fire-rate upgrade ratios.
const ReferenceWeapon = WeaponPistol

// MaxTier returns the highest level of id, or 1 when it has no tier table.
func MaxTier(id WeaponID) int {
	if tiers := WeaponTiers[id]; len(tiers) > 0 {
		return len(tiers)
	}
	return 1
}

// WeaponAt merges the tier override for a 1-based level over the base
// stats. Unknown weapons fall back to the pistol; levels outside the tier
// table return the base weapon.
func WeaponAt(id WeaponID, level int) Weapon {
	w, ok := Weapons[id]
	if !ok {
		w = Weapons[WeaponPistol]
		id = WeaponPistol
	}
	tiers := WeaponTiers[id]
	if level < 1 || level > len(tiers) {
		return w
	}
	t := tiers[level-1]
	w.MaxAmmo = t.MaxAmmo
	w.Damage = t.Damage
	w.ReloadTime = t.ReloadTime
	return w
}

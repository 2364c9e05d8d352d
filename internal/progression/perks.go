package progression

import (
	"fmt"
	"math"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/rng"
)

// PerkType is the effect a level-up choice applies.
type PerkType string

const (
	PerkHeal          PerkType = "HEAL"
	PerkSpeed         PerkType = "SPEED"
	PerkDamage        PerkType = "DAMAGE"
	PerkFireRate      PerkType = "FIRE_RATE"
	PerkMaxHP         PerkType = "MAX_HP"
	PerkWeaponUpgrade PerkType = "WEAPON_UPGRADE"
)

type Rarity string

const (
	RarityCommon Rarity = "COMMON"
	RarityRare   Rarity = "RARE"
	RarityEpic   Rarity = "EPIC"
)

// Perk is one level-up option.
type Perk struct {
	ID          string   `json:"id"`
	Type        PerkType `json:"type"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Rarity      Rarity   `json:"rarity"`
	Value       float64  `json:"value"`
}

// Perks is the random pool. Weapon upgrades are offered separately.
var Perks = []Perk{
	{ID: "p1", Type: PerkHeal, Label: "First Aid", Description: "Heal 50% HP", Rarity: RarityCommon, Value: 0.5},
	{ID: "p2", Type: PerkSpeed, Label: "Adrenaline", Description: "+10% Speed", Rarity: RarityCommon, Value: 0.1},
	{ID: "p3", Type: PerkDamage, Label: "Silver Bullets", Description: "+15% Damage", Rarity: RarityRare, Value: 0.15},
	{ID: "p4", Type: PerkFireRate, Label: "Fast Hands", Description: "+10% Fire Rate", Rarity: RarityRare, Value: 0.1},
	{ID: "p5", Type: PerkMaxHP, Label: "Thick Skin", Description: "+20% Max HP", Rarity: RarityEpic, Value: 0.2},
}

// OptionCount is how many choices a level-up offers.
const OptionCount = 3

// PerkOptions builds the level-up choices. While the weapon has a next tier
// the first option is always its upgrade and two random perks follow;
// otherwise all three are random. Random perks never repeat within one offer.
func PerkOptions(r *rng.Random, weapon WeaponID, weaponLevel int) []Perk {
	pool := make([]Perk, len(Perks))
	copy(pool, Perks)
	r.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	options := make([]Perk, 0, OptionCount)
	if weaponLevel < MaxTier(weapon) {
		options = append(options, weaponUpgradePerk(weapon, weaponLevel+1))
	}
	for i := 0; len(options) < OptionCount; i++ {
		options = append(options, pool[i%len(pool)])
	}
	return options
}

func weaponUpgradePerk(id WeaponID, next int) Perk {
	w := WeaponAt(id, next)
	return Perk{
		ID:    "weapon-upgrade",
		Type:  PerkWeaponUpgrade,
		Label: fmt.Sprintf("%s MK %s", w.Name, Roman(next)),
		Description: fmt.Sprintf("Upgrade to Level %d. Ammo: %d, Dmg: %g, Reload: %gms",
			next, w.MaxAmmo, w.Damage, w.ReloadTime),
		Rarity: RarityEpic,
		Value:  1,
	}
}

// Roman formats a weapon level as a numeral.
func Roman(n int) string {
	numerals := []string{"I", "II", "III", "IV", "V"}
	if n >= 1 && n <= len(numerals) {
		return numerals[n-1]
	}
	return fmt.Sprint(n)
}

// Modifiers are per-run multipliers granted by perks. They start at 1.
type Modifiers struct {
	Speed    float64 `json:"speed"`
	Damage   float64 `json:"damage"`
	FireRate float64 `json:"fireRate"`
	MaxHP    float64 `json:"maxHp"`
}

// NewModifiers returns neutral modifiers.
func NewModifiers() Modifiers {
	return Modifiers{Speed: 1, Damage: 1, FireRate: 1, MaxHP: 1}
}

// Leveling constants.
const (
	BaseExpRequirement = 100
	ExpExponent        = 1.2
)

// ExpRequirement is the experience needed to leave level n.
func ExpRequirement(level int) int {
	return int(math.Floor(BaseExpRequirement * math.Pow(float64(level), ExpExponent)))
}

package progression

// CharacterID names a playable survivor.
type CharacterID string

const (
	CharacterTom        CharacterID = "TOM"
	CharacterHank       CharacterID = "HANK"
	CharacterQuadrinity CharacterID = "QUADRINITY"
)

// DefaultCharacter is used for unknown ids.
const DefaultCharacter = CharacterTom

// Character is a survivor and their fixed starting weapon.
type Character struct {
	ID          CharacterID
	Name        string
	Description string
	Weapon      WeaponID
}

// Characters in selection order.
var Characters = []Character{
	{ID: CharacterTom, Name: "Survivor Tom", Description: "Just trying to make it to dawn.", Weapon: WeaponPistol},
	{ID: CharacterHank, Name: "Exorcist Hank", Description: "Here to clean up the town.", Weapon: WeaponShotgun},
	{ID: CharacterQuadrinity, Name: "Quadrinity", Description: "She needs guns. Lots of guns.", Weapon: WeaponUzi},
}

// CharacterByID resolves id, falling back to DefaultCharacter.
func CharacterByID(id CharacterID) Character {
	for _, c := range Characters {
		if c.ID == id {
			return c
		}
	}
	return Characters[0]
}

// GameOptions are chosen on the start menu.
type GameOptions struct {
	UnlimitedCash bool        `json:"unlimitedCash"`
	SoundEnabled  bool        `json:"soundEnabled"`
	CharacterID   CharacterID `json:"characterId"`
}

// UnlimitedCashAmount is the starting money with UnlimitedCash.
const UnlimitedCashAmount = 9_999_999

// DefaultOptions matches the start menu defaults.
func DefaultOptions() GameOptions {
	return GameOptions{SoundEnabled: true, CharacterID: DefaultCharacter}
}

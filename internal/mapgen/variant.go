package mapgen

import "fmt"

// BuildingVariant selects a building's size range.
type BuildingVariant uint8

const (
	BuildingSmall BuildingVariant = iota
	BuildingMedium
	BuildingLarge
	BuildingRuined
)

var buildingVariantNames = [...]string{"small", "medium", "large", "ruined"}

func (v BuildingVariant) String() string { return enumName(buildingVariantNames[:], int(v)) }

func (v BuildingVariant) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *BuildingVariant) UnmarshalText(b []byte) error {
	i, err := enumParse("building variant", buildingVariantNames[:], string(b))
	*v = BuildingVariant(i)
	return err
}

// TreeVariant is purely cosmetic.
type TreeVariant uint8

const (
	TreeDead TreeVariant = iota
	TreeBurnt
	TreeTwisted
)

var treeVariantNames = [...]string{"dead", "burnt", "twisted"}

func (v TreeVariant) String() string { return enumName(treeVariantNames[:], int(v)) }

func (v TreeVariant) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *TreeVariant) UnmarshalText(b []byte) error {
	i, err := enumParse("tree variant", treeVariantNames[:], string(b))
	*v = TreeVariant(i)
	return err
}

// ObstacleType decides the collision radius of street debris.
type ObstacleType uint8

const (
	ObstacleCar ObstacleType = iota
	ObstacleDebris
	ObstacleBarricade
	ObstacleDumpster
	ObstacleBarrel
)

var obstacleTypeNames = [...]string{"car", "debris", "barricade", "dumpster", "barrel"}

func (t ObstacleType) String() string { return enumName(obstacleTypeNames[:], int(t)) }

func (t ObstacleType) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *ObstacleType) UnmarshalText(b []byte) error {
	i, err := enumParse("obstacle type", obstacleTypeNames[:], string(b))
	*t = ObstacleType(i)
	return err
}

func enumName(names []string, i int) string {
	if i >= 0 && i < len(names) {
		return names[i]
	}
	return fmt.Sprintf("unknown(%d)", i)
}

func enumParse(kind string, names []string, s string) (int, error) {
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	return 0, fmt.Errorf("mapgen: unknown %s %q", kind, s)
}

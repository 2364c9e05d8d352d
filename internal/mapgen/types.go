// Package mapgen builds deterministic town layouts from a seed: a street
// grid, buildings on block plots, trees and obstacles scattered with
// Poisson-disk sampling, and street lamps.
package mapgen

import (
	"errors"
	"fmt"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/core"
)

// Config controls one generated map. Identical configs produce identical maps.
type Config struct {
	Seed            int32   `yaml:"seed" json:"seed"`
	WorldSize       float64 `yaml:"world_size" json:"world_size" jsonschema:"exclusiveMinimum=0"`
	BlockSize       float64 `yaml:"block_size" json:"block_size" jsonschema:"exclusiveMinimum=0"`
	StreetWidth     float64 `yaml:"street_width" json:"street_width" jsonschema:"exclusiveMinimum=0"`
	BuildingDensity float64 `yaml:"building_density" json:"building_density" jsonschema:"minimum=0,maximum=1"`
	TreeDensity     float64 `yaml:"tree_density" json:"tree_density" jsonschema:"minimum=0,maximum=1"`
	ObstacleDensity float64 `yaml:"obstacle_density" json:"obstacle_density" jsonschema:"minimum=0,maximum=1"`
}

// Validate rejects configs that cannot produce a sensible layout. Generate
// itself accepts any config.
func (c Config) Validate() error {
	var errs []error
	if c.WorldSize <= 0 {
		errs = append(errs, fmt.Errorf("world_size must be positive, got %v", c.WorldSize))
	}
	if c.BlockSize <= 0 {
		errs = append(errs, fmt.Errorf("block_size must be positive, got %v", c.BlockSize))
	}
	if c.StreetWidth <= 0 || c.StreetWidth >= c.BlockSize {
		errs = append(errs, fmt.Errorf("street_width must be in (0, block_size), got %v", c.StreetWidth))
	}
	for name, d := range map[string]float64{
		"building_density": c.BuildingDensity,
		"tree_density":     c.TreeDensity,
		"obstacle_density": c.ObstacleDensity,
	} {
		if d < 0 || d > 1 {
			errs = append(errs, fmt.Errorf("%s must be in [0, 1], got %v", name, d))
		}
	}
	return errors.Join(errs...)
}

// Building is a box standing on a block plot.
type Building struct {
	Position core.Vec3       `json:"position"`
	Size     core.Vec3       `json:"size"`
	Color    string          `json:"color"`
	Variant  BuildingVariant `json:"variant"`
	Rotation float64         `json:"rotation"`
}

// Footprint is the ground box the building occupies. Rotation is ignored:
// rotations are multiples of a quarter turn and footprints are clamped to the
// plot on both axes.
func (b Building) Footprint() core.AABB {
	return core.BoxAround(b.Position.Ground(), b.Size[0], b.Size[2])
}

type Tree struct {
	Position core.Vec3   `json:"position"`
	Scale    float64     `json:"scale"`
	Variant  TreeVariant `json:"variant"`
}

type Obstacle struct {
	Position core.Vec3    `json:"position"`
	Type     ObstacleType `json:"type"`
	Rotation float64      `json:"rotation"`
	Scale    float64      `json:"scale"`
}

type StreetLamp struct {
	Position core.Vec3 `json:"position"`
	Rotation float64   `json:"rotation"`
	Working  bool      `json:"working"`
}

// Street is a flat strip. Size is [x extent, z extent].
type Street struct {
	Position core.Vec3  `json:"position"`
	Size     [2]float64 `json:"size"`
	Rotation float64    `json:"rotation"`
}

// Map is an immutable generated layout.
type Map struct {
	Buildings   []Building   `json:"buildings"`
	Trees       []Tree       `json:"trees"`
	Obstacles   []Obstacle   `json:"obstacles"`
	StreetLamps []StreetLamp `json:"streetLamps"`
	Streets     []Street     `json:"streets"`
}

// Counts summarizes how many entities of each kind a map holds.
type Counts struct {
	Buildings, Trees, Obstacles, StreetLamps, Streets int
}

func (m *Map) Counts() Counts {
	return Counts{
		Buildings:   len(m.Buildings),
		Trees:       len(m.Trees),
		Obstacles:   len(m.Obstacles),
		StreetLamps: len(m.StreetLamps),
		Streets:     len(m.Streets),
	}
}

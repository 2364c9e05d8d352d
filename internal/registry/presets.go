package registry

import "github.com/TJ42-dev/Block-Town-Survivors/internal/mapgen"

func init() {
	Register(Preset{
		Name:        "apocalypse_town",
		Title:       "Apocalypse Town",
		Description: "A grid-based city with streets, buildings and debris.",
		Config: mapgen.Config{
			Seed: 12345, WorldSize: 100, BlockSize: 25, StreetWidth: 6,
			BuildingDensity: 0.7, TreeDensity: 0.4, ObstacleDensity: 0.3,
		},
	})
	Register(Preset{
		Name:        "dense_city",
		Title:       "Dense City",
		Description: "More buildings, less open space.",
		Config: mapgen.Config{
			Seed: 54321, WorldSize: 100, BlockSize: 20, StreetWidth: 5,
			BuildingDensity: 0.85, TreeDensity: 0.2, ObstacleDensity: 0.4,
		},
	})
	Register(Preset{
		Name:        "suburban_wasteland",
		Title:       "Suburban Wasteland",
		Description: "Larger blocks and more trees.",
		Config: mapgen.Config{
			Seed: 99999, WorldSize: 120, BlockSize: 35, StreetWidth: 7,
			BuildingDensity: 0.5, TreeDensity: 0.6, ObstacleDensity: 0.25,
		},
	})
	Register(Preset{
		Name:        "industrial_zone",
		Title:       "Industrial Zone",
		Description: "Large buildings, few trees.",
		Config: mapgen.Config{
			Seed: 77777, WorldSize: 100, BlockSize: 30, StreetWidth: 8,
			BuildingDensity: 0.6, TreeDensity: 0.15, ObstacleDensity: 0.5,
		},
	})
	Register(Preset{
		Name:        "arena",
		Title:       "Arena",
		Description: "Compact map for intense action.",
		Config: mapgen.Config{
			Seed: 11111, WorldSize: 60, BlockSize: 20, StreetWidth: 6,
			BuildingDensity: 0.4, TreeDensity: 0.3, ObstacleDensity: 0.35,
		},
	})
}

package mapgen

import (
	"math"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/core"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/rng"
)

const (
	streetHeight     = 0.01
	treeMinDist      = 4
	obstacleMinDist  = 6
	treeStreetMargin = 2 // trees keep this far off the street edge
	obstacleMargin   = 1 // obstacles may spill this far onto the curb
	treeBuildingGap  = 2
	plotFill         = 0.8
	lampChance       = 0.7
	lampWorking      = 0.3
	lampCurbOffset   = 0.5
)

// Palette used for building walls.
var buildingColors = []string{
	"#262626",
	"#1f1f1f",
	"#2d2d2d",
	"#1a1a1a",
	"#333333",
	"#2a2520",
	"#252530",
}

var (
	buildingVariants = []BuildingVariant{BuildingSmall, BuildingMedium, BuildingLarge, BuildingRuined}
	treeVariants     = []TreeVariant{TreeDead, TreeBurnt, TreeTwisted}
	obstacleTypes    = []ObstacleType{ObstacleCar, ObstacleDebris, ObstacleBarricade, ObstacleDumpster, ObstacleBarrel}
	quarterTurns     = []float64{0, math.Pi / 2, math.Pi, -math.Pi / 2}
)

// sizeRange is [min, max) for width, height and depth.
type sizeRange struct {
	w, h, d [2]float64
}

var variantSizes = map[BuildingVariant]sizeRange{
	BuildingSmall:  {w: [2]float64{3, 5}, h: [2]float64{2, 4}, d: [2]float64{3, 5}},
	BuildingMedium: {w: [2]float64{5, 8}, h: [2]float64{4, 7}, d: [2]float64{5, 8}},
	BuildingLarge:  {w: [2]float64{8, 12}, h: [2]float64{6, 10}, d: [2]float64{8, 12}},
	BuildingRuined: {w: [2]float64{4, 8}, h: [2]float64{1, 3}, d: [2]float64{4, 8}},
}

// generator holds the shared state of one Generate call. The order in which
// the steps draw from rng is part of the output format.
type generator struct {
	cfg       Config
	rng       *rng.Random
	half      float64
	numBlocks int
	m         *Map
}

// Generate builds the map for cfg. It is pure: the same config always
// returns an identical map.
func Generate(cfg Config) *Map {
	g := &generator{
		cfg:       cfg,
		rng:       rng.New(cfg.Seed),
		half:      cfg.WorldSize / 2,
		numBlocks: int(math.Floor(cfg.WorldSize / cfg.BlockSize)),
		m: &Map{
			Buildings:   []Building{},
			Trees:       []Tree{},
			Obstacles:   []Obstacle{},
			StreetLamps: []StreetLamp{},
			Streets:     []Street{},
		},
	}

	g.streets()
	g.buildings()
	g.trees()
	g.obstacles()
	g.lamps()
	return g.m
}

func (g *generator) streets() {
	sw := g.cfg.StreetWidth
	for i := 0; i <= g.numBlocks; i++ {
		pos := -g.half + float64(i)*g.cfg.BlockSize
		g.m.Streets = append(g.m.Streets,
			Street{
				Position: core.Vec3{0, streetHeight, pos + sw/2},
				Size:     [2]float64{g.cfg.WorldSize, sw},
			},
			Street{
				Position: core.Vec3{pos + sw/2, streetHeight, 0},
				Size:     [2]float64{sw, g.cfg.WorldSize},
			},
		)
	}
}

func (g *generator) buildings() {
	sw := g.cfg.StreetWidth
	inner := g.cfg.BlockSize - sw

	for bx := 0; bx < g.numBlocks; bx++ {
		for bz := 0; bz < g.numBlocks; bz++ {
			startX := -g.half + float64(bx)*g.cfg.BlockSize + sw
			startZ := -g.half + float64(bz)*g.cfg.BlockSize + sw

			plots := g.rng.Int(1, 3)
			plotSize := inner / float64(plots)

			for px := 0; px < plots; px++ {
				for pz := 0; pz < plots; pz++ {
					if !g.rng.Chance(g.cfg.BuildingDensity) {
						continue
					}
					cx := startX + float64(px)*plotSize + plotSize/2
					cz := startZ + float64(pz)*plotSize + plotSize/2
					g.m.Buildings = append(g.m.Buildings, g.building(cx, cz, plotSize))
				}
			}
		}
	}
}

func (g *generator) building(cx, cz, plotSize float64) Building {
	variant := rng.Pick(g.rng, buildingVariants)
	sr := variantSizes[variant]
	w := g.rng.Range(sr.w[0], sr.w[1])
	h := g.rng.Range(sr.h[0], sr.h[1])
	d := g.rng.Range(sr.d[0], sr.d[1])

	maxDim := plotSize * plotFill
	w = math.Min(w, maxDim)
	d = math.Min(d, maxDim)

	return Building{
		Position: core.Vec3{cx, 0, cz},
		Size:     core.Vec3{w, h, d},
		Color:    rng.Pick(g.rng, buildingColors),
		Variant:  variant,
		Rotation: rng.Pick(g.rng, quarterTurns),
	}
}

func (g *generator) trees() {
	points := Sample(g.rng, g.cfg.WorldSize, g.cfg.WorldSize, treeMinDist, DefaultMaxAttempts)
	for _, p := range points {
		x, z := p[0]-g.half, p[1]-g.half

		if IsOnStreet(x, z, g.cfg.BlockSize, g.cfg.StreetWidth+treeStreetMargin, g.cfg.WorldSize) {
			continue
		}
		if !g.rng.Chance(g.cfg.TreeDensity) {
			continue
		}
		if g.nearBuilding(x, z) {
			continue
		}

		g.m.Trees = append(g.m.Trees, Tree{
			Position: core.Vec3{x, 0, z},
			Scale:    g.rng.Range(0.6, 1.4),
			Variant:  rng.Pick(g.rng, treeVariants),
		})
	}
}

// nearBuilding uses the planar center distance against half the larger side.
func (g *generator) nearBuilding(x, z float64) bool {
	for _, b := range g.m.Buildings {
		dx, dz := x-b.Position[0], z-b.Position[2]
		dist := math.Sqrt(dx*dx + dz*dz)
		if dist < math.Max(b.Size[0], b.Size[2])/2+treeBuildingGap {
			return true
		}
	}
	return false
}

func (g *generator) obstacles() {
	points := Sample(g.rng, g.cfg.WorldSize, g.cfg.WorldSize, obstacleMinDist, DefaultMaxAttempts)
	for _, p := range points {
		x, z := p[0]-g.half, p[1]-g.half

		if !IsOnStreet(x, z, g.cfg.BlockSize, g.cfg.StreetWidth+obstacleMargin, g.cfg.WorldSize) {
			continue
		}
		if !g.rng.Chance(g.cfg.ObstacleDensity) {
			continue
		}

		g.m.Obstacles = append(g.m.Obstacles, Obstacle{
			Position: core.Vec3{x, 0, z},
			Type:     rng.Pick(g.rng, obstacleTypes),
			Rotation: g.rng.Range(0, math.Pi*2),
			Scale:    g.rng.Range(0.8, 1.2),
		})
	}
}

func (g *generator) lamps() {
	sw := g.cfg.StreetWidth
	for i := 0; i <= g.numBlocks; i++ {
		streetPos := -g.half + float64(i)*g.cfg.BlockSize

		for j := 1; j < g.numBlocks; j++ {
			lampZ := -g.half + float64(j)*g.cfg.BlockSize - g.cfg.BlockSize/2

			if g.rng.Chance(lampChance) {
				g.m.StreetLamps = append(g.m.StreetLamps, StreetLamp{
					Position: core.Vec3{streetPos + sw + lampCurbOffset, 0, lampZ},
					Rotation: -math.Pi / 2,
					Working:  g.rng.Chance(lampWorking),
				})
			}
			if g.rng.Chance(lampChance) {
				g.m.StreetLamps = append(g.m.StreetLamps, StreetLamp{
					Position: core.Vec3{streetPos - lampCurbOffset, 0, lampZ},
					Rotation: math.Pi / 2,
					Working:  g.rng.Chance(lampWorking),
				})
			}
		}
	}
}

// Package world answers spatial questions about a generated map: whether an
// actor fits at a point, whether a projectile hit terrain, and where enemies
// and pickups may appear.
package world

import (
	"github.com/TJ42-dev/Block-Town-Survivors/internal/core"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/mapgen"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/rng"
)

// Collision radii.
const (
	TreeRadius           = 0.3 // multiplied by the tree's scale
	CarRadius            = 1.2
	ObstacleRadius       = 0.5
	ProjectileTreeRadius = 0.5
)

// Options tune spawn placement.
type Options struct {
	SpawnRange     float64 // side of the square centered on the origin
	SpawnClearance float64 // keep-out radius around the origin
	SpawnMargin    float64 // extra padding around buildings
	SpawnAttempts  int
	SpawnFallback  core.Vec2
}

// DefaultOptions matches the classic arena spawn rules.
func DefaultOptions() Options {
	return Options{
		SpawnRange:     45,
		SpawnClearance: 12,
		SpawnMargin:    1,
		SpawnAttempts:  50,
		SpawnFallback:  core.V2(20, 20),
	}
}

type circle struct {
	c core.Vec2
	r float64
}

// Index is an immutable collision view of a map. Entity counts are in the
// hundreds, so queries scan linearly.
type Index struct {
	buildings []core.AABB
	trees     []circle
	obstacles []circle
	bounds    core.AABB
	opts      Options
}

// NewIndex builds the collision view of m. worldSize sets the walkable
// bounds; zero disables the bounds check.
func NewIndex(m *mapgen.Map, worldSize float64, opts Options) *Index {
	idx := &Index{opts: opts}
	for _, b := range m.Buildings {
		idx.buildings = append(idx.buildings, b.Footprint())
	}
	for _, t := range m.Trees {
		idx.trees = append(idx.trees, circle{c: t.Position.Ground(), r: TreeRadius * t.Scale})
	}
	for _, o := range m.Obstacles {
		r := ObstacleRadius
		if o.Type == mapgen.ObstacleCar {
			r = CarRadius
		}
		idx.obstacles = append(idx.obstacles, circle{c: o.Position.Ground(), r: r})
	}
	if worldSize > 0 {
		idx.bounds = core.BoxAround(core.Vec2{}, worldSize, worldSize)
	}
	return idx
}

// IsBlocked reports whether an actor of the given radius centered at p
// overlaps terrain or leaves the world.
func (idx *Index) IsBlocked(p core.Vec2, radius float64) bool {
	if idx.outOfBounds(p) {
		return true
	}
	for _, t := range idx.trees {
		if overlaps(p, t, radius) {
			return true
		}
	}
	for _, o := range idx.obstacles {
		if overlaps(p, o, radius) {
			return true
		}
	}
	for _, b := range idx.buildings {
		if b.Inflate(radius).ContainsOpen(p) {
			return true
		}
	}
	return false
}

// BlocksProjectile reports whether a projectile at p hits a tree trunk or a
// building. Obstacles are low enough to shoot over.
func (idx *Index) BlocksProjectile(p core.Vec2) bool {
	for _, t := range idx.trees {
		if p.DistSq(t.c) < ProjectileTreeRadius*ProjectileTreeRadius {
			return true
		}
	}
	for _, b := range idx.buildings {
		if b.ContainsOpen(p) {
			return true
		}
	}
	return false
}

// Move advances from by delta one axis at a time, X first, so an actor
// slides along walls instead of sticking to them.
func (idx *Index) Move(from, delta core.Vec2, radius float64) core.Vec2 {
	pos := from
	if next := core.V2(pos.X+delta.X, pos.Z); !idx.IsBlocked(next, radius) {
		pos = next
	}
	if next := core.V2(pos.X, pos.Z+delta.Z); !idx.IsBlocked(next, radius) {
		pos = next
	}
	return pos
}

// FindValidSpawn samples points until one is clear of padded buildings,
// terrain and the center keep-out zone. After the attempt budget it returns
// the fallback point.
func (idx *Index) FindValidSpawn(r *rng.Random) core.Vec2 {
	clearSq := idx.opts.SpawnClearance * idx.opts.SpawnClearance
	for range idx.opts.SpawnAttempts {
		x := (r.Next() - 0.5) * idx.opts.SpawnRange
		z := (r.Next() - 0.5) * idx.opts.SpawnRange
		p := core.V2(x, z)
		if !idx.spawnClear(p) {
			continue
		}
		if p.LenSq() > clearSq {
			return p
		}
	}
	return idx.opts.SpawnFallback
}

func (idx *Index) spawnClear(p core.Vec2) bool {
	for _, b := range idx.buildings {
		if b.Inflate(idx.opts.SpawnMargin).ContainsOpen(p) {
			return false
		}
	}
	for _, t := range idx.trees {
		if overlaps(p, t, 0) {
			return false
		}
	}
	for _, o := range idx.obstacles {
		if overlaps(p, o, 0) {
			return false
		}
	}
	return true
}

func (idx *Index) outOfBounds(p core.Vec2) bool {
	if idx.bounds == (core.AABB{}) {
		return false
	}
	return p.X < idx.bounds.Min.X || p.X > idx.bounds.Max.X || p.Z < idx.bounds.Min.Z || p.Z > idx.bounds.Max.Z
}

func overlaps(p core.Vec2, c circle, radius float64) bool {
	r := c.r + radius
	return p.DistSq(c.c) < r*r
}

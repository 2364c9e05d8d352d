package mapgen

import (
	"math"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/rng"
)

const (
	// DefaultMaxAttempts is how many candidates are tried around an active
	// point before it is retired.
	DefaultMaxAttempts = 30
	// MaxPoints caps the output so sampling always terminates.
	MaxPoints = 500
)

// Point is a sample in [0, width) x [0, height).
type Point [2]float64

type poissonSampler struct {
	rng         *rng.Random
	width       float64
	height      float64
	minDist     float64
	cellSize    float64
	gridW       int
	gridH       int
	grid        []int // index into points, -1 when empty
	points      []Point
	active      []Point
	maxAttempts int
}

// Sample scatters points over a width x height rectangle so that no two
// points are closer than minDist. It consumes r in a fixed order, so the
// same generator state always yields the same points.
func Sample(r *rng.Random, width, height, minDist float64, maxAttempts int) []Point {
	s := newPoissonSampler(r, width, height, minDist, maxAttempts)
	s.seed()
	for len(s.active) > 0 && len(s.points) < MaxPoints {
		idx := int(s.rng.Next() * float64(len(s.active)))
		if !s.grow(s.active[idx]) {
			s.active = append(s.active[:idx], s.active[idx+1:]...)
		}
	}
	return s.points
}

func newPoissonSampler(r *rng.Random, width, height, minDist float64, maxAttempts int) *poissonSampler {
	cellSize := minDist / math.Sqrt2
	s := &poissonSampler{
		rng:         r,
		width:       width,
		height:      height,
		minDist:     minDist,
		cellSize:    cellSize,
		gridW:       int(math.Ceil(width / cellSize)),
		gridH:       int(math.Ceil(height / cellSize)),
		maxAttempts: maxAttempts,
	}
	s.grid = make([]int, s.gridW*s.gridH)
	for i := range s.grid {
		s.grid[i] = -1
	}
	return s
}

func (s *poissonSampler) seed() {
	x := s.rng.Range(0, s.width)
	z := s.rng.Range(0, s.height)
	s.accept(Point{x, z})
}

// grow tries to place one new point around p. It reports false when every
// attempt was rejected.
func (s *poissonSampler) grow(p Point) bool {
	for range s.maxAttempts {
		angle := s.rng.Next() * math.Pi * 2
		dist := s.rng.Range(s.minDist, s.minDist*2)
		x := p[0] + math.Cos(angle)*dist
		z := p[1] + math.Sin(angle)*dist

		if x < 0 || x >= s.width || z < 0 || z >= s.height {
			continue
		}
		if s.crowded(x, z) {
			continue
		}
		s.accept(Point{x, z})
		return true
	}
	return false
}

// crowded scans the 5x5 cell neighborhood of (x, z).
func (s *poissonSampler) crowded(x, z float64) bool {
	gx, gz := s.cell(x, z)
	minSq := s.minDist * s.minDist
	for dx := -2; dx <= 2; dx++ {
		for dz := -2; dz <= 2; dz++ {
			i, ok := s.index(gx+dx, gz+dz)
			if !ok || s.grid[i] < 0 {
				continue
			}
			n := s.points[s.grid[i]]
			ddx, ddz := x-n[0], z-n[1]
			if ddx*ddx+ddz*ddz < minSq {
				return true
			}
		}
	}
	return false
}

func (s *poissonSampler) accept(p Point) {
	s.points = append(s.points, p)
	s.active = append(s.active, p)
	if i, ok := s.index(s.cell(p[0], p[1])); ok {
		s.grid[i] = len(s.points) - 1
	}
}

func (s *poissonSampler) cell(x, z float64) (int, int) {
	return int(math.Floor(x / s.cellSize)), int(math.Floor(z / s.cellSize))
}

func (s *poissonSampler) index(gx, gz int) (int, bool) {
	if gx < 0 || gx >= s.gridW || gz < 0 || gz >= s.gridH {
		return 0, false
	}
	return gx*s.gridH + gz, true
}

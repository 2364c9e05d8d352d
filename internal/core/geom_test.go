package core

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestVec2Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Vec2
		want Vec2
	}{
		{"axis x", V2(5, 0), V2(1, 0)},
		{"axis z", V2(0, -3), V2(0, -1)},
		{"diagonal", V2(3, 4), V2(0.6, 0.8)},
		{"zero stays zero", V2(0, 0), V2(0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Normalize()
			if math.Abs(got.X-tc.want.X) > eps || math.Abs(got.Z-tc.want.Z) > eps {
				t.Errorf("Normalize(%v) = %v, expected %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestVec2Distance(t *testing.T) {
	a := V2(1, 1)
	b := V2(4, 5)
	if got := a.DistSq(b); got != 25 {
		t.Errorf("DistSq() = %v, expected 25", got)
	}
	if got := b.Sub(a).Len(); got != 5 {
		t.Errorf("Len() = %v, expected 5", got)
	}
}

func TestFromAngleRoundTrip(t *testing.T) {
	for _, a := range []float64{0, 0.5, math.Pi / 2, -2.0, 3.0} {
		got := FromAngle(a).Angle()
		if math.Abs(got-a) > eps {
			t.Errorf("FromAngle(%v).Angle() = %v", a, got)
		}
	}
}

func TestAABBContainsOpen(t *testing.T) {
	box := BoxAround(V2(0, 0), 4, 2)

	tests := []struct {
		name     string
		p        Vec2
		expected bool
	}{
		{"center", V2(0, 0), true},
		{"inside near edge", V2(1.99, 0.99), true},
		{"on x edge", V2(2, 0), false},
		{"on z edge", V2(0, -1), false},
		{"outside", V2(3, 0), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := box.ContainsOpen(tc.p); got != tc.expected {
				t.Errorf("ContainsOpen(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestAABBInflate(t *testing.T) {
	box := BoxAround(V2(10, 10), 2, 2).Inflate(0.5)
	if box.Min != V2(8.5, 8.5) || box.Max != V2(11.5, 11.5) {
		t.Errorf("Inflate() = %+v", box)
	}
	if !box.ContainsOpen(V2(11.4, 10)) {
		t.Error("inflated box should contain a point inside the margin")
	}
}

func TestVec3Ground(t *testing.T) {
	v := Vec3{1, 2, 3}
	if got := v.Ground(); got != V2(1, 3) {
		t.Errorf("Ground() = %v, expected {1 3}", got)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}

	if got := ClampF(15.5, 0, 10); got != 10 {
		t.Errorf("ClampF(15.5, 0, 10) = %v, expected 10", got)
	}
}

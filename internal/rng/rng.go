// Package rng provides the seeded pseudo-random generator shared by map
// generation and the simulation. The sequence is Mulberry32: identical seeds
// produce bitwise-identical streams on every platform.
package rng

import "math"

// Random is a Mulberry32 generator. The zero value is a valid generator
// seeded with 0. Not safe for concurrent use.
type Random struct {
	state uint32
}

// New creates a generator. Negative seeds wrap to their 32-bit two's
// complement form.
func New(seed int32) *Random {
	return &Random{state: uint32(seed)}
}

// FromState restores a generator captured with State.
func FromState(state uint32) *Random {
	return &Random{state: state}
}

// State returns the internal counter so a run can be snapshotted.
func (r *Random) State() uint32 {
	return r.state
}

// Next returns a float in [0, 1).
func (r *Random) Next() float64 {
	r.state += 0x6d2b79f5
	t := r.state
	t = (t ^ t>>15) * (t | 1)
	t ^= t + (t^t>>7)*(t|61)
	return float64(t^t>>14) / 4294967296
}

// Range returns a float in [min, max).
func (r *Random) Range(min, max float64) float64 {
	return min + r.Next()*(max-min)
}

// Int returns an integer in [min, max], inclusive on both ends.
func (r *Random) Int(min, max int) int {
	return int(math.Floor(r.Range(float64(min), float64(max+1))))
}

// Chance reports true with probability p.
func (r *Random) Chance(p float64) bool {
	return r.Next() < p
}

// Shuffle permutes n elements with Fisher-Yates, walking from the end.
func (r *Random) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := int(r.Next() * float64(i+1))
		swap(i, j)
	}
}

// Pick returns a uniformly chosen element. It panics on an empty slice;
// callers only pass fixed non-empty tables.
func Pick[T any](r *Random, items []T) T {
	if len(items) == 0 {
		panic("rng: Pick on empty slice")
	}
	return items[int(r.Next()*float64(len(items)))]
}

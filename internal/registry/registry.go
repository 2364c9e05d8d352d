// Package registry is the global catalogue of map presets. Built-in presets
// register themselves in init(); extra presets can be added at startup from
// configuration files. Lookups never fail: unknown names resolve to the
// default preset.
package registry

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/mapgen"
)

// DefaultPreset is used whenever a requested name is unknown.
const DefaultPreset = "apocalypse_town"

// maxRandomSeed bounds RandomSeed to [0, maxRandomSeed).
const maxRandomSeed = 1_000_000

// Preset is a named map configuration.
type Preset struct {
	Name        string        `yaml:"name" json:"name"`
	Title       string        `yaml:"title" json:"title"`
	Description string        `yaml:"description,omitempty" json:"description,omitempty"`
	Config      mapgen.Config `yaml:"config" json:"config"`
}

var (
	presets = make(map[string]Preset)
	mu      sync.RWMutex
)

// Register adds a preset. Panics if the name is already taken.
func Register(p Preset) {
	if err := Add(p); err != nil {
		panic(err)
	}
}

// Add is Register for presets that come from user files: duplicates and
// invalid configs are reported instead of panicking.
func Add(p Preset) error {
	if p.Name == "" {
		return fmt.Errorf("registry: preset without a name")
	}
	if err := p.Config.Validate(); err != nil {
		return fmt.Errorf("registry: preset %q: %w", p.Name, err)
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := presets[p.Name]; exists {
		return fmt.Errorf("registry: preset %q already registered", p.Name)
	}
	presets[p.Name] = p
	return nil
}

// List returns all registered presets sorted by name.
func List() []Preset {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Preset, 0, len(presets))
	for _, p := range presets {
		result = append(result, p)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Lookup returns the preset registered under name.
func Lookup(name string) (Preset, bool) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := presets[name]
	return p, ok
}

// Get returns the configuration for name, falling back to DefaultPreset.
func Get(name string) mapgen.Config {
	if p, ok := Lookup(name); ok {
		return p.Config
	}
	p, _ := Lookup(DefaultPreset)
	return p.Config
}

// Exists checks if a preset with the given name is registered.
func Exists(name string) bool {
	_, ok := Lookup(name)
	return ok
}

// WithSeed returns the named preset's configuration with its seed replaced.
func WithSeed(name string, seed int32) mapgen.Config {
	cfg := Get(name)
	cfg.Seed = seed
	return cfg
}

// RandomSeed returns a fresh seed for a new game.
func RandomSeed() int32 {
	return int32(rand.IntN(maxRandomSeed))
}

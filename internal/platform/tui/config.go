package tui

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/audio"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/config"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/registry"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/sim"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/storage"
)

// DefaultTickRate is the simulation rate in ticks per second.
const DefaultTickRate = 30

// RuntimeConfig holds the terminal geometry and tick rate.
type RuntimeConfig struct {
	ScreenW  int
	ScreenH  int
	TickRate int
}

// Settings are the choices a player makes in the menu before a run.
type Settings struct {
	Profile    string
	Map        string
	Seed       int32 // 0 picks a random seed per run
	Difficulty config.DifficultyPreset
	Options    progression.GameOptions
}

// DefaultSettings plays the default map on normal difficulty.
func DefaultSettings() Settings {
	return Settings{
		Profile:    storage.DefaultProfile,
		Map:        registry.DefaultPreset,
		Difficulty: config.DifficultyNormal,
		Options:    progression.DefaultOptions(),
	}
}

// Env holds the collaborators shared by every screen. Store, Audio and
// Listener may be nil.
type Env struct {
	Store    storage.SaveStore
	Tuning   config.GameConfig
	Logger   *log.Logger
	Audio    *audio.Player
	Listener sim.Listener
}

func (e Env) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.New(io.Discard)
}

// listeners collects the non-nil event sinks for a run.
func (e Env) listeners() []sim.Option {
	var opts []sim.Option
	if e.Audio != nil {
		opts = append(opts, sim.WithListener(e.Audio))
	}
	if e.Listener != nil {
		opts = append(opts, sim.WithListener(e.Listener))
	}
	return opts
}

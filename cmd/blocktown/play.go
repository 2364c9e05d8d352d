package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/audio"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/config"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/feed"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/platform/tui"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/registry"
)

var (
	flagMap           string
	flagSeed          int32
	flagDifficulty    string
	flagCharacter     string
	flagSound         bool
	flagSoundsDir     string
	flagUnlimitedCash bool
	flagFPS           int
	flagFeed          string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the menu and play",
	Long: `Open the main menu with the given settings preselected. Runs,
purchases and earnings are saved to the profile.

Controls:
  WASD         - Move (Shift+WASD to sprint)
  Arrow keys   - Aim and fire
  Space        - Fire
  R            - Reload
  1-3          - Pick a level-up perk
  P/Esc        - Pause
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower escalation
  normal - Default escalation
  hard   - Faster escalation, bigger spawn batches
  fixed  - No escalation

Sounds are read from <dir>/<cue>.wav (pistol_fire, shotgun_fire, enemy_hit,
enemy_dead, player_hit1..3, bgm). Missing files are skipped.

Examples:
  blocktown play
  blocktown play --map arena --difficulty hard
  blocktown play --character QUADRINITY --seed 1234
  blocktown play --feed :8089`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMap, "map", registry.DefaultPreset, "Map preset (see 'blocktown maps')")
	playCmd.Flags().Int32Var(&flagSeed, "seed", 0, "Seed for map and run (0 = random run on the preset map)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", string(config.DifficultyNormal), "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagCharacter, "character", string(progression.DefaultCharacter), "Character: TOM, HANK, QUADRINITY")
	playCmd.Flags().BoolVar(&flagSound, "sound", true, "Play sound effects and music")
	playCmd.Flags().StringVar(&flagSoundsDir, "sounds", defaultSoundsDir(), "Directory with WAV cues")
	playCmd.Flags().BoolVar(&flagUnlimitedCash, "unlimited-cash", false, "Start runs with unlimited money")
	playCmd.Flags().IntVar(&flagFPS, "fps", tui.DefaultTickRate, "Tick rate (frames per second)")
	playCmd.Flags().StringVar(&flagFeed, "feed", "", "Serve run events over websocket at this address (e.g. :8089)")
}

func defaultSoundsDir() string {
	if dir := config.AppDir(); dir != "" {
		return filepath.Join(dir, "sounds")
	}
	return "sounds"
}

// settingsFromFlags builds the preselected menu settings.
func settingsFromFlags() tui.Settings {
	difficulty, err := config.ParseDifficulty(flagDifficulty)
	if err != nil {
		fail("%v", err)
	}
	character, ok := parseCharacter(flagCharacter)
	if !ok {
		fail("unknown character %q", flagCharacter)
	}
	if !registry.Exists(flagMap) {
		fail("unknown map %q\nRun 'blocktown maps' to see available maps.", flagMap)
	}

	settings := tui.DefaultSettings()
	settings.Profile = flagProfile
	settings.Map = flagMap
	settings.Seed = flagSeed
	settings.Difficulty = difficulty
	settings.Options.CharacterID = character
	settings.Options.SoundEnabled = flagSound
	settings.Options.UnlimitedCash = flagUnlimitedCash
	return settings
}

func parseCharacter(s string) (progression.CharacterID, bool) {
	for _, c := range progression.Characters {
		if strings.EqualFold(string(c.ID), s) {
			return c.ID, true
		}
	}
	return "", false
}

func runPlay(_ *cobra.Command, _ []string) {
	settings := settingsFromFlags()
	tuning := loadTuning()

	logger, closeLog := newLogger(true)
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := openStore(ctx)
	defer store.Close()
	save := loadSave(ctx, store, settings.Profile)

	env := tui.Env{
		Store:  store,
		Tuning: tuning,
		Logger: logger,
		Audio:  startAudio(ctx, logger, settings.Options.SoundEnabled),
	}
	if flagFeed != "" {
		hub := feed.NewHub(logger)
		env.Listener = hub
		go func() {
			if err := feed.ListenAndServe(ctx, flagFeed, hub); err != nil {
				logger.Error("event feed stopped", "err", err)
			}
		}()
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := tui.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
	}

	if err := tui.Run(env, settings, save, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// startAudio opens the speaker and starts the cue player. It returns nil
// when no cue could be loaded or the device is unavailable; the game runs
// silently then.
func startAudio(ctx context.Context, logger *log.Logger, enabled bool) *audio.Player {
	bank := audio.LoadBank(flagSoundsDir, logger)
	if bank.Len() == 0 {
		logger.Info("no sounds loaded", "dir", flagSoundsDir)
		return nil
	}
	spk, err := audio.NewSpeaker()
	if err != nil {
		logger.Warn("audio device unavailable", "err", err)
		return nil
	}
	player := audio.NewPlayer(bank, spk, logger, enabled)
	go func() {
		player.Run(ctx)
		spk.Close()
	}()
	logger.Info("audio ready", "cues", bank.Len())
	return player
}

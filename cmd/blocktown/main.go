// blocktown is a top-down zombie survival game for the terminal, played
// locally or served over SSH.
//
// Usage:
//
//	blocktown play             - Start the menu and play
//	blocktown serve            - Start SSH server for remote play
//	blocktown maps             - List map presets
//	blocktown generate <map>   - Print a generated map as JSON
//	blocktown profile          - Show a profile's bank and upgrades
//	blocktown upgrade <kind>   - Buy an upgrade level
//	blocktown history          - Show recent or best runs
//	blocktown schema <file>    - Print the JSON schema of a config file
//
// Global flags:
//
//	--config <path>      - Tuning YAML (default: search path, then embedded)
//	--maps <path>        - Extra map presets YAML
//	--db <dsn>           - SQLite path or postgres:// URL (default: ~/.blocktown/save.db)
//	--profile <name>     - Save profile (default: "default")
//	--log-level <level>  - debug, info, warn, error
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/config"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/progression"
	"github.com/TJ42-dev/Block-Town-Survivors/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagMaps     string
	flagDB       string
	flagProfile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blocktown",
	Short: "Block Town Survivors - survive the night in your terminal",
	Long: `Block Town Survivors is a top-down zombie survival game. Every run
takes place in a procedurally generated town; money earned in a run buys
permanent upgrades between runs.

Available commands:
  play      - Start the menu and play
  serve     - Start SSH server for remote play
  maps      - List map presets
  generate  - Print a generated map as JSON
  profile   - Show a profile's bank and upgrades
  upgrade   - Buy an upgrade level
  history   - Show recent or best runs
  schema    - Print the JSON schema of a config file

Examples:
  blocktown play
  blocktown play --map arena --character HANK
  blocktown serve --ssh :2222 --feed :8089
  blocktown generate dense_city --seed 7
  blocktown history --best`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		if _, err := config.RegisterMapPresets(flagMaps); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: map presets: %v\n", err)
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagMaps, "maps", "", "Path to extra map presets YAML")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", storage.DefaultPath, "SQLite path or postgres:// URL")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", storage.DefaultProfile, "Save profile name")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mapsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(schemaCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the shared logger. While the TUI owns the terminal the
// log goes to ~/.blocktown/blocktown.log; the returned func closes it.
func newLogger(toFile bool) (*log.Logger, func()) {
	var w io.Writer = os.Stderr
	closer := func() {}
	if toFile {
		w = io.Discard
		if dir := config.AppDir(); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err == nil {
				f, err := os.OpenFile(filepath.Join(dir, "blocktown.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err == nil {
					w = f
					closer = func() { f.Close() }
				}
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "blocktown",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v, using info\n", err)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger, closer
}

// loadTuning loads gameplay tuning or exits.
func loadTuning() config.GameConfig {
	cfg, err := config.LoadGame(flagConfig)
	if err != nil {
		fail("%v", err)
	}
	return cfg
}

// openStore opens the save store or exits.
func openStore(ctx context.Context) storage.SaveStore {
	store, err := storage.Open(ctx, flagDB)
	if err != nil {
		fail("opening save database: %v", err)
	}
	return store
}

// loadSave reads the profile save or exits. A corrupt save is reported
// and replaced by a fresh one.
func loadSave(ctx context.Context, store storage.SaveStore, profile string) progression.PersistentData {
	save, err := store.LoadSave(ctx, profile)
	switch {
	case errors.Is(err, storage.ErrCorruptSave):
		fmt.Fprintf(os.Stderr, "Warning: %v, starting from a fresh save\n", err)
	case err != nil:
		fail("%v", err)
	}
	return save
}

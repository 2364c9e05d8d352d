package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/registry"
)

const (
	appDirName     = ".blocktown"
	tuningFileName = "tuning.yaml"
	mapsFileName   = "maps.yaml"
)

// LoadGame loads gameplay tuning.
// Search order: customPath -> ~/.blocktown/configs/tuning.yaml -> ./configs/tuning.yaml -> embedded default
//
// Fields missing from the file keep their default values.
func LoadGame(customPath string) (GameConfig, error) {
	cfg, err := load(customPath, tuningFileName, defaultTuningYAML, DefaultGameConfig)
	if err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid tuning: %w", err)
	}
	return cfg, nil
}

// LoadMapPresets loads extra map presets.
// Search order: customPath -> ~/.blocktown/configs/maps.yaml -> ./configs/maps.yaml -> embedded default
func LoadMapPresets(customPath string) (MapPresets, error) {
	return load(customPath, mapsFileName, defaultMapsYAML, func() MapPresets { return MapPresets{} })
}

// RegisterMapPresets loads extra map presets and adds them to the registry.
// Presets that fail validation or clash with a registered name are skipped
// and reported in the returned error; the others stay registered.
func RegisterMapPresets(customPath string) (int, error) {
	file, err := LoadMapPresets(customPath)
	if err != nil {
		return 0, err
	}
	var errs []error
	added := 0
	for _, p := range file.Presets {
		if err := registry.Add(p); err != nil {
			errs = append(errs, err)
			continue
		}
		added++
	}
	return added, errors.Join(errs...)
}

func load[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	// Try custom path first
	if customPath != "" {
		cfg := fallback()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then local configs directory
	for _, path := range []string{userConfigPath(filename), filepath.Join("configs", filename)} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			cfg := fallback()
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Use embedded default YAML
	cfg := fallback()
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// AppDir returns ~/.blocktown, or an empty string if home is unavailable.
func AppDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, appDirName)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := AppDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

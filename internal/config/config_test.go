package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/registry"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestEmbeddedTuningMatchesDefaults(t *testing.T) {
	var cfg GameConfig
	if err := yaml.Unmarshal(defaultTuningYAML, &cfg); err != nil {
		t.Fatalf("embedded tuning does not parse: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultGameConfig()) {
		t.Errorf("embedded tuning = %+v, expected %+v", cfg, DefaultGameConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, expected nil", err)
	}
}

func TestLoadGameEmbeddedDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadGame("")
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultGameConfig()) {
		t.Errorf("LoadGame(\"\") = %+v, expected defaults", cfg)
	}
}

func TestLoadGameUserDirWins(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, filepath.Join(home, ".blocktown", "configs", "tuning.yaml"), "spawning:\n  max_enemies: 12\n")

	cfg, err := LoadGame("")
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if cfg.Spawning.MaxEnemies != 12 {
		t.Errorf("MaxEnemies = %d, expected 12", cfg.Spawning.MaxEnemies)
	}
	if cfg.Spawning.IntervalMS != 4000 {
		t.Errorf("IntervalMS = %d, expected default 4000", cfg.Spawning.IntervalMS)
	}
}

func TestLoadGameCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "enemies:\n  contact_damage: 25\ncombat:\n  reload_policy: ignore_pause\n")

	cfg, err := LoadGame(path)
	if err != nil {
		t.Fatalf("LoadGame failed: %v", err)
	}
	if cfg.Enemies.ContactDamage != 25 {
		t.Errorf("ContactDamage = %v, expected 25", cfg.Enemies.ContactDamage)
	}
	if cfg.Combat.ReloadPolicy != ReloadIgnoresPause {
		t.Errorf("ReloadPolicy = %q, expected %q", cfg.Combat.ReloadPolicy, ReloadIgnoresPause)
	}
	if cfg.Enemies.Zombie.Health != 100 {
		t.Errorf("Zombie.Health = %v, expected default 100", cfg.Enemies.Zombie.Health)
	}
}

func TestLoadGameErrors(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "broken.yaml")
	writeFile(t, broken, "player: [unterminated\n")
	invalid := filepath.Join(dir, "invalid.yaml")
	writeFile(t, invalid, "combat:\n  reload_policy: sometimes\nspawning:\n  interval_ms: 0\n")

	tests := []struct {
		name string
		path string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml")},
		{"bad yaml", broken},
		{"invalid values", invalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadGame(tt.path); err == nil {
				t.Errorf("LoadGame(%q) = nil error, expected failure", tt.path)
			}
		})
	}
}

func TestLoadMapPresetsEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	file, err := LoadMapPresets("")
	if err != nil {
		t.Fatalf("LoadMapPresets failed: %v", err)
	}
	if len(file.Presets) == 0 {
		t.Fatal("expected embedded presets")
	}
	for _, p := range file.Presets {
		if err := p.Config.Validate(); err != nil {
			t.Errorf("embedded preset %s invalid: %v", p.Name, err)
		}
		if registry.Exists(p.Name) {
			t.Errorf("embedded preset %s clashes with a built-in preset", p.Name)
		}
	}
}

func TestRegisterMapPresets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maps.yaml")
	writeFile(t, path, `presets:
  - name: test_register_ok
    title: OK
    config: {seed: 5, world_size: 60, block_size: 20, street_width: 6, building_density: 0.5, tree_density: 0.5, obstacle_density: 0.5}
  - name: arena
    title: Duplicate
    config: {seed: 5, world_size: 60, block_size: 20, street_width: 6, building_density: 0.5, tree_density: 0.5, obstacle_density: 0.5}
  - name: test_register_bad
    title: Streets wider than blocks
    config: {seed: 5, world_size: 60, block_size: 4, street_width: 6, building_density: 0.5, tree_density: 0.5, obstacle_density: 0.5}
`)

	added, err := RegisterMapPresets(path)
	if added != 1 {
		t.Errorf("RegisterMapPresets() added = %d, expected 1", added)
	}
	if err == nil {
		t.Error("expected an error for the duplicate and invalid presets")
	}
	if !registry.Exists("test_register_ok") {
		t.Error("valid preset was not registered")
	}
	if registry.Exists("test_register_bad") {
		t.Error("invalid preset was registered")
	}
	if got := registry.Get("test_register_ok").Seed; got != 5 {
		t.Errorf("registered seed = %d, expected 5", got)
	}
}

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{" HARD ", DifficultyHard, false},
		{"fixed", DifficultyFixed, false},
		{"nightmare", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDifficulty(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDifficulty(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDifficulty(%q) = %q, expected %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset   DifficultyPreset
		damage   float64
		interval int
		escalate bool
	}{
		{DifficultyEasy, 10, 5000, true},
		{DifficultyNormal, 15, 4000, true},
		{DifficultyHard, 20, 3000, true},
		{DifficultyFixed, 15, 4000, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultGameConfig()
			ApplyPreset(&cfg, tt.preset)
			if cfg.Enemies.ContactDamage != tt.damage {
				t.Errorf("ContactDamage = %v, expected %v", cfg.Enemies.ContactDamage, tt.damage)
			}
			if cfg.Spawning.IntervalMS != tt.interval {
				t.Errorf("IntervalMS = %d, expected %d", cfg.Spawning.IntervalMS, tt.interval)
			}
			if cfg.Difficulty.Escalate != tt.escalate {
				t.Errorf("Escalate = %v, expected %v", cfg.Difficulty.Escalate, tt.escalate)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("Validate() = %v after preset", err)
			}
		})
	}
}

func TestDifficultyMinutes(t *testing.T) {
	d := DefaultGameConfig().Difficulty
	if got := d.Minutes(150); got != 2.5 {
		t.Errorf("Minutes(150) = %v, expected 2.5", got)
	}
	d.Escalate = false
	if got := d.Minutes(150); got != 0 {
		t.Errorf("Minutes(150) without escalation = %v, expected 0", got)
	}
}

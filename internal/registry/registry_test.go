package registry

import (
	"testing"

	"github.com/TJ42-dev/Block-Town-Survivors/internal/mapgen"
)

func TestBuiltinPresets(t *testing.T) {
	tests := []struct {
		name      string
		seed      int32
		worldSize float64
		blockSize float64
	}{
		{"apocalypse_town", 12345, 100, 25},
		{"dense_city", 54321, 100, 20},
		{"suburban_wasteland", 99999, 120, 35},
		{"industrial_zone", 77777, 100, 30},
		{"arena", 11111, 60, 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := Lookup(tc.name)
			if !ok {
				t.Fatalf("preset %q not registered", tc.name)
			}
			if p.Config.Seed != tc.seed || p.Config.WorldSize != tc.worldSize || p.Config.BlockSize != tc.blockSize {
				t.Errorf("preset %q = %+v", tc.name, p.Config)
			}
		})
	}
}

func TestGetFallsBackToDefault(t *testing.T) {
	want := Get(DefaultPreset)
	if got := Get("moon_base"); got != want {
		t.Errorf("Get(unknown) = %+v, expected default %+v", got, want)
	}
	if Exists("moon_base") {
		t.Error("Exists(unknown) = true")
	}
}

func TestWithSeed(t *testing.T) {
	cfg := WithSeed("arena", 42)
	if cfg.Seed != 42 || cfg.WorldSize != 60 {
		t.Errorf("WithSeed(arena, 42) = %+v", cfg)
	}
	if Get("arena").Seed != 11111 {
		t.Error("WithSeed must not modify the registered preset")
	}

	fallback := WithSeed("nowhere", 7)
	if fallback.Seed != 7 || fallback.BlockSize != 25 {
		t.Errorf("WithSeed(unknown, 7) = %+v", fallback)
	}
}

func TestListSorted(t *testing.T) {
	list := List()
	if len(list) < 5 {
		t.Fatalf("len(List()) = %d, expected at least 5", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Name >= list[i].Name {
			t.Errorf("List() not sorted at %d: %q >= %q", i, list[i-1].Name, list[i].Name)
		}
	}
}

func TestAddRejectsDuplicatesAndInvalid(t *testing.T) {
	if err := Add(Preset{Name: "arena", Config: Get("arena")}); err == nil {
		t.Error("Add(duplicate) should fail")
	}
	if err := Add(Preset{Name: "broken", Config: mapgen.Config{WorldSize: -1}}); err == nil {
		t.Error("Add(invalid) should fail")
	}
	if err := Add(Preset{Config: Get("arena")}); err == nil {
		t.Error("Add(unnamed) should fail")
	}
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register(duplicate) should panic")
		}
	}()
	Register(Preset{Name: DefaultPreset, Config: Get(DefaultPreset)})
}

func TestRandomSeedRange(t *testing.T) {
	for range 100 {
		s := RandomSeed()
		if s < 0 || s >= maxRandomSeed {
			t.Fatalf("RandomSeed() = %d", s)
		}
	}
}

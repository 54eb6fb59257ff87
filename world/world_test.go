package world

import (
	"testing"

	"second-earth/server/terrain"
)

func TestConfigNormalization(t *testing.T) {
	w, err := New(Config{Seed: "  "}, Deps{Registry: testRegistry(t)})
	if err != nil {
		t.Fatalf("new world: %v", err)
	}
	cfg := w.Config()
	if cfg.Seed != DefaultSeed {
		t.Fatalf("blank seed must default to %q, got %q", DefaultSeed, cfg.Seed)
	}
	if cfg.GridType != GridTypeStrategic {
		t.Fatalf("grid type defaulted to %q", cfg.GridType)
	}
	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Fatalf("dimensions defaulted to %dx%d", cfg.Width, cfg.Height)
	}
}

func TestNewRequiresTerrains(t *testing.T) {
	if _, err := New(DefaultConfig(), Deps{}); err == nil {
		t.Fatalf("expected error for missing registry")
	}
	empty, err := terrain.NewRegistry()
	if err != nil {
		t.Fatalf("empty registry: %v", err)
	}
	if _, err := New(DefaultConfig(), Deps{Registry: empty}); err == nil {
		t.Fatalf("expected error for empty registry")
	}
}

func TestRestoreAdoptsGridDimensions(t *testing.T) {
	w := testWorld(t, 4, 3, "restore")
	replacement := NewGrid(GridTypeEarth, 7, 5)
	w.Restore(replacement)
	if w.Grid() != replacement {
		t.Fatalf("grid not replaced")
	}
	cfg := w.Config()
	if cfg.GridType != GridTypeEarth || cfg.Width != 7 || cfg.Height != 5 {
		t.Fatalf("config not adopted from restored grid: %+v", cfg)
	}
}

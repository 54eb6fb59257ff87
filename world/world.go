package world

import (
	"math/rand"
	"strings"

	"second-earth/server/logging"
	"second-earth/server/terrain"
)

// DefaultSeed keeps prototype worlds reproducible when no seed is supplied.
const DefaultSeed = "prototype"

// Default strategic map dimensions.
const (
	DefaultWidth  = 24
	DefaultHeight = 16
)

// Config captures the knobs used when generating a world grid.
type Config struct {
	GridType string `json:"gridType"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Seed     string `json:"seed"`
}

// normalized returns a config with defaults applied.
func (cfg Config) normalized() Config {
	normalized := cfg
	normalized.Seed = strings.TrimSpace(normalized.Seed)
	if normalized.Seed == "" {
		normalized.Seed = DefaultSeed
	}
	if normalized.GridType == "" {
		normalized.GridType = GridTypeStrategic
	}
	if normalized.Width < 1 {
		normalized.Width = DefaultWidth
	}
	if normalized.Height < 1 {
		normalized.Height = DefaultHeight
	}
	return normalized
}

// DefaultConfig returns the strategic map defaults with the default seed.
func DefaultConfig() Config {
	return Config{
		GridType: GridTypeStrategic,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Seed:     DefaultSeed,
	}
}

// Deps bundles the startup catalogs and runtime dependencies for a World.
type Deps struct {
	Registry  *terrain.Registry
	Resources terrain.ResourceTable
	Features  []terrain.FeatureType
	Publisher logging.Publisher
	RNG       RNGFactory
}

// World owns one grid plus the catalogs and seeded RNG hierarchy used to
// populate it. Generation has exclusive write access to the grid for its
// duration; afterwards gameplay code mutates individual cells only.
type World struct {
	config Config
	seed   string

	registry  *terrain.Registry
	resources terrain.ResourceTable
	features  []terrain.FeatureType

	publisher  logging.Publisher
	rngFactory RNGFactory

	grid *Grid
}

// New constructs a world with an empty grid. Call Generate to populate it,
// or Restore to adopt a loaded grid.
func New(cfg Config, deps Deps) (*World, error) {
	normalized := cfg.normalized()

	if deps.Registry == nil || deps.Registry.Len() == 0 {
		return nil, errNoTerrains
	}

	factory := deps.RNG
	if factory == nil {
		factory = NewDeterministicRNG
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	resources := deps.Resources
	if resources == nil {
		resources = terrain.ResourceTable{}
	}

	w := &World{
		config:     normalized,
		seed:       normalized.Seed,
		registry:   deps.Registry,
		resources:  resources,
		features:   append([]terrain.FeatureType(nil), deps.Features...),
		publisher:  publisher,
		rngFactory: factory,
		grid:       NewGrid(normalized.GridType, normalized.Width, normalized.Height),
	}
	return w, nil
}

// Config returns the normalized configuration captured at construction time.
func (w *World) Config() Config {
	return w.config
}

// Seed reports the deterministic seed applied to the RNG hierarchy.
func (w *World) Seed() string {
	return w.seed
}

// Grid exposes the owned grid.
func (w *World) Grid() *Grid {
	return w.grid
}

// Registry exposes the terrain registry the world classifies against.
func (w *World) Registry() *terrain.Registry {
	return w.registry
}

// SubsystemRNG returns a deterministic RNG derived from the world seed and
// the subsystem label.
func (w *World) SubsystemRNG(label string) *rand.Rand {
	return w.rngFactory(w.seed, label)
}

// Restore replaces the world's grid with one rebuilt from a save payload.
func (w *World) Restore(grid *Grid) {
	if grid == nil {
		return
	}
	w.grid = grid
	w.config.GridType = grid.Type()
	w.config.Width = grid.Width()
	w.config.Height = grid.Height()
}

package world

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/aquilax/go-perlin"

	"second-earth/server/logging"
	"second-earth/server/logging/generation"
	"second-earth/server/terrain"
)

// Perlin tuning shared by every parameter field. Low octave counts keep the
// strategic map blobby rather than noisy.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
	perlinScale   = 10.0
)

// Worm sizing relative to grid area.
const (
	wormCountDivisor     = 5
	wormLengthMinDivisor = 24
	wormLengthMaxDivisor = 12
)

// Generate fills the world's grid from scratch: parameter fields first, then
// terrain worms, then a consensus pass over any cells the worms missed,
// finally resources and features. Safe to call again to regenerate.
func (w *World) Generate(ctx context.Context) error {
	grid := w.grid
	start := time.Now()
	worms := grid.Area() / wormCountDivisor

	generation.Started(ctx, w.publisher, w.gridRef(), w.seed, generation.StartedPayload{
		Width:  grid.Width(),
		Height: grid.Height(),
		Worms:  worms,
	})

	w.rollParameters()

	if err := w.runWorms(ctx, worms); err != nil {
		return err
	}
	consensus, fallback := w.fillRemaining()

	resources := w.placeResources()
	features := w.placeFeatures()

	generation.Completed(ctx, w.publisher, w.gridRef(), w.seed, generation.CompletedPayload{
		Width:     grid.Width(),
		Height:    grid.Height(),
		Worms:     worms,
		Duration:  time.Since(start),
		Consensus: consensus,
		Fallback:  fallback,
		Features:  features,
		Resources: resources,
	})
	return nil
}

func (w *World) gridRef() logging.EntityRef {
	return logging.EntityRef{Kind: logging.EntityKindGrid, ID: w.grid.Type()}
}

// rollParameters lays down one smoothed noise field per terrain parameter so
// cells the worms never visit still carry plausible values.
func (w *World) rollParameters() {
	for id := terrain.ParamID(0); id < terrain.ParamCount; id++ {
		label := "terrain.params." + id.String()
		noise := perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, w.SubsystemRNG(label).Int63())
		param := id
		w.grid.EachCell(func(cell *Cell) {
			sample := noise.Noise2D(float64(cell.X())/perlinScale, float64(cell.Y())/perlinScale)
			level := int(math.Round((sample + 1) / 2 * float64(terrain.MaxLevel)))
			cell.SetParameter(param, terrain.ClampLevel(level))
		})
	}
}

// runWorms paints terrain along random cardinal walks. Each worm picks one
// terrain type and drags it across the grid, overwriting whatever it crosses.
func (w *World) runWorms(ctx context.Context, worms int) error {
	grid := w.grid
	rng := w.SubsystemRNG("terrain.worms")
	defs := w.registry.Definitions()

	area := grid.Area()
	minLength := roundDiv(area, wormLengthMinDivisor)
	maxLength := roundDiv(area, wormLengthMaxDivisor)
	if maxLength < minLength {
		maxLength = minLength
	}

	for i := 0; i < worms; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		length := wormLength(rng, minLength, maxLength)
		def := defs[rng.Intn(len(defs))]
		x := rng.Intn(grid.Width())
		y := rng.Intn(grid.Height())
		w.runWorm(rng, def, x, y, length)
	}
	return nil
}

// wormLength draws a length uniformly from the inclusive [min,max] interval.
func wormLength(rng *rand.Rand, min, max int) int {
	if max <= min {
		return min
	}
	return min + rng.Intn(max-min+1)
}

// runWorm paints the start cell, then takes length cardinal steps painting
// each cell it lands on, for length+1 paints in total. Returns the number of
// paints, revisits included.
func (w *World) runWorm(rng *rand.Rand, def *terrain.Definition, x, y, length int) int {
	grid := w.grid
	grid.FindCell(x, y).paint(def, rng)
	painted := 1
	for step := 0; step < length; step++ {
		offset := cardinalOffsets[rng.Intn(len(cardinalOffsets))]
		x, y = grid.Wrap(x+offset[0], y+offset[1])
		grid.FindCell(x, y).paint(def, rng)
		painted++
	}
	return painted
}

// fillRemaining assigns terrain to every cell the worms missed. Each blank
// cell polls its cardinal neighbors in random order and adopts the first
// assigned terrain it sees; isolated cells fall back to a random terrain.
func (w *World) fillRemaining() (consensus, fallback int) {
	rng := w.SubsystemRNG("terrain.consensus")
	defs := w.registry.Definitions()

	w.grid.EachCell(func(cell *Cell) {
		if cell.HasTerrain() {
			return
		}
		neighbors := append([]*Cell(nil), cell.CardinalNeighbors()...)
		rng.Shuffle(len(neighbors), func(i, j int) {
			neighbors[i], neighbors[j] = neighbors[j], neighbors[i]
		})
		for _, neighbor := range neighbors {
			if !neighbor.HasTerrain() {
				continue
			}
			if def, ok := w.registry.Lookup(neighbor.Terrain()); ok {
				cell.paint(def, rng)
				consensus++
				return
			}
		}
		cell.paint(defs[rng.Intn(len(defs))], rng)
		fallback++
	})
	return consensus, fallback
}

// roundDiv divides with round-half-up semantics.
func roundDiv(value, divisor int) int {
	return int(math.Round(float64(value) / float64(divisor)))
}

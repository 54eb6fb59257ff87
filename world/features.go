package world

import "second-earth/server/terrain"

// placeFeatures evaluates every configured feature type against the grid and
// attaches matching features to cells. Returns the number of attachments.
func (w *World) placeFeatures() int {
	rng := w.SubsystemRNG("features")
	placed := 0
	for i := range w.features {
		placed += w.placeFeature(&w.features[i], rng.Float64)
	}
	return placed
}

func (w *World) placeFeature(ft *terrain.FeatureType, roll func() float64) int {
	grid := w.grid
	placed := 0
	attach := func(cell *Cell) {
		cell.AttachFeature(Feature{
			Type:  ft.Name,
			Name:  ft.DisplayName,
			Image: ft.Image,
		})
		placed++
	}

	switch ft.Kind {
	case terrain.FeatureNorthPole:
		w.attachPoleWindow(grid.Height()-1, ft.Span, attach)
	case terrain.FeatureSouthPole:
		w.attachPoleWindow(0, ft.Span, attach)
	case terrain.FeatureEquator:
		equator := grid.Height() / 2
		grid.EachCell(func(cell *Cell) {
			if latitudeDistance(cell.Y(), equator, grid.Height()) <= ft.Span {
				attach(cell)
			}
		})
	case terrain.FeatureTerrainChance:
		grid.EachCell(func(cell *Cell) {
			if ft.AppliesToTerrain(cell.Terrain()) && roll() < ft.Chance {
				attach(cell)
			}
		})
	}
	return placed
}

// attachPoleWindow covers the cells of one edge row whose longitude lies
// within span of the grid's center column.
func (w *World) attachPoleWindow(row, span int, attach func(*Cell)) {
	grid := w.grid
	center := grid.Width() / 2
	seen := make(map[int]struct{}, 2*span+1)
	for dx := -span; dx <= span; dx++ {
		x, y := grid.Wrap(center+dx, row)
		if _, dup := seen[x]; dup {
			continue
		}
		seen[x] = struct{}{}
		attach(grid.FindCell(x, y))
	}
}

// latitudeDistance measures row distance on the wrapped vertical axis.
func latitudeDistance(y, target, height int) int {
	d := y - target
	if d < 0 {
		d = -d
	}
	if wrapped := height - d; wrapped < d {
		d = wrapped
	}
	return d
}

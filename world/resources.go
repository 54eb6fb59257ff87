package world

import "second-earth/server/terrain"

// placeResources rolls one resource per cell from the terrain's frequency
// table. Returns the number of cells that received something other than the
// "none" sentinel.
func (w *World) placeResources() int {
	rng := w.SubsystemRNG("resources")
	placed := 0
	w.grid.EachCell(func(cell *Cell) {
		resource := w.resources.Roll(cell.Terrain(), rng)
		cell.SetResource(resource)
		if resource != terrain.ResourceNone {
			placed++
		}
	})
	return placed
}

package world

import (
	"math/rand"
	"sort"

	"second-earth/server/terrain"
)

// TerrainUnset marks a cell the generation pipeline has not painted yet.
// After Generate returns, no cell carries it.
const TerrainUnset = ""

// Feature is one terrain feature attached to a cell.
type Feature struct {
	Type  string `json:"type"`
	Name  string `json:"name,omitempty"`
	Image string `json:"image,omitempty"`
}

// Cell is one tile of a grid. Cells are owned exclusively by their grid and
// are mutated only by the generation pipeline or by explicit terrain-editing
// operations; rendering consumers get read-only accessors.
type Cell struct {
	x, y int

	params      terrain.ValueSet
	terrainName string
	resource    string
	features    map[string]Feature
	explored    bool

	cardinal []*Cell // N/E/S/W wrap-around neighbors, self and duplicates pruned
	adjacent []*Cell // 8-neighborhood superset of cardinal
}

func newCell(x, y int) *Cell {
	return &Cell{
		x:        x,
		y:        y,
		resource: terrain.ResourceNone,
	}
}

// X returns the cell's column.
func (c *Cell) X() int { return c.x }

// Y returns the cell's row.
func (c *Cell) Y() int { return c.y }

// Terrain returns the cell's terrain name, or TerrainUnset.
func (c *Cell) Terrain() string { return c.terrainName }

// HasTerrain reports whether generation has painted the cell.
func (c *Cell) HasTerrain() bool { return c.terrainName != TerrainUnset }

// Resource returns the cell's resource name, ResourceNone when empty.
func (c *Cell) Resource() string { return c.resource }

// Parameter returns the cell's level for one parameter.
func (c *Cell) Parameter(id terrain.ParamID) int { return c.params.Get(id) }

// Parameters returns a copy of the cell's parameter tuple.
func (c *Cell) Parameters() terrain.ValueSet { return c.params }

// Explored reports whether the cell has been revealed.
func (c *Cell) Explored() bool { return c.explored }

// SetExplored flips the cell's visibility flag.
func (c *Cell) SetExplored(explored bool) { c.explored = explored }

// SetTerrain assigns the cell's terrain name. Gameplay edit hook; the
// generation pipeline uses paint, which also rerolls the parameter tuple.
func (c *Cell) SetTerrain(name string) { c.terrainName = name }

// SetResource assigns the cell's resource name.
func (c *Cell) SetResource(name string) {
	if name == "" {
		name = terrain.ResourceNone
	}
	c.resource = name
}

// SetParameter assigns one clamped parameter level.
func (c *Cell) SetParameter(id terrain.ParamID, value int) {
	c.params.Set(id, value)
}

// HasFeature reports whether a feature of the given type is attached.
func (c *Cell) HasFeature(featureType string) bool {
	_, ok := c.features[featureType]
	return ok
}

// Feature returns the attached feature record for the given type.
func (c *Cell) Feature(featureType string) (Feature, bool) {
	feature, ok := c.features[featureType]
	return feature, ok
}

// Features returns the attached feature records sorted by type name.
func (c *Cell) Features() []Feature {
	if len(c.features) == 0 {
		return nil
	}
	types := make([]string, 0, len(c.features))
	for featureType := range c.features {
		types = append(types, featureType)
	}
	sort.Strings(types)
	features := make([]Feature, 0, len(types))
	for _, featureType := range types {
		features = append(features, c.features[featureType])
	}
	return features
}

// AttachFeature adds or replaces a feature record on the cell.
func (c *Cell) AttachFeature(feature Feature) {
	if feature.Type == "" {
		return
	}
	if c.features == nil {
		c.features = make(map[string]Feature, 1)
	}
	c.features[feature.Type] = feature
}

// RemoveFeature detaches a feature record by type.
func (c *Cell) RemoveFeature(featureType string) {
	delete(c.features, featureType)
}

// CardinalNeighbors returns the wrap-around N/E/S/W neighbors. On degenerate
// grids neighbors that wrap onto the cell itself are omitted, so a 1x1 grid
// has none.
func (c *Cell) CardinalNeighbors() []*Cell {
	return c.cardinal
}

// AdjacentCells returns the full 8-neighborhood with the same pruning rules.
func (c *Cell) AdjacentCells() []*Cell {
	return c.adjacent
}

// paint sets the terrain and rerolls the parameter tuple inside the painted
// definition's ranges so classification agrees with the stored name.
func (c *Cell) paint(def *terrain.Definition, rng *rand.Rand) {
	c.terrainName = def.Name
	c.params = def.RollValues(rng)
}

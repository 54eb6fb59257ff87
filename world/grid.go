package world

import "math/rand"

// Grid type identifiers. Abstract grids are 1x1 locations detached from the
// strategic map, e.g. the Earth screen.
const (
	GridTypeStrategic = "strategic_map"
	GridTypeEarth     = "earth"
)

// Grid is a toroidal width x height array of cells. It owns every cell;
// mini grids are read-projections, never second authorities.
type Grid struct {
	gridType string
	width    int
	height   int
	cells    [][]*Cell // indexed [x][y] like the save payload coordinates
	abstract bool

	miniGrids []*MiniGrid
}

// NewGrid allocates the cells and precomputes wrap-around adjacency.
func NewGrid(gridType string, width, height int) *Grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g := &Grid{gridType: gridType, width: width, height: height}
	g.cells = make([][]*Cell, width)
	for x := 0; x < width; x++ {
		g.cells[x] = make([]*Cell, height)
		for y := 0; y < height; y++ {
			g.cells[x][y] = newCell(x, y)
		}
	}
	g.computeAdjacency()
	return g
}

// NewAbstractGrid allocates a detached 1x1 grid whose single cell starts
// explored.
func NewAbstractGrid(gridType string) *Grid {
	g := NewGrid(gridType, 1, 1)
	g.abstract = true
	g.cells[0][0].SetExplored(true)
	return g
}

var cardinalOffsets = [4][2]int{{0, 1}, {1, 0}, {0, -1}, {-1, 0}}

var adjacentOffsets = [8][2]int{
	{0, 1}, {1, 0}, {0, -1}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

func (g *Grid) computeAdjacency() {
	for _, column := range g.cells {
		for _, cell := range column {
			cell.cardinal = g.neighborList(cell, cardinalOffsets[:])
			cell.adjacent = g.neighborList(cell, adjacentOffsets[:])
		}
	}
}

// neighborList resolves wrapped offsets, dropping self-references and
// duplicates so degenerate 1- or 2-wide grids keep a sane neighborhood.
func (g *Grid) neighborList(cell *Cell, offsets [][2]int) []*Cell {
	neighbors := make([]*Cell, 0, len(offsets))
	seen := make(map[*Cell]struct{}, len(offsets))
	for _, offset := range offsets {
		x, y := g.Wrap(cell.x+offset[0], cell.y+offset[1])
		neighbor := g.cells[x][y]
		if neighbor == cell {
			continue
		}
		if _, dup := seen[neighbor]; dup {
			continue
		}
		seen[neighbor] = struct{}{}
		neighbors = append(neighbors, neighbor)
	}
	return neighbors
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *Grid) Wrap(x, y int) (int, int) {
	x = (x%g.width + g.width) % g.width
	y = (y%g.height + g.height) % g.height
	return x, y
}

// FindCell returns the cell at (x, y), or nil for out-of-range coordinates.
// Callers that want wrapping apply Wrap first; generation does.
func (g *Grid) FindCell(x, y int) *Cell {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return nil
	}
	return g.cells[x][y]
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Type returns the grid type identifier.
func (g *Grid) Type() string { return g.gridType }

// Abstract reports whether this is a detached 1x1 location grid.
func (g *Grid) Abstract() bool { return g.abstract }

// Area returns width x height.
func (g *Grid) Area() int { return g.width * g.height }

// EachCell visits every cell in row-major order.
func (g *Grid) EachCell(visit func(*Cell)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			visit(g.cells[x][y])
		}
	}
}

// Cells returns the cells flattened in row-major order.
func (g *Grid) Cells() []*Cell {
	flat := make([]*Cell, 0, g.Area())
	g.EachCell(func(cell *Cell) {
		flat = append(flat, cell)
	})
	return flat
}

// CellFilter narrows ChooseCell candidates. A nil Match accepts everything
// the other fields allow.
type CellFilter struct {
	// AllowedTerrains restricts candidates to the listed terrain names.
	// Empty means any terrain.
	AllowedTerrains []string
	// AllowOcean admits the y==0 ocean row when true.
	AllowOcean bool
	// Match is an optional extra predicate, e.g. a building-adjacency
	// exclusion owned by the gameplay collaborator.
	Match func(*Cell) bool
}

func (f CellFilter) accepts(cell *Cell) bool {
	if len(f.AllowedTerrains) > 0 {
		allowed := false
		for _, name := range f.AllowedTerrains {
			if cell.terrainName == name {
				allowed = true
				break
			}
		}
		if !allowed {
			return false
		}
	}
	if !f.AllowOcean && cell.y == 0 {
		return false
	}
	if f.Match != nil && !f.Match(cell) {
		return false
	}
	return true
}

// ChooseCell returns a uniformly random cell satisfying the filter, or nil
// when no cell matches. A nil result is a legitimate outcome the caller must
// handle, not an error.
func (g *Grid) ChooseCell(rng *rand.Rand, filter CellFilter) *Cell {
	var candidates []*Cell
	g.EachCell(func(cell *Cell) {
		if filter.accepts(cell) {
			candidates = append(candidates, cell)
		}
	})
	if len(candidates) == 0 {
		return nil
	}
	return candidates[rng.Intn(len(candidates))]
}

// RegisterMini attaches a mini grid so callers can recentre them together.
func (g *Grid) RegisterMini(mini *MiniGrid) {
	if mini == nil {
		return
	}
	g.miniGrids = append(g.miniGrids, mini)
}

// MiniGrids returns the attached mini grids.
func (g *Grid) MiniGrids() []*MiniGrid {
	return g.miniGrids
}

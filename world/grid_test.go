package world

import (
	"testing"

	"second-earth/server/terrain"
)

func containsCell(cells []*Cell, x, y int) bool {
	for _, cell := range cells {
		if cell.X() == x && cell.Y() == y {
			return true
		}
	}
	return false
}

func TestGridWrapAdjacency(t *testing.T) {
	grid := NewGrid(GridTypeStrategic, 4, 3)

	origin := grid.FindCell(0, 0)
	if origin == nil {
		t.Fatalf("expected cell at (0,0)")
	}
	neighbors := origin.CardinalNeighbors()
	if len(neighbors) != 4 {
		t.Fatalf("expected 4 cardinal neighbors, got %d", len(neighbors))
	}
	if !containsCell(neighbors, 3, 0) {
		t.Fatalf("expected west neighbor of (0,0) to wrap to (3,0)")
	}
	if !containsCell(neighbors, 0, 2) {
		t.Fatalf("expected south neighbor of (0,0) to wrap to (0,2)")
	}
	if containsCell(neighbors, 0, 0) {
		t.Fatalf("cell must not neighbor itself")
	}
}

func TestGridFindCellOutOfRange(t *testing.T) {
	grid := NewGrid(GridTypeStrategic, 4, 3)
	if cell := grid.FindCell(4, 0); cell != nil {
		t.Fatalf("expected nil for x out of range, got (%d,%d)", cell.X(), cell.Y())
	}
	if cell := grid.FindCell(0, -1); cell != nil {
		t.Fatalf("expected nil for negative y")
	}
}

func TestGridWrap(t *testing.T) {
	grid := NewGrid(GridTypeStrategic, 4, 3)
	cases := []struct {
		inX, inY   int
		outX, outY int
	}{
		{-1, 0, 3, 0},
		{4, 2, 0, 2},
		{0, -1, 0, 2},
		{2, 3, 2, 0},
		{-5, -4, 3, 2},
	}
	for _, tc := range cases {
		x, y := grid.Wrap(tc.inX, tc.inY)
		if x != tc.outX || y != tc.outY {
			t.Fatalf("Wrap(%d,%d) = (%d,%d), want (%d,%d)", tc.inX, tc.inY, x, y, tc.outX, tc.outY)
		}
	}
}

func TestOneByOneGridHasNoNeighbors(t *testing.T) {
	grid := NewAbstractGrid(GridTypeEarth)
	cell := grid.FindCell(0, 0)
	if cell == nil {
		t.Fatalf("abstract grid must hold one cell")
	}
	if got := len(cell.CardinalNeighbors()); got != 0 {
		t.Fatalf("1x1 grid cell must have no neighbors, got %d", got)
	}
	if got := len(cell.AdjacentCells()); got != 0 {
		t.Fatalf("1x1 grid cell must have no adjacent cells, got %d", got)
	}
	if !cell.Explored() {
		t.Fatalf("abstract grid cell starts explored")
	}
}

func TestChooseCellRespectsFilter(t *testing.T) {
	grid := NewGrid(GridTypeStrategic, 5, 4)
	grid.EachCell(func(cell *Cell) {
		cell.SetTerrain("savannah")
	})
	grid.FindCell(2, 2).SetTerrain("jungle")
	rng := NewDeterministicRNG("choose", "test")

	for i := 0; i < 50; i++ {
		cell := grid.ChooseCell(rng, CellFilter{AllowedTerrains: []string{"jungle"}})
		if cell == nil || cell.X() != 2 || cell.Y() != 2 {
			t.Fatalf("expected the single jungle cell, got %v", cell)
		}
	}

	for i := 0; i < 50; i++ {
		cell := grid.ChooseCell(rng, CellFilter{})
		if cell == nil {
			t.Fatalf("expected a candidate")
		}
		if cell.Y() == 0 {
			t.Fatalf("ocean row must be excluded unless AllowOcean is set")
		}
	}

	if cell := grid.ChooseCell(rng, CellFilter{AllowedTerrains: []string{"tundra"}}); cell != nil {
		t.Fatalf("impossible filter must yield nil, got (%d,%d)", cell.X(), cell.Y())
	}
}

func TestChooseCellMatchPredicate(t *testing.T) {
	grid := NewGrid(GridTypeStrategic, 5, 4)
	rng := NewDeterministicRNG("choose", "match")
	cell := grid.ChooseCell(rng, CellFilter{
		AllowOcean: true,
		Match: func(c *Cell) bool {
			return c.X() == 1 && c.Y() == 0
		},
	})
	if cell == nil || cell.X() != 1 || cell.Y() != 0 {
		t.Fatalf("Match predicate ignored")
	}
}

func TestSetResourceNormalizesEmpty(t *testing.T) {
	cell := newCell(0, 0)
	if cell.Resource() != terrain.ResourceNone {
		t.Fatalf("new cell must carry the none sentinel")
	}
	cell.SetResource("gold")
	cell.SetResource("")
	if cell.Resource() != terrain.ResourceNone {
		t.Fatalf("empty resource must normalize to %q", terrain.ResourceNone)
	}
}

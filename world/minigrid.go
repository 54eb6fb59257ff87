package world

// MiniGrid mirrors a centered window of a parent grid. It holds value copies
// of the parent's cell state, refreshed on each Calibrate call, so a stale
// projection can never desync the parent's terrain data.
type MiniGrid struct {
	parent  *Grid
	width   int
	height  int
	centerX int
	centerY int
	cells   [][]cellView
}

// cellView is the copied per-cell state a mini grid exposes.
type cellView struct {
	parentX  int
	parentY  int
	terrain  string
	resource string
	features []Feature
	explored bool
}

// CellView is the read-only projection of one parent cell.
type CellView struct {
	ParentX  int
	ParentY  int
	Terrain  string
	Resource string
	Features []Feature
	Explored bool
}

// NewMiniGrid builds a projection of the given window size, centered on the
// parent's origin until the first Calibrate.
func NewMiniGrid(parent *Grid, width, height int) *MiniGrid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	m := &MiniGrid{parent: parent, width: width, height: height}
	m.cells = make([][]cellView, width)
	for x := 0; x < width; x++ {
		m.cells[x] = make([]cellView, height)
	}
	parent.RegisterMini(m)
	m.Calibrate(0, 0)
	return m
}

// Width returns the projection's column count.
func (m *MiniGrid) Width() int { return m.width }

// Height returns the projection's row count.
func (m *MiniGrid) Height() int { return m.height }

// Center returns the parent coordinates the projection is centered on.
func (m *MiniGrid) Center() (int, int) { return m.centerX, m.centerY }

// Calibrate recentres the projection on the given parent coordinates and
// copies the covered cell state. The copy is synchronous and complete from
// the caller's perspective.
func (m *MiniGrid) Calibrate(centerX, centerY int) {
	centerX, centerY = m.parent.Wrap(centerX, centerY)
	m.centerX = centerX
	m.centerY = centerY
	for x := 0; x < m.width; x++ {
		for y := 0; y < m.height; y++ {
			parentX, parentY := m.ParentCoordinates(x, y)
			cell := m.parent.FindCell(parentX, parentY)
			m.cells[x][y] = cellView{
				parentX:  parentX,
				parentY:  parentY,
				terrain:  cell.Terrain(),
				resource: cell.Resource(),
				features: cell.Features(),
				explored: cell.Explored(),
			}
		}
	}
}

// ParentCoordinates converts projection coordinates to wrapped parent
// coordinates for the current center.
func (m *MiniGrid) ParentCoordinates(miniX, miniY int) (int, int) {
	parentX := m.centerX + miniX - (m.width-1)/2
	parentY := m.centerY + miniY - (m.height-1)/2
	return m.parent.Wrap(parentX, parentY)
}

// LocalCoordinates converts parent coordinates into the projection, reporting
// whether they fall inside the window.
func (m *MiniGrid) LocalCoordinates(parentX, parentY int) (int, int, bool) {
	parentX, parentY = m.parent.Wrap(parentX, parentY)
	miniX := (parentX - m.centerX + (m.width-1)/2 + m.parent.Width()) % m.parent.Width()
	miniY := (parentY - m.centerY + (m.height-1)/2 + m.parent.Height()) % m.parent.Height()
	if miniX < 0 || miniX >= m.width || miniY < 0 || miniY >= m.height {
		return 0, 0, false
	}
	return miniX, miniY, true
}

// CellAt returns the copied view at projection coordinates, or false when out
// of range.
func (m *MiniGrid) CellAt(x, y int) (CellView, bool) {
	if x < 0 || x >= m.width || y < 0 || y >= m.height {
		return CellView{}, false
	}
	view := m.cells[x][y]
	return CellView{
		ParentX:  view.parentX,
		ParentY:  view.parentY,
		Terrain:  view.terrain,
		Resource: view.resource,
		Features: append([]Feature(nil), view.features...),
		Explored: view.explored,
	}, true
}

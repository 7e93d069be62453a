package engine

// Grid is the fixed-size playing field. Cells are allocated once at
// construction and live for the Game's lifetime; the grid performs no
// clamping or wraparound, so callers must bounds-check positions with
// IsValid before mutating a cell.
type Grid struct {
	width  int
	height int
	cells  [][]Cell
}

// NewGrid allocates a width x height grid of empty cells
func NewGrid(width, height int) *Grid {
	cells := make([][]Cell, height)
	for y := range cells {
		cells[y] = make([]Cell, width)
		for x := range cells[y] {
			cells[y][x] = Cell{Bots: make(map[*Bot]struct{})}
		}
	}
	return &Grid{width: width, height: height, cells: cells}
}

// Width returns the grid width
func (g *Grid) Width() int { return g.width }

// Height returns the grid height
func (g *Grid) Height() int { return g.height }

// CellAt returns a mutable reference to the cell at (x, y).
// The position must be valid.
func (g *Grid) CellAt(x, y int) *Cell {
	return &g.cells[y][x]
}

// CellAtPos returns a mutable reference to the cell at the given position
func (g *Grid) CellAtPos(p Position) *Cell {
	return &g.cells[p.Y][p.X]
}

// IsValid reports whether the position lies within the grid bounds
func (g *Grid) IsValid(p Position) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

package maze

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDimensions = errors.New("invalid maze dimensions")
	ErrOutOfBounds       = errors.New("cell or passage out of bounds")
)

// Grid holds the generation-time state of a rows x cols maze: which cells
// have been visited and which passages between neighbors are open.
//
// verticals[row][col] joins (row, col) and (row, col+1).
// horizontals[row][col] joins (row, col) and (row+1, col).
type Grid struct {
	rows        int
	cols        int
	visited     [][]bool
	verticals   [][]bool
	horizontals [][]bool
}

// NewGrid returns a grid with every cell unvisited and every passage closed.
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}

	return &Grid{
		rows:        rows,
		cols:        cols,
		visited:     newMatrix(rows, cols),
		verticals:   newMatrix(rows, cols-1),
		horizontals: newMatrix(rows-1, cols),
	}, nil
}

func newMatrix(rows, cols int) [][]bool {
	m := make([][]bool, rows)
	for i := range m {
		m[i] = make([]bool, cols)
	}
	return m
}

// Rows returns the number of rows in the grid.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns in the grid.
func (g *Grid) Cols() int { return g.cols }

// InBound reports whether (row, col) addresses a cell of the grid.
func (g *Grid) InBound(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// IsVisited reports whether the cell was visited. Out of range cells are
// reported as unvisited.
func (g *Grid) IsVisited(row, col int) bool {
	return g.InBound(row, col) && g.visited[row][col]
}

// MarkVisited flags the cell as visited.
func (g *Grid) MarkVisited(row, col int) error {
	if !g.InBound(row, col) {
		return fmt.Errorf("%w: cell (%d,%d) in %dx%d grid", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	g.visited[row][col] = true
	return nil
}

// OpenVertical removes the wall between (row, col) and (row, col+1).
func (g *Grid) OpenVertical(row, col int) error {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols-1 {
		return fmt.Errorf("%w: vertical passage (%d,%d) in %dx%d grid", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	g.verticals[row][col] = true
	return nil
}

// OpenHorizontal removes the wall between (row, col) and (row+1, col).
func (g *Grid) OpenHorizontal(row, col int) error {
	if row < 0 || row >= g.rows-1 || col < 0 || col >= g.cols {
		return fmt.Errorf("%w: horizontal passage (%d,%d) in %dx%d grid", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	g.horizontals[row][col] = true
	return nil
}

// IsVerticalOpen reports whether (row, col) and (row, col+1) are connected.
func (g *Grid) IsVerticalOpen(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols-1 && g.verticals[row][col]
}

// IsHorizontalOpen reports whether (row, col) and (row+1, col) are connected.
func (g *Grid) IsHorizontalOpen(row, col int) bool {
	return row >= 0 && row < g.rows-1 && col >= 0 && col < g.cols && g.horizontals[row][col]
}

// openPassage opens the passage crossed by a move between adjacent cells.
func (g *Grid) openPassage(m Move) error {
	switch m.Direction {
	case Left:
		return g.OpenVertical(m.From.Row, m.From.Col-1)
	case Right:
		return g.OpenVertical(m.From.Row, m.From.Col)
	case Up:
		return g.OpenHorizontal(m.From.Row-1, m.From.Col)
	case Down:
		return g.OpenHorizontal(m.From.Row, m.From.Col)
	}
	return fmt.Errorf("%w: unknown direction %q", ErrOutOfBounds, m.Direction)
}

// Maze snapshots the passages into an immutable Maze. Visited flags are
// generation scratch and are not carried over.
func (g *Grid) Maze(start CellPosition) *Maze {
	return &Maze{
		rows:        g.rows,
		cols:        g.cols,
		start:       start,
		verticals:   cloneMatrix(g.verticals),
		horizontals: cloneMatrix(g.horizontals),
	}
}

func cloneMatrix(m [][]bool) [][]bool {
	out := make([][]bool, len(m))
	for i := range m {
		out[i] = make([]bool, len(m[i]))
		copy(out[i], m[i])
	}
	return out
}

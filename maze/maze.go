/*
Package maze provides tools for creating perfect rectangular mazes.

A Grid tracks visited cells and open passages while a Generator carves it
with a randomized depth-first search. The finished Maze exposes only the
passages: every pair of cells is joined by exactly one simple path.

Utility functions enable neighbor detection, path solving, and ASCII
visualization of the maze.
*/
package maze

import (
	"strings"
)

// Maze is the immutable result of generation: dimensions, the cell the
// traversal started from, and the open/closed state of every passage.
type Maze struct {
	rows        int
	cols        int
	start       CellPosition
	verticals   [][]bool
	horizontals [][]bool
}

// FromPassages rebuilds a Maze from decoded passage sets. The matrices must
// be rows x (cols-1) and (rows-1) x cols.
func FromPassages(rows, cols int, start CellPosition, verticals, horizontals [][]bool) (*Maze, error) {
	grid, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(verticals) != rows || len(horizontals) != rows-1 {
		return nil, ErrInvalidDimensions
	}
	for r, row := range verticals {
		if len(row) != cols-1 {
			return nil, ErrInvalidDimensions
		}
		for c, open := range row {
			if open {
				_ = grid.OpenVertical(r, c)
			}
		}
	}
	for r, row := range horizontals {
		if len(row) != cols {
			return nil, ErrInvalidDimensions
		}
		for c, open := range row {
			if open {
				_ = grid.OpenHorizontal(r, c)
			}
		}
	}
	return grid.Maze(start), nil
}

// Rows returns the number of rows.
func (m *Maze) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Maze) Cols() int { return m.cols }

// Start returns the cell generation started from.
func (m *Maze) Start() CellPosition { return m.start }

// InBound checks if a position is within the maze bounds.
func (m *Maze) InBound(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < m.rows && pos.Col >= 0 && pos.Col < m.cols
}

// IsVerticalOpen reports whether (row, col) and (row, col+1) are connected.
func (m *Maze) IsVerticalOpen(row, col int) bool {
	return row >= 0 && row < m.rows && col >= 0 && col < m.cols-1 && m.verticals[row][col]
}

// IsHorizontalOpen reports whether (row, col) and (row+1, col) are connected.
func (m *Maze) IsHorizontalOpen(row, col int) bool {
	return row >= 0 && row < m.rows-1 && col >= 0 && col < m.cols && m.horizontals[row][col]
}

// Verticals returns a copy of the vertical passage set.
func (m *Maze) Verticals() [][]bool { return cloneMatrix(m.verticals) }

// Horizontals returns a copy of the horizontal passage set.
func (m *Maze) Horizontals() [][]bool { return cloneMatrix(m.horizontals) }

// OpenPassages counts the open passages of both axes.
func (m *Maze) OpenPassages() int {
	count := 0
	for _, set := range [][][]bool{m.verticals, m.horizontals} {
		for _, row := range set {
			for _, open := range row {
				if open {
					count++
				}
			}
		}
	}
	return count
}

// CanMove reports whether the passage from pos in direction d is open.
func (m *Maze) CanMove(pos CellPosition, d Direction) bool {
	switch d {
	case Up:
		return m.IsHorizontalOpen(pos.Row-1, pos.Col)
	case Down:
		return m.IsHorizontalOpen(pos.Row, pos.Col)
	case Left:
		return m.IsVerticalOpen(pos.Row, pos.Col-1)
	case Right:
		return m.IsVerticalOpen(pos.Row, pos.Col)
	}
	return false
}

// Neighbors returns the cells reachable from pos through one open passage.
func (m *Maze) Neighbors(pos CellPosition) []CellPosition {
	var result []CellPosition
	for _, d := range Directions {
		if m.CanMove(pos, d) {
			result = append(result, pos.Step(d))
		}
	}
	return result
}

// Solve returns the path of cells from `from` to `to` inclusive following
// open passages, or nil when either end is outside the maze or unreachable.
func (m *Maze) Solve(from, to CellPosition) []CellPosition {
	if !m.InBound(from) || !m.InBound(to) {
		return nil
	}

	parent := map[CellPosition]CellPosition{from: from}
	queue := []CellPosition{from}
	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		if cell == to {
			break
		}
		for _, next := range m.Neighbors(cell) {
			if _, seen := parent[next]; !seen {
				parent[next] = cell
				queue = append(queue, next)
			}
		}
	}

	if _, reached := parent[to]; !reached {
		return nil
	}

	var path []CellPosition
	for cell := to; cell != from; cell = parent[cell] {
		path = append(path, cell)
	}
	path = append(path, from)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// String provides a textual representation of the maze.
func (m *Maze) String() string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+" + strings.Repeat("---+", m.cols) + "\n")

	for row := 0; row < m.rows; row++ {
		b.WriteString("|")
		for col := 0; col < m.cols; col++ {
			if m.IsVerticalOpen(row, col) {
				b.WriteString("    ")
			} else {
				b.WriteString("   |")
			}
		}
		b.WriteString("\n+")

		for col := 0; col < m.cols; col++ {
			if m.IsHorizontalOpen(row, col) {
				b.WriteString("   +")
			} else {
				b.WriteString("---+")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

package maze

import (
	"fmt"
	"math/rand"
)

// RandomSource yields floats uniformly distributed in [0, 1).
// *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// frame is one level of the depth-first traversal: the cell being carved,
// its shuffled neighbor moves, and the next move to try.
type frame struct {
	moves []Move
	next  int
}

// Generator carves a spanning tree into a Grid with a randomized depth-first
// search. The traversal uses an explicit stack so grid size does not bound
// call depth; the order of visits and of random draws is the same as the
// recursive formulation.
type Generator struct {
	grid *Grid
	rnd  RandomSource
}

// NewGenerator binds a generator to the grid it carves and its random source.
func NewGenerator(grid *Grid, rnd RandomSource) *Generator {
	return &Generator{grid: grid, rnd: rnd}
}

// Run picks a uniformly random start cell and visits it, leaving every cell
// of the grid visited. It returns the start cell.
func (gen *Generator) Run() (CellPosition, error) {
	start := CellPosition{
		Row: gen.randomIndex(gen.grid.Rows()),
		Col: gen.randomIndex(gen.grid.Cols()),
	}
	return start, gen.Visit(start.Row, start.Col)
}

// Visit carves from (row, col). Visiting an already visited cell is a no-op.
func (gen *Generator) Visit(row, col int) error {
	if gen.grid.IsVisited(row, col) {
		return nil
	}

	root, err := gen.enter(CellPosition{Row: row, Col: col})
	if err != nil {
		return err
	}

	stack := []*frame{root}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.moves) {
			stack = stack[:len(stack)-1]
			continue
		}

		move := top.moves[top.next]
		top.next++
		if gen.grid.IsVisited(move.To.Row, move.To.Col) {
			continue
		}

		if err := gen.grid.openPassage(move); err != nil {
			return err
		}

		child, err := gen.enter(move.To)
		if err != nil {
			return err
		}
		stack = append(stack, child)
	}

	return nil
}

// enter marks a cell visited and prepares its shuffled neighbor moves.
func (gen *Generator) enter(pos CellPosition) (*frame, error) {
	if err := gen.grid.MarkVisited(pos.Row, pos.Col); err != nil {
		return nil, err
	}
	moves := gen.neighbors(pos)
	gen.shuffle(moves)
	return &frame{moves: moves}, nil
}

// neighbors lists the in-bound moves from pos in up, right, down, left order.
func (gen *Generator) neighbors(pos CellPosition) []Move {
	moves := make([]Move, 0, len(Directions))
	for _, d := range Directions {
		to := pos.Step(d)
		if gen.grid.InBound(to.Row, to.Col) {
			moves = append(moves, Move{From: pos, To: to, Direction: d})
		}
	}
	return moves
}

// shuffle is a Fisher-Yates shuffle walking from the last index down to 1.
func (gen *Generator) shuffle(moves []Move) {
	for i := len(moves) - 1; i > 0; i-- {
		j := gen.randomIndex(i + 1)
		moves[i], moves[j] = moves[j], moves[i]
	}
}

// randomIndex draws an index in [0, n).
func (gen *Generator) randomIndex(n int) int {
	i := int(gen.rnd.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Generate builds a rows x cols perfect maze using rnd. A nil rnd uses a
// freshly seeded source.
func Generate(rows, cols int, rnd RandomSource) (*Maze, error) {
	grid, err := NewGrid(rows, cols)
	if err != nil {
		return nil, err
	}

	if rnd == nil {
		rnd = rand.New(rand.NewSource(rand.Int63()))
	}

	start, err := NewGenerator(grid, rnd).Run()
	if err != nil {
		return nil, fmt.Errorf("generating %dx%d maze: %w", rows, cols, err)
	}
	return grid.Maze(start), nil
}

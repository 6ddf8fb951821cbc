package maze

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corridor builds the 2x2 maze
//
//	+---+---+
//	|       |
//	+---+   +
//	|       |
//	+---+---+
func corridor(t *testing.T) *Maze {
	t.Helper()
	m, err := FromPassages(2, 2, CellPosition{},
		[][]bool{{true}, {true}},
		[][]bool{{false, true}},
	)
	require.NoError(t, err)
	return m
}

func TestMazeString(t *testing.T) {
	expected := strings.Join([]string{
		"+---+---+",
		"|       |",
		"+---+   +",
		"|       |",
		"+---+---+",
		"",
	}, "\n")
	assert.Equal(t, expected, corridor(t).String())
}

func TestMazeNeighborsAndCanMove(t *testing.T) {
	m := corridor(t)

	assert.ElementsMatch(t, []CellPosition{{Row: 0, Col: 1}}, m.Neighbors(CellPosition{Row: 0, Col: 0}))
	assert.ElementsMatch(t, []CellPosition{{Row: 0, Col: 0}, {Row: 1, Col: 1}}, m.Neighbors(CellPosition{Row: 0, Col: 1}))
	assert.True(t, m.CanMove(CellPosition{Row: 1, Col: 1}, Up))
	assert.False(t, m.CanMove(CellPosition{Row: 1, Col: 0}, Up))
	assert.False(t, m.CanMove(CellPosition{Row: 0, Col: 0}, Left))
}

func TestMazeSolve(t *testing.T) {
	m := corridor(t)

	path := m.Solve(CellPosition{Row: 0, Col: 0}, CellPosition{Row: 1, Col: 0})
	assert.Equal(t, []CellPosition{
		{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 1, Col: 0},
	}, path)

	assert.Equal(t, []CellPosition{{Row: 1, Col: 1}}, m.Solve(CellPosition{Row: 1, Col: 1}, CellPosition{Row: 1, Col: 1}))
	assert.Nil(t, m.Solve(CellPosition{Row: 0, Col: 0}, CellPosition{Row: 5, Col: 5}))
}

func TestMazeSolveUnreachable(t *testing.T) {
	m, err := FromPassages(1, 3, CellPosition{}, [][]bool{{true, false}}, nil)
	require.NoError(t, err)
	assert.Nil(t, m.Solve(CellPosition{Row: 0, Col: 0}, CellPosition{Row: 0, Col: 2}))
}

func TestFromPassagesRejectsShapeMismatch(t *testing.T) {
	_, err := FromPassages(2, 2, CellPosition{}, [][]bool{{true}}, [][]bool{{true, true}})
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = FromPassages(2, 2, CellPosition{}, [][]bool{{true}, {true, true}}, [][]bool{{true, true}})
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestSolveAnyPairInGeneratedMaze(t *testing.T) {
	m, err := Generate(8, 8, rand.New(rand.NewSource(11)))
	require.NoError(t, err)

	path := m.Solve(CellPosition{Row: 7, Col: 0}, CellPosition{Row: 0, Col: 7})
	require.NotEmpty(t, path)
	for i := 1; i < len(path); i++ {
		assert.Contains(t, m.Neighbors(path[i-1]), path[i])
	}
}

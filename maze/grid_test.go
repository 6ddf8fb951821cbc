package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGrid(t *testing.T) {
	t.Run("starts closed and unvisited", func(t *testing.T) {
		g, err := NewGrid(3, 4)
		require.NoError(t, err)

		for r := 0; r < 3; r++ {
			for c := 0; c < 4; c++ {
				assert.False(t, g.IsVisited(r, c))
				assert.False(t, g.IsVerticalOpen(r, c))
				assert.False(t, g.IsHorizontalOpen(r, c))
			}
		}
		assert.Equal(t, 0, g.Maze(CellPosition{}).OpenPassages())
	})

	t.Run("rejects non-positive dimensions", func(t *testing.T) {
		_, err := NewGrid(0, 3)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
		_, err = NewGrid(3, -2)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	})
}

func TestGridMutators(t *testing.T) {
	g, err := NewGrid(2, 3)
	require.NoError(t, err)

	t.Run("mark visited", func(t *testing.T) {
		require.NoError(t, g.MarkVisited(1, 2))
		assert.True(t, g.IsVisited(1, 2))
		assert.False(t, g.IsVisited(0, 0))
		assert.ErrorIs(t, g.MarkVisited(2, 0), ErrOutOfBounds)
		assert.ErrorIs(t, g.MarkVisited(0, -1), ErrOutOfBounds)
	})

	t.Run("vertical passages stop one column short", func(t *testing.T) {
		require.NoError(t, g.OpenVertical(1, 1))
		assert.True(t, g.IsVerticalOpen(1, 1))
		assert.False(t, g.IsHorizontalOpen(1, 1))
		assert.ErrorIs(t, g.OpenVertical(0, 2), ErrOutOfBounds)
		assert.ErrorIs(t, g.OpenVertical(2, 0), ErrOutOfBounds)
	})

	t.Run("horizontal passages stop one row short", func(t *testing.T) {
		require.NoError(t, g.OpenHorizontal(0, 2))
		assert.True(t, g.IsHorizontalOpen(0, 2))
		assert.ErrorIs(t, g.OpenHorizontal(1, 0), ErrOutOfBounds)
		assert.ErrorIs(t, g.OpenHorizontal(0, 3), ErrOutOfBounds)
	})

	t.Run("out of range reads are closed", func(t *testing.T) {
		assert.False(t, g.IsVisited(-1, 0))
		assert.False(t, g.IsVerticalOpen(5, 5))
		assert.False(t, g.IsHorizontalOpen(-1, -1))
	})
}

func TestOpenPassageDirections(t *testing.T) {
	g, err := NewGrid(3, 3)
	require.NoError(t, err)
	center := CellPosition{Row: 1, Col: 1}

	for _, d := range Directions {
		require.NoError(t, g.openPassage(Move{From: center, To: center.Step(d), Direction: d}))
	}

	assert.True(t, g.IsVerticalOpen(1, 0), "left")
	assert.True(t, g.IsVerticalOpen(1, 1), "right")
	assert.True(t, g.IsHorizontalOpen(0, 1), "up")
	assert.True(t, g.IsHorizontalOpen(1, 1), "down")

	corner := CellPosition{Row: 0, Col: 0}
	assert.ErrorIs(t, g.openPassage(Move{From: corner, To: corner.Step(Left), Direction: Left}), ErrOutOfBounds)
	assert.ErrorIs(t, g.openPassage(Move{From: corner, To: corner.Step(Up), Direction: Up}), ErrOutOfBounds)
}

func TestGridMazeDropsScratchState(t *testing.T) {
	g, err := NewGrid(2, 2)
	require.NoError(t, err)
	require.NoError(t, g.OpenVertical(0, 0))

	m := g.Maze(CellPosition{Row: 0, Col: 1})
	require.NoError(t, g.OpenHorizontal(0, 0))

	assert.Equal(t, 1, m.OpenPassages(), "snapshot must not alias grid storage")
	assert.Equal(t, CellPosition{Row: 0, Col: 1}, m.Start())
}

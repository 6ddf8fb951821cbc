package terminal

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/beka-birhanu/tilt-maze/game"
	"github.com/beka-birhanu/tilt-maze/maze"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s
}

func rowText(s tcell.Screen, row, cols int) string {
	var b strings.Builder
	for x := 0; x < cols; x++ {
		r, _, _, _ := s.GetContent(x, row)
		b.WriteRune(r)
	}
	return b.String()
}

func TestScreenDrawsWorld(t *testing.T) {
	sim := newSimScreen(t, 42, 11)
	m, err := maze.Generate(10, 14, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	l, err := game.NewLayout(m, 840, 600)
	require.NoError(t, err)

	NewScreen(sim).Draw(Frame{
		World:  NewWorld(l),
		Layout: l,
		Hint:   []maze.CellPosition{{Row: 5, Col: 7}},
		Status: "status",
	})

	// 42 columns over 840 units: 20 units per column; 10 rows over 600: 60 per row.
	r, _, _, _ := sim.GetContent(1, 0)
	assert.Equal(t, ballRune, r)

	r, _, _, _ = sim.GetContent(40, 9)
	assert.Equal(t, goalRune, r)

	r, _, _, _ = sim.GetContent(22, 5)
	assert.Equal(t, hintRune, r)

	r, _, _, _ = sim.GetContent(20, 0)
	assert.Equal(t, wallRune, r)

	assert.True(t, strings.HasPrefix(rowText(sim, 10, 42), "status "))
}

func TestScreenToleratesEmptyFrame(t *testing.T) {
	sim := newSimScreen(t, 10, 1)
	assert.NotPanics(t, func() { NewScreen(sim).Draw(Frame{}) })
}

func TestProjectionClamps(t *testing.T) {
	p := projection{fx: 0.1, fy: 0.1, cols: 10, rows: 5}
	x, y := p.point(game.Vector{X: -5, Y: 200})
	assert.Equal(t, 0, x)
	assert.Equal(t, 4, y)
	assert.False(t, p.visible(game.Vector{Y: 60}))
	assert.True(t, p.visible(game.Vector{Y: 10}))
}

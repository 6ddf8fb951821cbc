package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/beka-birhanu/tilt-maze/game"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*App, tcell.SimulationScreen) {
	t.Helper()
	sim := newSimScreen(t, 60, 21)
	a, err := NewApp(Options{Screen: sim, Rows: 6, Cols: 8, Width: 480, Height: 360, Seed: 3})
	require.NoError(t, err)
	return a, sim
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestAppRequiresScreen(t *testing.T) {
	_, err := NewApp(Options{Rows: 2, Cols: 2, Width: 10, Height: 10})
	assert.Error(t, err)
}

func TestAppPushesBall(t *testing.T) {
	a, _ := newTestApp(t)

	assert.True(t, a.HandleEvent(key('d')))
	assert.Equal(t, game.Vector{X: game.VelocityStep}, a.World().Ball().Velocity)

	assert.True(t, a.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)))
	assert.Equal(t, game.Vector{X: game.VelocityStep, Y: game.VelocityStep}, a.World().Ball().Velocity)

	a.Tick()
	assert.Greater(t, a.Session().Ball().Position.X, a.Session().Layout().BallStart.X)
}

func TestAppHintAndWin(t *testing.T) {
	a, _ := newTestApp(t)

	a.HandleEvent(key('h'))
	path := a.hintPath()
	require.NotEmpty(t, path)
	assert.Equal(t, 5, path[len(path)-1].Row)
	assert.Equal(t, 7, path[len(path)-1].Col)

	assert.True(t, a.Session().OnCollision(game.GoalLabel, game.BallLabel))
	assert.True(t, a.Won())
	assert.True(t, a.World().Gravity())
	assert.Nil(t, a.hintPath())

	before := a.World().Ball().Velocity
	assert.True(t, a.HandleEvent(key('a')))
	assert.Equal(t, before, a.World().Ball().Velocity)
	a.Draw()

	first := a.Session()
	a.HandleEvent(key('r'))
	assert.False(t, a.Won())
	assert.NotSame(t, first, a.Session())
	assert.Equal(t, game.Playing, a.Session().Phase())
}

func TestAppQuitKeys(t *testing.T) {
	a, _ := newTestApp(t)
	assert.False(t, a.HandleEvent(key('q')))
	assert.False(t, a.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.True(t, a.HandleEvent(key('x')))
}

func TestAppRunStopsOnQuit(t *testing.T) {
	a, sim := newTestApp(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	assert.NoError(t, a.Run(ctx))
}

func TestAppRunStopsOnCancel(t *testing.T) {
	a, _ := newTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, a.Run(ctx), context.Canceled)
}

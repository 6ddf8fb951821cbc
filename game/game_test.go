package game

import (
	"math/rand"
	"testing"

	"github.com/beka-birhanu/tilt-maze/maze"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder counts collaborator calls.
type recorder struct {
	winners    int
	gravity    int
	releases   int
	velocities []Vector
}

func (r *recorder) ShowWinner()              { r.winners++ }
func (r *recorder) EnableGravity()           { r.gravity++ }
func (r *recorder) ReleaseWalls()            { r.releases++ }
func (r *recorder) SetBallVelocity(v Vector) { r.velocities = append(r.velocities, v) }

func TestStateWinsOnce(t *testing.T) {
	rec := &recorder{}
	s := NewState(rec, rec)
	assert.Equal(t, Playing, s.Phase())

	assert.False(t, s.HandleCollision(BallLabel, WallLabel))
	assert.False(t, s.HandleCollision(GoalLabel, WallLabel))
	assert.False(t, s.Won())

	assert.True(t, s.HandleCollision(GoalLabel, BallLabel))
	assert.True(t, s.Won())
	assert.Equal(t, "won", s.Phase().String())

	for i := 0; i < 3; i++ {
		assert.False(t, s.HandleCollision(BallLabel, GoalLabel))
	}
	assert.Equal(t, 1, rec.winners)
	assert.Equal(t, 1, rec.gravity)
	assert.Equal(t, 1, rec.releases)
}

func TestStateWithoutCollaborators(t *testing.T) {
	s := NewState(nil, nil)
	assert.True(t, s.HandleCollision(BallLabel, GoalLabel))
	assert.True(t, s.Won())
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want maze.Direction
	}{
		{"up", maze.Up}, {"W", maze.Up}, {" down ", maze.Down}, {"s", maze.Down},
		{"Left", maze.Left}, {"a", maze.Left}, {"right", maze.Right}, {"d", maze.Right},
	}
	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParseDirection("jump")
	assert.ErrorIs(t, err, ErrUnknownDirection)
}

func TestInputMapperApply(t *testing.T) {
	bounds := Bounds{MinX: 2, MinY: 2, MaxX: 98, MaxY: 48}
	mapper := NewInputMapper(bounds, NewState(nil, nil))
	center := Token{Position: Vector{X: 50, Y: 25}, Velocity: Vector{X: 1, Y: -1}, Radius: 4}

	t.Run("adds the step on the commanded axis", func(t *testing.T) {
		cases := map[maze.Direction]Vector{
			maze.Up:    {X: 1, Y: -6},
			maze.Down:  {X: 1, Y: 4},
			maze.Left:  {X: -4, Y: -1},
			maze.Right: {X: 6, Y: -1},
		}
		for d, want := range cases {
			got, applied, err := mapper.Apply(d, center)
			require.NoError(t, err)
			assert.True(t, applied, d)
			assert.Equal(t, want, got, d)
		}
	})

	t.Run("refuses pushes past the boundary", func(t *testing.T) {
		cases := map[maze.Direction]Vector{
			maze.Up:    {X: 50, Y: 6},
			maze.Down:  {X: 50, Y: 44},
			maze.Left:  {X: 6, Y: 25},
			maze.Right: {X: 94, Y: 25},
		}
		for d, pos := range cases {
			tok := center
			tok.Position = pos
			got, applied, err := mapper.Apply(d, tok)
			require.NoError(t, err)
			assert.False(t, applied, d)
			assert.Equal(t, center.Velocity, got, d)
		}
	})

	t.Run("unknown direction", func(t *testing.T) {
		_, _, err := mapper.Apply(maze.Direction("north"), center)
		assert.ErrorIs(t, err, ErrUnknownDirection)
	})
}

func TestInputMapperNeverPushesPastBounds(t *testing.T) {
	bounds := Bounds{MinX: 2, MinY: 2, MaxX: 198, MaxY: 98}
	mapper := NewInputMapper(bounds, NewState(nil, nil))
	rnd := rand.New(rand.NewSource(4))

	for i := 0; i < 2000; i++ {
		tok := Token{
			Position: Vector{X: rnd.Float64() * 200, Y: rnd.Float64() * 100},
			Radius:   3,
		}
		d := maze.Directions[rnd.Intn(len(maze.Directions))]
		_, applied, err := mapper.Apply(d, tok)
		require.NoError(t, err)
		if !applied {
			continue
		}

		p, r := tok.Position, tok.Radius
		switch d {
		case maze.Up:
			assert.Greater(t, p.Y-r, bounds.MinY)
		case maze.Down:
			assert.Less(t, p.Y+r, bounds.MaxY)
		case maze.Left:
			assert.Greater(t, p.X-r, bounds.MinX)
		case maze.Right:
			assert.Less(t, p.X+r, bounds.MaxX)
		}
	}
}

func TestInputMapperStopsAfterWin(t *testing.T) {
	state := NewState(nil, nil)
	mapper := NewInputMapper(Bounds{MaxX: 100, MaxY: 100}, state)
	state.HandleCollision(BallLabel, GoalLabel)

	tok := Token{Position: Vector{X: 50, Y: 50}, Velocity: Vector{X: 2}, Radius: 1}
	v, applied, err := mapper.Apply(maze.Up, tok)
	assert.ErrorIs(t, err, ErrSessionWon)
	assert.False(t, applied)
	assert.Equal(t, tok.Velocity, v)
}

/*
Package game runs a single tilt-maze session: the ball is pushed around a
generated maze by directional commands until it touches the goal, at which
point the walls are released to the physics world.

Rendering, physics and input devices stay outside the package behind the
Presenter and PhysicsWorld interfaces.
*/
package game

import (
	"github.com/beka-birhanu/tilt-maze/maze"
)

// Config holds the parameters of a new session.
type Config struct {
	Rows   int               // Maze rows
	Cols   int               // Maze columns
	Width  float64           // World width
	Height float64           // World height
	Random maze.RandomSource // Generation source; nil seeds a new one
}

// Session owns one maze, its world layout, the ball and the win state.
// Events must be delivered one at a time.
type Session struct {
	maze   *maze.Maze
	layout *Layout
	state  *State
	input  *InputMapper
	world  PhysicsWorld
	ball   Token
}

// NewSession generates the maze and places the ball at the center of the
// top-left cell.
func NewSession(c Config, p Presenter, w PhysicsWorld) (*Session, error) {
	m, err := maze.Generate(c.Rows, c.Cols, c.Random)
	if err != nil {
		return nil, err
	}

	layout, err := NewLayout(m, c.Width, c.Height)
	if err != nil {
		return nil, err
	}

	state := NewState(p, w)
	return &Session{
		maze:   m,
		layout: layout,
		state:  state,
		input:  NewInputMapper(layout.Bounds, state),
		world:  w,
		ball: Token{
			Position: layout.BallStart,
			Radius:   layout.BallRadius,
		},
	}, nil
}

// Maze returns the generated maze.
func (s *Session) Maze() *maze.Maze { return s.maze }

// Layout returns the world geometry.
func (s *Session) Layout() *Layout { return s.layout }

// Ball returns the last known ball state.
func (s *Session) Ball() Token { return s.ball }

// Phase returns the win state machine's phase.
func (s *Session) Phase() Phase { return s.state.Phase() }

// Won reports whether the goal has been reached.
func (s *Session) Won() bool { return s.state.Won() }

// OnDirectionalCommand pushes the ball and forwards the new velocity to the
// physics world. It returns the resulting velocity and whether it changed.
func (s *Session) OnDirectionalCommand(d maze.Direction) (Vector, bool, error) {
	v, applied, err := s.input.Apply(d, s.ball)
	if err != nil || !applied {
		return v, applied, err
	}

	s.ball.Velocity = v
	if s.world != nil {
		s.world.SetBallVelocity(v)
	}
	return v, true, nil
}

// OnCollision forwards a collision notification to the win state machine.
// It returns true for the event that won the session.
func (s *Session) OnCollision(labelA, labelB string) bool {
	return s.state.HandleCollision(labelA, labelB)
}

// SyncBall records the ball state reported by the physics world.
func (s *Session) SyncBall(position, velocity Vector) {
	s.ball.Position = position
	s.ball.Velocity = velocity
}

package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/beka-birhanu/tilt-maze/maze"
)

// VelocityStep is the speed added along the commanded axis per command.
const VelocityStep = 5.0

var (
	ErrSessionWon       = errors.New("session already won")
	ErrUnknownDirection = errors.New("unknown direction")
)

var directionAliases = map[string]maze.Direction{
	"up":    maze.Up,
	"w":     maze.Up,
	"down":  maze.Down,
	"s":     maze.Down,
	"left":  maze.Left,
	"a":     maze.Left,
	"right": maze.Right,
	"d":     maze.Right,
}

// ParseDirection maps a command name or a WASD key to a direction.
func ParseDirection(s string) (maze.Direction, error) {
	d, ok := directionAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
	return d, nil
}

// Token is the ball's kinematic state as last reported by the physics world.
type Token struct {
	Position Vector  `json:"position"`
	Velocity Vector  `json:"velocity"`
	Radius   float64 `json:"radius"`
}

// InputMapper turns directional commands into velocity changes, refusing
// any push whose leading edge is already at the outer boundary. Interior
// walls are left to the physics world.
type InputMapper struct {
	bounds Bounds
	state  *State
}

// NewInputMapper returns a mapper bounded by b that stops accepting
// commands once s is won.
func NewInputMapper(b Bounds, s *State) *InputMapper {
	return &InputMapper{bounds: b, state: s}
}

// Apply returns the token's velocity after the command and whether the
// command changed it. The check uses the current position, not the position
// after the next simulation step.
func (im *InputMapper) Apply(d maze.Direction, t Token) (Vector, bool, error) {
	if im.state.Won() {
		return t.Velocity, false, ErrSessionWon
	}

	v, p, r := t.Velocity, t.Position, t.Radius
	switch d {
	case maze.Up:
		if p.Y-r > im.bounds.MinY {
			return Vector{X: v.X, Y: v.Y - VelocityStep}, true, nil
		}
	case maze.Down:
		if p.Y+r < im.bounds.MaxY {
			return Vector{X: v.X, Y: v.Y + VelocityStep}, true, nil
		}
	case maze.Left:
		if p.X-r > im.bounds.MinX {
			return Vector{X: v.X - VelocityStep, Y: v.Y}, true, nil
		}
	case maze.Right:
		if p.X+r < im.bounds.MaxX {
			return Vector{X: v.X + VelocityStep, Y: v.Y}, true, nil
		}
	default:
		return v, false, fmt.Errorf("%w: %q", ErrUnknownDirection, d)
	}
	return v, false, nil
}

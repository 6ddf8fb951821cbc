package terminal

import (
	"github.com/beka-birhanu/tilt-maze/game"
)

const (
	airDamping  = 0.99 // Velocity kept per tick.
	gravityStep = 0.5  // Downward speed gained per tick once gravity is on.
	subSteps    = 4    // Integration slices per tick.
)

// Collision names two bodies that started touching during a step.
type Collision struct {
	LabelA string
	LabelB string
}

type body struct {
	rect     game.Rect
	velocity game.Vector
	static   bool
}

// World is a small kinematic simulation of a maze layout: the ball moves
// with its velocity, stops against static walls, and released interior walls
// fall under gravity onto the floor. Boundary walls never move. It
// implements game.PhysicsWorld.
type World struct {
	layout      *game.Layout
	ball        game.Token
	bodies      []body
	gravity     bool
	touchedWall bool
	touchedGoal bool
}

var _ game.PhysicsWorld = &World{}

// NewWorld builds the bodies of l with the ball at its spawn point.
func NewWorld(l *game.Layout) *World {
	w := &World{
		layout: l,
		ball:   game.Token{Position: l.BallStart, Radius: l.BallRadius},
		bodies: make([]body, 0, len(l.Walls)),
	}
	for _, r := range l.Walls {
		w.bodies = append(w.bodies, body{rect: r, static: true})
	}
	return w
}

// SetBallVelocity implements game.PhysicsWorld.
func (w *World) SetBallVelocity(v game.Vector) {
	w.ball.Velocity = v
}

// EnableGravity implements game.PhysicsWorld.
func (w *World) EnableGravity() {
	w.gravity = true
}

// ReleaseWalls implements game.PhysicsWorld. Only interior walls are
// released.
func (w *World) ReleaseWalls() {
	for k := range w.bodies {
		if w.bodies[k].rect.Label == game.WallLabel {
			w.bodies[k].static = false
		}
	}
}

// Ball returns the ball's current state.
func (w *World) Ball() game.Token {
	return w.ball
}

// Walls returns the current wall rectangles.
func (w *World) Walls() []game.Rect {
	out := make([]game.Rect, len(w.bodies))
	for k, b := range w.bodies {
		out[k] = b.rect
	}
	return out
}

// Goal returns the goal region.
func (w *World) Goal() game.Rect {
	return w.layout.Goal
}

// Gravity reports whether gravity is on.
func (w *World) Gravity() bool {
	return w.gravity
}

// Step advances the simulation by one tick and returns the collisions that
// started during it.
func (w *World) Step() []Collision {
	var started []Collision

	if w.gravity {
		w.ball.Velocity.Y += gravityStep
	}
	w.ball.Velocity = w.ball.Velocity.Scale(airDamping)

	blockedX, blockedY := false, false
	slice := w.ball.Velocity.Scale(1.0 / subSteps)
	for k := 0; k < subSteps; k++ {
		if !blockedX {
			next := game.Vector{X: w.ball.Position.X + slice.X, Y: w.ball.Position.Y}
			if w.blocked(next) {
				blockedX = true
			} else {
				w.ball.Position = next
			}
		}
		if !blockedY {
			next := game.Vector{X: w.ball.Position.X, Y: w.ball.Position.Y + slice.Y}
			if w.blocked(next) {
				blockedY = true
			} else {
				w.ball.Position = next
			}
		}
	}
	if blockedX {
		w.ball.Velocity.X = 0
	}
	if blockedY {
		w.ball.Velocity.Y = 0
	}
	if (blockedX || blockedY) && !w.touchedWall {
		started = append(started, Collision{LabelA: game.BallLabel, LabelB: game.WallLabel})
	}
	w.touchedWall = blockedX || blockedY

	w.fall()

	touching := w.layout.Goal.IntersectsCircle(w.ball.Position, w.ball.Radius)
	if touching && !w.touchedGoal {
		started = append(started, Collision{LabelA: game.BallLabel, LabelB: game.GoalLabel})
	}
	w.touchedGoal = touching

	return started
}

// blocked reports whether a ball centered at p would overlap a static wall.
func (w *World) blocked(p game.Vector) bool {
	for _, b := range w.bodies {
		if b.static && b.rect.IntersectsCircle(p, w.ball.Radius) {
			return true
		}
	}
	return false
}

// fall moves released walls down until they rest on the floor.
func (w *World) fall() {
	if !w.gravity {
		return
	}

	floor := w.layout.Bounds.MaxY
	for k := range w.bodies {
		b := &w.bodies[k]
		if b.static || b.rect.Max().Y >= floor {
			b.velocity = game.Vector{}
			continue
		}
		b.velocity.Y += gravityStep
		b.rect.Center = b.rect.Center.Add(b.velocity)
		if b.rect.Max().Y > floor {
			b.rect.Center.Y = floor - b.rect.Height/2
		}
	}
}

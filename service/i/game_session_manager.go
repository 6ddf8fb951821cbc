package i

import (
	"context"
	"errors"

	"github.com/beka-birhanu/tilt-maze/game"
	"github.com/beka-birhanu/tilt-maze/maze"
	"github.com/google/uuid"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrMazeTooLarge    = errors.New("maze too large")
)

// NewSessionRequest describes the maze a client asks for. Zero dimensions
// fall back to the configured defaults; a nil Seed draws a random one.
type NewSessionRequest struct {
	Rows int
	Cols int
	Seed *int64
}

// SessionTicket is handed to the session owner on creation.
type SessionTicket struct {
	ID    uuid.UUID
	Token string
	Rows  int
	Cols  int
	Start maze.CellPosition
}

// SessionView is a read-only snapshot of a session.
type SessionView struct {
	ID     uuid.UUID
	Maze   *maze.Maze
	Layout *game.Layout
	Ball   game.Token
	Phase  game.Phase
}

// CollisionResult reports whether a collision won the session and the
// collaborator instructions it produced.
type CollisionResult struct {
	Won     bool
	Effects []string
}

// GameSessionManager manages maze sessions and routes events to them.
type GameSessionManager interface {
	// NewSession generates a maze and returns the owner's ticket.
	NewSession(ctx context.Context, req NewSessionRequest) (*SessionTicket, error)

	// Session returns a snapshot of the session.
	Session(id uuid.UUID) (*SessionView, error)

	// Command applies a directional command and returns the new velocity.
	Command(id uuid.UUID, direction string) (game.Vector, bool, error)

	// Collision delivers a collision notification between two labelled bodies.
	Collision(ctx context.Context, id uuid.UUID, labelA, labelB string) (*CollisionResult, error)

	// SyncBall records the ball state reported by the physics collaborator.
	SyncBall(id uuid.UUID, position, velocity game.Vector) error

	// End removes the session.
	End(id uuid.UUID) error
}

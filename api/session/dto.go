// Package sessionapi provides the request and response bodies of the maze session API.
package sessionapi

import (
	"github.com/beka-birhanu/tilt-maze/game"
	"github.com/beka-birhanu/tilt-maze/maze"
	"github.com/beka-birhanu/tilt-maze/service/i"
	"github.com/google/uuid"
)

// NewSessionRequest asks for a maze; omitted fields use the server defaults.
type NewSessionRequest struct {
	Rows int    `json:"rows"`
	Cols int    `json:"cols"`
	Seed *int64 `json:"seed"`
}

// SessionResponse is returned to the creator of a session.
type SessionResponse struct {
	ID    uuid.UUID         `json:"id"`
	Token string            `json:"token"`
	Rows  int               `json:"rows"`
	Cols  int               `json:"cols"`
	Start maze.CellPosition `json:"start"`
}

// MazeResponse describes a session's maze and world.
type MazeResponse struct {
	ID          uuid.UUID         `json:"id"`
	Rows        int               `json:"rows"`
	Cols        int               `json:"cols"`
	Start       maze.CellPosition `json:"start"`
	Verticals   [][]bool          `json:"verticals"`
	Horizontals [][]bool          `json:"horizontals"`
	Phase       string            `json:"phase"`
	Layout      *game.Layout      `json:"layout"`
	Ball        game.Token        `json:"ball"`
}

// CommandRequest carries a directional command ("up", "d", ...).
type CommandRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// CommandResponse reports the ball velocity after a command.
type CommandResponse struct {
	Velocity game.Vector `json:"velocity"`
	Applied  bool        `json:"applied"`
}

// CollisionRequest reports a collision between two labelled bodies.
type CollisionRequest struct {
	LabelA string `json:"labelA" binding:"required"`
	LabelB string `json:"labelB" binding:"required"`
}

// CollisionResponse tells the physics and presentation clients what to do.
type CollisionResponse struct {
	Won     bool     `json:"won"`
	Effects []string `json:"effects"`
}

// BallStateRequest syncs the ball state from the physics client.
type BallStateRequest struct {
	Position game.Vector `json:"position"`
	Velocity game.Vector `json:"velocity"`
}

// WinsResponse lists recent wins, newest first.
type WinsResponse struct {
	Wins []i.WinEvent `json:"wins"`
}

func newMazeResponse(v *i.SessionView) *MazeResponse {
	return &MazeResponse{
		ID:          v.ID,
		Rows:        v.Maze.Rows(),
		Cols:        v.Maze.Cols(),
		Start:       v.Maze.Start(),
		Verticals:   v.Maze.Verticals(),
		Horizontals: v.Maze.Horizontals(),
		Phase:       v.Phase.String(),
		Layout:      v.Layout,
		Ball:        v.Ball,
	}
}

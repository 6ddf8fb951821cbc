package i

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// WinEvent is broadcast when a session is won.
type WinEvent struct {
	SessionID uuid.UUID `json:"session_id"`
	Rows      int       `json:"rows"`
	Cols      int       `json:"cols"`
	WonAt     time.Time `json:"won_at"`
}

// WinNotifier broadcasts win events to presentation collaborators.
type WinNotifier interface {
	PublishWin(ctx context.Context, e WinEvent) error
}

// WinHistory lists the most recent wins, newest first.
type WinHistory interface {
	RecentWins(ctx context.Context, n int) ([]WinEvent, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/beka-birhanu/tilt-maze/game"
	"github.com/beka-birhanu/tilt-maze/maze"
	"github.com/beka-birhanu/tilt-maze/service/i"
	"github.com/google/uuid"
)

const (
	maxMazeSide       = 64
	defaultSessionTTL = 30 * time.Minute
)

// Effect names reported to clients after a winning collision.
const (
	EffectShowWinner    = "show_winner"
	EffectEnableGravity = "enable_gravity"
	EffectReleaseWalls  = "release_walls"
)

var (
	ErrMissingTokenizer  = errors.New("tokenizer is required")
	ErrMissingLogger     = errors.New("logger is required")
	ErrInvalidWorldSizes = errors.New("default world size must be positive")
)

var _ i.GameSessionManager = &GameSessionManager{}

// effects records the collaborator instructions a session issues. It stands
// in for the remote presenter and physics world, which learn about them from
// the HTTP responses.
type effects struct {
	pending []string
}

func (e *effects) ShowWinner()    { e.pending = append(e.pending, EffectShowWinner) }
func (e *effects) EnableGravity() { e.pending = append(e.pending, EffectEnableGravity) }
func (e *effects) ReleaseWalls()  { e.pending = append(e.pending, EffectReleaseWalls) }

// SetBallVelocity is a no-op: Command returns the new velocity to the caller.
func (e *effects) SetBallVelocity(game.Vector) {}

func (e *effects) drain() []string {
	out := e.pending
	e.pending = nil
	return out
}

type sessionEntry struct {
	session  *game.Session
	effects  *effects
	lastSeen time.Time
	sync.Mutex
}

// GameSessionManager keeps maze sessions in memory and serializes the events
// delivered to each one.
type GameSessionManager struct {
	sessions  map[uuid.UUID]*sessionEntry
	tokenizer i.Tokenizer
	notifier  i.WinNotifier
	logger    i.Logger
	rows      int
	cols      int
	width     float64
	height    float64
	ttl       time.Duration
	now       func() time.Time
	sync.RWMutex
}

// Config configures a GameSessionManager.
type Config struct {
	Tokenizer i.Tokenizer
	Notifier  i.WinNotifier // Optional
	Logger    i.Logger
	Rows      int
	Cols      int
	Width     float64
	Height    float64
	TTL       time.Duration // Idle time before eviction; zero uses 30 minutes
}

// NewGameSessionManager validates c and returns an empty manager.
func NewGameSessionManager(c *Config) (*GameSessionManager, error) {
	if c.Tokenizer == nil {
		return nil, ErrMissingTokenizer
	}
	if c.Logger == nil {
		return nil, ErrMissingLogger
	}
	if c.Rows <= 0 || c.Cols <= 0 {
		return nil, maze.ErrInvalidDimensions
	}
	if c.Width <= 0 || c.Height <= 0 {
		return nil, ErrInvalidWorldSizes
	}

	ttl := c.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	return &GameSessionManager{
		sessions:  make(map[uuid.UUID]*sessionEntry),
		tokenizer: c.Tokenizer,
		notifier:  c.Notifier,
		logger:    c.Logger,
		rows:      c.Rows,
		cols:      c.Cols,
		width:     c.Width,
		height:    c.Height,
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

// NewSession implements i.GameSessionManager.
func (g *GameSessionManager) NewSession(ctx context.Context, req i.NewSessionRequest) (*i.SessionTicket, error) {
	rows, cols := req.Rows, req.Cols
	if rows == 0 {
		rows = g.rows
	}
	if cols == 0 {
		cols = g.cols
	}
	if rows > maxMazeSide || cols > maxMazeSide {
		return nil, fmt.Errorf("%w: side limit is %d cells", i.ErrMazeTooLarge, maxMazeSide)
	}

	seed := rand.Int63()
	if req.Seed != nil {
		seed = *req.Seed
	}

	fx := &effects{}
	s, err := game.NewSession(game.Config{
		Rows:   rows,
		Cols:   cols,
		Width:  g.width,
		Height: g.height,
		Random: rand.New(rand.NewSource(seed)),
	}, fx, fx)
	if err != nil {
		g.logger.Warning(fmt.Sprintf("rejected session %dx%d: %s", rows, cols, err))
		return nil, err
	}

	g.Lock()
	id := uuid.New()
	for {
		if _, ok := g.sessions[id]; !ok {
			break
		}
		id = uuid.New()
	}
	g.sessions[id] = &sessionEntry{session: s, effects: fx, lastSeen: g.now()}
	g.Unlock()

	token, err := g.tokenizer.Generate(map[string]interface{}{
		i.SessionIDClaim: id.String(),
	}, g.ttl)
	if err != nil {
		g.remove(id)
		g.logger.Error(fmt.Sprintf("signing token for session %s: %s", id, err))
		return nil, err
	}

	g.logger.Info(fmt.Sprintf("started session %s with a %dx%d maze", id, rows, cols))
	return &i.SessionTicket{
		ID:    id,
		Token: token,
		Rows:  rows,
		Cols:  cols,
		Start: s.Maze().Start(),
	}, nil
}

// Session implements i.GameSessionManager.
func (g *GameSessionManager) Session(id uuid.UUID) (*i.SessionView, error) {
	e, err := g.entry(id)
	if err != nil {
		return nil, err
	}

	e.Lock()
	defer e.Unlock()
	e.lastSeen = g.now()
	return &i.SessionView{
		ID:     id,
		Maze:   e.session.Maze(),
		Layout: e.session.Layout(),
		Ball:   e.session.Ball(),
		Phase:  e.session.Phase(),
	}, nil
}

// Command implements i.GameSessionManager.
func (g *GameSessionManager) Command(id uuid.UUID, direction string) (game.Vector, bool, error) {
	d, err := game.ParseDirection(direction)
	if err != nil {
		return game.Vector{}, false, err
	}

	e, err := g.entry(id)
	if err != nil {
		return game.Vector{}, false, err
	}

	e.Lock()
	defer e.Unlock()
	e.lastSeen = g.now()
	return e.session.OnDirectionalCommand(d)
}

// Collision implements i.GameSessionManager. A winning collision is
// broadcast through the notifier; broadcast failures are logged only.
func (g *GameSessionManager) Collision(ctx context.Context, id uuid.UUID, labelA, labelB string) (*i.CollisionResult, error) {
	e, err := g.entry(id)
	if err != nil {
		return nil, err
	}

	e.Lock()
	e.lastSeen = g.now()
	won := e.session.OnCollision(labelA, labelB)
	res := &i.CollisionResult{Won: won, Effects: e.effects.drain()}
	m := e.session.Maze()
	e.Unlock()

	if won {
		g.logger.Info(fmt.Sprintf("session %s won", id))
		g.publishWin(ctx, i.WinEvent{SessionID: id, Rows: m.Rows(), Cols: m.Cols(), WonAt: g.now()})
	}
	return res, nil
}

// SyncBall implements i.GameSessionManager.
func (g *GameSessionManager) SyncBall(id uuid.UUID, position, velocity game.Vector) error {
	e, err := g.entry(id)
	if err != nil {
		return err
	}

	e.Lock()
	defer e.Unlock()
	e.lastSeen = g.now()
	e.session.SyncBall(position, velocity)
	return nil
}

// End implements i.GameSessionManager.
func (g *GameSessionManager) End(id uuid.UUID) error {
	if !g.remove(id) {
		return i.ErrSessionNotFound
	}
	g.logger.Info(fmt.Sprintf("ended session %s", id))
	return nil
}

// EvictIdle removes sessions untouched for longer than the TTL and returns
// how many were removed.
func (g *GameSessionManager) EvictIdle() int {
	cutoff := g.now().Add(-g.ttl)

	g.Lock()
	defer g.Unlock()
	evicted := 0
	for id, e := range g.sessions {
		e.Lock()
		idle := e.lastSeen.Before(cutoff)
		e.Unlock()
		if idle {
			delete(g.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		g.logger.Info(fmt.Sprintf("evicted %d idle sessions", evicted))
	}
	return evicted
}

// Len returns the number of live sessions.
func (g *GameSessionManager) Len() int {
	g.RLock()
	defer g.RUnlock()
	return len(g.sessions)
}

// StopAll drops every session.
func (g *GameSessionManager) StopAll() {
	g.Lock()
	defer g.Unlock()
	g.sessions = make(map[uuid.UUID]*sessionEntry)
}

func (g *GameSessionManager) entry(id uuid.UUID) (*sessionEntry, error) {
	g.RLock()
	defer g.RUnlock()
	e, ok := g.sessions[id]
	if !ok {
		return nil, i.ErrSessionNotFound
	}
	return e, nil
}

func (g *GameSessionManager) remove(id uuid.UUID) bool {
	g.Lock()
	defer g.Unlock()
	if _, ok := g.sessions[id]; !ok {
		return false
	}
	delete(g.sessions, id)
	return true
}

func (g *GameSessionManager) publishWin(ctx context.Context, e i.WinEvent) {
	if g.notifier == nil {
		return
	}
	if err := g.notifier.PublishWin(ctx, e); err != nil {
		g.logger.Warning(fmt.Sprintf("broadcasting win of session %s: %s", e.SessionID, err))
	}
}

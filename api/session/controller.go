package sessionapi

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/beka-birhanu/tilt-maze/game"
	"github.com/beka-birhanu/tilt-maze/maze"
	"github.com/beka-birhanu/tilt-maze/service/i"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	defaultRecentWins = 10
	maxRecentWins     = 100
)

var ErrMissingManager = errors.New("session manager is required")

// SessionController exposes maze sessions over HTTP.
type SessionController struct {
	manager  i.GameSessionManager
	encoder  i.MazeEncoder
	renderer i.LayoutRenderer
	history  i.WinHistory
}

// Config wires a SessionController. Encoder, Renderer and History are
// optional; their routes answer 406 or 404 when absent.
type Config struct {
	Manager  i.GameSessionManager
	Encoder  i.MazeEncoder
	Renderer i.LayoutRenderer
	History  i.WinHistory
}

// NewSessionController initializes a SessionController.
func NewSessionController(c Config) (*SessionController, error) {
	if c.Manager == nil {
		return nil, ErrMissingManager
	}
	return &SessionController{
		manager:  c.Manager,
		encoder:  c.Encoder,
		renderer: c.Renderer,
		history:  c.History,
	}, nil
}

// RegisterPublic registers public routes.
func (sc *SessionController) RegisterPublic(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.POST("", sc.create)
		sessions.GET("/:ID/maze", sc.maze)
		sessions.GET("/:ID/maze.png", sc.image)
	}
	route.GET("/wins", sc.wins)
}

// RegisterProtected registers routes that need the session's token.
func (sc *SessionController) RegisterProtected(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.POST("/:ID/commands", sc.command)
		sessions.POST("/:ID/collisions", sc.collision)
		sessions.PUT("/:ID/ball", sc.syncBall)
		sessions.DELETE("/:ID", sc.end)
	}
}

// create starts a new session.
func (sc *SessionController) create(ctx *gin.Context) {
	var request NewSessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := sc.manager.NewSession(ctx, i.NewSessionRequest{
		Rows: request.Rows,
		Cols: request.Cols,
		Seed: request.Seed,
	})
	if err != nil {
		writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, &SessionResponse{
		ID:    ticket.ID,
		Token: ticket.Token,
		Rows:  ticket.Rows,
		Cols:  ticket.Cols,
		Start: ticket.Start,
	})
}

// maze returns the maze as JSON, or in the encoder's format when the client
// accepts it.
func (sc *SessionController) maze(ctx *gin.Context) {
	view, ok := sc.view(ctx)
	if !ok {
		return
	}

	if sc.encoder != nil && strings.Contains(ctx.GetHeader("Accept"), sc.encoder.ContentType()) {
		b, err := sc.encoder.MarshalMaze(view.Maze)
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while encoding maze"})
			return
		}
		ctx.Data(http.StatusOK, sc.encoder.ContentType(), b)
		return
	}

	ctx.JSON(http.StatusOK, newMazeResponse(view))
}

// image renders the session's world.
func (sc *SessionController) image(ctx *gin.Context) {
	if sc.renderer == nil {
		ctx.JSON(http.StatusNotAcceptable, gin.H{"error": "rendering is disabled"})
		return
	}

	view, ok := sc.view(ctx)
	if !ok {
		return
	}

	b, err := sc.renderer.Render(view)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "error while rendering maze"})
		return
	}
	ctx.Data(http.StatusOK, sc.renderer.ContentType(), b)
}

// wins lists recent wins; ?n= bounds the count.
func (sc *SessionController) wins(ctx *gin.Context) {
	if sc.history == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "win history is disabled"})
		return
	}

	n := defaultRecentWins
	if raw := ctx.Query("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > maxRecentWins {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "n must be between 1 and 100"})
			return
		}
		n = v
	}

	events, err := sc.history.RecentWins(ctx, n)
	if err != nil {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "win history unavailable"})
		return
	}
	if events == nil {
		events = []i.WinEvent{}
	}
	ctx.JSON(http.StatusOK, &WinsResponse{Wins: events})
}

// command applies a directional command.
func (sc *SessionController) command(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	var request CommandRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	v, applied, err := sc.manager.Command(id, request.Direction)
	if err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, &CommandResponse{Velocity: v, Applied: applied})
}

// collision delivers a collision notification.
func (sc *SessionController) collision(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	var request CollisionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := sc.manager.Collision(ctx, id, request.LabelA, request.LabelB)
	if err != nil {
		writeError(ctx, err)
		return
	}

	effects := res.Effects
	if effects == nil {
		effects = []string{}
	}
	ctx.JSON(http.StatusOK, &CollisionResponse{Won: res.Won, Effects: effects})
}

// syncBall records the ball state reported by the physics client.
func (sc *SessionController) syncBall(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	var request BallStateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := sc.manager.SyncBall(id, request.Position, request.Velocity); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// end removes the session.
func (sc *SessionController) end(ctx *gin.Context) {
	id, ok := sessionID(ctx)
	if !ok {
		return
	}

	if err := sc.manager.End(id); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (sc *SessionController) view(ctx *gin.Context) (*i.SessionView, bool) {
	id, ok := sessionID(ctx)
	if !ok {
		return nil, false
	}

	view, err := sc.manager.Session(id)
	if err != nil {
		writeError(ctx, err)
		return nil, false
	}
	return view, true
}

func sessionID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, false
	}
	return id, true
}

// writeError maps service errors to HTTP statuses.
func writeError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, i.ErrSessionNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrSessionWon):
		ctx.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrUnknownDirection),
		errors.Is(err, maze.ErrInvalidDimensions),
		errors.Is(err, i.ErrMazeTooLarge):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

/*
Package terminal is a terminal front-end for tilt-maze sessions: a tcell
screen, a kinematic physics world and a win chime, wired to a game.Session.

Keys: WASD or arrows push the ball, h toggles the path hint, r starts a new
maze, q or Esc quits.
*/
package terminal

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/beka-birhanu/tilt-maze/game"
	"github.com/beka-birhanu/tilt-maze/maze"
	"github.com/beka-birhanu/tilt-maze/service/i"
	"github.com/gdamore/tcell/v2"
)

const (
	tickInterval = 16 * time.Millisecond // ~60 FPS

	playingStatus = " WASD/arrows: tilt   h: hint   r: new maze   q: quit"
	wonStatus     = " You won!   r: new maze   q: quit"
)

// App runs one session at a time on a terminal. It is the session's
// Presenter and forwards PhysicsWorld calls to the current World.
type App struct {
	screen  tcell.Screen
	view    *Screen
	chime   *Chime
	logger  i.Logger
	config  game.Config
	rnd     *rand.Rand
	session *game.Session
	world   *World
	hint    bool
	won     bool
}

var (
	_ game.Presenter    = &App{}
	_ game.PhysicsWorld = &App{}
)

// Options configures an App. Chime and Logger are optional.
type Options struct {
	Screen tcell.Screen // Initialized screen
	Chime  *Chime
	Logger i.Logger
	Rows   int
	Cols   int
	Width  float64
	Height float64
	Seed   int64
}

// NewApp starts the first session.
func NewApp(o Options) (*App, error) {
	if o.Screen == nil {
		return nil, errors.New("screen is required")
	}

	a := &App{
		screen: o.Screen,
		view:   NewScreen(o.Screen),
		chime:  o.Chime,
		logger: o.Logger,
		config: game.Config{Rows: o.Rows, Cols: o.Cols, Width: o.Width, Height: o.Height},
		rnd:    rand.New(rand.NewSource(o.Seed)),
	}
	if err := a.restart(); err != nil {
		return nil, err
	}
	return a, nil
}

// ShowWinner implements game.Presenter.
func (a *App) ShowWinner() {
	a.won = true
	a.hint = false
	a.chime.Play()
	a.logInfo(fmt.Sprintf("maze %dx%d solved", a.config.Rows, a.config.Cols))
}

// SetBallVelocity implements game.PhysicsWorld.
func (a *App) SetBallVelocity(v game.Vector) { a.world.SetBallVelocity(v) }

// EnableGravity implements game.PhysicsWorld.
func (a *App) EnableGravity() { a.world.EnableGravity() }

// ReleaseWalls implements game.PhysicsWorld.
func (a *App) ReleaseWalls() { a.world.ReleaseWalls() }

// Session returns the current session.
func (a *App) Session() *game.Session { return a.session }

// World returns the current physics world.
func (a *App) World() *World { return a.world }

// Won reports whether the current session has been won.
func (a *App) Won() bool { return a.won }

// Run processes input and ticks the world until the user quits or ctx is
// done.
func (a *App) Run(ctx context.Context) error {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok || !a.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			a.Tick()
			a.Draw()
		}
	}
}

// HandleEvent applies one terminal event and returns false on quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			a.push(maze.Up)
		case tcell.KeyDown:
			a.push(maze.Down)
		case tcell.KeyLeft:
			a.push(maze.Left)
		case tcell.KeyRight:
			a.push(maze.Right)
		case tcell.KeyRune:
			return a.handleRune(ev.Rune())
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) handleRune(r rune) bool {
	switch r {
	case 'q', 'Q':
		return false
	case 'r', 'R':
		if err := a.restart(); err != nil {
			a.logError(fmt.Sprintf("starting new maze: %s", err))
		}
	case 'h', 'H':
		a.hint = !a.hint && !a.won
	default:
		if d, err := game.ParseDirection(string(r)); err == nil {
			a.push(d)
		}
	}
	return true
}

// Tick advances the world one step and delivers its collisions.
func (a *App) Tick() {
	for _, c := range a.world.Step() {
		a.session.OnCollision(c.LabelA, c.LabelB)
	}
	ball := a.world.Ball()
	a.session.SyncBall(ball.Position, ball.Velocity)
}

// Draw renders the current frame.
func (a *App) Draw() {
	status := playingStatus
	if a.won {
		status = wonStatus
	}
	a.view.Draw(Frame{
		World:  a.world,
		Layout: a.session.Layout(),
		Hint:   a.hintPath(),
		Won:    a.won,
		Status: status,
	})
}

func (a *App) push(d maze.Direction) {
	ball := a.world.Ball()
	a.session.SyncBall(ball.Position, ball.Velocity)
	if _, _, err := a.session.OnDirectionalCommand(d); err != nil && !errors.Is(err, game.ErrSessionWon) {
		a.logError(fmt.Sprintf("command %s: %s", d, err))
	}
}

func (a *App) hintPath() []maze.CellPosition {
	if !a.hint {
		return nil
	}
	l, m := a.session.Layout(), a.session.Maze()
	ball := a.world.Ball()
	from := maze.CellPosition{Row: int(ball.Position.Y / l.UnitY), Col: int(ball.Position.X / l.UnitX)}
	return m.Solve(from, maze.CellPosition{Row: m.Rows() - 1, Col: m.Cols() - 1})
}

func (a *App) restart() error {
	c := a.config
	c.Random = rand.New(rand.NewSource(a.rnd.Int63()))

	s, err := game.NewSession(c, a, a)
	if err != nil {
		return err
	}
	a.session = s
	a.world = NewWorld(s.Layout())
	a.won = false
	a.hint = false
	return nil
}

func (a *App) logInfo(msg string) {
	if a.logger != nil {
		a.logger.Info(msg)
	}
}

func (a *App) logError(msg string) {
	if a.logger != nil {
		a.logger.Error(msg)
	}
}

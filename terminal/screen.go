package terminal

import (
	"math"

	"github.com/beka-birhanu/tilt-maze/game"
	"github.com/beka-birhanu/tilt-maze/maze"
	"github.com/gdamore/tcell/v2"
)

const (
	wallRune = '█'
	goalRune = '▓'
	ballRune = 'O'
	hintRune = '·'
)

var (
	wallStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	goalStyle   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	ballStyle   = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	hintStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	winStyle    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGreen).Bold(true)
)

// Frame is everything drawn in one refresh.
type Frame struct {
	World  *World
	Layout *game.Layout
	Hint   []maze.CellPosition
	Won    bool
	Status string
}

// Screen draws frames onto a terminal. The bottom row is the status line;
// the rest is the world scaled to fit.
type Screen struct {
	screen tcell.Screen
}

// NewScreen wraps an initialized tcell screen.
func NewScreen(s tcell.Screen) *Screen {
	return &Screen{screen: s}
}

// Draw renders f and shows it.
func (s *Screen) Draw(f Frame) {
	s.screen.Clear()
	cols, rows := s.screen.Size()
	field := rows - 1
	if cols <= 0 || field <= 0 || f.World == nil || f.Layout == nil {
		s.screen.Show()
		return
	}

	p := projection{
		fx:   float64(cols) / f.Layout.Width,
		fy:   float64(field) / f.Layout.Height,
		cols: cols,
		rows: field,
	}

	for _, w := range f.World.Walls() {
		s.fill(p, w, wallRune, wallStyle)
	}
	s.fill(p, f.World.Goal(), goalRune, goalStyle)
	for _, c := range f.Hint {
		x, y := p.point(game.Vector{
			X: (float64(c.Col) + 0.5) * f.Layout.UnitX,
			Y: (float64(c.Row) + 0.5) * f.Layout.UnitY,
		})
		s.screen.SetContent(x, y, hintRune, nil, hintStyle)
	}

	ball := f.World.Ball()
	if x, y := p.point(ball.Position); p.visible(ball.Position) {
		s.screen.SetContent(x, y, ballRune, nil, ballStyle)
	}

	style := statusStyle
	if f.Won {
		style = winStyle
	}
	s.status(f.Status, rows-1, cols, style)
	s.screen.Show()
}

func (s *Screen) fill(p projection, r game.Rect, ch rune, style tcell.Style) {
	x0, y0 := p.point(r.Min())
	x1, y1 := p.point(r.Max())
	if r.Max().Y < 0 || r.Min().Y*p.fy >= float64(p.rows) {
		return
	}
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			s.screen.SetContent(x, y, ch, nil, style)
		}
	}
}

func (s *Screen) status(text string, row, cols int, style tcell.Style) {
	col := 0
	for _, ch := range text {
		if col >= cols {
			break
		}
		s.screen.SetContent(col, row, ch, nil, style)
		col++
	}
	for ; col < cols; col++ {
		s.screen.SetContent(col, row, ' ', nil, style)
	}
}

// projection maps world units to terminal cells.
type projection struct {
	fx, fy     float64
	cols, rows int
}

// point returns the cell containing v, clamped to the field.
func (p projection) point(v game.Vector) (int, int) {
	x := int(math.Floor(v.X * p.fx))
	y := int(math.Floor(v.Y * p.fy))
	return clamp(x, 0, p.cols-1), clamp(y, 0, p.rows-1)
}

func (p projection) visible(v game.Vector) bool {
	y := v.Y * p.fy
	return y >= 0 && y < float64(p.rows)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

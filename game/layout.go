package game

import (
	"errors"
	"fmt"
	"math"
)

// Body labels shared with the physics and collision collaborators.
const (
	BallLabel     = "ball"
	GoalLabel     = "goal"
	WallLabel     = "wall"     // Interior walls, released on win.
	BoundaryLabel = "boundary" // Outer walls, always static.
)

const (
	BoundaryThickness = 2.0 // Outer wall thickness.
	WallThickness     = 5.0 // Interior wall thickness.
	GoalScale         = 0.7 // Goal size relative to one cell.
	ballRadiusRatio   = 4   // Ball radius is min(unitX, unitY) / 4.
)

var ErrInvalidWorld = errors.New("world dimensions must be positive")

// Vector is a 2D point or velocity in world units.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns v + o.
func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

// Scale returns v * f.
func (v Vector) Scale(f float64) Vector {
	return Vector{X: v.X * f, Y: v.Y * f}
}

// Rect is an axis-aligned rectangle described by its center and size.
type Rect struct {
	Label  string  `json:"label"`
	Center Vector  `json:"center"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Min returns the top-left corner.
func (r Rect) Min() Vector {
	return Vector{X: r.Center.X - r.Width/2, Y: r.Center.Y - r.Height/2}
}

// Max returns the bottom-right corner.
func (r Rect) Max() Vector {
	return Vector{X: r.Center.X + r.Width/2, Y: r.Center.Y + r.Height/2}
}

// IntersectsCircle reports whether a circle overlaps the rectangle.
func (r Rect) IntersectsCircle(center Vector, radius float64) bool {
	lo, hi := r.Min(), r.Max()
	nx := math.Max(lo.X, math.Min(center.X, hi.X))
	ny := math.Max(lo.Y, math.Min(center.Y, hi.Y))
	dx, dy := center.X-nx, center.Y-ny
	return dx*dx+dy*dy < radius*radius
}

// Bounds are the inner edges of the boundary walls.
type Bounds struct {
	MinX float64 `json:"minX"`
	MinY float64 `json:"minY"`
	MaxX float64 `json:"maxX"`
	MaxY float64 `json:"maxY"`
}

// Layout maps a maze onto a width x height world: wall bodies for every
// closed passage and the outer boundary, the goal region, and the ball spawn.
type Layout struct {
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	UnitX      float64 `json:"unitX"`
	UnitY      float64 `json:"unitY"`
	Walls      []Rect  `json:"walls"`
	Goal       Rect    `json:"goal"`
	BallStart  Vector  `json:"ballStart"`
	BallRadius float64 `json:"ballRadius"`
	Bounds     Bounds  `json:"bounds"`
}

// NewLayout computes world geometry for m.
func NewLayout(m Maze, width, height float64) (*Layout, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %vx%v", ErrInvalidWorld, width, height)
	}

	unitX := width / float64(m.Cols())
	unitY := height / float64(m.Rows())

	l := &Layout{
		Width:      width,
		Height:     height,
		UnitX:      unitX,
		UnitY:      unitY,
		BallStart:  Vector{X: unitX / 2, Y: unitY / 2},
		BallRadius: math.Min(unitX, unitY) / ballRadiusRatio,
		Goal: Rect{
			Label:  GoalLabel,
			Center: Vector{X: width - unitX/2, Y: height - unitY/2},
			Width:  unitX * GoalScale,
			Height: unitY * GoalScale,
		},
		Bounds: Bounds{
			MinX: BoundaryThickness,
			MinY: BoundaryThickness,
			MaxX: width - BoundaryThickness,
			MaxY: height - BoundaryThickness,
		},
	}

	l.Walls = append(l.Walls,
		Rect{Label: BoundaryLabel, Center: Vector{X: width / 2, Y: 0}, Width: width, Height: BoundaryThickness},
		Rect{Label: BoundaryLabel, Center: Vector{X: width / 2, Y: height}, Width: width, Height: BoundaryThickness},
		Rect{Label: BoundaryLabel, Center: Vector{X: 0, Y: height / 2}, Width: BoundaryThickness, Height: height},
		Rect{Label: BoundaryLabel, Center: Vector{X: width, Y: height / 2}, Width: BoundaryThickness, Height: height},
	)

	for row := 0; row < m.Rows()-1; row++ {
		for col := 0; col < m.Cols(); col++ {
			if m.IsHorizontalOpen(row, col) {
				continue
			}
			l.Walls = append(l.Walls, Rect{
				Label:  WallLabel,
				Center: Vector{X: float64(col)*unitX + unitX/2, Y: float64(row)*unitY + unitY},
				Width:  unitX,
				Height: WallThickness,
			})
		}
	}

	for row := 0; row < m.Rows(); row++ {
		for col := 0; col < m.Cols()-1; col++ {
			if m.IsVerticalOpen(row, col) {
				continue
			}
			l.Walls = append(l.Walls, Rect{
				Label:  WallLabel,
				Center: Vector{X: float64(col)*unitX + unitX, Y: float64(row)*unitY + unitY/2},
				Width:  WallThickness,
				Height: unitY,
			})
		}
	}

	return l, nil
}

// Package render draws session worlds as raster images.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"

	"github.com/beka-birhanu/tilt-maze/game"
	"github.com/beka-birhanu/tilt-maze/service/i"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const captionHeight = 20

var ErrNothingToRender = errors.New("session has no layout")

var _ i.LayoutRenderer = &PNG{}

var palette = map[string]color.RGBA{
	"background": {R: 245, G: 245, B: 240, A: 255},
	"caption":    {R: 40, G: 44, B: 52, A: 255},
	"text":       {R: 240, G: 240, B: 240, A: 255},
	"wall":       {R: 60, G: 60, B: 60, A: 255},
	"goal":       {R: 46, G: 160, B: 67, A: 255},
	"ball":       {R: 214, G: 69, B: 65, A: 255},
}

// PNG renders the world at Scale pixels per world unit with a caption strip
// above it.
type PNG struct {
	Scale float64
}

// ContentType implements i.LayoutRenderer.
func (p *PNG) ContentType() string {
	return "image/png"
}

// Render implements i.LayoutRenderer.
func (p *PNG) Render(v *i.SessionView) ([]byte, error) {
	if v == nil || v.Layout == nil || v.Maze == nil {
		return nil, ErrNothingToRender
	}

	scale := p.Scale
	if scale <= 0 {
		scale = 1
	}

	l := v.Layout
	w := int(math.Ceil(l.Width * scale))
	h := int(math.Ceil(l.Height * scale))
	img := image.NewRGBA(image.Rect(0, 0, w, h+captionHeight))

	draw.Draw(img, img.Bounds(), &image.Uniform{palette["background"]}, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(0, 0, w, captionHeight), &image.Uniform{palette["caption"]}, image.Point{}, draw.Src)
	drawCaption(img, fmt.Sprintf("%dx%d maze - %s", v.Maze.Rows(), v.Maze.Cols(), v.Phase), w)

	world := img.SubImage(image.Rect(0, captionHeight, w, h+captionHeight)).(*image.RGBA)
	fillRect(world, l.Goal, scale, palette["goal"])
	for _, wall := range l.Walls {
		fillRect(world, wall, scale, palette["wall"])
	}
	fillCircle(world, v.Ball.Position, v.Ball.Radius, scale, palette["ball"])

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// fillRect paints r into dst, whose origin is the world origin.
func fillRect(dst *image.RGBA, r game.Rect, scale float64, c color.RGBA) {
	lo, hi := r.Min(), r.Max()
	origin := dst.Bounds().Min
	rect := image.Rect(
		origin.X+int(math.Floor(lo.X*scale)),
		origin.Y+int(math.Floor(lo.Y*scale)),
		origin.X+int(math.Ceil(hi.X*scale)),
		origin.Y+int(math.Ceil(hi.Y*scale)),
	).Intersect(dst.Bounds())
	draw.Draw(dst, rect, &image.Uniform{c}, image.Point{}, draw.Src)
}

func fillCircle(dst *image.RGBA, center game.Vector, radius, scale float64, c color.RGBA) {
	origin := dst.Bounds().Min
	cx, cy, r := center.X*scale, center.Y*scale, radius*scale
	for y := int(cy - r); y <= int(cy+r); y++ {
		for x := int(cx - r); x <= int(cx+r); x++ {
			dx, dy := float64(x)+0.5-cx, float64(y)+0.5-cy
			if dx*dx+dy*dy > r*r {
				continue
			}
			p := image.Point{X: origin.X + x, Y: origin.Y + y}
			if p.In(dst.Bounds()) {
				dst.SetRGBA(p.X, p.Y, c)
			}
		}
	}
}

func drawCaption(img *image.RGBA, text string, width int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(palette["text"]),
		Face: basicfont.Face7x13,
	}
	textWidth := d.MeasureString(text).Round()
	d.Dot = fixed.Point26_6{
		X: fixed.I((width - textWidth) / 2),
		Y: fixed.I(captionHeight - 5),
	}
	d.DrawString(text)
}

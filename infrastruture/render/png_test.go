package render

import (
	"bytes"
	"image/png"
	"math/rand"
	"testing"

	"github.com/beka-birhanu/tilt-maze/game"
	"github.com/beka-birhanu/tilt-maze/maze"
	"github.com/beka-birhanu/tilt-maze/service/i"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testView(t *testing.T) *i.SessionView {
	t.Helper()
	m, err := maze.Generate(4, 5, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	l, err := game.NewLayout(m, 200, 160)
	require.NoError(t, err)
	return &i.SessionView{
		Maze:   m,
		Layout: l,
		Ball:   game.Token{Position: l.BallStart, Radius: l.BallRadius},
		Phase:  game.Playing,
	}
}

func TestRenderPNG(t *testing.T) {
	r := &PNG{Scale: 2}
	b, err := r.Render(testView(t))
	require.NoError(t, err)
	assert.Equal(t, "image/png", r.ContentType())

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 400, img.Bounds().Dx())
	assert.Equal(t, 320+captionHeight, img.Bounds().Dy())

	// Ball center at (20, 20) world units.
	cr, cg, cb, _ := img.At(40, 40+captionHeight).RGBA()
	ball := palette["ball"]
	assert.Equal(t, uint32(ball.R), cr>>8)
	assert.Equal(t, uint32(ball.G), cg>>8)
	assert.Equal(t, uint32(ball.B), cb>>8)

	// Top boundary wall.
	wr, _, _, _ := img.At(200, captionHeight+1).RGBA()
	assert.Equal(t, uint32(palette["wall"].R), wr>>8)
}

func TestRenderDefaultsScale(t *testing.T) {
	b, err := (&PNG{}).Render(testView(t))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
}

func TestRenderWithoutLayout(t *testing.T) {
	_, err := (&PNG{}).Render(&i.SessionView{})
	assert.ErrorIs(t, err, ErrNothingToRender)

	_, err = (&PNG{}).Render(nil)
	assert.ErrorIs(t, err, ErrNothingToRender)
}

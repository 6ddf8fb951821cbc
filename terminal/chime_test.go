package terminal

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
)

func TestArpeggioStreamsEveryNote(t *testing.T) {
	rate := beep.SampleRate(8000)
	a := NewArpeggio(rate, 10*time.Millisecond, 440, 880)
	assert.Equal(t, 160, a.Len())

	samples := make([][2]float64, 100)
	total := 0
	for {
		n, ok := a.Stream(samples)
		for k := 0; k < n; k++ {
			assert.LessOrEqual(t, samples[k][0], 1.0)
			assert.GreaterOrEqual(t, samples[k][0], -1.0)
			assert.Equal(t, samples[k][0], samples[k][1])
		}
		total += n
		if !ok {
			break
		}
	}
	assert.Equal(t, 160, total)
	assert.NoError(t, a.Err())
}

func TestSilentChime(t *testing.T) {
	var c *Chime
	assert.NotPanics(t, c.Play)
	assert.NotPanics(t, c.Close)
	assert.NotPanics(t, (&Chime{}).Play)
}

package terminal

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const chimeSampleRate = beep.SampleRate(44100)

// Chime plays the win jingle. A Chime whose speaker failed to open stays
// silent.
type Chime struct {
	mu          sync.Mutex
	initialized bool
}

// NewChime opens the speaker. The returned Chime is usable even when the
// error is non-nil.
func NewChime() (*Chime, error) {
	c := &Chime{}
	if err := speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Second/10)); err != nil {
		return c, err
	}
	c.initialized = true
	return c, nil
}

// Play starts the jingle without blocking.
func (c *Chime) Play() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Play(NewArpeggio(chimeSampleRate, 150*time.Millisecond, 523.25, 659.25, 783.99, 1046.5))
}

// Close releases the speaker.
func (c *Chime) Close() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		speaker.Close()
		c.initialized = false
	}
}

// Arpeggio streams a sequence of sine notes, each with a short fade.
type Arpeggio struct {
	sr    beep.SampleRate
	notes []float64
	note  int // Samples per note
	pos   int
}

// NewArpeggio returns a streamer playing freqs in order for d each.
func NewArpeggio(sr beep.SampleRate, d time.Duration, freqs ...float64) *Arpeggio {
	return &Arpeggio{sr: sr, notes: freqs, note: sr.N(d)}
}

// Len is the total length in samples.
func (a *Arpeggio) Len() int {
	return a.note * len(a.notes)
}

func (a *Arpeggio) Stream(samples [][2]float64) (n int, ok bool) {
	for n < len(samples) && a.pos < a.Len() {
		idx, offset := a.pos/a.note, a.pos%a.note
		t := float64(offset) / float64(a.sr)

		attack := math.Min(float64(offset)/float64(a.sr)/0.01, 1.0)
		release := math.Min(float64(a.note-offset)/float64(a.sr)/0.03, 1.0)
		sample := 0.25 * math.Sin(2*math.Pi*a.notes[idx]*t) * attack * release

		samples[n][0] = sample
		samples[n][1] = sample
		n++
		a.pos++
	}
	return n, n > 0
}

func (a *Arpeggio) Err() error {
	return nil
}

package sound

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
)

// Tone is a one-shot sine beep at freq Hz lasting d, with a short fade-in.
func Tone(freq float64, d time.Duration) Factory {
	return func() beep.Streamer {
		return beep.Take(SampleRate.N(d), &sine{freq: freq, amp: 0.2})
	}
}

// Sweep is an endless tone gliding between lo and hi Hz once per period.
// Use it for looping sounds.
func Sweep(lo, hi float64, period time.Duration) Factory {
	return func() beep.Streamer {
		return &sweep{lo: lo, hi: hi, cycle: SampleRate.N(period)}
	}
}

// Crackle is a one-shot burst of decaying noise lasting d.
func Crackle(d time.Duration, seed int64) Factory {
	return func() beep.Streamer {
		n := SampleRate.N(d)
		return beep.Take(n, &crackle{rng: rand.New(rand.NewSource(seed)), total: n})
	}
}

type sine struct {
	freq float64
	amp  float64
	pos  int
}

func (g *sine) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		t := float64(g.pos) / float64(SampleRate)
		// 10ms fade-in to avoid a click.
		env := math.Min(t/0.01, 1)
		v := g.amp * env * math.Sin(2*math.Pi*g.freq*t)
		samples[i][0], samples[i][1] = v, v
		g.pos++
	}
	return len(samples), true
}

func (g *sine) Err() error { return nil }

type sweep struct {
	lo, hi float64
	cycle  int
	pos    int
	phase  float64
}

func (g *sweep) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		c := float64(g.pos%g.cycle) / float64(g.cycle)
		freq := g.lo + (g.hi-g.lo)*math.Sin(c*math.Pi)
		g.phase += 2 * math.Pi * freq / float64(SampleRate)
		v := 0.15 * math.Sin(g.phase)
		samples[i][0], samples[i][1] = v, v
		g.pos++
	}
	return len(samples), true
}

func (g *sweep) Err() error { return nil }

type crackle struct {
	rng   *rand.Rand
	total int
	pos   int
}

func (g *crackle) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		decay := 1 - float64(g.pos)/float64(g.total)
		if decay < 0 {
			decay = 0
		}
		v := 0.25 * decay * (g.rng.Float64()*2 - 1)
		samples[i][0], samples[i][1] = v, v
		g.pos++
	}
	return len(samples), true
}

func (g *crackle) Err() error { return nil }

// volumeExponent maps a linear gain in (0, 1] to effects.Volume's base-2
// exponent.
func volumeExponent(v float64) float64 {
	if v <= 0 {
		return 0
	}
	return math.Log2(v)
}

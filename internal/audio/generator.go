package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

// laser is a square wave whose pitch falls linearly from start to end Hz.
type laser struct {
	sr         beep.SampleRate
	start, end float64
	phase      float64
	pos, total int
}

func newLaser(sr beep.SampleRate, startHz, endHz float64, d time.Duration) *laser {
	return &laser{sr: sr, start: startHz, end: endHz, total: sr.N(d)}
}

func (l *laser) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if l.pos >= l.total {
			return i, i > 0
		}
		t := float64(l.pos) / float64(l.total)
		freq := l.start + (l.end-l.start)*t

		val := 0.4
		if l.phase >= 0.5 {
			val = -0.4
		}
		val *= 1 - t // fade out

		samples[i][0] = val
		samples[i][1] = val

		l.phase += freq / float64(l.sr)
		l.phase -= math.Floor(l.phase)
		l.pos++
	}
	return len(samples), true
}

func (l *laser) Err() error { return nil }

// noiseBurst is white noise with an exponential decay.
type noiseBurst struct {
	rng        *rand.Rand
	pos, total int
}

func newNoiseBurst(sr beep.SampleRate, d time.Duration, seed uint64) *noiseBurst {
	return &noiseBurst{
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		total: sr.N(d),
	}
}

func (b *noiseBurst) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if b.pos >= b.total {
			return i, i > 0
		}
		t := float64(b.pos) / float64(b.total)
		val := (b.rng.Float64()*2 - 1) * 0.6 * math.Exp(-5*t)

		samples[i][0] = val
		samples[i][1] = val
		b.pos++
	}
	return len(samples), true
}

func (b *noiseBurst) Err() error { return nil }

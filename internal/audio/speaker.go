package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// Speaker plays cues on the local sound device. Overlapping cues are mixed.
type Speaker struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	closed bool
}

// NewSpeaker opens the sound device.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return nil, fmt.Errorf("failed to initialize speaker: %w", err)
	}

	s := &Speaker{mixer: &beep.Mixer{}}
	speaker.Play(s.mixer)
	return s, nil
}

// Play queues c on the mixer and returns immediately.
func (s *Speaker) Play(c Cue) {
	st := cueStreamer(c, sampleRate)
	if st == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Close silences the mixer and releases the device.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	speaker.Clear()
	speaker.Close()
	return nil
}

// cueStreamer builds a fresh, finite streamer for c.
func cueStreamer(c Cue, sr beep.SampleRate) beep.Streamer {
	switch c {
	case CueFire:
		return &effects.Volume{
			Streamer: newLaser(sr, 1400, 300, 90*time.Millisecond),
			Base:     2,
			Volume:   -2,
		}
	case CueExplosion:
		return &effects.Volume{
			Streamer: newNoiseBurst(sr, 250*time.Millisecond, 1),
			Base:     2,
			Volume:   -1,
		}
	default:
		return nil
	}
}

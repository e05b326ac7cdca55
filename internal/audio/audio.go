// Package audio plays the game's sound cues.
//
// Local play synthesises sounds through the system speaker. Remote sessions
// can only ring the terminal bell. Sound never feeds back into the game.
package audio

import (
	"io"
	"sync"
)

// Cue is a sound the game asks for.
type Cue int

const (
	CueFire Cue = iota
	CueExplosion
)

func (c Cue) String() string {
	switch c {
	case CueFire:
		return "fire"
	case CueExplosion:
		return "explosion"
	default:
		return "unknown"
	}
}

// Player plays cues. Play must not block the caller.
type Player interface {
	Play(c Cue)
	Close() error
}

// Nop is a Player that stays silent.
type Nop struct{}

func (Nop) Play(Cue)     {}
func (Nop) Close() error { return nil }

// Bell rings the terminal bell on explosions. Firing is too frequent for
// a bell to be anything but noise, so it is ignored.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBell creates a Bell writing to w.
func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) Play(c Cue) {
	if c != CueExplosion {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = b.w.Write([]byte{'\a'})
}

func (b *Bell) Close() error { return nil }

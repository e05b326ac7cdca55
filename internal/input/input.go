// Package input turns raw terminal bytes into per-frame key state.
package input

import (
	"bytes"
	"io"
	"sync"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals report no key-up, only auto-repeated bytes. The window spans one
// auto-repeat interval (about 33ms at 30Hz, 40ms at 25Hz) plus a frame of
// jitter, so a held key reads as held between repeats. It does not bridge
// the initial repeat delay (250-500ms): a window that long would keep the
// ship gliding well after the key is released.
const keyHoldDuration = 60 * time.Millisecond

// escapeTimeout is how long a trailing ESC or unfinished CSI sequence waits
// for the rest of its bytes before it is read as a bare Escape.
const escapeTimeout = 50 * time.Millisecond

// maxPendingSequence bounds an unfinished CSI sequence kept across frames.
const maxPendingSequence = 16

// Keys is a set of logical keys.
type Keys struct {
	Quit   bool
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Fire   bool // Space
	Enter  bool
	Escape bool
	Number int // Digit key, -1 if none
}

// Any reports whether any key is set.
func (k Keys) Any() bool {
	return k.Quit || k.Left || k.Right || k.Up || k.Down || k.Fire || k.Enter || k.Escape || k.Number >= 0
}

// Input represents the current frame's input state.
type Input struct {
	Held    Keys   // Seen within the hold window, for movement and firing
	Pressed Keys   // Seen in this frame's bytes, for menus and prompts
	Raw     []byte // Every byte read this frame
	Closed  bool   // The underlying reader is gone
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit      time.Time
	left      time.Time
	right     time.Time
	up        time.Time
	down      time.Time
	fire      time.Time
	enter     time.Time
	escape    time.Time
	number    time.Time
	numberVal int
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	done   chan struct{}
	stop   sync.Once
	state  keyState
	closed bool
	now    func() time.Time

	pending      []byte // Unfinished escape sequence from an earlier frame
	pendingSince time.Time
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r fails or the stream is closed.
func StartStream(r io.ByteReader) *Stream {
	s := newStream()
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:    make(chan byte, 128),
		done:  make(chan struct{}),
		state: keyState{numberVal: -1},
		now:   time.Now,
	}
}

// Close stops delivering bytes. A reader goroutine blocked on a full channel
// returns; one blocked in ReadByte returns after its next byte or error.
func (s *Stream) Close() {
	s.stop.Do(func() { close(s.done) })
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in := s.apply(buf, s.now())
	in.Closed = s.closed
	return in
}

// ResetKeyInput forgets held keys, so a key pressed on one screen does not
// leak into the next.
func ResetKeyInput(s *Stream) {
	s.state = keyState{numberVal: -1}
}

// apply parses fresh bytes, together with any sequence left unfinished by
// the previous frame, updates key timestamps and builds the frame's input.
func (s *Stream) apply(fresh []byte, now time.Time) Input {
	pressed := Keys{Number: -1}

	buf := fresh
	if len(s.pending) > 0 {
		buf = append(s.pending, fresh...)
		s.pending = nil
	}

	if n := unfinishedTail(buf); n > 0 {
		if len(fresh) > 0 {
			s.pendingSince = now
		}
		if len(fresh) > 0 || now.Sub(s.pendingSince) < escapeTimeout {
			s.pending = append([]byte(nil), buf[len(buf)-n:]...)
			buf = buf[:len(buf)-n]
		}
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <params> <final>
		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			if end, ok := csiEnd(buf, i); ok {
				switch buf[end] {
				case 'A':
					s.state.up = now
					pressed.Up = true
				case 'B':
					s.state.down = now
					pressed.Down = true
				case 'C':
					s.state.right = now
					pressed.Right = true
				case 'D':
					s.state.left = now
					pressed.Left = true
				}
				i = end
				continue
			}
		}

		applyByteToState(&s.state, &pressed, b, now)
	}

	held := Keys{
		Quit:   now.Sub(s.state.quit) < keyHoldDuration,
		Left:   now.Sub(s.state.left) < keyHoldDuration,
		Right:  now.Sub(s.state.right) < keyHoldDuration,
		Up:     now.Sub(s.state.up) < keyHoldDuration,
		Down:   now.Sub(s.state.down) < keyHoldDuration,
		Fire:   now.Sub(s.state.fire) < keyHoldDuration,
		Enter:  now.Sub(s.state.enter) < keyHoldDuration,
		Escape: now.Sub(s.state.escape) < keyHoldDuration,
		Number: -1,
	}
	if now.Sub(s.state.number) < keyHoldDuration {
		held.Number = s.state.numberVal
	}

	return Input{Held: held, Pressed: pressed, Raw: fresh}
}

// csiEnd returns the index of the final byte of the CSI sequence starting
// at buf[i], or false if the sequence has not been fully received.
func csiEnd(buf []byte, i int) (int, bool) {
	j := i + 2
	for j < len(buf) && buf[j] >= 0x30 && buf[j] <= 0x3f {
		j++
	}
	if j < len(buf) && buf[j] >= 0x40 && buf[j] <= 0x7e {
		return j, true
	}
	return 0, false
}

// unfinishedTail returns how many trailing bytes of buf form an escape
// sequence that may still be completed by the next read.
func unfinishedTail(buf []byte) int {
	i := bytes.LastIndexByte(buf, '\x1b')
	if i < 0 {
		return 0
	}
	n := len(buf) - i
	if n == 1 {
		return 1
	}
	if buf[i+1] != '[' || n > maxPendingSequence {
		return 0
	}
	for _, b := range buf[i+2:] {
		if b < 0x30 || b > 0x3f {
			return 0
		}
	}
	return n
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, pressed *Keys, b byte, now time.Time) {
	switch b {
	case 'q', 'Q':
		state.quit = now
		pressed.Quit = true
	case 'a', 'A', 'j', 'J':
		state.left = now
		pressed.Left = true
	case 'd', 'D', 'l', 'L':
		state.right = now
		pressed.Right = true
	case 'w', 'W', 'i', 'I':
		state.up = now
		pressed.Up = true
	case 's', 'S', 'k', 'K':
		state.down = now
		pressed.Down = true
	case ' ':
		state.fire = now
		pressed.Fire = true
	case '\n', '\r':
		state.enter = now
		pressed.Enter = true
	case '\x1b':
		state.escape = now
		pressed.Escape = true
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		state.number = now
		state.numberVal = int(b - '0')
		pressed.Number = int(b - '0')
	}
}

package client

import (
	"time"

	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/object"
)

// View is what the client is currently showing. A change of view clears
// the terminal.
type View int

const (
	ViewMenu       View = iota // Difficulty selection
	ViewPlaying                // Active gameplay
	ViewLost                   // Game over notice
	ViewWon                    // Victory screen
	ViewShutdown               // Server is shutting down
	ViewInactivity             // Idle warning
)

// ClientState holds per-session state. Each client owns one instance.
type ClientState struct {
	Game      *loop.Game
	Input     input.Input
	Particles []*object.Particle // Explosion fragments, purely visual
	Running   bool               // Client loop running

	delta         time.Duration // Frame delta time
	endTimer      float64       // Seconds until the end screen accepts input
	shuttingDown  bool
	shutdownTimer float64 // Countdown before auto-disconnect on shutdown
	isInactive    bool    // Whether the client is in inactive warning state
	prevView      View
	hasDrawn      bool
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Game:    loop.NewGame(),
		Running: true,
	}
}

// Spawn implements object.Spawner.
func (s *ClientState) Spawn(p *object.Particle) {
	s.Particles = append(s.Particles, p)
}

// View returns the screen to show for the current state.
func (s *ClientState) View() View {
	switch {
	case s.shuttingDown:
		return ViewShutdown
	case s.isInactive:
		return ViewInactivity
	}
	switch s.Game.Phase() {
	case loop.PhasePlaying:
		return ViewPlaying
	case loop.PhaseLost:
		return ViewLost
	case loop.PhaseWon:
		return ViewWon
	default:
		return ViewMenu
	}
}

// updateParticles advances particles by dt seconds and drops expired ones.
func (s *ClientState) updateParticles(dt float64) {
	kept := s.Particles[:0]
	for _, p := range s.Particles {
		if p.Update(dt) {
			p.Release()
			continue
		}
		kept = append(kept, p)
	}
	clear(s.Particles[len(kept):])
	s.Particles = kept
}

// clearParticles releases every particle.
func (s *ClientState) clearParticles() {
	for _, p := range s.Particles {
		p.Release()
	}
	clear(s.Particles)
	s.Particles = s.Particles[:0]
}

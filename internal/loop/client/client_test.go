package client

import (
	"bufio"
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/loop/server"
	"github.com/tomz197/invaders/internal/object"
)

type recordingAudio struct {
	mu   sync.Mutex
	cues []audio.Cue
}

func (r *recordingAudio) Play(c audio.Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, c)
}

func (r *recordingAudio) Close() error { return nil }

func fixedSize(w, h int) func() (int, int, error) {
	return func() (int, int, error) { return w, h, nil }
}

// syncBuffer is a bytes.Buffer safe to read while Run writes.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestClient(t *testing.T, opts ClientOptions) (*Client, *bytes.Buffer) {
	t.Helper()
	if opts.TermSizeFunc == nil {
		opts.TermSizeFunc = fixedSize(80, 40)
	}
	var out bytes.Buffer
	c := NewClient(bufio.NewReader(strings.NewReader("")), &out, opts)
	return c, &out
}

func press(keys input.Keys) input.Input {
	none := input.Keys{Number: -1}
	if keys.Number == 0 {
		keys.Number = -1
	}
	return input.Input{Pressed: keys, Held: none}
}

func TestFitFieldKeepsAspect(t *testing.T) {
	field := object.Field{Width: 640, Height: 720}

	tests := []struct {
		name                       string
		termW, termH               int
		wantW, wantH, wantC, wantR int
	}{
		{"height bound", 200, 40, 71, 40, 64, 0},
		{"width bound", 40, 60, 40, 23, 0, 18},
		{"clamped", 300, 100, 107, 60, 96, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, col, row := fitField(tt.termW, tt.termH, field)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
			assert.Equal(t, tt.wantC, col)
			assert.Equal(t, tt.wantR, row)
			assert.LessOrEqual(t, w, config.MaxTermWidth)
			assert.LessOrEqual(t, h, config.MaxTermHeight)
		})
	}
}

func TestFitFieldTinyTerminal(t *testing.T) {
	w, h, col, row := fitField(0, 0, object.Field{Width: 640, Height: 720})
	assert.GreaterOrEqual(t, w, 1)
	assert.GreaterOrEqual(t, h, 1)
	assert.Zero(t, col)
	assert.Zero(t, row)
}

func TestMenuNavigationAndStart(t *testing.T) {
	c, _ := newTestClient(t, ClientOptions{})

	c.state.Input = press(input.Keys{Down: true})
	c.updateMenuState()
	assert.Equal(t, 1, c.state.Game.DifficultyIndex())

	c.state.Input = press(input.Keys{Left: true})
	c.updateMenuState()
	assert.Equal(t, 0, c.state.Game.DifficultyIndex())

	c.state.Input = press(input.Keys{Fire: true})
	c.updateMenuState()
	assert.Equal(t, loop.PhasePlaying, c.state.Game.Phase())
	assert.Equal(t, ViewPlaying, c.state.View())
}

func TestMenuNumberPicksAndStarts(t *testing.T) {
	c, _ := newTestClient(t, ClientOptions{})

	c.state.Input = press(input.Keys{Number: 3})
	c.updateMenuState()

	require.Equal(t, loop.PhasePlaying, c.state.Game.Phase())
	assert.Equal(t, "hard", c.state.Game.Difficulty().ID)
}

func TestGameEventsDriveAudioAndParticles(t *testing.T) {
	rec := &recordingAudio{}
	c, _ := newTestClient(t, ClientOptions{Audio: rec})
	c.state.Input = press(input.Keys{Fire: true})
	c.updateMenuState()

	c.state.delta = 16 * time.Millisecond
	c.state.Input = input.Input{Held: input.Keys{Fire: true, Number: -1}, Pressed: input.Keys{Number: -1}}
	c.updatePlayingState()
	require.Equal(t, []audio.Cue{audio.CueFire}, rec.cues)

	// Run until the first enemy falls.
	for i := 0; i < 500 && len(c.state.Particles) == 0; i++ {
		c.updatePlayingState()
	}
	assert.Contains(t, rec.cues, audio.CueExplosion)
	assert.Len(t, c.state.Particles, config.ExplosionParticles)
}

func TestWinRecordsLeaderboardAndReturnsToMenu(t *testing.T) {
	hub := server.NewHub()
	c, _ := newTestClient(t, ClientOptions{Hub: hub, Username: "alice"})
	require.Equal(t, 1, hub.Count())

	c.state.Input = press(input.Keys{Number: 2})
	c.updateMenuState()

	// Last wave with a single enemy directly above the ship.
	g := c.state.Game
	f := g.Formation()
	f.Rows = f.MaxRows
	e := f.Enemies[0]
	f.Enemies = f.Enemies[:1]
	e.Health = 1
	e.X = g.Player().Box().CenterX() - e.W/2
	f.Direction = 0 // hold still

	c.state.delta = 16 * time.Millisecond
	c.state.Input = input.Input{Held: input.Keys{Fire: true, Number: -1}, Pressed: input.Keys{Number: -1}}
	for i := 0; i < 500 && g.Phase() == loop.PhasePlaying; i++ {
		c.updatePlayingState()
	}
	require.Equal(t, loop.PhaseWon, g.Phase())
	assert.Equal(t, ViewWon, c.state.View())

	lb := hub.Leaderboard()
	require.Len(t, lb, 1)
	assert.Equal(t, "alice", lb[0].Username)
	assert.Equal(t, "medium", lb[0].Difficulty)

	// Input is ignored until the end screen delay has passed.
	c.state.Input = press(input.Keys{Fire: true})
	c.updateEndState()
	assert.Equal(t, ViewWon, c.state.View())

	c.state.delta = time.Duration(config.EndScreenAckDelay * float64(time.Second))
	c.state.Input = press(input.Keys{})
	c.updateEndState()
	c.state.Input = press(input.Keys{Enter: true})
	c.updateEndState()

	assert.Equal(t, ViewMenu, c.state.View())
	assert.Equal(t, "medium", c.state.Game.Difficulty().ID, "menu remembers the last difficulty")
}

func TestShutdownEventShowsNoticeAndDisconnects(t *testing.T) {
	hub := server.NewHub()
	c, _ := newTestClient(t, ClientOptions{Hub: hub})

	c.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()
	assert.Equal(t, ViewShutdown, c.state.View())

	c.state.delta = time.Duration(config.ShutdownDisplaySeconds * float64(time.Second))
	c.updateShutdownState()
	assert.False(t, c.state.Running)
}

func TestDrawFrameRendersViews(t *testing.T) {
	hub := server.NewHub()
	c, out := newTestClient(t, ClientOptions{Hub: hub})

	require.NoError(t, c.drawFrame())
	assert.Contains(t, out.String(), "Choose your difficulty")

	c.state.Input = press(input.Keys{Fire: true})
	c.updateMenuState()
	out.Reset()
	require.NoError(t, c.drawFrame())
	s := out.String()
	assert.Contains(t, s, "Enemies: 6")
	assert.Contains(t, s, "Players: 1")
	assert.Contains(t, s, "█")
}

func TestRunQuitsAndUnregisters(t *testing.T) {
	hub := server.NewHub()
	var out syncBuffer
	c := NewClient(bufio.NewReader(strings.NewReader("q")), &out, ClientOptions{
		TermSizeFunc: fixedSize(80, 40),
		Hub:          hub,
	})

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("client did not stop")
	}
	assert.Zero(t, hub.Count())
	assert.Contains(t, out.String(), "\033[?25h", "cursor restored")
}

func TestWaveNumber(t *testing.T) {
	assert.Equal(t, 1, waveNumber(1))
	assert.Equal(t, 2, waveNumber(2))
	assert.Equal(t, 3, waveNumber(4))
}

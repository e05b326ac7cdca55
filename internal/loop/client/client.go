// Package client runs one player's game in a terminal: it reads keys,
// steps the simulation and draws frames.
package client

import (
	"context"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/audio"
	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/input"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/loop/server"
	"github.com/tomz197/invaders/internal/metrics"
	"github.com/tomz197/invaders/internal/object"
)

// Client handles rendering and input for a single terminal.
type Client struct {
	hub          server.Registry // nil when playing locally
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	field        object.Field
	audio        audio.Player
	metrics      *metrics.Recorder
	logger       *log.Logger
	rng          *rand.Rand
}

// ClientOptions configures the client. Zero values select defaults.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Hub          server.Registry
	Audio        audio.Player
	Metrics      *metrics.Recorder
	Logger       *log.Logger
	Field        object.Field // Logical play area; defaults to the configured field
}

// NewClient creates a client reading keys from r and drawing to w.
func NewClient(r io.ByteReader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	field := opts.Field
	if field.Width <= 0 || field.Height <= 0 {
		field = object.Field{Width: config.FieldWidth, Height: config.FieldHeight}
	}
	player := opts.Audio
	if player == nil {
		player = audio.Nop{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	c := &Client{
		hub:          opts.Hub,
		state:        NewClientState(),
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		field:        field,
		audio:        player,
		metrics:      opts.Metrics,
		logger:       logger.With("user", opts.Username),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	if c.hub != nil {
		c.handle = c.hub.RegisterClient(opts.Username)
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := fitField(termWidth, termHeight, field)
	c.canvas = draw.NewScaledCanvas(renderWidth, renderHeight, field.Width, field.Height)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter = draw.NewChunkWriter(w, offsetCol, offsetRow)
	return c
}

// Run starts the client loop. Blocks until the player quits, the input
// closes, the session idles out or the server shuts down.
func (c *Client) Run() error {
	defer c.unregister()
	defer c.inputStream.Close()

	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()

		switch c.state.View() {
		case ViewMenu:
			c.updateMenuState()
		case ViewPlaying:
			c.updatePlayingState()
		case ViewLost, ViewWon:
			c.updateEndState()
		case ViewShutdown:
			c.updateShutdownState()
		}
		c.state.updateParticles(c.state.delta.Seconds())

		if err := c.drawFrame(); err != nil {
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	if c.state.Game.Phase() == loop.PhasePlaying {
		c.finish(metrics.OutcomeAbandoned)
	}
	draw.ClearScreen(c.writer)
	return nil
}

func (c *Client) unregister() {
	if c.hub != nil && c.handle != nil {
		c.hub.UnregisterClient(c.handle.ID)
	}
}

// processInput reads input and handles inactivity and quitting.
func (c *Client) processInput() {
	in := input.ReadInput(c.inputStream)
	c.state.Input = in

	if in.Closed {
		c.state.Running = false
		return
	}

	idle := time.Since(c.lastInput).Seconds()
	switch {
	case len(in.Raw) > 0:
		c.lastInput = time.Now()
		if c.state.isInactive {
			// The key that dismissed the warning does nothing else.
			c.state.isInactive = false
			c.state.Input = input.Input{Pressed: input.Keys{Number: -1}, Held: input.Keys{Number: -1}}
			return
		}
	case idle > config.InactivityDisconnectUser:
		c.logger.Info("disconnecting idle session", "idle", time.Since(c.lastInput).Round(time.Second))
		c.state.Running = false
	case idle > config.InactivityWarnUser:
		c.state.isInactive = true
	}

	if in.Pressed.Quit || (in.Pressed.Escape && c.state.View() != ViewShutdown) {
		c.state.Running = false
	}
}

// processServerEvents handles events from the hub.
func (c *Client) processServerEvents() {
	if c.handle == nil {
		return
	}
	for {
		select {
		case event := <-c.handle.EventsCh:
			switch event.Type {
			case server.EventServerShutdown:
				if !c.state.shuttingDown {
					c.state.shuttingDown = true
					c.state.shutdownTimer = config.ShutdownDisplaySeconds
				}
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, fitting the field into the terminal.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := fitField(termWidth, termHeight, c.field)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		c.chunkWriter.ClearScreen(c.canvas)
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// fitField picks the largest render area, at most MaxTermWidth x MaxTermHeight,
// that keeps the field's aspect ratio (one cell is two square sub-pixels tall),
// and the offset that centers it in the terminal.
func fitField(termWidth, termHeight int, field object.Field) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	availWidth := max(min(termWidth, config.MaxTermWidth), 1)
	availHeight := max(min(termHeight, config.MaxTermHeight), 1)

	// Columns needed to keep the aspect ratio at full available height.
	widthAtFullHeight := float64(availHeight*2) * field.Width / field.Height
	if widthAtFullHeight <= float64(availWidth) {
		renderHeight = availHeight
		renderWidth = max(int(widthAtFullHeight+0.5), 1)
	} else {
		renderWidth = availWidth
		renderHeight = max(int(float64(availWidth)*field.Height/field.Width/2+0.5), 1)
	}

	offsetCol = max((termWidth-renderWidth)/2, 0)
	offsetRow = max((termHeight-renderHeight)/2, 0)
	return
}

// updateMenuState handles the difficulty menu.
func (c *Client) updateMenuState() {
	keys := c.state.Input.Pressed
	g := c.state.Game

	switch {
	case keys.Number >= 1 && keys.Number <= len(loop.Difficulties):
		g.SelectDifficulty(keys.Number - 1)
		c.startGame()
	case keys.Fire || keys.Enter:
		c.startGame()
	case keys.Up || keys.Left:
		g.PrevDifficulty()
	case keys.Down || keys.Right:
		g.NextDifficulty()
	}
}

// startGame locks in the highlighted difficulty and starts play.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)
	c.state.clearParticles()
	if !c.state.Game.Start(c.field) {
		return
	}
	c.logger.Info("game started", "difficulty", c.state.Game.Difficulty().ID)
}

// updatePlayingState steps the simulation with the held keys.
func (c *Client) updatePlayingState() {
	held := c.state.Input.Held
	c.state.Game.Step(c.state.delta, loop.Controls{
		Left:  held.Left,
		Right: held.Right,
		Fire:  held.Fire,
	})
	c.handleGameEvents()
}

// handleGameEvents forwards simulation events to audio, effects and metrics.
func (c *Client) handleGameEvents() {
	ctx := context.Background()
	for _, ev := range c.state.Game.Events() {
		switch ev.Type {
		case loop.EventFired:
			c.audio.Play(audio.CueFire)
			c.metrics.Shot(ctx)
		case loop.EventEnemyDestroyed:
			c.audio.Play(audio.CueExplosion)
			c.metrics.EnemyDestroyed(ctx)
			object.SpawnExplosion(ev.X, ev.Y, config.ExplosionParticles,
				config.ExplosionSpeed, config.ExplosionLifetime, c.rng, c.state)
		case loop.EventWaveCleared:
			c.metrics.WaveCleared(ctx)
			c.logger.Debug("wave cleared", "rows", ev.Rows)
		case loop.EventWon:
			c.finish(metrics.OutcomeWon)
		case loop.EventLost:
			c.finish(metrics.OutcomeLost)
		}
	}
}

// finish records a finished game.
func (c *Client) finish(outcome metrics.Outcome) {
	g := c.state.Game
	difficulty := g.Difficulty().ID

	c.metrics.GameFinished(context.Background(), outcome, difficulty)
	c.logger.Info("game finished",
		"outcome", outcome,
		"difficulty", difficulty,
		"shots", g.Shots(),
		"kills", g.Kills(),
		"time", g.Clock().Round(time.Millisecond),
	)

	if outcome == metrics.OutcomeWon && c.hub != nil {
		c.hub.RecordWin(server.WinEntry{
			Username:   c.username,
			Difficulty: difficulty,
			Duration:   g.Clock(),
			Shots:      g.Shots(),
		})
	}

	input.ResetKeyInput(c.inputStream)
	c.state.endTimer = config.EndScreenAckDelay
}

// updateEndState waits for the player to acknowledge a win or loss and
// returns to the menu with a fresh game.
func (c *Client) updateEndState() {
	if c.state.endTimer > 0 {
		c.state.endTimer = max(c.state.endTimer-c.state.delta.Seconds(), 0)
		return
	}
	keys := c.state.Input.Pressed
	if !keys.Fire && !keys.Enter {
		return
	}

	difficulty := c.state.Game.DifficultyIndex()
	c.state.Game = loop.NewGame()
	c.state.Game.SelectDifficulty(difficulty)
	c.state.clearParticles()
	input.ResetKeyInput(c.inputStream)
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}

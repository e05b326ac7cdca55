package client

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomz197/invaders/internal/draw"
	"github.com/tomz197/invaders/internal/loop"
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On view transitions, do a full terminal clear so UI elements from the
	// previous view don't persist on screen.
	view := c.state.View()
	if view != c.state.prevView || !c.state.hasDrawn {
		c.chunkWriter.ClearScreen(c.canvas)
		c.state.prevView = view
		c.state.hasDrawn = true
	}

	c.canvas.Clear()
	if view == ViewPlaying {
		c.drawField()
	}

	if err := c.canvas.Render(c.chunkWriter); err != nil {
		return err
	}
	if err := c.canvas.RenderBorder(c.chunkWriter); err != nil {
		return err
	}

	c.drawUI(view)

	return c.chunkWriter.Flush()
}

// drawField draws the ship, the formation, the shots and the explosions.
func (c *Client) drawField() {
	g := c.state.Game
	canvas := c.canvas

	for _, e := range g.Formation().Enemies {
		drawEnemy(canvas, e)
	}

	for _, p := range g.Projectiles() {
		canvas.FillRect(p.X, p.Y, p.W, p.H)
	}

	drawPlayer(canvas, g.Player())

	for _, p := range c.state.Particles {
		if !p.Faded() {
			canvas.SetFloat(p.X, p.Y)
		}
	}
}

// drawEnemy fills the enemy box and cuts a square out around every hit.
func drawEnemy(canvas *draw.Canvas, e *object.Enemy) {
	canvas.FillRect(e.X, e.Y, e.W, e.H)

	const half = config.DamageMarkerSize / 2
	for _, m := range e.Markers {
		x0 := max(m.X-half, 0)
		y0 := max(m.Y-half, 0)
		x1 := min(m.X+half, e.W)
		y1 := min(m.Y+half, e.H)
		if x1 > x0 && y1 > y0 {
			canvas.ClearRect(e.X+x0, e.Y+y0, x1-x0, y1-y0)
		}
	}
}

// drawPlayer draws the ship as a filled arrowhead pointing up.
func drawPlayer(canvas *draw.Canvas, p *object.Player) {
	canvas.DrawPolygon([]draw.Point{
		{X: p.X + p.W/2, Y: p.Y},
		{X: p.X + p.W, Y: p.Y + p.H},
		{X: p.X + p.W/2, Y: p.Y + p.H*0.7},
		{X: p.X, Y: p.Y + p.H},
	}, true)
}

// drawUI draws the text overlay for the view.
func (c *Client) drawUI(view View) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	switch view {
	case ViewShutdown:
		c.drawShutdownScreen(centerX, centerY)
	case ViewInactivity:
		c.drawInactivityScreen(centerX, centerY)
	case ViewMenu:
		c.drawMenuScreen(centerX, centerY)
	case ViewPlaying:
		c.drawPlayingHUD(termWidth, termHeight)
	case ViewLost:
		c.drawLostScreen(centerX, centerY)
	case ViewWon:
		c.drawWonScreen(centerX, centerY)
	}
}

// writeCentered writes s centered on column centerX at row. width is the
// visible length when s carries escape sequences, or 0 to use len(s).
func (c *Client) writeCentered(centerX, row int, s string, width int) {
	if width == 0 {
		width = len(s)
	}
	c.chunkWriter.WriteAt(centerX-width/2, row, s)
}

// writeArt writes ASCII art centered on centerX starting at row.
func (c *Client) writeArt(centerX, row int, art []string) {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	for i, line := range art {
		c.chunkWriter.WriteAt(centerX-width/2, row+i, line)
	}
}

// blinkOn toggles every 600ms for prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING", 0)

	msg := fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	)
	c.writeCentered(centerX, centerY, msg, 0)
	c.writeCentered(centerX, centerY+2, "Press any key to continue", 0)
}

// drawMenuScreen draws the title and the difficulty menu.
func (c *Client) drawMenuScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		` ___ _  ___   ___   ___  ___ ___  ___ `,
		`|_ _| \| \ \ / /_\ |   \| __| _ \/ __|`,
		` | || .' |\ V / _ \| |) | _||   /\__ \`,
		`|___|_|\_| \_/_/ \_\___/|___|_|_\|___/`,
	}

	titleStartY := max(centerY-9, 1)
	c.writeArt(centerX, titleStartY, titleArt)

	row := titleStartY + len(titleArt) + 1
	c.writeCentered(centerX, row, "~ Choose your difficulty ~", 0)
	row += 2

	g := c.state.Game
	for i, d := range loop.Difficulties {
		line := fmt.Sprintf("  %d. %-7s  %2d hit%s per enemy  ", i+1, d.Name, d.Health, plural(d.Health))
		width := len(line)
		if i == g.DifficultyIndex() {
			line = draw.Colorize(draw.ColorBold+draw.ColorGreen, ">"+line[1:len(line)-1]+"<")
		}
		c.writeCentered(centerX, row+i, line, width)
	}
	row += len(loop.Difficulties) + 1

	controlLines := []string{
		"A D / < >  . . . . Move",
		"SPACE  . . . . . . Fire",
		"Q / ESC  . . . . . Quit",
	}
	for i, line := range controlLines {
		c.writeCentered(centerX, row+i, line, 0)
	}
	row += len(controlLines) + 1

	if blinkOn() {
		c.writeCentered(centerX, row, ">>  Press SPACE to Start  <<", 0)
	} else {
		c.writeCentered(centerX, row, strings.Repeat(" ", 28), 0)
	}
	row += 2

	c.drawLeaderboard(centerX, row)
}

// drawLeaderboard lists the fastest wins on this server, if any.
func (c *Client) drawLeaderboard(centerX, row int) {
	if c.hub == nil {
		return
	}
	wins := c.hub.Leaderboard()
	if len(wins) == 0 {
		return
	}

	c.writeCentered(centerX, row, "Fastest victories", 0)
	for i, w := range wins {
		line := fmt.Sprintf("%d. %-16s %-7s %6.1fs %4d shots",
			i+1, w.Username, w.Difficulty, w.Duration.Seconds(), w.Shots)
		c.writeCentered(centerX, row+1+i, line, 0)
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen, and every written cell is marked dirty so
// the canvas repaints it once the text is gone.
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	g := c.state.Game
	f := g.Formation()

	left := fmt.Sprintf("%-6s Wave %d/%d", g.Difficulty().Name, waveNumber(f.Rows), waveNumber(f.MaxRows))
	c.hudText(2, 1, left)

	enemies := fmt.Sprintf("Enemies: %-3d", f.Len())
	c.hudText(termWidth-len(enemies)-1, 1, enemies)

	shots := fmt.Sprintf("Shots: %-5d", g.Shots())
	c.hudText(2, termHeight, shots)

	if c.hub != nil {
		players := fmt.Sprintf("Players: %-4d", c.hub.Count())
		c.hudText(termWidth-len(players)-1, termHeight, players)
	}
}

func (c *Client) hudText(col, row int, s string) {
	if col < 1 {
		return
	}
	c.chunkWriter.WriteAt(col, row, s)
	c.canvas.MarkTextDirty(col, row, len(s))
}

// waveNumber converts a row count (1, 2, 4, ...) to a 1-based wave number.
func waveNumber(rows int) int {
	n := 1
	for r := config.InitialRows; r < rows; r *= 2 {
		n++
	}
	return n
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

// drawLostScreen draws the game over notice.
func (c *Client) drawLostScreen(centerX, centerY int) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}
	titleStartY := max(centerY-5, 1)
	c.writeArt(centerX, titleStartY, titleArt)

	row := titleStartY + len(titleArt) + 1
	c.writeCentered(centerX, row, "The invaders have landed.", 0)
	c.drawStats(centerX, row+2)
	c.drawEndPrompt(centerX, row+5, ">>  Press SPACE to try again  <<")
}

// drawWonScreen draws the victory screen.
func (c *Client) drawWonScreen(centerX, centerY int) {
	titleArt := []string{
		` __   _____  _   _  __      _____  _  _ `,
		` \ \ / / _ \| | | | \ \    / / _ \| \| |`,
		`  \ V / (_) | |_| |  \ \/\/ / (_) | .' |`,
		`   |_| \___/ \___/    \_/\_/ \___/|_|\_|`,
	}
	titleStartY := max(centerY-5, 1)
	c.writeArt(centerX, titleStartY, titleArt)

	row := titleStartY + len(titleArt) + 1
	c.writeCentered(centerX, row, "Every wave destroyed.", 0)
	c.drawStats(centerX, row+2)
	c.drawEndPrompt(centerX, row+5, ">>  Press SPACE for the menu  <<")
}

func (c *Client) drawStats(centerX, row int) {
	g := c.state.Game
	c.writeCentered(centerX, row, fmt.Sprintf("Difficulty: %s", g.Difficulty().Name), 0)
	stats := fmt.Sprintf("Destroyed: %d   Shots: %d   Time: %.1fs", g.Kills(), g.Shots(), g.Clock().Seconds())
	c.writeCentered(centerX, row+1, stats, 0)
}

func (c *Client) drawEndPrompt(centerX, row int, prompt string) {
	if c.state.endTimer <= 0 && blinkOn() {
		c.writeCentered(centerX, row, prompt, 0)
	} else {
		c.writeCentered(centerX, row, strings.Repeat(" ", len(prompt)), 0)
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN", 0)
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.", 0)
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.", 0)

	remaining := int(c.state.shutdownTimer) + 1
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %2d seconds...", remaining), 0)
	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now", 0)
}

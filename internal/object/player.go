package object

import (
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Player is the ship at the bottom of the field. It only moves horizontally.
type Player struct {
	X, Y  float64 // Top-left corner
	W, H  float64
	Speed float64 // Logical pixels per frame
}

// NewPlayer creates a ship centered horizontally near the bottom of the field.
func NewPlayer(field Field) *Player {
	return &Player{
		X:     field.Width/2 - config.PlayerWidth/2,
		Y:     field.Height - config.PlayerHeight - config.PlayerBottomInset,
		W:     config.PlayerWidth,
		H:     config.PlayerHeight,
		Speed: config.PlayerSpeed,
	}
}

// Move shifts the ship one step in dir and clamps it so the whole
// ship stays within [0, fieldWidth]. Returns the new X.
func (p *Player) Move(dir Direction, fieldWidth float64) float64 {
	p.X = physics.Clamp(p.X+dir.Sign()*p.Speed, 0, fieldWidth-p.W)
	return p.X
}

// Box returns the ship's bounding box.
func (p *Player) Box() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

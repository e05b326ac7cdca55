package object

import (
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// DamageMarker is a hit point relative to the enemy's top-left corner.
type DamageMarker struct {
	X, Y float64
}

// Enemy is a single invader. It is live while Health > 0.
type Enemy struct {
	X, Y    float64 // Top-left corner
	W, H    float64
	Health  int
	Markers []DamageMarker // One per hit taken, in order
}

// NewEnemy creates an enemy at (x, y) with the given starting health.
func NewEnemy(x, y float64, health int) *Enemy {
	return &Enemy{
		X:      x,
		Y:      y,
		W:      config.EnemyWidth,
		H:      config.EnemyHeight,
		Health: health,
	}
}

// Box returns the enemy's bounding box.
func (e *Enemy) Box() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, W: e.W, H: e.H}
}

// Hit takes one point of health and records where the hit landed.
// Returns true if the hit destroyed the enemy.
func (e *Enemy) Hit(localX, localY float64) bool {
	e.Health--
	e.Markers = append(e.Markers, DamageMarker{X: localX, Y: localY})
	return e.Health <= 0
}

// Alive reports whether the enemy still has health left.
func (e *Enemy) Alive() bool {
	return e.Health > 0
}

package object

import (
	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Formation is the grid of live enemies. All enemies share one horizontal
// direction and move as a rigid body.
type Formation struct {
	Enemies   []*Enemy // Live enemies in formation order (row-major, left to right)
	Direction float64  // +1 moving right, -1 moving left
	Rows      int      // Rows in the current wave
	MaxRows   int      // Last wave has this many rows
	Health    int      // Starting health for every spawned enemy

	field Field
}

// NewFormation creates an empty formation for the given field. Call Spawn
// to populate the first wave.
func NewFormation(field Field, health int) *Formation {
	return &Formation{
		Direction: 1,
		Rows:      config.InitialRows,
		MaxRows:   config.MaxRows,
		Health:    health,
		field:     field,
	}
}

// Spawn replaces the live set with a fresh wave of Rows x EnemyColumns enemies,
// centered horizontally.
func (f *Formation) Spawn() {
	const pitch = config.EnemyWidth + config.EnemySpacing
	total := config.EnemyColumns*pitch - config.EnemySpacing
	startX := (f.field.Width - total) / 2

	f.Enemies = make([]*Enemy, 0, f.Rows*config.EnemyColumns)
	for row := 0; row < f.Rows; row++ {
		y := config.EnemyTop + float64(row)*config.EnemyRowPitch
		for col := 0; col < config.EnemyColumns; col++ {
			f.Enemies = append(f.Enemies, NewEnemy(startX+float64(col)*pitch, y, f.Health))
		}
	}
}

// Advance runs one formation step: shift every enemy sideways, and if the
// formation touched a wall, reverse and drop. reachedBottom is only ever
// true after a drop.
func (f *Formation) Advance() (moved, reachedBottom bool) {
	if len(f.Enemies) == 0 {
		return false, false
	}

	for _, e := range f.Enemies {
		e.X += config.EnemySpeed * f.Direction
	}

	minX, maxX, _ := f.extents()
	if minX > 0 && maxX < f.field.Width-config.EnemyWidth {
		return true, false
	}

	f.Direction = -f.Direction
	for _, e := range f.Enemies {
		e.Y += config.EnemyDropDistance
	}

	_, _, maxBottom := f.extents()
	return true, maxBottom >= f.field.Height-config.EnemyHeight
}

// extents returns min and max X and the lowest bottom edge over live enemies.
func (f *Formation) extents() (minX, maxX, maxBottom float64) {
	for i, e := range f.Enemies {
		if i == 0 || e.X < minX {
			minX = e.X
		}
		if i == 0 || e.X > maxX {
			maxX = e.X
		}
		if i == 0 || e.Y+e.H > maxBottom {
			maxBottom = e.Y + e.H
		}
	}
	return minX, maxX, maxBottom
}

// FirstOverlap returns the index of the first live enemy, in formation order,
// whose box overlaps box. Returns -1 if none does.
func (f *Formation) FirstOverlap(box physics.Rect) int {
	for i, e := range f.Enemies {
		if physics.Overlaps(box, e.Box()) {
			return i
		}
	}
	return -1
}

// RemoveAt drops the enemy at index i, preserving formation order.
func (f *Formation) RemoveAt(i int) {
	f.Enemies = append(f.Enemies[:i], f.Enemies[i+1:]...)
}

// Len returns the number of live enemies.
func (f *Formation) Len() int {
	return len(f.Enemies)
}

// Empty reports whether the wave has been cleared.
func (f *Formation) Empty() bool {
	return len(f.Enemies) == 0
}

// NextWave doubles the row count and spawns a new wave if the cap allows it.
// Returns false when the last wave has already been played.
func (f *Formation) NextWave() bool {
	if f.Rows >= f.MaxRows {
		return false
	}
	f.Rows *= 2
	f.Spawn()
	return true
}

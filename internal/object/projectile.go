package object

import (
	"time"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/physics"
)

// Projectile is a shot fired by the player. It travels straight up.
type Projectile struct {
	X, Y  float64 // Top-left corner; X never changes
	W, H  float64
	Speed float64 // Logical pixels per projectile step
}

// Box returns the projectile's bounding box.
func (p *Projectile) Box() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: p.W, H: p.H}
}

// OutOfField reports whether the projectile has fully left the top of the field.
func (p *Projectile) OutOfField() bool {
	return p.Y+p.H < 0
}

// Step moves the projectile up by its speed.
func (p *Projectile) Step() {
	p.Y -= p.Speed
}

// Launcher spawns projectiles and enforces the fire cooldown.
type Launcher struct {
	Cooldown time.Duration
	SpawnY   float64 // Top edge of newly spawned projectiles

	lastFire time.Duration
	hasFired bool
}

// NewLauncher creates a launcher whose shots start a fixed distance above
// the bottom of the field.
func NewLauncher(field Field) *Launcher {
	return &Launcher{
		Cooldown: config.FireCooldown,
		SpawnY:   field.Height - config.BulletSpawnOffset - config.BulletHeight,
	}
}

// Fire spawns a projectile centered on centerX at simulation time now.
// Requests inside the cooldown window are rejected with ok=false.
func (l *Launcher) Fire(centerX float64, now time.Duration) (p *Projectile, ok bool) {
	if l.hasFired && now-l.lastFire < l.Cooldown {
		return nil, false
	}
	l.lastFire = now
	l.hasFired = true

	return &Projectile{
		X:     centerX - config.BulletWidth/2,
		Y:     l.SpawnY,
		W:     config.BulletWidth,
		H:     config.BulletHeight,
		Speed: config.BulletSpeed,
	}, true
}

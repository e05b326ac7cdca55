// Package config centralizes all tunable game parameters.
package config

import "time"

// Default field resolution in logical pixels. The presentation measures the
// actual field from its canvas when a game starts.
const (
	FieldWidth  = 640
	FieldHeight = 720
)

// Player
const (
	PlayerWidth       = 40.0
	PlayerHeight      = 24.0
	PlayerSpeed       = 10.0 // Logical pixels per frame
	PlayerBottomInset = 8.0  // Gap between the ship and the field bottom
)

// Projectiles
const (
	BulletWidth        = 4.0
	BulletHeight       = 12.0
	BulletSpeed        = 10.0 // Logical pixels per projectile step
	BulletSpawnOffset  = 50.0 // Distance from the field bottom to the bullet's bottom edge
	BulletStepInterval = 20 * time.Millisecond
	FireCooldown       = 100 * time.Millisecond
)

// Enemies and formation
const (
	EnemyWidth        = 40.0
	EnemyHeight       = 40.0
	EnemySpeed        = 5.0 // Logical pixels per formation step
	EnemyColumns      = 6
	EnemySpacing      = 10.0
	EnemyTop          = 40.0 // Y of the first row
	EnemyRowPitch     = 50.0
	EnemyDropDistance = 50.0
	EnemyStepInterval = 40 * time.Millisecond
	InitialRows       = 1
	MaxRows           = 4
	DamageMarkerSize  = 20.0
)

// MaxFrameDelta caps how much simulated time a single frame may consume.
// A stalled terminal must not replay seconds of formation steps at once.
const MaxFrameDelta = 250 * time.Millisecond

// Rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
	MaxTermWidth          = 160 // Canvas never grows beyond this many columns
	MaxTermHeight         = 60  // Canvas never grows beyond this many rows
)

// Effects
const (
	ExplosionParticles = 14
	ExplosionSpeed     = 180.0 // Logical pixels per second
	ExplosionLifetime  = 0.6   // Seconds
)

// Sessions
const (
	ShutdownDisplaySeconds   = 10.0 // Seconds to show shutdown message before auto-disconnect
	EndScreenAckDelay        = 1.0  // Seconds before a win/loss screen accepts input
	InactivityWarnUser       = 90   // Seconds
	InactivityDisconnectUser = 120  // Seconds
	MaxUsernameLength        = 16
)

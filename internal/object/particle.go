package object

import (
	"math"
	"math/rand"
	"sync"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Spawner receives particles created by effect helpers.
type Spawner interface {
	Spawn(p *Particle)
}

// Particle is a short-lived visual fragment. It has no effect on the simulation.
type Particle struct {
	X, Y        float64 // Position
	VX, VY      float64 // Velocity, logical pixels per second
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity kept per 1/60 s (1.0 = no drag)
}

// NewParticle creates a single particle from the pool.
func NewParticle(x, y, vx, vy, lifetime float64) *Particle {
	p := particlePool.Get().(*Particle)
	p.X = x
	p.Y = y
	p.VX = vx
	p.VY = vy
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.94
	return p
}

// Release returns the particle to the pool.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnExplosion bursts count particles outward from (x, y).
func SpawnExplosion(x, y float64, count int, speed, lifetime float64, rng *rand.Rand, spawner Spawner) {
	if spawner == nil || rng == nil {
		return
	}
	for i := 0; i < count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		spd := speed * (0.5 + rng.Float64())
		life := lifetime * (0.5 + rng.Float64()*0.5)
		spawner.Spawn(NewParticle(x, y, math.Cos(angle)*spd, math.Sin(angle)*spd, life))
	}
}

// Update advances the particle by dt seconds. Returns true once it has expired.
func (p *Particle) Update(dt float64) bool {
	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	drag := math.Pow(p.Drag, dt*60)
	p.VX *= drag
	p.VY *= drag
	p.X += p.VX * dt
	p.Y += p.VY * dt
	return false
}

// Faded reports whether the particle is in the last quarter of its life
// and should no longer be drawn.
func (p *Particle) Faded() bool {
	return p.MaxLifetime > 0 && p.Lifetime/p.MaxLifetime < 0.25
}

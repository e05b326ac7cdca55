package loop

import (
	"github.com/tomz197/invaders/internal/object"
)

// updateFrame handles the per-frame work: ship movement and the fire attempt.
func (g *Game) updateFrame(c Controls) {
	g.player.Move(object.DirectionFromKeys(c.Left, c.Right), g.field.Width)

	if !c.Fire {
		return
	}
	p, ok := g.launcher.Fire(g.player.Box().CenterX(), g.clock)
	if !ok {
		return
	}
	g.projectiles = append(g.projectiles, p)
	g.shots++
	g.emit(Event{Type: EventFired, X: p.Box().CenterX(), Y: p.Y})
}

// stepFormation runs one formation step and ends the game if it landed.
func (g *Game) stepFormation() {
	if _, reachedBottom := g.formation.Advance(); reachedBottom {
		g.end(PhaseLost)
	}
}

// stepProjectiles advances every in-flight shot once, removing the ones
// that left the field or hit something. The slice is compacted in place.
func (g *Game) stepProjectiles() {
	kept := g.projectiles[:0]
	for _, p := range g.projectiles {
		if p.OutOfField() {
			continue
		}
		p.Step()
		if g.resolveHit(p) {
			if g.phase != PhasePlaying {
				return // end() already dropped the remaining shots
			}
			continue
		}
		kept = append(kept, p)
	}

	clear(g.projectiles[len(kept):])
	g.projectiles = kept
}

package loop

import "github.com/tomz197/invaders/internal/object"

// resolveHit damages the first enemy, in formation order, that the
// projectile overlaps. Returns true if the projectile was spent.
func (g *Game) resolveHit(p *object.Projectile) bool {
	box := p.Box()
	idx := g.formation.FirstOverlap(box)
	if idx < 0 {
		return false
	}

	e := g.formation.Enemies[idx]
	destroyed := e.Hit(box.X-e.X, box.Y-e.Y)
	if !destroyed {
		g.emit(Event{Type: EventEnemyHit, X: box.CenterX(), Y: box.Y})
		return true
	}

	g.formation.RemoveAt(idx)
	g.kills++
	eb := e.Box()
	g.emit(Event{Type: EventEnemyDestroyed, X: eb.CenterX(), Y: eb.Y + eb.H/2})
	g.checkWaveClear()
	return true
}

// checkWaveClear spawns the next wave once the formation is empty,
// or ends the game if the last wave is gone.
func (g *Game) checkWaveClear() {
	if !g.formation.Empty() {
		return
	}
	if g.formation.NextWave() {
		g.emit(Event{Type: EventWaveCleared, Rows: g.formation.Rows})
		return
	}
	g.end(PhaseWon)
}

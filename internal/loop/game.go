// Package loop provides the simulation driver: an explicit game state that
// owns the player, the enemy formation and all projectiles, and advances
// them on their own fixed cadences.
package loop

import (
	"time"

	"github.com/tomz197/invaders/internal/loop/config"
	"github.com/tomz197/invaders/internal/object"
)

// Game is a single play-through, from difficulty selection to a win or loss.
// It is not safe for concurrent use; one goroutine owns it.
type Game struct {
	phase      Phase
	difficulty int // Index into Difficulties
	health     int // Starting enemy health, fixed when the game starts
	field      object.Field

	player      *object.Player
	formation   *object.Formation
	launcher    *object.Launcher
	projectiles []*object.Projectile // In-flight shots, oldest first

	clock         time.Duration // Simulated time since Start
	formationLag  time.Duration // Time owed to the formation cadence
	projectileLag time.Duration // Time owed to the projectile cadence
	shots         int
	kills         int

	events []Event
}

// NewGame creates a game waiting on the difficulty menu.
func NewGame() *Game {
	return &Game{phase: PhaseSelect}
}

// Phase returns the current phase.
func (g *Game) Phase() Phase { return g.phase }

// Difficulty returns the highlighted (or, once started, chosen) preset.
func (g *Game) Difficulty() Difficulty { return Difficulties[g.difficulty] }

// DifficultyIndex returns the index of the highlighted preset.
func (g *Game) DifficultyIndex() int { return g.difficulty }

// Field returns the play area measured at Start.
func (g *Game) Field() object.Field { return g.field }

// Player returns the ship, or nil before Start.
func (g *Game) Player() *object.Player { return g.player }

// Formation returns the enemy formation, or nil before Start.
func (g *Game) Formation() *object.Formation { return g.formation }

// Projectiles returns the in-flight shots. Callers must not modify the slice.
func (g *Game) Projectiles() []*object.Projectile { return g.projectiles }

// Shots returns the number of accepted fire requests.
func (g *Game) Shots() int { return g.shots }

// Kills returns the number of destroyed enemies.
func (g *Game) Kills() int { return g.kills }

// Clock returns simulated time since Start.
func (g *Game) Clock() time.Duration { return g.clock }

// Events drains and returns everything raised since the previous call.
func (g *Game) Events() []Event {
	ev := g.events
	g.events = nil
	return ev
}

// PrevDifficulty highlights the previous preset, wrapping around.
func (g *Game) PrevDifficulty() {
	if g.phase != PhaseSelect {
		return
	}
	n := len(Difficulties)
	g.difficulty = (g.difficulty - 1 + n) % n
}

// NextDifficulty highlights the next preset, wrapping around.
func (g *Game) NextDifficulty() {
	if g.phase != PhaseSelect {
		return
	}
	g.difficulty = (g.difficulty + 1) % len(Difficulties)
}

// SelectDifficulty highlights preset i. Returns false if i is out of range
// or the game has already started.
func (g *Game) SelectDifficulty(i int) bool {
	if g.phase != PhaseSelect || i < 0 || i >= len(Difficulties) {
		return false
	}
	g.difficulty = i
	return true
}

// Start locks in the highlighted difficulty, lays out the field and the
// first wave, and begins play. Returns false if the game is not on the menu.
func (g *Game) Start(field object.Field) bool {
	if g.phase != PhaseSelect {
		return false
	}

	g.health = Difficulties[g.difficulty].Health
	g.field = field
	g.player = object.NewPlayer(field)
	g.formation = object.NewFormation(field, g.health)
	g.formation.Spawn()
	g.launcher = object.NewLauncher(field)
	g.projectiles = g.projectiles[:0]
	g.clock = 0
	g.formationLag = 0
	g.projectileLag = 0
	g.shots = 0
	g.kills = 0

	g.phase = PhasePlaying
	return true
}

// Step advances the simulation by one animation frame lasting delta.
// The player and fire intent update once; the formation and the projectiles
// run as many fixed steps as the elapsed time allows, in chronological order.
// Step does nothing outside PhasePlaying.
func (g *Game) Step(delta time.Duration, c Controls) {
	if g.phase != PhasePlaying {
		return
	}
	if delta < 0 {
		delta = 0
	}
	if delta > config.MaxFrameDelta {
		delta = config.MaxFrameDelta
	}

	g.clock += delta
	g.updateFrame(c)

	g.formationLag += delta
	g.projectileLag += delta
	for g.phase == PhasePlaying {
		formationDue := g.formationLag >= config.EnemyStepInterval
		projectileDue := g.projectileLag >= config.BulletStepInterval
		if !formationDue && !projectileDue {
			break
		}

		// Whichever cadence fell due earlier runs first.
		formationFirst := formationDue &&
			(!projectileDue || g.formationLag-config.EnemyStepInterval >= g.projectileLag-config.BulletStepInterval)
		if formationFirst {
			g.formationLag -= config.EnemyStepInterval
			g.stepFormation()
		} else {
			g.projectileLag -= config.BulletStepInterval
			g.stepProjectiles()
		}
	}
}

// end enters a terminal phase and drops everything still in motion.
func (g *Game) end(phase Phase) {
	g.phase = phase
	clear(g.projectiles)
	g.projectiles = nil
	g.formationLag = 0
	g.projectileLag = 0

	ev := Event{Type: EventWon}
	if phase == PhaseLost {
		ev.Type = EventLost
	}
	g.emit(ev)
}

func (g *Game) emit(ev Event) {
	g.events = append(g.events, ev)
}

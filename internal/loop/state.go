package loop

// Phase is the game's top-level state.
type Phase int

const (
	PhaseSelect  Phase = iota // Choosing a difficulty
	PhasePlaying              // Simulation running
	PhaseWon                  // Every wave cleared (terminal)
	PhaseLost                 // Formation reached the bottom (terminal)
)

func (p Phase) String() string {
	switch p {
	case PhaseSelect:
		return "select"
	case PhasePlaying:
		return "playing"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further simulation happens in this phase.
func (p Phase) Terminal() bool {
	return p == PhaseWon || p == PhaseLost
}

// Difficulty is a named preset for enemy starting health.
type Difficulty struct {
	ID     string
	Name   string
	Health int
}

// Difficulties lists the presets in menu order.
var Difficulties = []Difficulty{
	{ID: "normal", Name: "Normal", Health: 1},
	{ID: "medium", Name: "Medium", Health: 5},
	{ID: "hard", Name: "Hard", Health: 10},
}

// Controls is the per-frame player intent.
type Controls struct {
	Left  bool
	Right bool
	Fire  bool
}

// EventType identifies something the presentation may want to react to.
type EventType int

const (
	EventFired          EventType = iota // A projectile was spawned
	EventEnemyHit                        // An enemy lost health but survived
	EventEnemyDestroyed                  // An enemy was removed from the formation
	EventWaveCleared                     // A new, larger wave was spawned
	EventWon
	EventLost
)

func (t EventType) String() string {
	switch t {
	case EventFired:
		return "fired"
	case EventEnemyHit:
		return "enemy_hit"
	case EventEnemyDestroyed:
		return "enemy_destroyed"
	case EventWaveCleared:
		return "wave_cleared"
	case EventWon:
		return "won"
	case EventLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Event is raised by the simulation and drained by the presentation.
type Event struct {
	Type EventType
	X, Y float64 // Where it happened, in field coordinates
	Rows int     // Rows in the new wave (EventWaveCleared only)
}

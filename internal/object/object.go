// Package object holds the plain-data entities of the simulation:
// the player ship, enemies and their formation, projectiles, and
// the short-lived particles used for explosion effects.
package object

// Field is the logical play area. Origin is the top-left corner; Y grows downward.
type Field struct {
	Width  float64
	Height float64
}

// Direction is a horizontal movement intent.
type Direction int

const (
	DirNone Direction = iota
	DirLeft
	DirRight
)

// DirectionFromKeys resolves held keys into a direction.
// Left and right cancel each other out.
func DirectionFromKeys(left, right bool) Direction {
	switch {
	case left && !right:
		return DirLeft
	case right && !left:
		return DirRight
	default:
		return DirNone
	}
}

// Sign returns -1, 0 or +1 for the direction.
func (d Direction) Sign() float64 {
	switch d {
	case DirLeft:
		return -1
	case DirRight:
		return 1
	default:
		return 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

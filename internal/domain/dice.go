package domain

import "fmt"

// DieFaces is the number of faces on both dice.
const DieFaces = 6

// Effect is the outcome of the goofy die.
type Effect int

const (
	EffectHeal Effect = iota
	EffectShoot
	EffectBoogieBomb
	EffectWall

	effectCount
)

func (e Effect) String() string {
	switch e {
	case EffectHeal:
		return "heal"
	case EffectShoot:
		return "shoot"
	case EffectBoogieBomb:
		return "boogie_bomb"
	case EffectWall:
		return "wall"
	default:
		return fmt.Sprintf("effect(%d)", int(e))
	}
}

// Valid reports whether e is one of the four goofy die effects.
func (e Effect) Valid() bool {
	return e >= 0 && e < effectCount
}

// goofyFaces maps the goofy die's physical faces to effects. Shoot and heal
// are printed twice.
var goofyFaces = [DieFaces]Effect{EffectBoogieBomb, EffectShoot, EffectHeal, EffectHeal, EffectShoot, EffectWall}

// MovementFromFace converts the face index of the number die to 1..6.
func MovementFromFace(face int) (int, bool) {
	if face < 0 || face >= DieFaces {
		return 0, false
	}
	return face + 1, true
}

// EffectFromFace converts the face index of the goofy die to its effect.
func EffectFromFace(face int) (Effect, bool) {
	if face < 0 || face >= DieFaces {
		return 0, false
	}
	return goofyFaces[face], true
}

package app

import "fnmonopoly/internal/domain"

const wallUnset = -1

// diceBarrier joins the two dice of a turn. Phase one completes once both the
// movement number and the effect are known, in any order. Phase two completes
// when the effect handler has finished, which may take a further player
// decision. Movement is released exactly once after phase two.
type diceBarrier struct {
	thrown        bool
	movement      int // 1..6 once settled
	effect        domain.Effect
	effectKnown   bool
	effectStarted bool
	effectDone    bool
	moved         bool
	wall          int // distance override chosen on a wall roll
}

func newDiceBarrier() diceBarrier {
	return diceBarrier{wall: wallUnset}
}

func (b *diceBarrier) throw() bool {
	if b.thrown {
		return false
	}
	b.thrown = true
	return true
}

func (b *diceBarrier) settleMovement(n int) bool {
	if !b.thrown || b.movement != 0 || n < 1 || n > domain.DieFaces {
		return false
	}
	b.movement = n
	return true
}

func (b *diceBarrier) settleEffect(e domain.Effect) bool {
	if !b.thrown || b.effectKnown || !e.Valid() {
		return false
	}
	b.effect = e
	b.effectKnown = true
	return true
}

// startEffect reports whether phase one just completed and the effect handler
// must run now. It returns true at most once per turn.
func (b *diceBarrier) startEffect() bool {
	if b.movement == 0 || !b.effectKnown || b.effectStarted {
		return false
	}
	b.effectStarted = true
	return true
}

func (b *diceBarrier) finishEffect() {
	b.effectDone = true
}

// releaseMovement reports whether phase two is complete and movement has not
// been applied yet.
func (b *diceBarrier) releaseMovement() bool {
	return b.effectDone && !b.moved
}

// distance consumes the movement for this turn. A wall choice overrides the
// rolled number and is reset so it cannot leak into a later turn.
func (b *diceBarrier) distance() int {
	d := b.movement
	if b.wall != wallUnset {
		d = b.wall
	}
	b.wall = wallUnset
	b.moved = true
	return d
}

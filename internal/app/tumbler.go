package app

import (
	"math/rand"

	"fnmonopoly/internal/domain"
	"fnmonopoly/internal/ports"
)

// RandomTumbler throws fair dice that each tumble for a random number of ticks
// within [MinTicks, MaxTicks].
type RandomTumbler struct {
	rng      *rand.Rand
	MinTicks int
	MaxTicks int
}

var _ ports.DiceTumbler = (*RandomTumbler)(nil)

// NewRandomTumbler returns a tumbler drawing faces and settle delays from rng.
func NewRandomTumbler(rng *rand.Rand, minTicks, maxTicks int) *RandomTumbler {
	if minTicks < 1 {
		minTicks = 1
	}
	if maxTicks < minTicks {
		maxTicks = minTicks
	}
	return &RandomTumbler{rng: rng, MinTicks: minTicks, MaxTicks: maxTicks}
}

func (t *RandomTumbler) Throw(turn int) []ports.DieSettlement {
	return []ports.DieSettlement{
		{Die: ports.DieNumber, Face: t.rng.Intn(domain.DieFaces), AfterTicks: t.delay()},
		{Die: ports.DieGoofy, Face: t.rng.Intn(domain.DieFaces), AfterTicks: t.delay()},
	}
}

func (t *RandomTumbler) delay() int {
	return t.MinTicks + t.rng.Intn(t.MaxTicks-t.MinTicks+1)
}

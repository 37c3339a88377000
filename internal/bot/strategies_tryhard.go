package bot

import (
	"fnmonopoly/internal/app"
	"fnmonopoly/internal/domain"
)

// spaceScore rates landing on a space kind. Hurt bots value campfires more.
func spaceScore(kind domain.SpaceKind, health int) int {
	switch kind {
	case domain.SpaceChest:
		return 3
	case domain.SpaceCampfire:
		if health < domain.MaxHealth {
			return 2
		}
		return 0
	case domain.SpaceSpikeTrap:
		return -3
	case domain.SpaceGoToJail:
		return -1
	default:
		return 0
	}
}

// TryhardBrain picks the best landing space, finishes off weak opponents and
// spends its cards aggressively.
type TryhardBrain struct {
	Board *domain.Board
}

const (
	chugJugBelow = 7
	medKitBelow  = 10
	// clingerMinHits is the number of opponents a clinger space must hold.
	clingerMinHits = 2
)

func (b *TryhardBrain) CardToUse(obs Observation) (app.Card, app.CardArgs, bool) {
	health := obs.Self.Health
	for _, c := range obs.Hand {
		switch c.Type {
		case domain.CardChugJug:
			if health <= chugJugBelow {
				return c, app.CardArgs{}, true
			}
		case domain.CardMedKit:
			if health <= medKitBelow {
				return c, app.CardArgs{}, true
			}
		case domain.CardClinger:
			if space, ok := b.crowdedSpace(obs); ok {
				return c, app.CardArgs{Space: space}, true
			}
		case domain.CardBouncePad:
			if dist, ok := b.bestBounce(obs); ok {
				return c, app.CardArgs{TargetSeat: obs.Seat, Distance: dist}, true
			}
		}
	}
	return app.Card{}, app.CardArgs{}, false
}

// crowdedSpace finds a space with enough opponents and without the bot on it.
func (b *TryhardBrain) crowdedSpace(obs Observation) (int, bool) {
	counts := make(map[int]int)
	for _, p := range obs.Opponents() {
		counts[p.Space]++
	}
	best, bestCount := -1, 0
	for space, n := range counts {
		if space == obs.Self.Space || n < clingerMinHits {
			continue
		}
		if n > bestCount || (n == bestCount && space < best) {
			best, bestCount = space, n
		}
	}
	return best, best >= 0
}

// bestBounce returns a bounce distance onto a chest, if one is in reach.
func (b *TryhardBrain) bestBounce(obs Observation) (int, bool) {
	for d := 1; d <= 4; d++ {
		if b.Board.At(domain.Wrap(obs.Self.Space+d)) == domain.SpaceChest {
			return d, true
		}
	}
	return 0, false
}

func (b *TryhardBrain) ChooseWall(obs Observation, maxDistance int) int {
	best, bestScore := maxDistance, spaceScore(b.Board.At(domain.Wrap(obs.Self.Space+maxDistance)), obs.Self.Health)
	for d := maxDistance - 1; d >= 0; d-- {
		score := spaceScore(b.Board.At(domain.Wrap(obs.Self.Space+d)), obs.Self.Health)
		if score > bestScore {
			best, bestScore = d, score
		}
	}
	return best
}

func (b *TryhardBrain) PickTarget(obs Observation, targets []int) int {
	best, bestHealth := targets[0], domain.MaxHealth+1
	for _, seat := range targets {
		for _, p := range obs.Players {
			if p.Seat == seat && p.Health < bestHealth {
				best, bestHealth = seat, p.Health
			}
		}
	}
	return best
}

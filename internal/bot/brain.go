package bot

import (
	"fnmonopoly/internal/app"
	"fnmonopoly/internal/domain"
)

// Observation is everything a bot may look at when it is asked to act.
type Observation struct {
	Seat    int
	Self    app.PlayerView
	Players []app.PlayerView
	Hand    []app.Card
}

// Opponents returns every other seated player.
func (o Observation) Opponents() []app.PlayerView {
	out := make([]app.PlayerView, 0, len(o.Players))
	for _, p := range o.Players {
		if p.Seat != o.Seat {
			out = append(out, p)
		}
	}
	return out
}

// Brain is the interface that all bot strategies must implement.
type Brain interface {
	// CardToUse picks a one-time-use card to play before rolling.
	CardToUse(obs Observation) (app.Card, app.CardArgs, bool)
	// ChooseWall picks the distance to walk after a wall roll.
	ChooseWall(obs Observation, maxDistance int) int
	// PickTarget picks the seat to shoot from a non-empty target list.
	PickTarget(obs Observation, targets []int) int
}

// CasualBrain takes the rolled distance, shoots the first target and only
// heals when nearly out of health.
type CasualBrain struct{}

const casualHealBelow = 5

func (b *CasualBrain) CardToUse(obs Observation) (app.Card, app.CardArgs, bool) {
	if obs.Self.Health > casualHealBelow {
		return app.Card{}, app.CardArgs{}, false
	}
	for _, c := range obs.Hand {
		if c.Type == domain.CardMedKit || c.Type == domain.CardChugJug {
			return c, app.CardArgs{}, true
		}
	}
	return app.Card{}, app.CardArgs{}, false
}

func (b *CasualBrain) ChooseWall(_ Observation, maxDistance int) int {
	return maxDistance
}

func (b *CasualBrain) PickTarget(_ Observation, targets []int) int {
	return targets[0]
}

package bot

import (
	"fnmonopoly/internal/app"

	"github.com/google/uuid"
)

// ActionKind is the request a bot sends to the session.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionRoll
	ActionChooseWall
	ActionConfirmPickup
	ActionConfirmShot
	ActionUseCard
)

// Action is a decided bot request.
type Action struct {
	Kind       ActionKind
	Distance   int
	TargetSeat int
	CardID     uuid.UUID
	Args       app.CardArgs
}

// Agent represents an autonomous bot player. It only sees the replicated
// registry and its own hand, like a human client.
type Agent struct {
	ID      string
	Name    string
	Brain   Brain
	replica app.Replica
}

// NewAgent builds an agent for a pool identity.
func NewAgent(identity BotIdentity) (*Agent, error) {
	brain, err := NewBrain(Level(identity.Level))
	if err != nil {
		return nil, err
	}
	return &Agent{ID: identity.UserID, Name: identity.DisplayName, Brain: brain}, nil
}

// Observe applies a registry broadcast to the agent's replica.
func (a *Agent) Observe(snap app.Snapshot) bool {
	return a.replica.Apply(snap)
}

// Seat returns the agent's seat in the last observed snapshot, or -1.
func (a *Agent) Seat() int {
	for _, p := range a.replica.Players() {
		if p.UserID == a.ID {
			return p.Seat
		}
	}
	return -1
}

// Expected reports whether the session waits on this agent.
func (a *Agent) Expected(view app.View) bool {
	seat := a.Seat()
	if seat < 0 {
		return false
	}
	if view.Pending != app.PendingNone {
		return view.PendingSeat == seat
	}
	return view.State == app.StateAwaitingDice && view.Cursor.Seat == seat && !view.Rolled
}

// Act decides the next request for the session state in view. targets lists
// the seats a pending shot may hit.
func (a *Agent) Act(view app.View, hand []app.Card, targets []int) (Action, bool) {
	if !a.Expected(view) {
		return Action{}, false
	}
	obs := a.observation(hand)

	switch view.Pending {
	case app.PendingWallChoice:
		return Action{Kind: ActionChooseWall, Distance: a.Brain.ChooseWall(obs, view.MaxDistance)}, true
	case app.PendingPickup:
		return Action{Kind: ActionConfirmPickup}, true
	case app.PendingShot:
		if len(targets) == 0 {
			return Action{}, false
		}
		return Action{Kind: ActionConfirmShot, TargetSeat: a.Brain.PickTarget(obs, targets)}, true
	}

	if card, args, ok := a.Brain.CardToUse(obs); ok {
		return Action{Kind: ActionUseCard, CardID: card.ID, Args: args}, true
	}
	return Action{Kind: ActionRoll}, true
}

func (a *Agent) observation(hand []app.Card) Observation {
	obs := Observation{Seat: a.Seat(), Players: a.replica.Players(), Hand: hand}
	if self, ok := a.replica.Player(obs.Seat); ok {
		obs.Self = self
	}
	return obs
}

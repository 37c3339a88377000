package app

import (
	"fnmonopoly/internal/domain"

	"github.com/google/uuid"
)

// CardView is a hand entry as every peer sees it. Type is only meaningful
// once the card is revealed.
type CardView struct {
	ID       uuid.UUID
	Revealed bool
	Type     domain.CardType
}

// PlayerView is the replicated copy of one player's attributes.
type PlayerView struct {
	UserID    string
	Name      string
	Seat      int
	Health    int
	Damage    int
	Space     int
	Character domain.Character
	Loaded    bool
	Cards     []CardView
}

// Snapshot is a full copy of the registry as broadcast by the server. Seq
// strictly increases for every snapshot of a match.
type Snapshot struct {
	Seq         uint64
	Turn        int
	CurrentSeat int
	State       TurnState
	Players     []PlayerView
}

// Snapshot captures the lobby registry. Turn fields are unset before the game.
func (r *Registry) Snapshot() Snapshot {
	r.seq++
	snap := Snapshot{Seq: r.seq, CurrentSeat: -1}
	for _, p := range r.Players() {
		snap.Players = append(snap.Players, viewOf(p, nil))
	}
	return snap
}

// Snapshot captures the registry together with the hands and turn cursor.
func (s *Session) Snapshot() Snapshot {
	snap := s.registry.Snapshot()
	snap.Turn = s.cursor.Turn
	snap.CurrentSeat = s.cursor.Seat
	snap.State = s.state
	for i := range snap.Players {
		snap.Players[i].Cards = cardViews(s.hands[snap.Players[i].Seat])
	}
	return snap
}

func (s *Session) sync() Event {
	return Event{Kind: EventRegistrySynced, Payload: s.Snapshot()}
}

func viewOf(p *domain.Player, hand []*Card) PlayerView {
	return PlayerView{
		UserID:    p.UserID,
		Name:      p.Name,
		Seat:      p.Seat,
		Health:    p.Health,
		Damage:    p.Damage,
		Space:     p.Space,
		Character: p.Character,
		Loaded:    p.Loaded,
		Cards:     cardViews(hand),
	}
}

func cardViews(hand []*Card) []CardView {
	if len(hand) == 0 {
		return nil
	}
	out := make([]CardView, len(hand))
	for i, c := range hand {
		out[i] = CardView{ID: c.ID, Revealed: !c.Hidden}
		if !c.Hidden {
			out[i].Type = c.Type
		}
	}
	return out
}

// Replica is a read-only copy of the registry kept by a non-authoritative
// peer. Snapshots older than the last applied one are dropped.
type Replica struct {
	snap    Snapshot
	applied bool
}

// Apply installs snap if it is newer than the current copy.
func (r *Replica) Apply(snap Snapshot) bool {
	if r.applied && snap.Seq <= r.snap.Seq {
		return false
	}
	r.snap = snap
	r.applied = true
	return true
}

// Seq returns the sequence of the last applied snapshot.
func (r *Replica) Seq() uint64 { return r.snap.Seq }

// Turn returns the replicated turn counter.
func (r *Replica) Turn() int { return r.snap.Turn }

// CurrentSeat returns the replicated current seat, or -1 before the game.
func (r *Replica) CurrentSeat() int {
	if !r.applied {
		return -1
	}
	return r.snap.CurrentSeat
}

// State returns the replicated turn state.
func (r *Replica) State() TurnState { return r.snap.State }

// Player returns a copy of the replicated view of seat.
func (r *Replica) Player(seat int) (PlayerView, bool) {
	for _, p := range r.snap.Players {
		if p.Seat == seat {
			p.Cards = append([]CardView(nil), p.Cards...)
			return p, true
		}
	}
	return PlayerView{}, false
}

// Players returns a copy of every replicated player in seat order.
func (r *Replica) Players() []PlayerView {
	out := make([]PlayerView, len(r.snap.Players))
	for i, p := range r.snap.Players {
		p.Cards = append([]CardView(nil), p.Cards...)
		out[i] = p
	}
	return out
}

// View is the authoritative read model the server hands to bots and tests.
type View struct {
	State       TurnState
	Cursor      TurnCursor
	Pending     PendingKind
	PendingSeat int
	MaxDistance int
	Rolled      bool
}

// View returns the current turn engine state.
func (s *Session) View() View {
	v := View{
		State:       s.state,
		Cursor:      s.cursor,
		Pending:     s.pending.kind,
		PendingSeat: -1,
		Rolled:      s.dice.thrown,
	}
	if s.pending.kind != PendingNone {
		v.PendingSeat = s.pending.seat
		v.MaxDistance = s.pending.maxDistance
	}
	return v
}

package app

import "fnmonopoly/internal/domain"

type spaceHandler func(s *Session, p *domain.Player) []Event

var spaceHandlers map[domain.SpaceKind]spaceHandler

func init() {
	spaceHandlers = map[domain.SpaceKind]spaceHandler{
		domain.SpaceEmpty:     func(*Session, *domain.Player) []Event { return nil },
		domain.SpaceLocation:  (*Session).visitLocation,
		domain.SpaceCampfire:  (*Session).visitCampfire,
		domain.SpaceSpikeTrap: (*Session).visitSpikeTrap,
		domain.SpaceChest:     (*Session).openChest,
		domain.SpaceGoToJail:  (*Session).visitJail,
	}
}

func (s *Session) visitLocation(p *domain.Player) []Event {
	return []Event{{
		Kind: EventSpaceVisited,
		Payload: SpaceVisitedPayload{
			Seat:     p.Seat,
			Space:    p.Space,
			Kind:     domain.SpaceLocation,
			Location: domain.LocationName(p.Space),
		},
	}}
}

func (s *Session) visitCampfire(p *domain.Player) []Event {
	return s.changeHealth(p, campfireHeal)
}

func (s *Session) visitSpikeTrap(p *domain.Player) []Event {
	return s.changeHealth(p, -spikeTrapDamage)
}

// visitJail is detected but has no outcome yet.
func (s *Session) visitJail(p *domain.Player) []Event {
	return []Event{{Kind: EventRuleUnresolved, Payload: RuleUnresolvedPayload{Seat: p.Seat, Rule: RuleGoToJail}}}
}

// openChest deals the top card face down to the player and waits for them to
// stow it. An exhausted deck leaves the turn running.
func (s *Session) openChest(p *domain.Player) []Event {
	card, ok := s.deck.Draw()
	if !ok {
		return nil
	}
	card.Holder = p.Seat
	card.Hidden = true
	s.hands[p.Seat] = append(s.hands[p.Seat], card)
	index := len(s.hands[p.Seat]) - 1

	if bonus := card.Type.SniperDamage(); bonus > 0 {
		s.registry.IncreaseDamage(p.UserID, bonus)
	}
	s.pending = pending{kind: PendingPickup, seat: p.Seat}

	return []Event{
		{Kind: EventCardDrawn, Payload: CardDrawnPayload{Seat: p.Seat, CardIndex: index, CardID: card.ID}},
		{
			Kind:       EventCardDealt,
			Payload:    CardDealtPayload{Seat: p.Seat, CardIndex: index, CardID: card.ID, Type: card.Type},
			Recipients: []string{p.UserID},
		},
		s.sync(),
	}
}

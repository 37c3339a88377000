package app

import "fnmonopoly/internal/domain"

type effectHandler func(s *Session, p *domain.Player) []Event

var effectHandlers map[domain.Effect]effectHandler

func init() {
	effectHandlers = map[domain.Effect]effectHandler{
		domain.EffectHeal:       (*Session).healEffect,
		domain.EffectShoot:      (*Session).shootEffect,
		domain.EffectBoogieBomb: (*Session).boogieBombEffect,
		domain.EffectWall:       (*Session).wallEffect,
	}
}

func (s *Session) runEffect(e domain.Effect) []Event {
	return effectHandlers[e](s, s.current())
}

func (s *Session) healEffect(p *domain.Player) []Event {
	return s.changeHealth(p, healDieAmount)
}

// wallEffect lets the roller pick a shorter walk than the rolled number.
func (s *Session) wallEffect(p *domain.Player) []Event {
	s.pending = pending{kind: PendingWallChoice, seat: p.Seat, maxDistance: s.dice.movement}
	return []Event{{
		Kind:    EventWallChoiceRequested,
		Payload: WallChoiceRequestedPayload{Seat: p.Seat, MaxDistance: s.dice.movement},
	}}
}

// shootEffect applies the shooter's passive cards and, if anyone can be hit,
// suspends the turn until the shot is confirmed.
func (s *Session) shootEffect(p *domain.Player) []Event {
	var events []Event
	visible := s.visibleOpponents(p)

	if idx := s.findCard(p.Seat, domain.CardStinkBomb); idx >= 0 && len(visible) > 0 {
		events = append(events, s.RevealIfHidden(p.Seat, idx)...)
		for _, target := range visible {
			events = append(events, s.changeHealth(target, -stinkBombHit)...)
		}
	}

	bypass := s.findCard(p.Seat, domain.CardShootWherever) >= 0
	if len(visible) == 0 && !bypass {
		return events
	}

	s.pending = pending{kind: PendingShot, seat: p.Seat, bypass: bypass}
	return append(events, Event{Kind: EventShootingRequested, Payload: ShootingRequestedPayload{ShooterSeat: p.Seat}})
}

// ConfirmShot applies the pending shot to targetSeat. Either the shooter or
// the target may confirm it.
func (s *Session) ConfirmShot(senderSeat, targetSeat int) ([]Event, error) {
	if s.state == StateStalled {
		return nil, ErrSessionStalled
	}
	if s.state != StateAwaitingEffectResolution || s.pending.kind != PendingShot {
		return nil, ErrWrongState
	}
	shooterSeat := s.pending.seat
	if senderSeat != shooterSeat && senderSeat != targetSeat {
		return nil, ErrNotYourTurn
	}
	if targetSeat == shooterSeat {
		return nil, ErrInvalidTarget
	}
	target, ok := s.registry.BySeat(targetSeat)
	if !ok {
		return nil, ErrInvalidTarget
	}
	shooter := s.current()
	inSight := domain.InLineOfSight(shooter.Space, target.Space)
	if !inSight && !s.pending.bypass {
		return nil, ErrNotInLineOfSight
	}

	var events []Event
	if !inSight {
		events = append(events, s.RevealIfHidden(shooterSeat, s.findCard(shooterSeat, domain.CardShootWherever))...)
	}
	for i, c := range s.hands[shooterSeat] {
		if c.Type.SniperDamage() > 0 {
			events = append(events, s.RevealIfHidden(shooterSeat, i)...)
		}
	}
	events = append(events, Event{
		Kind:    EventShotFired,
		Payload: ShotFiredPayload{ShooterSeat: shooterSeat, TargetSeat: targetSeat, Damage: shooter.Damage},
	})
	events = append(events, s.changeHealth(target, -shooter.Damage)...)
	return append(events, s.completeEffect()...), nil
}

// boogieBombEffect hits every other player. Bush holders are immune and their
// Bush is revealed.
func (s *Session) boogieBombEffect(p *domain.Player) []Event {
	var events []Event
	for _, other := range s.registry.Players() {
		if other.Seat == p.Seat {
			continue
		}
		if idx := s.findCard(other.Seat, domain.CardBush); idx >= 0 {
			events = append(events, s.RevealIfHidden(other.Seat, idx)...)
			continue
		}
		events = append(events, s.changeHealth(other, -boogieBombHit)...)
	}
	return events
}

func (s *Session) visibleOpponents(p *domain.Player) []*domain.Player {
	var out []*domain.Player
	for _, other := range s.registry.Players() {
		if other.Seat != p.Seat && domain.InLineOfSight(p.Space, other.Space) {
			out = append(out, other)
		}
	}
	return out
}

// ShotTargets lists the seats the pending shot may hit.
func (s *Session) ShotTargets() []int {
	if s.state != StateAwaitingEffectResolution || s.pending.kind != PendingShot {
		return nil
	}
	shooter := s.current()
	var seats []int
	for _, other := range s.registry.Players() {
		if other.Seat == shooter.Seat {
			continue
		}
		if s.pending.bypass || domain.InLineOfSight(shooter.Space, other.Space) {
			seats = append(seats, other.Seat)
		}
	}
	return seats
}

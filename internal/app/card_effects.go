package app

import (
	"fnmonopoly/internal/domain"

	"github.com/google/uuid"
)

// CardArgs carries the player's choices for an active card.
type CardArgs struct {
	TargetSeat int // Bounce Pad: player to move
	Space      int // Clinger: space to hit
	Distance   int // Bounce Pad: 1..4
}

type cardHandler struct {
	validate func(s *Session, holder *domain.Player, args CardArgs) error
	apply    func(s *Session, holder *domain.Player, args CardArgs) []Event
}

var cardHandlers map[domain.CardType]cardHandler

func init() {
	cardHandlers = map[domain.CardType]cardHandler{
		domain.CardMedKit: {
			validate: anyArgs,
			apply: func(s *Session, holder *domain.Player, _ CardArgs) []Event {
				return s.changeHealth(holder, medKitHeal)
			},
		},
		domain.CardChugJug: {
			validate: anyArgs,
			apply: func(s *Session, holder *domain.Player, _ CardArgs) []Event {
				return s.changeHealth(holder, domain.MaxHealth-holder.Health)
			},
		},
		domain.CardClinger: {
			validate: func(_ *Session, _ *domain.Player, args CardArgs) error {
				if args.Space < 0 || args.Space >= domain.BoardSize {
					return ErrInvalidChoice
				}
				return nil
			},
			apply: func(s *Session, _ *domain.Player, args CardArgs) []Event {
				var events []Event
				for _, p := range s.registry.Players() {
					if p.Space == args.Space {
						events = append(events, s.changeHealth(p, -clingerHit)...)
					}
				}
				return events
			},
		},
		domain.CardBouncePad: {
			validate: func(s *Session, _ *domain.Player, args CardArgs) error {
				if _, ok := s.registry.BySeat(args.TargetSeat); !ok {
					return ErrInvalidTarget
				}
				if args.Distance < 1 || args.Distance > bouncePadReach {
					return ErrInvalidChoice
				}
				return nil
			},
			apply: func(s *Session, _ *domain.Player, args CardArgs) []Event {
				target, _ := s.registry.BySeat(args.TargetSeat)
				return s.movePlayer(target, args.Distance, continueAwaitDice)
			},
		},
	}
}

func anyArgs(*Session, *domain.Player, CardArgs) error { return nil }

// UseCard plays a one-time-use card from the current player's hand before
// they roll. The card is consumed after its effect resolves.
func (s *Session) UseCard(seat int, cardID uuid.UUID, args CardArgs) ([]Event, error) {
	if err := s.expect(StateAwaitingDice, seat, s.cursor.Seat); err != nil {
		return nil, err
	}
	if s.dice.thrown {
		return nil, ErrAlreadyRolled
	}
	idx := s.cardIndex(seat, cardID)
	if idx < 0 {
		return nil, ErrCardNotHeld
	}
	card := s.hands[seat][idx]
	handler, ok := cardHandlers[card.Type]
	if !ok || !card.Definition().OneTimeUse {
		return nil, ErrCardNotUsable
	}
	holder := s.current()
	if err := handler.validate(s, holder, args); err != nil {
		return nil, err
	}

	events := []Event{{Kind: EventCardUsed, Payload: CardUsedPayload{Seat: seat, CardID: card.ID, Type: card.Type}}}
	s.hands[seat] = append(s.hands[seat][:idx], s.hands[seat][idx+1:]...)
	card.Holder = -1
	events = append(events, handler.apply(s, holder, args)...)
	return append(events, s.sync()), nil
}

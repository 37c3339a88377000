package app

import (
	"fnmonopoly/internal/domain"

	"github.com/google/uuid"
)

// TurnState is the position of the turn engine in its state machine.
type TurnState string

const (
	StateAwaitingDice             TurnState = "awaiting_dice"
	StateAwaitingEffectResolution TurnState = "awaiting_effect_resolution"
	StateMoving                   TurnState = "moving"
	StateSpaceEffectResolution    TurnState = "space_effect_resolution"
	StateCardInteraction          TurnState = "card_interaction"
	StateTurnComplete             TurnState = "turn_complete"
	// StateStalled is entered when a seated player disconnects mid-game. No
	// recovery rule exists, so the session refuses every further request.
	StateStalled TurnState = "stalled"
)

// TurnCursor is the authoritative current seat and turn counter.
type TurnCursor struct {
	Seat int
	Turn int
}

// PendingKind names the external confirmation a suspended turn waits for.
type PendingKind string

const (
	PendingNone       PendingKind = ""
	PendingWallChoice PendingKind = "wall_choice"
	PendingShot       PendingKind = "shot"
	PendingPickup     PendingKind = "card_pickup"
)

// continuation is what a suspended landing resumes into.
type continuation int

const (
	continueEndTurn continuation = iota
	continueAwaitDice
)

type pending struct {
	kind        PendingKind
	seat        int // player whose answer resumes the turn
	maxDistance int
	bypass      bool
	resume      continuation
}

// Session is the server-owned game state of one match: registry handle, deck,
// hands, turn cursor and the turn state machine. All methods must be called
// from the match loop; the session is not safe for concurrent use.
type Session struct {
	registry *Registry
	deck     *Deck
	board    *domain.Board
	hands    [domain.MaxPlayers][]*Card
	cursor   TurnCursor
	state    TurnState
	dice     diceBarrier
	pending  pending
}

// NewSession locks the registry's seat order and prepares the first turn.
func NewSession(reg *Registry, deck *Deck, board *domain.Board) *Session {
	reg.lock()
	return &Session{
		registry: reg,
		deck:     deck,
		board:    board,
		cursor:   TurnCursor{Seat: 0, Turn: 1},
		state:    StateAwaitingDice,
		dice:     newDiceBarrier(),
	}
}

func (s *Session) begin() []Event {
	return []Event{
		{Kind: EventGameStarted, Payload: GameStartedPayload{PlayerCount: s.registry.Count(), FirstSeat: s.cursor.Seat}},
		s.sync(),
		s.turnStarted(),
	}
}

// Registry returns the player registry the session mutates.
func (s *Session) Registry() *Registry { return s.registry }

// State returns the current turn state.
func (s *Session) State() TurnState { return s.state }

// Cursor returns the current seat and turn counter.
func (s *Session) Cursor() TurnCursor { return s.cursor }

// DeckRemaining returns the number of undrawn cards.
func (s *Session) DeckRemaining() int { return s.deck.Remaining() }

// Hand returns a copy of the cards held by seat.
func (s *Session) Hand(seat int) []Card {
	if seat < 0 || seat >= domain.MaxPlayers {
		return nil
	}
	out := make([]Card, len(s.hands[seat]))
	for i, c := range s.hands[seat] {
		out[i] = *c
	}
	return out
}

// Roll throws both dice for the current player.
func (s *Session) Roll(seat int) ([]Event, error) {
	if err := s.expect(StateAwaitingDice, seat, s.cursor.Seat); err != nil {
		return nil, err
	}
	if !s.dice.throw() {
		return nil, ErrAlreadyRolled
	}
	return []Event{{Kind: EventDiceThrown, Payload: DiceThrownPayload{Seat: seat, Turn: s.cursor.Turn}}}, nil
}

// ResolveMovementDie delivers the settled number die (1..6) for turn.
func (s *Session) ResolveMovementDie(turn, number int) ([]Event, error) {
	if err := s.expectDice(turn); err != nil {
		return nil, err
	}
	if !s.dice.settleMovement(number) {
		return nil, ErrStaleDice
	}
	events := []Event{{Kind: EventDieSettled, Payload: DieSettledPayload{Turn: turn, Die: DieMovement, Value: number}}}
	return append(events, s.advanceDice()...), nil
}

// ResolveEffectDie delivers the settled goofy die effect for turn.
func (s *Session) ResolveEffectDie(turn int, effect domain.Effect) ([]Event, error) {
	if err := s.expectDice(turn); err != nil {
		return nil, err
	}
	if !s.dice.settleEffect(effect) {
		return nil, ErrStaleDice
	}
	events := []Event{{Kind: EventDieSettled, Payload: DieSettledPayload{Turn: turn, Die: DieEffect, Value: int(effect)}}}
	return append(events, s.advanceDice()...), nil
}

func (s *Session) expectDice(turn int) error {
	if s.state == StateStalled {
		return ErrSessionStalled
	}
	if s.state != StateAwaitingDice || turn != s.cursor.Turn {
		return ErrStaleDice
	}
	return nil
}

// advanceDice runs the effect once both dice are known and releases movement
// once the effect has finished.
func (s *Session) advanceDice() []Event {
	var events []Event
	if s.dice.startEffect() {
		s.state = StateAwaitingEffectResolution
		events = append(events, s.runEffect(s.dice.effect)...)
		if s.pending.kind != PendingNone {
			return events
		}
		s.dice.finishEffect()
	}
	if s.dice.releaseMovement() {
		events = append(events, s.moveCurrent()...)
	}
	return events
}

// completeEffect ends a suspended effect and releases the movement it held back.
func (s *Session) completeEffect() []Event {
	s.pending = pending{}
	s.dice.finishEffect()
	if !s.dice.releaseMovement() {
		return nil
	}
	return s.moveCurrent()
}

// ChooseWallSpace resolves a wall roll: the current player walks distance
// spaces instead of the rolled number.
func (s *Session) ChooseWallSpace(seat, distance int) ([]Event, error) {
	if err := s.expectPending(StateAwaitingEffectResolution, PendingWallChoice, seat); err != nil {
		return nil, err
	}
	if distance < 0 || distance > s.pending.maxDistance {
		return nil, ErrInvalidChoice
	}

	s.dice.wall = distance
	events := []Event{{Kind: EventWallChosen, Payload: WallChosenPayload{Seat: seat, Distance: distance}}}
	return append(events, s.completeEffect()...), nil
}

// ConfirmCardPickup resumes the turn after the drawing player stowed a card.
func (s *Session) ConfirmCardPickup(seat int) ([]Event, error) {
	if err := s.expectPending(StateCardInteraction, PendingPickup, seat); err != nil {
		return nil, err
	}

	resume := s.pending.resume
	s.pending = pending{}
	events := []Event{{Kind: EventCardStowed, Payload: CardStowedPayload{Seat: seat}}}
	return append(events, s.resume(resume)...), nil
}

// PlayerLeft handles a disconnect during the game. No rule exists for
// continuing without the player, so the session stalls explicitly.
func (s *Session) PlayerLeft(userID string) []Event {
	if s.state == StateStalled {
		return nil
	}
	p, ok := s.registry.Get(userID)
	if !ok {
		return nil
	}
	s.state = StateStalled
	s.pending = pending{}
	return []Event{{
		Kind:    EventTurnStalled,
		Payload: TurnStalledPayload{Seat: p.Seat, UserID: userID, Reason: "player_disconnected"},
	}}
}

func (s *Session) moveCurrent() []Event {
	return s.movePlayer(s.current(), s.dice.distance(), continueEndTurn)
}

func (s *Session) movePlayer(p *domain.Player, distance int, resume continuation) []Event {
	s.state = StateMoving
	path := domain.PlanMove(p.Space, distance)
	p.Space = path.To

	events := []Event{
		{Kind: EventMovementComputed, Payload: MovementComputedPayload{Seat: p.Seat, Path: path}},
		s.sync(),
	}
	if path.PassedStart {
		// No reward is defined for passing start.
		events = append(events, Event{Kind: EventRuleUnresolved, Payload: RuleUnresolvedPayload{Seat: p.Seat, Rule: RulePassedStart}})
	}
	return append(events, s.land(p, resume)...)
}

// land invokes the space effect exactly once. A chest draw suspends the turn
// until the drawer confirms the pickup.
func (s *Session) land(p *domain.Player, resume continuation) []Event {
	s.state = StateSpaceEffectResolution
	events := spaceHandlers[s.board.At(p.Space)](s, p)
	if s.pending.kind == PendingPickup {
		s.pending.resume = resume
		s.state = StateCardInteraction
		return events
	}
	return append(events, s.resume(resume)...)
}

func (s *Session) resume(c continuation) []Event {
	if c == continueAwaitDice {
		s.state = StateAwaitingDice
		return nil
	}
	return s.endTurn()
}

func (s *Session) endTurn() []Event {
	s.state = StateTurnComplete
	s.cursor.Seat = (s.cursor.Seat + 1) % s.registry.Count()
	s.cursor.Turn++
	s.dice = newDiceBarrier()
	s.pending = pending{}
	s.state = StateAwaitingDice
	return []Event{s.turnStarted()}
}

func (s *Session) turnStarted() Event {
	return Event{Kind: EventTurnStarted, Payload: TurnStartedPayload{Seat: s.cursor.Seat, Turn: s.cursor.Turn}}
}

// changeHealth mutates a player's health, then broadcasts the registry and
// the change. A rejected heal at full health emits nothing.
func (s *Session) changeHealth(p *domain.Player, delta int) []Event {
	health, changed := s.registry.MutateHealth(p.UserID, delta)
	if !changed {
		return nil
	}
	return []Event{
		s.sync(),
		{Kind: EventHealthChanged, Payload: HealthChangedPayload{Seat: p.Seat, Health: health, Increased: delta > 0}},
	}
}

// RevealIfHidden turns a hidden card face up for every peer. Repeat calls are silent.
func (s *Session) RevealIfHidden(seat, cardIndex int) []Event {
	if seat < 0 || seat >= domain.MaxPlayers || cardIndex < 0 || cardIndex >= len(s.hands[seat]) {
		return nil
	}
	card := s.hands[seat][cardIndex]
	if !card.Hidden {
		return nil
	}
	card.Hidden = false
	return []Event{{
		Kind:    EventCardRevealed,
		Payload: CardRevealedPayload{Seat: seat, CardIndex: cardIndex, CardID: card.ID, Type: card.Type},
	}}
}

func (s *Session) current() *domain.Player {
	p, _ := s.registry.BySeat(s.cursor.Seat)
	return p
}

func (s *Session) findCard(seat int, t domain.CardType) int {
	for i, c := range s.hands[seat] {
		if c.Type == t {
			return i
		}
	}
	return -1
}

func (s *Session) cardIndex(seat int, id uuid.UUID) int {
	for i, c := range s.hands[seat] {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (s *Session) expect(state TurnState, seat, wantSeat int) error {
	if s.state == StateStalled {
		return ErrSessionStalled
	}
	if s.state != state {
		return ErrWrongState
	}
	if seat != wantSeat {
		return ErrNotYourTurn
	}
	return nil
}

func (s *Session) expectPending(state TurnState, kind PendingKind, seat int) error {
	if s.state == StateStalled {
		return ErrSessionStalled
	}
	if s.state != state || s.pending.kind != kind {
		return ErrWrongState
	}
	if seat != s.pending.seat {
		return ErrNotYourTurn
	}
	return nil
}

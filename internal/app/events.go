package app

import (
	"fnmonopoly/internal/domain"

	"github.com/google/uuid"
)

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventLoadRequested       EventKind = "load_requested"
	EventRegistrySynced      EventKind = "registry_synced"
	EventGameStarted         EventKind = "game_started"
	EventTurnStarted         EventKind = "turn_started"
	EventDiceThrown          EventKind = "dice_thrown"
	EventDieSettled          EventKind = "die_settled"
	EventHealthChanged       EventKind = "health_changed"
	EventWallChoiceRequested EventKind = "wall_choice_requested"
	EventWallChosen          EventKind = "wall_chosen"
	EventShootingRequested   EventKind = "shooting_requested"
	EventShotFired           EventKind = "shot_fired"
	EventMovementComputed    EventKind = "movement_computed"
	EventSpaceVisited        EventKind = "space_visited"
	EventCardDrawn           EventKind = "card_drawn"
	EventCardDealt           EventKind = "card_dealt" // private to the drawer
	EventCardStowed          EventKind = "card_stowed"
	EventCardRevealed        EventKind = "card_revealed"
	EventCardUsed            EventKind = "card_used"
	EventRuleUnresolved      EventKind = "rule_unresolved"
	EventTurnStalled         EventKind = "turn_stalled"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

type LoadRequestedPayload struct {
	OwnerSeat int
}

type GameStartedPayload struct {
	PlayerCount int
	FirstSeat   int
}

type TurnStartedPayload struct {
	Seat int
	Turn int
}

type DiceThrownPayload struct {
	Seat int
	Turn int
}

// DieKind tells the two dice apart.
type DieKind string

const (
	DieMovement DieKind = "movement"
	DieEffect   DieKind = "effect"
)

type DieSettledPayload struct {
	Turn  int
	Die   DieKind
	Value int // 1..6 for movement, domain.Effect for effect
}

type HealthChangedPayload struct {
	Seat      int
	Health    int
	Increased bool
}

type WallChoiceRequestedPayload struct {
	Seat        int
	MaxDistance int
}

type WallChosenPayload struct {
	Seat     int
	Distance int
}

type ShootingRequestedPayload struct {
	ShooterSeat int
}

type ShotFiredPayload struct {
	ShooterSeat int
	TargetSeat  int
	Damage      int
}

type MovementComputedPayload struct {
	Seat int
	Path domain.MovePath
}

type SpaceVisitedPayload struct {
	Seat     int
	Space    int
	Kind     domain.SpaceKind
	Location string // set on location spaces
}

type CardDrawnPayload struct {
	Seat      int
	CardIndex int
	CardID    uuid.UUID
}

type CardDealtPayload struct {
	Seat      int
	CardIndex int
	CardID    uuid.UUID
	Type      domain.CardType
}

type CardStowedPayload struct {
	Seat int
}

type CardRevealedPayload struct {
	Seat      int
	CardIndex int
	CardID    uuid.UUID
	Type      domain.CardType
}

type CardUsedPayload struct {
	Seat   int
	CardID uuid.UUID
	Type   domain.CardType
}

// Rule names a board rule that is detected but has no defined outcome.
type Rule string

const (
	RulePassedStart Rule = "passed_start"
	RuleGoToJail    Rule = "go_to_jail"
)

type RuleUnresolvedPayload struct {
	Seat int
	Rule Rule
}

type TurnStalledPayload struct {
	Seat   int
	UserID string
	Reason string
}

package app

import (
	"errors"
	"math/rand"
	"time"

	"fnmonopoly/internal/domain"
)

// Service creates game sessions for a match.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNotInLobby       = errors.New("match not in lobby")
	ErrRegistryFull     = errors.New("all seats are taken")
	ErrTooFewPlayers    = errors.New("not enough players to start")
	ErrPlayersLoading   = errors.New("players still loading")
	ErrUnknownPlayer    = errors.New("player not found")
	ErrNotYourTurn      = errors.New("request not from the expected player")
	ErrWrongState       = errors.New("request not valid in current turn state")
	ErrAlreadyRolled    = errors.New("dice already rolled this turn")
	ErrStaleDice        = errors.New("dice result does not match the pending roll")
	ErrInvalidChoice    = errors.New("choice out of range")
	ErrInvalidTarget    = errors.New("invalid target player")
	ErrNotInLineOfSight = errors.New("target not in line of sight")
	ErrCardNotHeld      = errors.New("card not in hand")
	ErrCardNotUsable    = errors.New("card has no active use")
	ErrSessionStalled   = errors.New("session stalled after a player disconnected")
)

// IsStale reports whether err rejects an out-of-date or invalid client request.
// Such requests are dropped without telling the sender.
func IsStale(err error) bool {
	switch {
	case errors.Is(err, ErrUnknownPlayer),
		errors.Is(err, ErrNotYourTurn),
		errors.Is(err, ErrWrongState),
		errors.Is(err, ErrAlreadyRolled),
		errors.Is(err, ErrStaleDice),
		errors.Is(err, ErrInvalidChoice),
		errors.Is(err, ErrInvalidTarget),
		errors.Is(err, ErrNotInLineOfSight),
		errors.Is(err, ErrCardNotHeld),
		errors.Is(err, ErrCardNotUsable),
		errors.Is(err, ErrSessionStalled):
		return true
	}
	return false
}

// StartSession fixes the seat order and starts the first turn once every
// seated player has loaded.
func (s *Service) StartSession(reg *Registry) (*Session, []Event, error) {
	if reg.Count() < MinPlayersToStartGame {
		return nil, nil, ErrTooFewPlayers
	}
	if !reg.AllLoaded() {
		return nil, nil, ErrPlayersLoading
	}

	session := NewSession(reg, NewDeck(s.rng), &domain.StandardBoard)
	return session, session.begin(), nil
}

// Rand exposes the service rng for collaborators that must share its seed.
func (s *Service) Rand() *rand.Rand {
	return s.rng
}

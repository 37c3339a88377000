package app

import (
	"testing"

	"fnmonopoly/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShootWhereverBypassesSight(t *testing.T) {
	s := newTestSession(t, 2, NewDeckFrom())
	shooter, target := player(t, s, 0), player(t, s, 1)
	shooter.Space = 4
	target.Space = 20
	giveCard(s, 0, domain.CardShootWherever)
	require.False(t, domain.InLineOfSight(shooter.Space, target.Space))

	events := playTurn(t, s, 0, 2, domain.EffectShoot)
	require.Len(t, ofKind(events, EventShootingRequested), 1)
	assert.Equal(t, []int{1}, s.ShotTargets())

	events, err := s.ConfirmShot(1, 1)
	require.NoError(t, err)
	require.Len(t, ofKind(events, EventCardRevealed), 1)
	shots := ofKind(events, EventShotFired)
	require.Len(t, shots, 1)
	assert.Equal(t, ShotFiredPayload{ShooterSeat: 0, TargetSeat: 1, Damage: 1}, shots[0].Payload)
	assert.Equal(t, 14, target.Health)

	// Movement is released after the shot: 4+2 lands on a spike trap.
	assert.Equal(t, 6, shooter.Space)
	assert.Equal(t, 14, shooter.Health)
	assert.Equal(t, TurnCursor{Seat: 1, Turn: 2}, s.Cursor())
}

func TestShootWithoutTargetGivesUp(t *testing.T) {
	s := newTestSession(t, 2, NewDeckFrom())
	player(t, s, 0).Space = 4
	player(t, s, 1).Space = 20

	events := playTurn(t, s, 0, 1, domain.EffectShoot)

	assert.Empty(t, ofKind(events, EventShootingRequested))
	assert.Empty(t, ofKind(events, EventShotFired))
	assert.Equal(t, 5, player(t, s, 0).Space)
	assert.Equal(t, StateAwaitingDice, s.State())
	assert.Equal(t, 1, s.Cursor().Seat)
}

func TestConfirmShotValidation(t *testing.T) {
	s := newTestSession(t, 3, NewDeckFrom())
	player(t, s, 1).Space = 3
	player(t, s, 2).Space = 20

	_, err := s.ConfirmShot(0, 1)
	assert.ErrorIs(t, err, ErrWrongState)

	playTurn(t, s, 0, 1, domain.EffectShoot)
	assert.Equal(t, []int{1}, s.ShotTargets())

	_, err = s.ConfirmShot(0, 0)
	assert.ErrorIs(t, err, ErrInvalidTarget)
	_, err = s.ConfirmShot(2, 1)
	assert.ErrorIs(t, err, ErrNotYourTurn)
	_, err = s.ConfirmShot(0, 2)
	assert.ErrorIs(t, err, ErrNotInLineOfSight)
	_, err = s.ConfirmShot(0, 3)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = s.ConfirmShot(0, 1)
	require.NoError(t, err)
	assert.Equal(t, 14, player(t, s, 1).Health)
	assert.Equal(t, 15, player(t, s, 2).Health)

	_, err = s.ConfirmShot(0, 1)
	assert.ErrorIs(t, err, ErrWrongState)
}

func TestSniperDamageAndReveal(t *testing.T) {
	s := newTestSession(t, 2, NewDeckFrom())
	shooter := player(t, s, 0)
	shooter.Damage = 4
	giveCard(s, 0, domain.CardLegendarySniper)
	player(t, s, 1).Space = 2

	playTurn(t, s, 0, 1, domain.EffectShoot)
	events, err := s.ConfirmShot(0, 1)
	require.NoError(t, err)

	revealed := ofKind(events, EventCardRevealed)
	require.Len(t, revealed, 1)
	assert.Equal(t, domain.CardLegendarySniper, revealed[0].Payload.(CardRevealedPayload).Type)
	assert.Equal(t, 11, player(t, s, 1).Health)
}

func TestStinkBombHitsEveryoneInSight(t *testing.T) {
	s := newTestSession(t, 3, NewDeckFrom())
	giveCard(s, 0, domain.CardStinkBomb)
	player(t, s, 1).Space = 3
	player(t, s, 2).Space = 20

	events := playTurn(t, s, 0, 1, domain.EffectShoot)
	require.Len(t, ofKind(events, EventCardRevealed), 1)
	require.Len(t, ofKind(events, EventShootingRequested), 1)
	assert.Equal(t, 12, player(t, s, 1).Health)
	assert.Equal(t, 15, player(t, s, 2).Health)

	_, err := s.ConfirmShot(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 11, player(t, s, 1).Health)
}

func TestBoogieBombSkipsBushHolders(t *testing.T) {
	s := newTestSession(t, 3, NewDeckFrom())
	giveCard(s, 1, domain.CardBush)

	events := playTurn(t, s, 0, 1, domain.EffectBoogieBomb)

	revealed := ofKind(events, EventCardRevealed)
	require.Len(t, revealed, 1)
	assert.Equal(t, 1, revealed[0].Payload.(CardRevealedPayload).Seat)
	assert.Equal(t, 15, player(t, s, 0).Health)
	assert.Equal(t, 15, player(t, s, 1).Health)
	assert.Equal(t, 14, player(t, s, 2).Health)
	assert.Len(t, ofKind(events, EventHealthChanged), 1)
}

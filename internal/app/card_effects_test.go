package app

import (
	"testing"

	"fnmonopoly/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUseHealingCards(t *testing.T) {
	tests := []struct {
		name   string
		card   domain.CardType
		health int
		want   int
	}{
		{name: "med kit", card: domain.CardMedKit, health: 8, want: 13},
		{name: "med kit clamps", card: domain.CardMedKit, health: 12, want: 15},
		{name: "chug jug", card: domain.CardChugJug, health: 3, want: 15},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(t, 2, NewDeckFrom())
			p := player(t, s, 0)
			p.Health = tc.health
			card := giveCard(s, 0, tc.card)

			events, err := s.UseCard(0, card.ID, CardArgs{})
			require.NoError(t, err)
			assert.Equal(t, EventCardUsed, events[0].Kind)
			assert.Equal(t, EventRegistrySynced, events[len(events)-1].Kind)
			assert.Equal(t, tc.want, p.Health)
			assert.Empty(t, s.Hand(0))

			_, err = s.UseCard(0, card.ID, CardArgs{})
			assert.ErrorIs(t, err, ErrCardNotHeld)
		})
	}
}

func TestUseCardValidation(t *testing.T) {
	s := newTestSession(t, 2, NewDeckFrom())
	bush := giveCard(s, 0, domain.CardBush)
	medKit := giveCard(s, 0, domain.CardMedKit)
	other := giveCard(s, 1, domain.CardMedKit)

	_, err := s.UseCard(0, bush.ID, CardArgs{})
	assert.ErrorIs(t, err, ErrCardNotUsable)
	_, err = s.UseCard(0, uuid.New(), CardArgs{})
	assert.ErrorIs(t, err, ErrCardNotHeld)
	_, err = s.UseCard(0, other.ID, CardArgs{})
	assert.ErrorIs(t, err, ErrCardNotHeld)
	_, err = s.UseCard(1, other.ID, CardArgs{})
	assert.ErrorIs(t, err, ErrNotYourTurn)

	_, err = s.Roll(0)
	require.NoError(t, err)
	_, err = s.UseCard(0, medKit.ID, CardArgs{})
	assert.ErrorIs(t, err, ErrAlreadyRolled)
	assert.Len(t, s.Hand(0), 2)
}

func TestClingerHitsSpace(t *testing.T) {
	s := newTestSession(t, 3, NewDeckFrom())
	player(t, s, 1).Space = 5
	player(t, s, 2).Space = 5
	card := giveCard(s, 0, domain.CardClinger)

	_, err := s.UseCard(0, card.ID, CardArgs{Space: 40})
	assert.ErrorIs(t, err, ErrInvalidChoice)
	assert.Len(t, s.Hand(0), 1)

	events, err := s.UseCard(0, card.ID, CardArgs{Space: 5})
	require.NoError(t, err)
	assert.Len(t, ofKind(events, EventHealthChanged), 2)
	assert.Equal(t, 15, player(t, s, 0).Health)
	assert.Equal(t, 11, player(t, s, 1).Health)
	assert.Equal(t, 11, player(t, s, 2).Health)
}

func TestBouncePadMovesTarget(t *testing.T) {
	s := newTestSession(t, 2, NewDeckFrom())
	card := giveCard(s, 0, domain.CardBouncePad)

	_, err := s.UseCard(0, card.ID, CardArgs{TargetSeat: 1, Distance: 5})
	assert.ErrorIs(t, err, ErrInvalidChoice)
	_, err = s.UseCard(0, card.ID, CardArgs{TargetSeat: 3, Distance: 2})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	events, err := s.UseCard(0, card.ID, CardArgs{TargetSeat: 1, Distance: 3})
	require.NoError(t, err)
	require.Len(t, ofKind(events, EventMovementComputed), 1)
	assert.Equal(t, 3, player(t, s, 1).Space)
	assert.Equal(t, StateAwaitingDice, s.State())
	assert.Equal(t, TurnCursor{Seat: 0, Turn: 1}, s.Cursor())

	_, err = s.Roll(0)
	assert.NoError(t, err)
}

func TestBouncePadOntoChestWaitsForTarget(t *testing.T) {
	s := newTestSession(t, 2, NewDeckFrom(domain.CardMedKit))
	card := giveCard(s, 0, domain.CardBouncePad)

	events, err := s.UseCard(0, card.ID, CardArgs{TargetSeat: 1, Distance: 4})
	require.NoError(t, err)
	require.Len(t, ofKind(events, EventCardDrawn), 1)
	assert.Equal(t, StateCardInteraction, s.State())
	assert.Equal(t, 1, s.View().PendingSeat)

	_, err = s.ConfirmCardPickup(0)
	assert.ErrorIs(t, err, ErrNotYourTurn)

	events, err = s.ConfirmCardPickup(1)
	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, StateAwaitingDice, s.State())
	assert.Equal(t, TurnCursor{Seat: 0, Turn: 1}, s.Cursor())
	assert.Len(t, s.Hand(1), 1)
}

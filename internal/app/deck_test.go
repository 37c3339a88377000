package app

import (
	"math/rand"
	"testing"

	"fnmonopoly/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckDrawsEveryCardOnce(t *testing.T) {
	deck := NewDeck(rand.New(rand.NewSource(7)))
	require.Equal(t, 16, deck.Remaining())

	counts := map[domain.CardType]int{}
	ids := map[string]bool{}
	for i := 0; i < 16; i++ {
		card, ok := deck.Draw()
		require.True(t, ok)
		assert.True(t, card.Hidden)
		assert.Equal(t, -1, card.Holder)
		counts[card.Type]++
		ids[card.ID.String()] = true
	}
	assert.Len(t, ids, 16)
	for _, def := range domain.Catalog() {
		assert.Equal(t, def.Copies, counts[def.Type], def.Name)
	}

	card, ok := deck.Draw()
	assert.False(t, ok)
	assert.Nil(t, card)
	assert.Equal(t, 0, deck.Remaining())
}

func TestNewDeckFromDrawsLastFirst(t *testing.T) {
	deck := NewDeckFrom(domain.CardBush, domain.CardMedKit)

	card, _ := deck.Draw()
	assert.Equal(t, domain.CardMedKit, card.Type)
	card, _ = deck.Draw()
	assert.Equal(t, domain.CardBush, card.Type)
}

func TestNewDeckShufflesWithSeed(t *testing.T) {
	order := func(seed int64) []domain.CardType {
		deck := NewDeck(rand.New(rand.NewSource(seed)))
		var out []domain.CardType
		for deck.Remaining() > 0 {
			card, _ := deck.Draw()
			out = append(out, card.Type)
		}
		return out
	}
	assert.Equal(t, order(3), order(3))
}

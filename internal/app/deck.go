package app

import (
	"math/rand"

	"fnmonopoly/internal/domain"

	"github.com/google/uuid"
)

// Card is a physical treasure card: a catalog type plus its table state.
type Card struct {
	ID     uuid.UUID
	Type   domain.CardType
	Hidden bool
	Holder int // seat, -1 while in the pile
}

// Definition returns the catalog entry of the card.
func (c *Card) Definition() domain.CardDefinition {
	return c.Type.Definition()
}

// Deck is the shuffled draw pile. The top of the pile is the end of the slice.
type Deck struct {
	cards []*Card
}

// NewDeck builds the full card multiset and shuffles it with rng.
func NewDeck(rng *rand.Rand) *Deck {
	types := domain.DeckComposition()
	// rand.Shuffle is a Fisher-Yates shuffle.
	rng.Shuffle(len(types), func(i, j int) { types[i], types[j] = types[j], types[i] })

	cards := make([]*Card, len(types))
	for i, t := range types {
		cards[i] = &Card{ID: uuid.New(), Type: t, Hidden: true, Holder: -1}
	}
	return &Deck{cards: cards}
}

// NewDeckFrom builds a pile with the given order; the last type is drawn first.
func NewDeckFrom(types ...domain.CardType) *Deck {
	cards := make([]*Card, len(types))
	for i, t := range types {
		cards[i] = &Card{ID: uuid.New(), Type: t, Hidden: true, Holder: -1}
	}
	return &Deck{cards: cards}
}

// Draw pops the top card. An exhausted pile yields ok=false.
func (d *Deck) Draw() (*Card, bool) {
	if len(d.cards) == 0 {
		return nil, false
	}
	top := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	return top, true
}

// Remaining returns the number of cards left in the pile.
func (d *Deck) Remaining() int {
	return len(d.cards)
}

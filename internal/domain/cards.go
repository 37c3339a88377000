package domain

import "fmt"

// CardType identifies a treasure card. The numeric order is the catalog order.
type CardType int

const (
	CardRareSniper CardType = iota
	CardShootWherever
	CardMedKit
	CardClinger
	CardBouncePad
	CardStinkBomb
	CardEpicSniper
	CardBush
	CardLegendarySniper
	CardChugJug

	cardTypeCount
)

// Rarity is the tier printed on a card.
type Rarity string

const (
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// CardDefinition is the immutable catalog entry for a card type.
type CardDefinition struct {
	Type        CardType
	Name        string
	Rarity      Rarity
	OneTimeUse  bool
	Copies      int
	Description string
}

var catalog = [cardTypeCount]CardDefinition{
	{CardRareSniper, "Rare Sniper", RarityRare, false, 2, "When you roll (SHOOT), the targeted player pays 2 HP to the bank"},
	{CardShootWherever, "Shoot Wherever", RarityRare, false, 2, "When you roll (SHOOT), you may ignore line of sight and target any player"},
	{CardMedKit, "Med Kit", RarityRare, true, 1, "(One Time Use) Collect 5 HP from the bank"},
	{CardClinger, "Clinger", RarityRare, true, 2, "(One Time Use) Choose any space. All players on that space pay 4 HP to the bank"},
	{CardBouncePad, "Bounce Pad", RarityRare, true, 2, "(One Time Use) Move any player up to 4 spaces. They must complete the action of the space where they land"},
	{CardStinkBomb, "Stink Bomb", RarityEpic, false, 1, "When you roll (SHOOT), all players in your line of sight pay 3 HP to the bank."},
	{CardEpicSniper, "Epic Sniper", RarityEpic, false, 2, "When you roll (SHOOT), the targeted player pays 3 HP to the bank"},
	{CardBush, "Bush", RarityLegendary, false, 1, "Boogie bombs do not affect you"},
	{CardLegendarySniper, "Legendary Sniper", RarityLegendary, false, 2, "When you roll (SHOOT), the targeted player pays 4 HP to the bank"},
	{CardChugJug, "Chug Jug", RarityLegendary, true, 1, "(One Time Use) Collect HP from the bank until you have 15!"},
}

// Definition returns the catalog entry for t.
func (t CardType) Definition() CardDefinition {
	if !t.Valid() {
		panic(fmt.Sprintf("unknown card type %d", int(t)))
	}
	return catalog[t]
}

// Valid reports whether t is in the catalog.
func (t CardType) Valid() bool {
	return t >= 0 && t < cardTypeCount
}

func (t CardType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("card_type(%d)", int(t))
	}
	return catalog[t].Name
}

// SniperDamage returns the damage bonus a sniper card grants, or 0.
func (t CardType) SniperDamage() int {
	switch t {
	case CardRareSniper:
		return 2
	case CardEpicSniper:
		return 3
	case CardLegendarySniper:
		return 4
	default:
		return 0
	}
}

// Catalog returns every card definition in catalog order.
func Catalog() []CardDefinition {
	out := make([]CardDefinition, len(catalog))
	copy(out, catalog[:])
	return out
}

// DeckComposition lists the card types of a full deck, duplicates included.
func DeckComposition() []CardType {
	var types []CardType
	for _, def := range catalog {
		for i := 0; i < def.Copies; i++ {
			types = append(types, def.Type)
		}
	}
	return types
}

// RaiseDamage applies a sniper pickup: the first sniper replaces the base
// damage, later ones stack on top of it.
func RaiseDamage(current, bonus int) int {
	if current == BaseDamage {
		return bonus
	}
	return current + bonus
}

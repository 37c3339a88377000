package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeckComposition(t *testing.T) {
	types := DeckComposition()
	require.Len(t, types, 16)

	counts := make(map[CardType]int)
	for _, ct := range types {
		counts[ct]++
	}
	assert.Len(t, counts, 10)
	assert.Equal(t, 2, counts[CardRareSniper])
	assert.Equal(t, 1, counts[CardMedKit])
	assert.Equal(t, 1, counts[CardBush])
	assert.Equal(t, 2, counts[CardLegendarySniper])
}

func TestOneTimeUseMembership(t *testing.T) {
	var oneTime []CardType
	for _, def := range Catalog() {
		if def.OneTimeUse {
			oneTime = append(oneTime, def.Type)
		}
	}
	assert.Equal(t, []CardType{CardMedKit, CardClinger, CardBouncePad, CardChugJug}, oneTime)
}

func TestRarityTiers(t *testing.T) {
	assert.Equal(t, RarityRare, CardBouncePad.Definition().Rarity)
	assert.Equal(t, RarityEpic, CardStinkBomb.Definition().Rarity)
	assert.Equal(t, RarityEpic, CardEpicSniper.Definition().Rarity)
	assert.Equal(t, RarityLegendary, CardBush.Definition().Rarity)
}

func TestRaiseDamage(t *testing.T) {
	assert.Equal(t, 2, RaiseDamage(BaseDamage, CardRareSniper.SniperDamage()))
	assert.Equal(t, 6, RaiseDamage(2, CardLegendarySniper.SniperDamage()))
	assert.Equal(t, 0, CardBush.SniperDamage())
}

func TestDiceFaces(t *testing.T) {
	n, ok := MovementFromFace(5)
	assert.True(t, ok)
	assert.Equal(t, 6, n)
	_, ok = MovementFromFace(6)
	assert.False(t, ok)

	counts := make(map[Effect]int)
	for face := 0; face < DieFaces; face++ {
		e, ok := EffectFromFace(face)
		require.True(t, ok)
		counts[e]++
	}
	assert.Equal(t, map[Effect]int{EffectHeal: 2, EffectShoot: 2, EffectBoogieBomb: 1, EffectWall: 1}, counts)
}

package bot

import (
	"testing"

	"fnmonopoly/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadIdentities(t *testing.T) {
	require.NoError(t, LoadIdentities("testdata/bot_identities.json"))

	first := GetBotIdentity(0)
	assert.Equal(t, "bot-test-1", first.UserID)
	assert.Equal(t, domain.CharacterBatman, first.Character)
	assert.Equal(t, first, GetBotIdentity(2))

	second := GetBotIdentity(1)
	assert.Equal(t, "bot-bot_two", second.UserID)
	assert.True(t, IsBot(second.UserID))
	assert.Equal(t, "bot_two", GetBotDisplayName(second.UserID))

	assert.True(t, IsBot("bot-test-1"))
	assert.False(t, IsBot("human-1"))
	assert.Equal(t, "Bot One", GetBotDisplayName("bot-test-1"))
	assert.Empty(t, GetBotDisplayName("human-1"))

	cfg, ok := GetBotConfig("bot-test-1")
	require.True(t, ok)
	assert.Equal(t, "tryhard", cfg.Level)

	agent, err := NewAgent(first)
	require.NoError(t, err)
	assert.IsType(t, &TryhardBrain{}, agent.Brain)
}

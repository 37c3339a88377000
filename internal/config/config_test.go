package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfig() {
	cfg = nil
	loadErr = nil
	loadOnce = sync.Once{}
}

func TestLoadGameConfigKeepsDefaultsForMissingFields(t *testing.T) {
	t.Cleanup(resetConfig)
	resetConfig()

	path := filepath.Join(t.TempDir(), "game_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"tick_rate": 10, "bots_enabled": true}`), 0o600))

	require.NoError(t, LoadGameConfig(path))
	got := GetGameConfig()
	assert.Equal(t, 10, got.TickRate)
	assert.True(t, got.BotsEnabled)
	assert.Equal(t, Defaults().DiceSettleMaxTicks, got.DiceSettleMaxTicks)
}

func TestLoadGameConfigErrors(t *testing.T) {
	t.Cleanup(resetConfig)

	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed json", content: `{"tick_rate":`},
		{name: "bad dice window", content: `{"dice_settle_min_ticks": 5, "dice_settle_max_ticks": 2}`},
		{name: "zero tick rate", content: `{"tick_rate": 0}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resetConfig()
			path := filepath.Join(t.TempDir(), "game_config.json")
			require.NoError(t, os.WriteFile(path, []byte(tc.content), 0o600))

			assert.Error(t, LoadGameConfig(path))
			assert.Equal(t, Defaults(), GetGameConfig())
		})
	}

	resetConfig()
	assert.Error(t, LoadGameConfig(filepath.Join(t.TempDir(), "missing.json")))
}

func TestWithEnvOverrides(t *testing.T) {
	got := Defaults().WithEnv(map[string]string{
		"fnm_bots_enabled":      "true",
		"fnm_bot_min_delay_sec": "4",
		"fnm_bot_max_delay_sec": "2",
		"fnm_tick_rate":         "not-a-number",
		"fnm_voice_secret":      "s3cret",
		"fnm_voice_domain":      "voice.example.com",
	})

	assert.True(t, got.BotsEnabled)
	assert.Equal(t, 4, got.BotMinDelaySeconds)
	assert.Equal(t, 4, got.BotMaxDelaySeconds)
	assert.Equal(t, Defaults().TickRate, got.TickRate)
	assert.Equal(t, "s3cret", got.VoiceSecret)
	assert.Equal(t, "voice.example.com", got.VoiceDomain)
	assert.Empty(t, got.VoiceIssuer)
}

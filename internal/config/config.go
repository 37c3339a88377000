package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
)

// GameConfig holds the tunables of a Fortnite Monopoly match.
type GameConfig struct {
	// TickRate is the number of match loop ticks per second.
	TickRate int `json:"tick_rate"`
	// DiceSettleMinTicks and DiceSettleMaxTicks bound how long each die tumbles.
	DiceSettleMinTicks int `json:"dice_settle_min_ticks"`
	DiceSettleMaxTicks int `json:"dice_settle_max_ticks"`

	BotsEnabled bool `json:"bots_enabled"`
	// BotAutoFillDelaySeconds configures how many seconds to wait before adding bots to a solo human lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	BotMinDelaySeconds      int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds      int `json:"bot_max_delay_seconds"`

	VoiceIssuer          string `json:"voice_issuer"`
	VoiceDomain          string `json:"voice_domain"`
	VoiceTokenTTLSeconds int    `json:"voice_token_ttl_seconds"`
	// VoiceSecret is only ever read from the runtime environment.
	VoiceSecret string `json:"-"`
}

// Defaults returns the configuration used when no file could be loaded.
func Defaults() GameConfig {
	return GameConfig{
		TickRate:                5,
		DiceSettleMinTicks:      3,
		DiceSettleMaxTicks:      10,
		BotsEnabled:             false,
		BotAutoFillDelaySeconds: 5,
		BotMinDelaySeconds:      1,
		BotMaxDelaySeconds:      3,
		VoiceTokenTTLSeconds:    3600,
	}
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path. Fields
// missing from the file keep their defaults.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c := Defaults()
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}
		if err := c.Validate(); err != nil {
			loadErr = err
			return
		}
		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns a copy of the loaded configuration, or the defaults.
func GetGameConfig() GameConfig {
	if cfg == nil {
		return Defaults()
	}
	return *cfg
}

// Validate rejects settings the match loop cannot run with.
func (c GameConfig) Validate() error {
	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be positive, got %d", c.TickRate)
	}
	if c.DiceSettleMinTicks < 1 || c.DiceSettleMaxTicks < c.DiceSettleMinTicks {
		return fmt.Errorf("invalid dice settle window [%d,%d]", c.DiceSettleMinTicks, c.DiceSettleMaxTicks)
	}
	if c.BotMinDelaySeconds < 0 || c.BotMaxDelaySeconds < c.BotMinDelaySeconds {
		return fmt.Errorf("invalid bot delay window [%d,%d]", c.BotMinDelaySeconds, c.BotMaxDelaySeconds)
	}
	return nil
}

// WithEnv returns c overridden by the Nakama runtime environment. Unparsable
// values are ignored.
func (c GameConfig) WithEnv(env map[string]string) GameConfig {
	if val, ok := env["fnm_bots_enabled"]; ok {
		c.BotsEnabled = val == "true"
	}
	setInt(env, "fnm_bot_min_delay_sec", &c.BotMinDelaySeconds)
	setInt(env, "fnm_bot_max_delay_sec", &c.BotMaxDelaySeconds)
	setInt(env, "fnm_bot_auto_fill_delay_sec", &c.BotAutoFillDelaySeconds)
	setInt(env, "fnm_tick_rate", &c.TickRate)
	if val := env["fnm_voice_secret"]; val != "" {
		c.VoiceSecret = val
	}
	if val := env["fnm_voice_issuer"]; val != "" {
		c.VoiceIssuer = val
	}
	if val := env["fnm_voice_domain"]; val != "" {
		c.VoiceDomain = val
	}
	if c.BotMaxDelaySeconds < c.BotMinDelaySeconds {
		c.BotMaxDelaySeconds = c.BotMinDelaySeconds
	}
	return c
}

func setInt(env map[string]string, key string, dst *int) {
	val, ok := env[key]
	if !ok {
		return
	}
	if i, err := strconv.Atoi(val); err == nil && i >= 0 {
		*dst = i
	}
}

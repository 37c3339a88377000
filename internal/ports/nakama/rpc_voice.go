package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"fnmonopoly/internal/app"
	"fnmonopoly/internal/config"

	"github.com/heroiclabs/nakama-common/runtime"
)

// voiceService is configured once in InitModule. It stays nil when the
// runtime environment carries no voice credentials.
var voiceService *app.VoiceService

func configureVoice(cfg config.GameConfig, logger runtime.Logger) {
	if cfg.VoiceSecret == "" || cfg.VoiceIssuer == "" || cfg.VoiceDomain == "" {
		logger.Warn("Voice credentials missing from env, party voice is disabled.")
		voiceService = nil
		return
	}
	ttl := time.Duration(cfg.VoiceTokenTTLSeconds) * time.Second
	voiceService = app.NewVoiceService(cfg.VoiceSecret, cfg.VoiceIssuer, cfg.VoiceDomain, ttl)
}

type voiceTokenRequest struct {
	Action  string `json:"action"`
	MatchID string `json:"match_id"`
}

type voiceTokenResponse struct {
	Token   string `json:"token"`
	Channel string `json:"channel,omitempty"`
}

// RpcPartyVoiceTokenHandler signs a voice token for the caller.
// Payload: {"action": "login" | "join", "match_id": "..."}; join tokens are
// scoped to the table channel of match_id.
func RpcPartyVoiceTokenHandler(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("Authentication required", 16) // UNAUTHENTICATED
	}
	if voiceService == nil {
		return "", runtime.NewError("Voice is not configured", 9) // FAILED_PRECONDITION
	}

	var req voiceTokenRequest
	if payload != "" {
		if err := json.Unmarshal([]byte(payload), &req); err != nil {
			return "", runtime.NewError("Invalid payload", 3) // INVALID_ARGUMENT
		}
	}
	if req.Action == "" {
		req.Action = app.VoiceTokenActionLogin
	}

	var channel string
	switch req.Action {
	case app.VoiceTokenActionLogin:
	case app.VoiceTokenActionJoin:
		if req.MatchID == "" {
			return "", runtime.NewError("match_id required for join", 3)
		}
		if nk != nil {
			match, err := nk.MatchGet(ctx, req.MatchID)
			if err != nil || match == nil {
				return "", runtime.NewError("Match not found", 5) // NOT_FOUND
			}
		}
		channel = app.TableChannel(req.MatchID)
	default:
		return "", runtime.NewError("Unsupported action", 3)
	}

	token, err := voiceService.GenerateToken(userID, req.Action, channel)
	if err != nil {
		logger.Error("RpcPartyVoiceToken: Failed to generate token for %s: %v", userID, err)
		return "", runtime.NewError("Internal error", 13) // INTERNAL
	}

	resBytes, _ := json.Marshal(voiceTokenResponse{Token: token, Channel: channel})
	return string(resBytes), nil
}

package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"fnmonopoly/internal/domain"

	"github.com/heroiclabs/nakama-common/runtime"
)

// QuickMatchResponse is the payload returned to clients when requesting a lobby-capable match.
type QuickMatchResponse struct {
	MatchID string `json:"match_id"`
	IsNew   bool   `json:"is_new"`
}

// RegisterRPCs registers Nakama RPC endpoints.
func RegisterRPCs(initializer runtime.Initializer) error {
	if err := initializer.RegisterRpc(RpcQuickMatch, rpcQuickMatch); err != nil {
		return err
	}
	return initializer.RegisterRpc(RpcPartyVoiceToken, RpcPartyVoiceTokenHandler)
}

// quickMatchQuery finds lobbies of our game with at least one open seat.
func quickMatchQuery() string {
	return fmt.Sprintf("+label.%s:>=1 +label.game:%s +label.phase:%s", MatchLabelKey_OpenSeats, GameLabel, domain.PhaseLobby)
}

func rpcQuickMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)

	limit := 10
	authoritative := true

	minSize := 1
	maxSize := domain.MaxPlayers - 1

	matches, err := nk.MatchList(ctx, limit, authoritative, "", &minSize, &maxSize, quickMatchQuery())
	if err != nil {
		logger.Error("rpcQuickMatch [User:%s]: Failed to list matches: %v", userID, err)
		return "", err
	}

	if len(matches) > 0 {
		logger.Info("rpcQuickMatch [User:%s]: Found existing match %s", userID, matches[0].MatchId)
		b, _ := json.Marshal(QuickMatchResponse{MatchID: matches[0].MatchId, IsNew: false})
		return string(b), nil
	}

	// Create new match; seat/owner assignment happens in MatchJoin (server-authoritative).
	matchID, err := nk.MatchCreate(ctx, MatchName, map[string]interface{}{})
	if err != nil {
		logger.Error("rpcQuickMatch [User:%s]: Failed to create match: %v", userID, err)
		return "", err
	}

	logger.Info("rpcQuickMatch [User:%s]: Created new match %s", userID, matchID)
	b, _ := json.Marshal(QuickMatchResponse{MatchID: matchID, IsNew: true})
	return string(b), nil
}

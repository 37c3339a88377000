package nakama

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"fnmonopoly/internal/app"
	"fnmonopoly/internal/config"

	"github.com/form3tech-oss/jwt-go"
	"github.com/heroiclabs/nakama-common/runtime"
)

func TestRpcPartyVoiceToken_GeneratesValidClaims(t *testing.T) {
	t.Cleanup(func() { voiceService = nil })

	voiceService = app.NewVoiceService("test-secret", "issuer", "example.com", time.Minute)

	ctx := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "user123")

	// 1. Login tokens
	raw1, err := RpcPartyVoiceTokenHandler(ctx, noopLogger{}, nil, nil, `{"action":"login"}`)
	if err != nil {
		t.Fatalf("RpcPartyVoiceTokenHandler error: %v", err)
	}
	raw2, err := RpcPartyVoiceTokenHandler(ctx, noopLogger{}, nil, nil, "")
	if err != nil {
		t.Fatalf("RpcPartyVoiceTokenHandler error: %v", err)
	}

	claims1 := parseVoiceClaims(t, parseToken(t, raw1).Token, "test-secret")
	claims2 := parseVoiceClaims(t, parseToken(t, raw2).Token, "test-secret")

	assertClaim(t, claims1, "iss", "issuer")
	assertClaim(t, claims1, "sub", "user123")
	assertClaim(t, claims1, "vxa", app.VoiceTokenActionLogin)
	assertClaim(t, claims1, "f", "sip:.issuer.user123.@example.com")
	assertClaim(t, claims2, "vxa", app.VoiceTokenActionLogin)

	if claims1["vxi"] == claims2["vxi"] {
		t.Errorf("vxi claim must be unique per token. Got %v for both.", claims1["vxi"])
	}

	// 2. Join token scoped to the table channel
	raw3, err := RpcPartyVoiceTokenHandler(ctx, noopLogger{}, nil, nil, `{"action":"join","match_id":"m1.node"}`)
	if err != nil {
		t.Fatalf("RpcPartyVoiceTokenHandler join error: %v", err)
	}
	resp := parseToken(t, raw3)
	if resp.Channel != app.TableChannel("m1.node") {
		t.Errorf("channel = %s, want %s", resp.Channel, app.TableChannel("m1.node"))
	}
	claims3 := parseVoiceClaims(t, resp.Token, "test-secret")
	assertClaim(t, claims3, "vxa", app.VoiceTokenActionJoin)
	assertClaim(t, claims3, "t", "sip:confctl-g-fnm-table-m1.node@example.com")
}

func TestRpcPartyVoiceToken_Rejections(t *testing.T) {
	t.Cleanup(func() { voiceService = nil })

	authed := context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, "user123")

	if _, err := RpcPartyVoiceTokenHandler(authed, noopLogger{}, nil, nil, ""); err == nil {
		t.Fatalf("expected error when voice is not configured")
	}

	configureVoice(config.GameConfig{VoiceSecret: "s", VoiceIssuer: "i", VoiceDomain: "d"}, noopLogger{})
	if voiceService == nil {
		t.Fatalf("expected voice service to be configured")
	}

	tests := []struct {
		name    string
		ctx     context.Context
		payload string
	}{
		{name: "Unauthenticated", ctx: context.Background(), payload: ""},
		{name: "BadJSON", ctx: authed, payload: "{"},
		{name: "JoinWithoutMatch", ctx: authed, payload: `{"action":"join"}`},
		{name: "UnknownAction", ctx: authed, payload: `{"action":"mute"}`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := RpcPartyVoiceTokenHandler(test.ctx, noopLogger{}, nil, nil, test.payload); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func parseToken(t *testing.T, jsonRaw string) voiceTokenResponse {
	t.Helper()
	var resp voiceTokenResponse
	if err := json.Unmarshal([]byte(jsonRaw), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("expected token in response")
	}
	return resp
}

func parseVoiceClaims(t *testing.T, tokenString, secret string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		t.Fatalf("parse token error: %v", err)
	}
	if !token.Valid {
		t.Fatal("token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		t.Fatal("claims are not map claims")
	}
	return claims
}

func assertClaim(t *testing.T, claims jwt.MapClaims, key, expected string) {
	t.Helper()
	val, ok := claims[key]
	if !ok {
		t.Errorf("missing claim: %s", key)
		return
	}
	str, ok := val.(string)
	if !ok {
		t.Errorf("claim %s is not a string: %v", key, val)
		return
	}
	if str != expected {
		t.Errorf("claim %s = %s, want %s", key, str, expected)
	}
}

package nakama

import (
	"testing"

	"fnmonopoly/internal/app"
	"fnmonopoly/internal/domain"

	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

func encodeFields(t *testing.T, fields map[string]interface{}) []byte {
	t.Helper()
	msg, err := structpb.NewStruct(fields)
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}
	data, err := proto.Marshal(msg)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	return data
}

func TestDecodeUseCard(t *testing.T) {
	id := uuid.New()

	gotID, args, err := decodeUseCard(encodeFields(t, map[string]interface{}{
		"card_id":     id.String(),
		"target_seat": 2,
		"distance":    3,
	}))
	if err != nil {
		t.Fatalf("decodeUseCard: %v", err)
	}
	if gotID != id {
		t.Fatalf("card id = %s, want %s", gotID, id)
	}
	want := app.CardArgs{TargetSeat: 2, Space: -1, Distance: 3}
	if args != want {
		t.Fatalf("args = %+v, want %+v", args, want)
	}

	tests := []struct {
		name   string
		fields map[string]interface{}
	}{
		{name: "MissingCard", fields: map[string]interface{}{"space": 4}},
		{name: "BadCardID", fields: map[string]interface{}{"card_id": "nope"}},
		{name: "FractionalSpace", fields: map[string]interface{}{"card_id": id.String(), "space": 1.5}},
		{name: "StringDistance", fields: map[string]interface{}{"card_id": id.String(), "distance": "2"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, _, err := decodeUseCard(encodeFields(t, test.fields)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestDecodeSimpleRequests(t *testing.T) {
	if d, err := decodeWallChoice(encodeFields(t, map[string]interface{}{"distance": 2})); err != nil || d != 2 {
		t.Fatalf("decodeWallChoice = %d, %v", d, err)
	}
	if _, err := decodeWallChoice(nil); err == nil {
		t.Fatalf("expected missing distance to fail")
	}
	if seat, err := decodeConfirmShot(encodeFields(t, map[string]interface{}{"target_seat": 3})); err != nil || seat != 3 {
		t.Fatalf("decodeConfirmShot = %d, %v", seat, err)
	}
	if c, err := decodePlayerLoaded(encodeFields(t, map[string]interface{}{"character": 1})); err != nil || c != domain.CharacterBatman {
		t.Fatalf("decodePlayerLoaded = %d, %v", c, err)
	}
	if _, err := decodeRequest([]byte{0xff, 0x01}); err == nil {
		t.Fatalf("expected garbage payload to fail")
	}
}

func TestEncodeEvent_HidesUnrevealedCards(t *testing.T) {
	hidden, shown := uuid.New(), uuid.New()
	snap := app.Snapshot{
		Seq:         4,
		Turn:        2,
		CurrentSeat: 1,
		State:       app.StateAwaitingDice,
		Players: []app.PlayerView{{
			UserID: "user-1",
			Seat:   0,
			Health: 15,
			Cards: []app.CardView{
				{ID: hidden},
				{ID: shown, Revealed: true, Type: domain.CardBush},
			},
		}},
	}

	opCode, data, err := encodeEvent(app.Event{Kind: app.EventRegistrySynced, Payload: snap})
	if err != nil {
		t.Fatalf("encodeEvent: %v", err)
	}
	if opCode != OpRegistrySynced {
		t.Fatalf("opCode = %d, want %d", opCode, OpRegistrySynced)
	}

	msg := &structpb.Struct{}
	if err := proto.Unmarshal(data, msg); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if seq := msg.GetFields()["seq"].GetNumberValue(); seq != 4 {
		t.Fatalf("seq = %v, want 4", seq)
	}
	player := msg.GetFields()["players"].GetListValue().GetValues()[0].GetStructValue()
	cards := player.GetFields()["cards"].GetListValue().GetValues()
	if len(cards) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(cards))
	}
	if _, ok := cards[0].GetStructValue().GetFields()["type"]; ok {
		t.Fatalf("hidden card must not carry its type")
	}
	if name := cards[1].GetStructValue().GetFields()["type_name"].GetStringValue(); name != domain.CardBush.String() {
		t.Fatalf("type_name = %q, want %q", name, domain.CardBush.String())
	}
}

func TestEncodeEvent_EveryKind(t *testing.T) {
	events := []app.Event{
		{Kind: app.EventLoadRequested, Payload: app.LoadRequestedPayload{}},
		{Kind: app.EventGameStarted, Payload: app.GameStartedPayload{PlayerCount: 2}},
		{Kind: app.EventTurnStarted, Payload: app.TurnStartedPayload{Seat: 1, Turn: 2}},
		{Kind: app.EventDiceThrown, Payload: app.DiceThrownPayload{}},
		{Kind: app.EventDieSettled, Payload: app.DieSettledPayload{Die: app.DieEffect, Value: int(domain.EffectWall)}},
		{Kind: app.EventHealthChanged, Payload: app.HealthChangedPayload{Health: 3}},
		{Kind: app.EventWallChoiceRequested, Payload: app.WallChoiceRequestedPayload{MaxDistance: 5}},
		{Kind: app.EventWallChosen, Payload: app.WallChosenPayload{Distance: 2}},
		{Kind: app.EventShootingRequested, Payload: app.ShootingRequestedPayload{}},
		{Kind: app.EventShotFired, Payload: app.ShotFiredPayload{Damage: 2}},
		{Kind: app.EventMovementComputed, Payload: app.MovementComputedPayload{Path: domain.PlanMove(6, 4)}},
		{Kind: app.EventSpaceVisited, Payload: app.SpaceVisitedPayload{Kind: domain.SpaceLocation, Location: "Loot Lake"}},
		{Kind: app.EventCardDrawn, Payload: app.CardDrawnPayload{CardID: uuid.New()}},
		{Kind: app.EventCardDealt, Payload: app.CardDealtPayload{CardID: uuid.New(), Type: domain.CardMedKit}},
		{Kind: app.EventCardStowed, Payload: app.CardStowedPayload{}},
		{Kind: app.EventCardRevealed, Payload: app.CardRevealedPayload{CardID: uuid.New()}},
		{Kind: app.EventCardUsed, Payload: app.CardUsedPayload{CardID: uuid.New()}},
		{Kind: app.EventRuleUnresolved, Payload: app.RuleUnresolvedPayload{Rule: app.RuleGoToJail}},
		{Kind: app.EventTurnStalled, Payload: app.TurnStalledPayload{Reason: "player_disconnected"}},
	}

	seen := make(map[int64]bool)
	for _, ev := range events {
		opCode, data, err := encodeEvent(ev)
		if err != nil {
			t.Fatalf("encodeEvent(%s): %v", ev.Kind, err)
		}
		if seen[opCode] {
			t.Fatalf("op code %d reused by %s", opCode, ev.Kind)
		}
		seen[opCode] = true
		if len(data) == 0 {
			t.Fatalf("empty payload for %s", ev.Kind)
		}
	}

	if _, _, err := encodeEvent(app.Event{Kind: "bogus", Payload: 42}); err == nil {
		t.Fatalf("expected unknown payload to fail")
	}
}

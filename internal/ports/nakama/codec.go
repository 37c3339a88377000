package nakama

import (
	"fmt"
	"math"

	"fnmonopoly/internal/app"
	"fnmonopoly/internal/domain"

	"github.com/google/uuid"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// encodeEvent maps an app event to its op code and wire payload.
func encodeEvent(ev app.Event) (int64, []byte, error) {
	opCode, fields, err := eventFields(ev)
	if err != nil {
		return 0, nil, err
	}
	msg, err := structpb.NewStruct(fields)
	if err != nil {
		return 0, nil, fmt.Errorf("event %s: %w", ev.Kind, err)
	}
	data, err := proto.Marshal(msg)
	if err != nil {
		return 0, nil, fmt.Errorf("marshal event %s: %w", ev.Kind, err)
	}
	return opCode, data, nil
}

func eventFields(ev app.Event) (int64, map[string]interface{}, error) {
	switch p := ev.Payload.(type) {
	case app.LoadRequestedPayload:
		return OpLoadRequested, map[string]interface{}{"owner_seat": p.OwnerSeat}, nil
	case app.Snapshot:
		return OpRegistrySynced, snapshotFields(p), nil
	case app.GameStartedPayload:
		return OpGameStarted, map[string]interface{}{
			"player_count": p.PlayerCount,
			"first_seat":   p.FirstSeat,
		}, nil
	case app.TurnStartedPayload:
		return OpTurnStarted, map[string]interface{}{"seat": p.Seat, "turn": p.Turn}, nil
	case app.DiceThrownPayload:
		return OpDiceThrown, map[string]interface{}{"seat": p.Seat, "turn": p.Turn}, nil
	case app.DieSettledPayload:
		fields := map[string]interface{}{"turn": p.Turn, "die": string(p.Die), "value": p.Value}
		if p.Die == app.DieEffect {
			fields["effect"] = domain.Effect(p.Value).String()
		}
		return OpDieSettled, fields, nil
	case app.HealthChangedPayload:
		return OpHealthChanged, map[string]interface{}{
			"seat":      p.Seat,
			"health":    p.Health,
			"increased": p.Increased,
		}, nil
	case app.WallChoiceRequestedPayload:
		return OpWallChoiceRequested, map[string]interface{}{"seat": p.Seat, "max_distance": p.MaxDistance}, nil
	case app.WallChosenPayload:
		return OpWallChosen, map[string]interface{}{"seat": p.Seat, "distance": p.Distance}, nil
	case app.ShootingRequestedPayload:
		return OpShootingRequested, map[string]interface{}{"shooter_seat": p.ShooterSeat}, nil
	case app.ShotFiredPayload:
		return OpShotFired, map[string]interface{}{
			"shooter_seat": p.ShooterSeat,
			"target_seat":  p.TargetSeat,
			"damage":       p.Damage,
		}, nil
	case app.MovementComputedPayload:
		return OpMovementComputed, map[string]interface{}{"seat": p.Seat, "path": pathFields(p.Path)}, nil
	case app.SpaceVisitedPayload:
		fields := map[string]interface{}{"seat": p.Seat, "space": p.Space, "kind": p.Kind.String()}
		if p.Location != "" {
			fields["location"] = p.Location
		}
		return OpSpaceVisited, fields, nil
	case app.CardDrawnPayload:
		return OpCardDrawn, map[string]interface{}{
			"seat":       p.Seat,
			"card_index": p.CardIndex,
			"card_id":    p.CardID.String(),
		}, nil
	case app.CardDealtPayload:
		return OpCardDealt, map[string]interface{}{
			"seat":       p.Seat,
			"card_index": p.CardIndex,
			"card_id":    p.CardID.String(),
			"type":       int(p.Type),
			"type_name":  p.Type.String(),
		}, nil
	case app.CardStowedPayload:
		return OpCardStowed, map[string]interface{}{"seat": p.Seat}, nil
	case app.CardRevealedPayload:
		return OpCardRevealed, map[string]interface{}{
			"seat":       p.Seat,
			"card_index": p.CardIndex,
			"card_id":    p.CardID.String(),
			"type":       int(p.Type),
			"type_name":  p.Type.String(),
		}, nil
	case app.CardUsedPayload:
		return OpCardUsed, map[string]interface{}{
			"seat":      p.Seat,
			"card_id":   p.CardID.String(),
			"type":      int(p.Type),
			"type_name": p.Type.String(),
		}, nil
	case app.RuleUnresolvedPayload:
		return OpRuleUnresolved, map[string]interface{}{"seat": p.Seat, "rule": string(p.Rule)}, nil
	case app.TurnStalledPayload:
		return OpTurnStalled, map[string]interface{}{
			"seat":    p.Seat,
			"user_id": p.UserID,
			"reason":  p.Reason,
		}, nil
	default:
		return 0, nil, fmt.Errorf("unknown event %s with payload %T", ev.Kind, ev.Payload)
	}
}

func snapshotFields(snap app.Snapshot) map[string]interface{} {
	players := make([]interface{}, 0, len(snap.Players))
	for _, p := range snap.Players {
		cards := make([]interface{}, 0, len(p.Cards))
		for _, c := range p.Cards {
			card := map[string]interface{}{"id": c.ID.String(), "revealed": c.Revealed}
			if c.Revealed {
				card["type"] = int(c.Type)
				card["type_name"] = c.Type.String()
			}
			cards = append(cards, card)
		}
		players = append(players, map[string]interface{}{
			"user_id":   p.UserID,
			"name":      p.Name,
			"seat":      p.Seat,
			"health":    p.Health,
			"damage":    p.Damage,
			"space":     p.Space,
			"character": int(p.Character),
			"loaded":    p.Loaded,
			"cards":     cards,
		})
	}
	return map[string]interface{}{
		"seq":          int64(snap.Seq),
		"turn":         snap.Turn,
		"current_seat": snap.CurrentSeat,
		"state":        string(snap.State),
		"players":      players,
	}
}

func pathFields(path domain.MovePath) map[string]interface{} {
	waypoints := make([]interface{}, 0, 1)
	for _, w := range path.Waypoints() {
		waypoints = append(waypoints, pointFields(w))
	}
	fields := map[string]interface{}{
		"from":         path.From,
		"to":           path.To,
		"distance":     path.Distance,
		"passed_start": path.PassedStart,
		"start":        pointFields(path.Start),
		"end":          pointFields(path.End),
		"waypoints":    waypoints,
	}
	if path.HasCorner {
		fields["corner"] = path.Corner
	}
	return fields
}

func pointFields(p domain.Point) map[string]interface{} {
	return map[string]interface{}{"x": p.X, "z": p.Z}
}

// encodeError builds the private GameError payload.
func encodeError(code int, message string) ([]byte, error) {
	msg, err := structpb.NewStruct(map[string]interface{}{"code": code, "message": message})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(msg)
}

// decodeRequest parses a client payload. An empty payload is an empty request.
func decodeRequest(data []byte) (*structpb.Struct, error) {
	req := &structpb.Struct{}
	if len(data) == 0 {
		return req, nil
	}
	if err := proto.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("invalid request payload: %w", err)
	}
	return req, nil
}

func intField(req *structpb.Struct, key string) (int, error) {
	v, ok := req.GetFields()[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("field %q is not a number", key)
	}
	if n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, fmt.Errorf("field %q is not an integer", key)
	}
	return int(n.NumberValue), nil
}

// optionalIntField returns def when key is absent.
func optionalIntField(req *structpb.Struct, key string, def int) (int, error) {
	if _, ok := req.GetFields()[key]; !ok {
		return def, nil
	}
	return intField(req, key)
}

func decodePlayerLoaded(data []byte) (domain.Character, error) {
	req, err := decodeRequest(data)
	if err != nil {
		return 0, err
	}
	character, err := intField(req, "character")
	if err != nil {
		return 0, err
	}
	return domain.Character(character), nil
}

func decodeWallChoice(data []byte) (int, error) {
	req, err := decodeRequest(data)
	if err != nil {
		return 0, err
	}
	return intField(req, "distance")
}

func decodeConfirmShot(data []byte) (int, error) {
	req, err := decodeRequest(data)
	if err != nil {
		return 0, err
	}
	return intField(req, "target_seat")
}

func decodeUseCard(data []byte) (uuid.UUID, app.CardArgs, error) {
	req, err := decodeRequest(data)
	if err != nil {
		return uuid.Nil, app.CardArgs{}, err
	}
	raw, ok := req.GetFields()["card_id"]
	if !ok {
		return uuid.Nil, app.CardArgs{}, fmt.Errorf("missing field %q", "card_id")
	}
	cardID, err := uuid.Parse(raw.GetStringValue())
	if err != nil {
		return uuid.Nil, app.CardArgs{}, fmt.Errorf("invalid card_id: %w", err)
	}

	var args app.CardArgs
	if args.TargetSeat, err = optionalIntField(req, "target_seat", -1); err != nil {
		return uuid.Nil, app.CardArgs{}, err
	}
	if args.Space, err = optionalIntField(req, "space", -1); err != nil {
		return uuid.Nil, app.CardArgs{}, err
	}
	if args.Distance, err = optionalIntField(req, "distance", 0); err != nil {
		return uuid.Nil, app.CardArgs{}, err
	}
	return cardID, args, nil
}

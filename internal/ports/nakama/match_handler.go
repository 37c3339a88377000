package nakama

import (
	"context"
	"database/sql"
	"math/rand"
	"time"

	"fnmonopoly/internal/app"
	"fnmonopoly/internal/bot"
	"fnmonopoly/internal/config"
	"fnmonopoly/internal/domain"
	"fnmonopoly/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// scheduledDie is a die still tumbling on the table.
type scheduledDie struct {
	Turn    int
	Die     ports.DieKind
	Face    int
	DueTick int64
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Registry             *app.Registry               // Seated players, owned by the match
	App                  *app.Service                // Creates the session once everyone loaded
	Session              *app.Session                // Turn engine (nil until the game starts)
	Phase                domain.Phase                // lobby, loading or playing
	OwnerSeat            int                         // Seat index of the human allowed to start the game
	Tick                 int64                       // Current tick of the match
	Presences            map[string]runtime.Presence // Map UserId -> Presence for targeted messaging
	Config               config.GameConfig           // Tick rate, dice and bot timings
	Tumbler              ports.DiceTumbler           // Decides how the dice land
	Dice                 []scheduledDie              // Dice thrown but not yet settled
	BotWaitUntil         int64                       // Tick when the waited-on bot should act
	BotWaitingOn         string                      // Bot user id the session currently waits for
	LastSinglePlayerTick int64                       // Tick when a single player started waiting
	Bots                 map[string]*bot.Agent       // Active bot agents
	rng                  *rand.Rand
}

func newMatchState(cfg config.GameConfig, rng *rand.Rand) *MatchState {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	service := app.NewService(rng)
	return &MatchState{
		Registry:  app.NewRegistry(),
		App:       service,
		Phase:     domain.PhaseLobby,
		OwnerSeat: -1,
		Presences: make(map[string]runtime.Presence),
		Config:    cfg,
		Tumbler:   app.NewRandomTumbler(service.Rand(), cfg.DiceSettleMinTicks, cfg.DiceSettleMaxTicks),
		Bots:      make(map[string]*bot.Agent),
		rng:       rng,
	}
}

// GetOpenSeatsCount returns the seats a new player could still take.
func (ms *MatchState) GetOpenSeatsCount() int {
	if ms.Phase != domain.PhaseLobby {
		return 0
	}
	return domain.MaxPlayers - ms.Registry.Count()
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, userID := range ms.Registry.UserIDs() {
		if !isBotUserId(userID) {
			count++
		}
	}
	return count
}

// secondsToTicks converts a configured delay to match ticks.
func (ms *MatchState) secondsToTicks(seconds int) int64 {
	return int64(seconds * ms.Config.TickRate)
}

// isBotUserId reports whether the given user id represents a bot seat.
func isBotUserId(userId string) bool {
	return bot.IsBot(userId)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userId := range seats {
		if userId != "" && !isBotUserId(userId) {
			return i
		}
	}
	return -1
}

// NewMatch is the factory function registered with Nakama.
func NewMatch(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule) (runtime.Match, error) {
	return &matchHandler{}, nil
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}
	if err := config.LoadGameConfig("data/game_config.json"); err != nil {
		logger.Warn("MatchInit: Could not load game config, using defaults: %v", err)
	}

	cfg := config.GetGameConfig()
	if env, ok := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string); ok {
		cfg = cfg.WithEnv(env)
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("MatchInit: Invalid config after env overrides, using defaults: %v", err)
		cfg = config.Defaults()
	}

	state := newMatchState(cfg, nil)
	label, err := matchLabel(state)
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	return state, cfg.TickRate, label
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	if matchState.Phase != domain.PhaseLobby {
		return state, false, "Match in progress"
	}

	// Allow join if there is an empty seat OR a bot to replace.
	if matchState.GetOpenSeatsCount() <= 0 && seatedBot(matchState) == "" {
		return state, false, "Match full"
	}

	return state, true, ""
}

// seatedBot returns the last seated bot, or "" if only humans are seated.
func seatedBot(state *MatchState) string {
	seats := state.Registry.UserIDs()
	for i := len(seats) - 1; i >= 0; i-- {
		if isBotUserId(seats[i]) {
			return seats[i]
		}
	}
	return ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		if matchState.GetOpenSeatsCount() <= 0 {
			if botID := seatedBot(matchState); botID != "" {
				if err := matchState.Registry.Remove(botID); err == nil {
					logger.Info("MatchJoin: Replacing bot %s with human %s", botID, p.GetUserId())
					delete(matchState.Bots, botID)
				}
			}
		}

		seat, err := matchState.Registry.Register(p.GetUserId(), p.GetUsername())
		if err != nil {
			logger.Warn("MatchJoin: User %s joined but could not be seated: %v", p.GetUserId(), err)
			continue
		}
		logger.Debug("MatchJoin: User %s seated at %d.", p.GetUserId(), seat)
	}

	mh.refreshOwner(matchState, logger)
	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastEvent(matchState, dispatcher, logger, app.Event{Kind: app.EventRegistrySynced, Payload: mh.snapshot(matchState)})

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		userID := p.GetUserId()
		delete(matchState.Presences, userID)

		if matchState.Session != nil {
			events := matchState.Session.PlayerLeft(userID)
			for _, ev := range events {
				mh.broadcastEvent(matchState, dispatcher, logger, ev)
			}
			continue
		}

		if err := matchState.Registry.Remove(userID); err != nil {
			logger.Warn("MatchLeave: Failed to remove %s: %v", userID, err)
			continue
		}
		logger.Debug("MatchLeave: User %s left, seat freed.", userID)
	}

	if len(matchState.Presences) == 0 {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	if matchState.Session == nil {
		mh.refreshOwner(matchState, logger)
		if matchState.Phase == domain.PhaseLoading {
			mh.tryStartSession(matchState, dispatcher, logger)
		}
		mh.broadcastEvent(matchState, dispatcher, logger, app.Event{Kind: app.EventRegistrySynced, Payload: mh.snapshot(matchState)})
	}
	mh.updateLabel(matchState, dispatcher, logger)

	return matchState
}

// refreshOwner keeps ownership on a human seat.
func (mh *matchHandler) refreshOwner(state *MatchState, logger runtime.Logger) {
	owner := findFirstHumanSeat(state.Registry.UserIDs())
	if owner != state.OwnerSeat {
		state.OwnerSeat = owner
		if owner >= 0 {
			logger.Debug("Owner set to human seat %d.", owner)
		}
	}
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(matchState, dispatcher, logger, msg)
		case OpPlayerLoaded:
			mh.handlePlayerLoaded(matchState, dispatcher, logger, msg)
		case OpRoll:
			mh.handleRoll(matchState, dispatcher, logger, msg)
		case OpChooseWallSpace:
			mh.handleChooseWallSpace(matchState, dispatcher, logger, msg)
		case OpConfirmCardPickup:
			mh.handleConfirmCardPickup(matchState, dispatcher, logger, msg)
		case OpUseCard:
			mh.handleUseCard(matchState, dispatcher, logger, msg)
		case OpConfirmShot:
			mh.handleConfirmShot(matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	mh.settleDice(matchState, dispatcher, logger)

	if matchState.Config.BotsEnabled {
		mh.processBots(matchState, dispatcher, logger)
	}

	return matchState
}

func (mh *matchHandler) handleStartGame(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := state.Registry.SeatOf(senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.Registry.Count())

	if _, err := decodeRequest(msg.GetData()); err != nil {
		logger.Warn("StartGame: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	if state.Phase != domain.PhaseLobby {
		logger.Debug("StartGame: Ignored, match already in phase %s", state.Phase)
		return
	}
	if senderSeat < 0 || senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}
	if count := state.Registry.Count(); count < app.MinPlayersToStartGame {
		logger.Warn("StartGame: Cannot start with %d players. Need at least %d.", count, app.MinPlayersToStartGame)
		mh.sendError(state, dispatcher, logger, senderID, 400, app.ErrTooFewPlayers.Error())
		return
	}

	state.Phase = domain.PhaseLoading
	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastEvent(state, dispatcher, logger, app.Event{Kind: app.EventLoadRequested, Payload: app.LoadRequestedPayload{OwnerSeat: state.OwnerSeat}})

	// Bots have nothing to load.
	for botID := range state.Bots {
		identity, ok := bot.GetBotConfig(botID)
		if !ok {
			identity = bot.BotIdentity{Character: domain.Character(state.Registry.SeatOf(botID) % (int(domain.CharacterTravisScott) + 1))}
		}
		if _, err := state.Registry.MarkLoaded(botID, identity.Character); err != nil {
			logger.Error("StartGame: Failed to mark bot %s loaded: %v", botID, err)
		}
	}
	mh.broadcastEvent(state, dispatcher, logger, app.Event{Kind: app.EventRegistrySynced, Payload: mh.snapshot(state)})
	mh.tryStartSession(state, dispatcher, logger)
}

func (mh *matchHandler) handlePlayerLoaded(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()

	character, err := decodePlayerLoaded(msg.GetData())
	if err != nil {
		logger.Warn("PlayerLoaded: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	if state.Phase != domain.PhaseLoading {
		logger.Debug("PlayerLoaded: Ignored from %s in phase %s", senderID, state.Phase)
		return
	}

	if _, err := state.Registry.MarkLoaded(senderID, character); err != nil {
		mh.handleResult(state, dispatcher, logger, senderID, "PlayerLoaded", nil, err)
		return
	}
	mh.broadcastEvent(state, dispatcher, logger, app.Event{Kind: app.EventRegistrySynced, Payload: mh.snapshot(state)})
	mh.tryStartSession(state, dispatcher, logger)
}

// tryStartSession starts the turn engine once every seated player loaded.
func (mh *matchHandler) tryStartSession(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Registry.Count() < app.MinPlayersToStartGame {
		logger.Info("tryStartSession: Too few players left, back to lobby.")
		state.Phase = domain.PhaseLobby
		mh.updateLabel(state, dispatcher, logger)
		return
	}
	if !state.Registry.AllLoaded() {
		return
	}

	session, events, err := state.App.StartSession(state.Registry)
	if err != nil {
		logger.Error("tryStartSession: Failed to start session: %v", err)
		return
	}
	state.Session = session
	state.Phase = domain.PhasePlaying
	mh.updateLabel(state, dispatcher, logger)

	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
	logger.Info("tryStartSession: Game started with %d players.", state.Registry.Count())
}

func (mh *matchHandler) handleRoll(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Session == nil {
		logger.Debug("handleRoll: Game not started.")
		return
	}
	events, err := mh.roll(state, state.Registry.SeatOf(senderID))
	mh.handleResult(state, dispatcher, logger, senderID, "Roll", events, err)
}

// roll throws the dice and schedules when each one settles.
func (mh *matchHandler) roll(state *MatchState, seat int) ([]app.Event, error) {
	events, err := state.Session.Roll(seat)
	if err != nil {
		return nil, err
	}
	turn := state.Session.Cursor().Turn
	for _, s := range state.Tumbler.Throw(turn) {
		state.Dice = append(state.Dice, scheduledDie{
			Turn:    turn,
			Die:     s.Die,
			Face:    s.Face,
			DueTick: state.Tick + int64(s.AfterTicks),
		})
	}
	return events, nil
}

// settleDice delivers every die that stopped tumbling by the current tick.
func (mh *matchHandler) settleDice(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if len(state.Dice) == 0 {
		return
	}
	remaining := state.Dice[:0]
	var due []scheduledDie
	for _, d := range state.Dice {
		if d.DueTick <= state.Tick {
			due = append(due, d)
		} else {
			remaining = append(remaining, d)
		}
	}
	state.Dice = remaining

	for _, d := range due {
		if state.Session == nil {
			return
		}
		var (
			events []app.Event
			err    error
		)
		switch d.Die {
		case ports.DieNumber:
			number, ok := domain.MovementFromFace(d.Face)
			if !ok {
				logger.Error("settleDice: Invalid number die face %d", d.Face)
				continue
			}
			events, err = state.Session.ResolveMovementDie(d.Turn, number)
		case ports.DieGoofy:
			effect, ok := domain.EffectFromFace(d.Face)
			if !ok {
				logger.Error("settleDice: Invalid goofy die face %d", d.Face)
				continue
			}
			events, err = state.Session.ResolveEffectDie(d.Turn, effect)
		default:
			logger.Error("settleDice: Unknown die %q", d.Die)
			continue
		}
		if err != nil {
			logger.Debug("settleDice: Dropped %s die for turn %d: %v", d.Die, d.Turn, err)
			continue
		}
		for _, ev := range events {
			mh.broadcastEvent(state, dispatcher, logger, ev)
		}
	}
}

func (mh *matchHandler) handleChooseWallSpace(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	distance, err := decodeWallChoice(msg.GetData())
	if err != nil {
		logger.Warn("handleChooseWallSpace: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	if state.Session == nil {
		logger.Debug("handleChooseWallSpace: Game not started.")
		return
	}
	events, err := state.Session.ChooseWallSpace(state.Registry.SeatOf(senderID), distance)
	mh.handleResult(state, dispatcher, logger, senderID, "ChooseWallSpace", events, err)
}

func (mh *matchHandler) handleConfirmCardPickup(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Session == nil {
		logger.Debug("handleConfirmCardPickup: Game not started.")
		return
	}
	events, err := state.Session.ConfirmCardPickup(state.Registry.SeatOf(senderID))
	mh.handleResult(state, dispatcher, logger, senderID, "ConfirmCardPickup", events, err)
}

func (mh *matchHandler) handleUseCard(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	cardID, args, err := decodeUseCard(msg.GetData())
	if err != nil {
		logger.Warn("handleUseCard: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	if state.Session == nil {
		logger.Debug("handleUseCard: Game not started.")
		return
	}
	events, err := state.Session.UseCard(state.Registry.SeatOf(senderID), cardID, args)
	mh.handleResult(state, dispatcher, logger, senderID, "UseCard", events, err)
}

func (mh *matchHandler) handleConfirmShot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	target, err := decodeConfirmShot(msg.GetData())
	if err != nil {
		logger.Warn("handleConfirmShot: Invalid request from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	if state.Session == nil {
		logger.Debug("handleConfirmShot: Game not started.")
		return
	}
	events, err := state.Session.ConfirmShot(state.Registry.SeatOf(senderID), target)
	mh.handleResult(state, dispatcher, logger, senderID, "ConfirmShot", events, err)
}

// handleResult broadcasts the events of an accepted request. Stale or
// out-of-turn requests are dropped silently; anything else is reported to
// the sender.
func (mh *matchHandler) handleResult(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, senderID, action string, events []app.Event, err error) {
	if err != nil {
		if app.IsStale(err) {
			logger.Debug("%s: Dropped request from %s: %v", action, senderID, err)
			return
		}
		logger.Warn("%s: Request from %s failed: %v", action, senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, err.Error())
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) processBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	// 1. Auto-fill lobby with bots if there's only one human player after delay
	if state.Phase == domain.PhaseLobby {
		if state.GetHumanPlayerCount() != 1 || state.GetOpenSeatsCount() == 0 {
			state.LastSinglePlayerTick = 0
			return
		}
		if state.LastSinglePlayerTick == 0 {
			state.LastSinglePlayerTick = state.Tick
			logger.Debug("processBots: Single player detected, starting auto-fill timer.")
		}
		if state.Tick-state.LastSinglePlayerTick >= state.secondsToTicks(state.Config.BotAutoFillDelaySeconds) {
			mh.fillWithBots(state, dispatcher, logger)
			state.LastSinglePlayerTick = 0
		}
		return
	}

	// 2. Answer whatever the session waits for when it waits on a bot.
	if state.Session == nil || state.Session.State() == app.StateStalled {
		return
	}
	view := state.Session.View()
	var agent *bot.Agent
	for _, a := range state.Bots {
		if a.Expected(view) {
			agent = a
			break
		}
	}
	if agent == nil {
		state.BotWaitUntil = 0
		state.BotWaitingOn = ""
		return
	}

	if state.BotWaitingOn != agent.ID {
		minDelay, maxDelay := state.Config.BotMinDelaySeconds, state.Config.BotMaxDelaySeconds
		delay := state.rng.Intn(maxDelay-minDelay+1) + minDelay
		state.BotWaitingOn = agent.ID
		state.BotWaitUntil = state.Tick + state.secondsToTicks(delay)
		logger.Debug("processBots: Bot %s will act at tick %d (current %d)", agent.ID, state.BotWaitUntil, state.Tick)
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0
	state.BotWaitingOn = ""

	seat := agent.Seat()
	action, ok := agent.Act(view, state.Session.Hand(seat), state.Session.ShotTargets())
	if !ok {
		return
	}
	events, err := mh.performBotAction(state, seat, action)
	if err != nil && action.Kind == bot.ActionUseCard {
		logger.Warn("processBots: Bot %s failed to use card, rolling instead: %v", agent.ID, err)
		events, err = mh.roll(state, seat)
	}
	if err != nil {
		logger.Error("processBots: Bot %s action %d failed: %v", agent.ID, action.Kind, err)
		return
	}
	for _, ev := range events {
		mh.broadcastEvent(state, dispatcher, logger, ev)
	}
}

func (mh *matchHandler) performBotAction(state *MatchState, seat int, action bot.Action) ([]app.Event, error) {
	switch action.Kind {
	case bot.ActionRoll:
		return mh.roll(state, seat)
	case bot.ActionChooseWall:
		return state.Session.ChooseWallSpace(seat, action.Distance)
	case bot.ActionConfirmPickup:
		return state.Session.ConfirmCardPickup(seat)
	case bot.ActionConfirmShot:
		return state.Session.ConfirmShot(seat, action.TargetSeat)
	case bot.ActionUseCard:
		return state.Session.UseCard(seat, action.CardID, action.Args)
	default:
		return nil, nil
	}
}

// fillWithBots seats pool bots in every free seat.
func (mh *matchHandler) fillWithBots(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	added := false
	for i := 0; state.GetOpenSeatsCount() > 0 && i < 2*domain.MaxPlayers; i++ {
		identity := bot.GetBotIdentity(i)
		if _, seated := state.Registry.Get(identity.UserID); seated {
			continue
		}
		agent, err := bot.NewAgent(identity)
		if err != nil {
			logger.Error("Failed to create bot agent for %s: %v", identity.UserID, err)
			continue
		}
		name := bot.GetBotDisplayName(identity.UserID)
		if name == "" {
			name = identity.DisplayName
		}
		seat, err := state.Registry.Register(identity.UserID, name)
		if err != nil {
			logger.Error("Failed to seat bot %s: %v", identity.UserID, err)
			break
		}
		state.Bots[identity.UserID] = agent
		logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, identity.UserID, seat)
		added = true
	}
	if added {
		mh.updateLabel(state, dispatcher, logger)
		mh.broadcastEvent(state, dispatcher, logger, app.Event{Kind: app.EventRegistrySynced, Payload: mh.snapshot(state)})
	}
}

// snapshot captures the registry, including hands once the game runs.
func (mh *matchHandler) snapshot(state *MatchState) app.Snapshot {
	if state.Session != nil {
		return state.Session.Snapshot()
	}
	return state.Registry.Snapshot()
}

// broadcastEvent handles the conversion and dispatching of app events to Nakama.
func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, ev app.Event) {
	switch p := ev.Payload.(type) {
	case app.Snapshot:
		for _, agent := range state.Bots {
			agent.Observe(p)
		}
	case app.RuleUnresolvedPayload:
		logger.Warn("Event: rule %s triggered by seat %d has no defined outcome", p.Rule, p.Seat)
	case app.TurnStalledPayload:
		logger.Warn("Event: session stalled, seat %d (%s): %s", p.Seat, p.UserID, p.Reason)
	}

	opCode, bytes, err := encodeEvent(ev)
	if err != nil {
		logger.Error("Failed to encode event %v: %v", ev.Kind, err)
		return
	}

	// Determine recipients (default to broadcast)
	var recipients []runtime.Presence
	if len(ev.Recipients) > 0 {
		for _, uid := range ev.Recipients {
			if p, ok := state.Presences[uid]; ok {
				recipients = append(recipients, p)
			}
		}

		// If we had intended recipients but none are connected (e.g. they are bots),
		// we MUST NOT broadcast to everyone else.
		if len(recipients) == 0 {
			return
		}
	}

	if err := dispatcher.BroadcastMessage(opCode, bytes, recipients, nil, true); err != nil {
		logger.Error("Failed to broadcast event %v: %v", ev.Kind, err)
	}
}

// sendError sends a GameError event to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	bytes, err := encodeError(code, message)
	if err != nil {
		logger.Error("Failed to marshal GameError: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true)
}

func matchLabel(state *MatchState) (string, error) {
	label, err := structpb.NewStruct(map[string]interface{}{
		MatchLabelKey_OpenSeats: state.GetOpenSeatsCount(),
		"game":                  GameLabel,
		"phase":                 string(state.Phase),
	})
	if err != nil {
		return "", err
	}
	labelBytes, err := protojson.Marshal(label)
	if err != nil {
		return "", err
	}
	return string(labelBytes), nil
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	label, err := matchLabel(state)
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(label); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, graceSeconds int) interface{} {
	logger.Debug("MatchTerminate: Match terminated with %d grace seconds", graceSeconds)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

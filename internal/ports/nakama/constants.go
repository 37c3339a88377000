package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"
	// RpcPartyVoiceToken signs a voice token for the caller's table channel.
	RpcPartyVoiceToken = "party_voice_token"

	// MatchName is the authoritative match handler name registered with Nakama.
	MatchName = "fnmonopoly_match"

	// GameLabel identifies our matches in label queries.
	GameLabel = "fnmonopoly"

	MatchLabelKey_OpenSeats = "open" // Key for the open seats in the match label
)

// Op codes for client messages and server events. Every payload is a
// google.protobuf.Struct in binary wire format.
const (
	// Client -> Server
	OpStartGame         int64 = 1
	OpPlayerLoaded      int64 = 2
	OpRoll              int64 = 3
	OpChooseWallSpace   int64 = 4
	OpConfirmCardPickup int64 = 5
	OpUseCard           int64 = 6
	OpConfirmShot       int64 = 7

	// Server -> Client events
	OpLoadRequested       int64 = 101
	OpRegistrySynced      int64 = 102
	OpGameStarted         int64 = 103
	OpTurnStarted         int64 = 104
	OpDiceThrown          int64 = 105
	OpDieSettled          int64 = 106
	OpHealthChanged       int64 = 107
	OpWallChoiceRequested int64 = 108
	OpWallChosen          int64 = 109
	OpShootingRequested   int64 = 110
	OpShotFired           int64 = 111
	OpMovementComputed    int64 = 112
	OpSpaceVisited        int64 = 113
	OpCardDrawn           int64 = 114
	OpCardDealt           int64 = 115 // send privately
	OpCardStowed          int64 = 116
	OpCardRevealed        int64 = 117
	OpCardUsed            int64 = 118
	OpRuleUnresolved      int64 = 119
	OpTurnStalled         int64 = 120
	OpGameError           int64 = 199
)

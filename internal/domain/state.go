package domain

// Phase represents the lifecycle stage of a match.
type Phase string

const (
	// PhaseLobby is the pre-game state where players can join.
	PhaseLobby Phase = "lobby"
	// PhaseLoading is the state after the owner started the game and peers load the board.
	PhaseLoading Phase = "loading"
	// PhasePlaying is the active game state where turns are taken.
	PhasePlaying Phase = "playing"
)

const (
	// MaxPlayers is the number of seats around the board.
	MaxPlayers = 4
	// MaxHealth caps player health.
	MaxHealth = 15
	// MinHealth is the health floor.
	MinHealth = 0
	// BaseDamage is the damage a shot deals without sniper cards.
	BaseDamage = 1
)

// Character identifies the model a player picked while loading.
type Character int

const (
	CharacterCuddleTeamLeader Character = iota
	CharacterBatman
	CharacterBanana
	CharacterTravisScott
)

// Valid reports whether c names one of the four character models.
func (c Character) Valid() bool {
	return c >= CharacterCuddleTeamLeader && c <= CharacterTravisScott
}

// Player holds the authoritative attributes of a seated participant.
type Player struct {
	UserID    string
	Name      string
	Seat      int // 0-based, fixed at game start
	Health    int
	Damage    int
	Space     int
	Character Character
	Loaded    bool
}

// NewPlayer returns a player at full health standing on the start space.
func NewPlayer(userID, name string, seat int) *Player {
	return &Player{
		UserID: userID,
		Name:   name,
		Seat:   seat,
		Health: MaxHealth,
		Damage: BaseDamage,
	}
}

// ClampHealth bounds h to [MinHealth, MaxHealth].
func ClampHealth(h int) int {
	if h < MinHealth {
		return MinHealth
	}
	if h > MaxHealth {
		return MaxHealth
	}
	return h
}

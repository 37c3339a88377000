package app

// MinPlayersToStartGame defines the minimum number of seated players required to start a game.
// Keep this centralized so tests or local runs can adjust the rule without touching multiple call sites.
const MinPlayersToStartGame = 2

const (
	campfireHeal    = 1
	spikeTrapDamage = 1
	healDieAmount   = 1
	boogieBombHit   = 1
	stinkBombHit    = 3
	medKitHeal      = 5
	clingerHit      = 4
	bouncePadReach  = 4
)

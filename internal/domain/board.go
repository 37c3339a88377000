package domain

import "fmt"

const (
	// BoardSize is the number of spaces on the loop.
	BoardSize = 32
	// LaneLength is the number of spaces between two corners.
	LaneLength = 8
	// LaneCount is the number of sides of the board.
	LaneCount = BoardSize / LaneLength
)

// SpaceKind is the effect bound to a board space.
type SpaceKind int

const (
	SpaceEmpty SpaceKind = iota
	SpaceLocation
	SpaceCampfire
	SpaceSpikeTrap
	SpaceChest
	SpaceGoToJail
)

func (k SpaceKind) String() string {
	switch k {
	case SpaceEmpty:
		return "empty"
	case SpaceLocation:
		return "location"
	case SpaceCampfire:
		return "campfire"
	case SpaceSpikeTrap:
		return "spike_trap"
	case SpaceChest:
		return "chest"
	case SpaceGoToJail:
		return "go_to_jail"
	default:
		return fmt.Sprintf("space_kind(%d)", int(k))
	}
}

// Board maps every space index to its effect. It never changes after game start.
type Board [BoardSize]SpaceKind

// StandardBoard is the printed layout: every odd space is a named location,
// each lane repeats empty corner, campfire, chest and spike trap, and the
// fourth corner sends the player to jail.
var StandardBoard = Board{
	SpaceEmpty, SpaceLocation, SpaceCampfire, SpaceLocation, SpaceChest, SpaceLocation, SpaceSpikeTrap, SpaceLocation,
	SpaceEmpty, SpaceLocation, SpaceCampfire, SpaceLocation, SpaceChest, SpaceLocation, SpaceSpikeTrap, SpaceLocation,
	SpaceEmpty, SpaceLocation, SpaceCampfire, SpaceLocation, SpaceChest, SpaceLocation, SpaceSpikeTrap, SpaceLocation,
	SpaceGoToJail, SpaceLocation, SpaceCampfire, SpaceLocation, SpaceChest, SpaceLocation, SpaceSpikeTrap, SpaceLocation,
}

// At returns the kind of space i. An index outside the board is a programming
// error and panics.
func (b *Board) At(i int) SpaceKind {
	if i < 0 || i >= BoardSize {
		panic(fmt.Sprintf("board space %d out of range [0,%d)", i, BoardSize))
	}
	return b[i]
}

var locationNames = [BoardSize / 2]string{
	"Paradise Palms", "Dusty Divot", "Tomato Temple", "Snobby Shores",
	"Viking Village", "Retail Row", "Lonely Lodge", "Pleasant Park",
	"Flush Factory", "Wailing Woods", "Salty Springs", "Haunted Hills",
	"Greasy Grove", "Loot Lake", "Lazy Links", "Tilted Towers",
}

// LocationName returns the flavour name printed on space i.
func LocationName(i int) string {
	return locationNames[Wrap(i)/2]
}

// Lane returns the side of the board that space i sits on.
func Lane(i int) int {
	return Wrap(i) / LaneLength
}

// Wrap folds any integer onto the loop.
func Wrap(i int) int {
	i %= BoardSize
	if i < 0 {
		i += BoardSize
	}
	return i
}

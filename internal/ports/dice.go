package ports

// DieKind tells the number die and the goofy die apart.
type DieKind string

const (
	DieNumber DieKind = "number"
	DieGoofy  DieKind = "goofy"
)

// DieSettlement is one die coming to rest after a throw.
type DieSettlement struct {
	Die DieKind
	// Face is the index of the face that ended up on top, 0..5.
	Face int
	// AfterTicks is how many match ticks the die tumbles before it settles.
	AfterTicks int
}

// DiceTumbler simulates the physical throw of both dice for a turn.
type DiceTumbler interface {
	// Throw returns one settlement per die. The two dice may settle in either order.
	Throw(turn int) []DieSettlement
}

package domain

import "fmt"

// Point is a board position in space units. X grows to the right and Z towards
// the players, with the start space at the origin.
type Point struct {
	X int
	Z int
}

func (p Point) add(q Point, n int) Point {
	return Point{X: p.X + q.X*n, Z: p.Z + q.Z*n}
}

// laneDirections is the walking direction along each lane.
var laneDirections = [LaneCount]Point{
	{X: -1, Z: 0}, // left
	{X: 0, Z: -1}, // forward
	{X: 1, Z: 0},  // right
	{X: 0, Z: 1},  // back
}

// Position returns the board coordinates of space i.
func Position(i int) Point {
	i = Wrap(i)
	var p Point
	lane := i / LaneLength
	for l := 0; l < lane; l++ {
		p = p.add(laneDirections[l], LaneLength)
	}
	return p.add(laneDirections[lane], i%LaneLength)
}

// MovePath describes one movement: a straight segment, or two segments when
// the walk rounds a corner.
type MovePath struct {
	From        int
	To          int
	Distance    int
	Corner      int // corner space index, valid when HasCorner
	HasCorner   bool
	PassedStart bool // walked past space 31 back onto the loop
	Start       Point
	Mid         Point // valid when HasCorner
	End         Point
}

// Waypoints returns the intermediate points between Start and End.
func (m MovePath) Waypoints() []Point {
	if !m.HasCorner {
		return nil
	}
	return []Point{m.Mid}
}

// PlanMove computes the destination and corner-rounding path for walking
// distance spaces from start. A distance outside [0, LaneLength) cannot occur
// with the game's dice and cards and panics.
func PlanMove(start, distance int) MovePath {
	if distance < 0 || distance >= LaneLength {
		panic(fmt.Sprintf("move distance %d out of range [0,%d)", distance, LaneLength))
	}
	start = Wrap(start)
	to := Wrap(start + distance)

	path := MovePath{
		From:        start,
		To:          to,
		Distance:    distance,
		PassedStart: start+distance > BoardSize-1,
		Start:       Position(start),
		End:         Position(to),
	}
	if distance > 0 && Lane(start) != Lane(to) {
		path.HasCorner = true
		path.Corner = Wrap((Lane(start) + 1) * LaneLength)
		path.Mid = Position(path.Corner)
	}
	return path
}

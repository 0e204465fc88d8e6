package game

import (
	"fmt"
	"math"
	"strings"
)

// Direction is an action an agent can take: one of the four headings or Stop.
// The zero value None means "no action chosen" and is never legal.
type Direction int

const (
	None Direction = iota
	North
	South
	East
	West
	Stop
)

// Directions lists every action in the order legal action sets are reported.
var Directions = []Direction{North, South, East, West, Stop}

var directionNames = [...]string{"None", "North", "South", "East", "West", "Stop"}

func (d Direction) String() string {
	if d < None || d > Stop {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// ParseDirection is the inverse of String, ignoring case.
func ParseDirection(name string) (Direction, error) {
	for i, n := range directionNames {
		if strings.EqualFold(n, name) {
			return Direction(i), nil
		}
	}
	return None, fmt.Errorf("unknown direction %q", name)
}

func (d Direction) MarshalText() ([]byte, error) {
	if d < None || d > Stop {
		return nil, fmt.Errorf("cannot marshal %s", d)
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Reverse returns the opposite heading. Stop and None are their own reverse.
func (d Direction) Reverse() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

// Vector returns the displacement of one move in direction d at the given speed.
func (d Direction) Vector(speed float64) Vector {
	switch d {
	case North:
		return Vector{DX: 0, DY: speed}
	case South:
		return Vector{DX: 0, DY: -speed}
	case East:
		return Vector{DX: speed, DY: 0}
	case West:
		return Vector{DX: -speed, DY: 0}
	default:
		return Vector{}
	}
}

// Vector is a displacement on the board.
type Vector struct {
	DX float64
	DY float64
}

// Direction returns the heading matching the sign of the displacement, Stop for zero.
func (v Vector) Direction() Direction {
	switch {
	case v.DY > 0:
		return North
	case v.DY < 0:
		return South
	case v.DX < 0:
		return West
	case v.DX > 0:
		return East
	default:
		return Stop
	}
}

// Point is a board cell. (0,0) is the bottom-left cell.
type Point struct {
	X int
	Y int
}

func (p Point) Position() Position {
	return Position{X: float64(p.X), Y: float64(p.Y)}
}

// Position is a real-valued board coordinate; agents sit between cells mid-move.
type Position struct {
	X float64
	Y float64
}

func (p Position) Add(v Vector) Position {
	return Position{X: p.X + v.DX, Y: p.Y + v.DY}
}

// Nearest rounds to the closest cell.
func (p Position) Nearest() Point {
	return Point{X: int(math.Floor(p.X + 0.5)), Y: int(math.Floor(p.Y + 0.5))}
}

func (p Position) ManhattanDistance(other Position) float64 {
	return math.Abs(p.X-other.X) + math.Abs(p.Y-other.Y)
}

func (p Position) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

package game

import "strings"

// Grid is a fixed-size boolean board indexed by (x, y).
type Grid struct {
	width  int
	height int
	cells  []bool
}

func NewGrid(width, height int) *Grid {
	return &Grid{width: width, height: height, cells: make([]bool, width*height)}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns false for cells outside the board.
func (g *Grid) Get(x, y int) bool {
	if !g.inBounds(x, y) {
		return false
	}
	return g.cells[x*g.height+y]
}

func (g *Grid) Set(x, y int, value bool) {
	if !g.inBounds(x, y) {
		return
	}
	g.cells[x*g.height+y] = value
}

// Count returns the number of true cells.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c {
			n++
		}
	}
	return n
}

func (g *Grid) Copy() *Grid {
	cells := make([]bool, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}

// Points lists the true cells, column by column.
func (g *Grid) Points() []Point {
	var points []Point
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			if g.cells[x*g.height+y] {
				points = append(points, Point{X: x, Y: y})
			}
		}
	}
	return points
}

// String draws the grid with the top row first.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := g.height - 1; y >= 0; y-- {
		for x := 0; x < g.width; x++ {
			if g.Get(x, y) {
				sb.WriteByte('T')
			} else {
				sb.WriteByte('F')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

package game

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Layout is the static board: walls, initial food and capsules, and where each
// agent starts. It is never mutated after parsing and is shared by every state.
type Layout struct {
	name     string
	text     string
	walls    *Grid
	food     *Grid
	capsules []Point
	primary  Point
	rival    Point
	pursuers []Point
}

// ParseLayout reads a text board. The first line is the top row.
//
//	% wall   . food   o capsule   P primary   R rival   G or 1-4 pursuer
func ParseLayout(name, text string) (*Layout, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("layout %s: %w: empty", name, ErrInvalidLayout)
	}

	height := len(lines)
	width := len(lines[0])
	l := &Layout{
		name:  name,
		text:  strings.Join(lines, "\n"),
		walls: NewGrid(width, height),
		food:  NewGrid(width, height),
	}

	type placement struct {
		order int
		cell  Point
	}
	var pursuers []placement
	primaries, rivals := 0, 0

	for row, line := range lines {
		if len(line) != width {
			return nil, fmt.Errorf("layout %s: %w: row %d has width %d, want %d", name, ErrInvalidLayout, row, len(line), width)
		}
		y := height - 1 - row
		for x, ch := range line {
			cell := Point{X: x, Y: y}
			switch ch {
			case '%':
				l.walls.Set(x, y, true)
			case '.':
				l.food.Set(x, y, true)
			case 'o':
				l.capsules = append(l.capsules, cell)
			case 'P':
				l.primary = cell
				primaries++
			case 'R':
				l.rival = cell
				rivals++
			case 'G':
				pursuers = append(pursuers, placement{order: 1, cell: cell})
			case '1', '2', '3', '4':
				pursuers = append(pursuers, placement{order: int(ch - '0'), cell: cell})
			case ' ':
			default:
				return nil, fmt.Errorf("layout %s: %w: unknown character %q at row %d", name, ErrInvalidLayout, ch, row)
			}
		}
	}
	if primaries != 1 || rivals != 1 {
		return nil, fmt.Errorf("layout %s: %w: need exactly one P and one R, got %d and %d", name, ErrInvalidLayout, primaries, rivals)
	}

	sort.SliceStable(pursuers, func(i, j int) bool {
		a, b := pursuers[i], pursuers[j]
		if a.order != b.order {
			return a.order < b.order
		}
		if a.cell.X != b.cell.X {
			return a.cell.X < b.cell.X
		}
		return a.cell.Y < b.cell.Y
	})
	for _, p := range pursuers {
		l.pursuers = append(l.pursuers, p.cell)
	}
	return l, nil
}

// LoadLayout reads a layout file; the layout is named after the file.
func LoadLayout(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return ParseLayout(name, string(data))
}

func (l *Layout) Name() string { return l.name }

// Text returns the normalized layout text, suitable for ParseLayout.
func (l *Layout) Text() string { return l.text }

func (l *Layout) Width() int  { return l.walls.Width() }
func (l *Layout) Height() int { return l.walls.Height() }

// IsWall treats every cell outside the board as a wall.
func (l *Layout) IsWall(x, y int) bool {
	if !l.walls.inBounds(x, y) {
		return true
	}
	return l.walls.Get(x, y)
}

// Food returns a copy of the initial food grid.
func (l *Layout) Food() *Grid { return l.food.Copy() }

func (l *Layout) NumPursuers() int { return len(l.pursuers) }

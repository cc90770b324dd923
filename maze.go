// maze.go
package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/harbdog/raycaster-go/geom"
)

// TileKind identifies what occupies a grid cell.
type TileKind int

const (
	TileFloor TileKind = iota
	TileWall
	TileStart
	TileGoal
	TilePillRed
	TilePillBlue
)

// Solid reports whether rays and bodies stop at this tile. The goal is
// a solid exit door; reaching it is detected by proximity, not entry.
func (t TileKind) Solid() bool {
	return t == TileWall || t == TileGoal
}

// Maze text format, one character per tile, rows = lines:
//
//	#  wall
//	   (space or '.') floor
//	S  start, exactly one required
//	G  goal, at least one required
//	r  red pill spawn
//	b  blue pill spawn
//
// Rows must all have the same length. Pill tiles are walkable; the pill
// itself lives in the sprite/pickup layer, not in the grid.
type Maze struct {
	tiles  [][]TileKind
	width  int
	height int

	start geom.Vector2
	goals []geom.Vector2
	pills []PillSpawn
}

// PillSpawn records where the maze text placed a pill and of which kind.
type PillSpawn struct {
	Pos  geom.Vector2
	Kind PillKind
}

// ParseMaze reads a maze description from r. Malformed input (jagged
// rows, missing start or goal, unknown characters) is a load-time error.
func ParseMaze(r io.Reader) (*Maze, error) {
	scanner := bufio.NewScanner(r)

	m := &Maze{}
	startCount := 0
	blankAt := -1

	for scanner.Scan() {
		line := scanner.Text()
		// An all-space line of the right width is a floor row. Shorter
		// whitespace-only lines are tolerated only at the end of the file;
		// anywhere else they would leave the grid non-rectangular.
		if m.height > 0 && len(line) != m.width && strings.TrimSpace(line) == "" {
			if blankAt < 0 {
				blankAt = m.height
			}
			continue
		}
		if blankAt >= 0 {
			return nil, fmt.Errorf("maze row %d is blank, rows below it would be misnumbered", blankAt)
		}

		y := m.height
		if m.height == 0 {
			m.width = len(line)
		} else if len(line) != m.width {
			return nil, fmt.Errorf("maze row %d has %d tiles, want %d", y, len(line), m.width)
		}

		row := make([]TileKind, len(line))
		for x, ch := range line {
			center := geom.Vector2{X: float64(x) + 0.5, Y: float64(y) + 0.5}
			switch ch {
			case '#':
				row[x] = TileWall
			case ' ', '.':
				row[x] = TileFloor
			case 'S':
				row[x] = TileStart
				m.start = center
				startCount++
			case 'G':
				row[x] = TileGoal
				m.goals = append(m.goals, center)
			case 'r':
				row[x] = TilePillRed
				m.pills = append(m.pills, PillSpawn{Pos: center, Kind: PillRed})
			case 'b':
				row[x] = TilePillBlue
				m.pills = append(m.pills, PillSpawn{Pos: center, Kind: PillBlue})
			default:
				return nil, fmt.Errorf("maze row %d col %d: unknown tile %q", y, x, string(ch))
			}
		}
		m.tiles = append(m.tiles, row)
		m.height++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading maze: %w", err)
	}

	if m.height == 0 {
		return nil, fmt.Errorf("maze is empty")
	}
	if startCount != 1 {
		return nil, fmt.Errorf("maze must have exactly one start tile, found %d", startCount)
	}
	if len(m.goals) == 0 {
		return nil, fmt.Errorf("maze has no goal tile")
	}

	return m, nil
}

func (m *Maze) Width() int  { return m.width }
func (m *Maze) Height() int { return m.height }

// StartPos returns the world position of the start tile center.
func (m *Maze) StartPos() geom.Vector2 { return m.start }

// GoalPos returns the first goal tile center, used for ambient volume.
func (m *Maze) GoalPos() geom.Vector2 { return m.goals[0] }

// PillSpawns returns pill positions found during parsing.
func (m *Maze) PillSpawns() []PillSpawn { return m.pills }

// TileAt returns the tile kind at discrete grid coordinates.
// Out-of-bounds lookups read as walls so rays and players cannot escape.
func (m *Maze) TileAt(ix, iy int) TileKind {
	if ix < 0 || iy < 0 || ix >= m.width || iy >= m.height {
		return TileWall
	}
	return m.tiles[iy][ix]
}

// IsWall reports whether continuous world coordinates land in a solid tile.
func (m *Maze) IsWall(x, y float64) bool {
	if x < 0 || y < 0 {
		return true
	}
	return m.TileAt(int(x), int(y)).Solid()
}

// IsGoal reports whether the world position is within threshold of any goal.
func (m *Maze) IsGoal(x, y, threshold float64) bool {
	for _, g := range m.goals {
		if geom.Distance(x, y, g.X, g.Y) < threshold {
			return true
		}
	}
	return false
}

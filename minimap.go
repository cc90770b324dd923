// minimap.go
package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const minimapCell = 6

// Minimap draws a schematic overview in the corner: walls, the exit,
// and the player with a facing tick. Tile geometry never changes, so
// the wall layer is prebuilt once and stamped each frame.
type Minimap struct {
	maze  *Maze
	base  *ebiten.Image
	origX float64
	origY float64
}

func NewMinimap(m *Maze, cfg *Config) *Minimap {
	w := m.Width() * minimapCell
	h := m.Height() * minimapCell

	base := ebiten.NewImage(w, h)
	base.Fill(color.RGBA{10, 10, 8, 180})
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			var c color.RGBA
			switch m.TileAt(x, y) {
			case TileWall:
				c = color.RGBA{120, 110, 70, 220}
			case TileGoal:
				c = color.RGBA{90, 200, 90, 255}
			case TileStart:
				c = color.RGBA{70, 90, 160, 255}
			default:
				continue
			}
			vector.DrawFilledRect(base,
				float32(x*minimapCell), float32(y*minimapCell),
				minimapCell-1, minimapCell-1, c, false)
		}
	}

	return &Minimap{
		maze:  m,
		base:  base,
		origX: float64(cfg.ScreenWidth - w - 16),
		origY: float64(cfg.ScreenHeight - h - 16),
	}
}

func (mm *Minimap) Draw(screen *ebiten.Image, p *Player) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(mm.origX, mm.origY)
	screen.DrawImage(mm.base, op)

	px := float32(mm.origX + p.Position.X*minimapCell)
	py := float32(mm.origY + p.Position.Y*minimapCell)
	vector.DrawFilledCircle(screen, px, py, 3, color.RGBA{230, 60, 60, 255}, false)

	fx := px + float32(math.Cos(p.Angle)*minimapCell*1.5)
	fy := py + float32(math.Sin(p.Angle)*minimapCell*1.5)
	vector.StrokeLine(screen, px, py, fx, fy, 1.5, color.RGBA{230, 60, 60, 255}, false)
}

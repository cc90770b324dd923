// sprite.go
package main

import (
	"math"
	"sort"

	"github.com/harbdog/raycaster-go/geom"
)

const (
	spriteCullRadius  = 20.0
	spriteFOVMargin   = 0.5
	lightFlickerStep  = 0.08
	lightFlickerNoise = 0.82
)

type SpriteAnchor int

const (
	AnchorFloor SpriteAnchor = iota
	AnchorCeiling
)

// Sprite is a camera-facing billboard in the world: a pill waiting on
// the floor or a fluorescent light on the ceiling. Lights animate a
// flicker independent of visibility; pill sprites go inactive with
// their pill.
type Sprite struct {
	Position geom.Vector2
	Anchor   SpriteAnchor
	Scale    float64

	texID    string
	altTexID string

	pill         *Pill
	flickerClock float64
	flickerStep  int
	flickerOff   bool
}

func NewPillSprite(pl *Pill) *Sprite {
	id := texPillRed
	if pl.Kind == PillBlue {
		id = texPillBlue
	}
	return &Sprite{
		Position: pl.Position,
		Anchor:   AnchorFloor,
		Scale:    0.35,
		texID:    id,
		pill:     pl,
	}
}

func NewLightSprite(pos geom.Vector2) *Sprite {
	return &Sprite{
		Position: pos,
		Anchor:   AnchorCeiling,
		Scale:    0.4,
		texID:    texLightOn,
		altTexID: texLightOff,
	}
}

// Active reports whether the sprite should still be simulated and drawn.
func (s *Sprite) Active() bool {
	return s.pill == nil || !s.pill.Collected
}

// Update advances the flicker animation on a fixed clock. The off
// frames come from a deterministic noise hash so the stutter looks
// irregular without any per-frame randomness.
func (s *Sprite) Update(dt float64) {
	if s.altTexID == "" {
		return
	}
	s.flickerClock += dt
	for s.flickerClock >= lightFlickerStep {
		s.flickerClock -= lightFlickerStep
		s.flickerStep++
		s.flickerOff = texNoise(s.flickerStep, int(s.Position.X)*31+int(s.Position.Y)) > lightFlickerNoise
	}
}

func (s *Sprite) currentTexID() string {
	if s.flickerOff && s.altTexID != "" {
		return s.altTexID
	}
	return s.texID
}

// brightness lets pill glow pulse through the raster shade.
func (s *Sprite) brightness() float64 {
	if s.pill != nil {
		return 0.8 + 0.35*s.pill.GlowPhase()
	}
	return 1.0
}

// visibleSprite is the per-frame projection record for one sprite that
// survived culling.
type visibleSprite struct {
	sprite  *Sprite
	dist    float64
	perp    float64
	screenX float64
}

// SpriteRenderer culls, depth-sorts and rasters billboards over the
// painted world, honoring the wall depth buffer per screen column.
type SpriteRenderer struct {
	screenW     int
	screenH     int
	fov         float64
	maxDepth    float64
	fogDistance float64

	textures *TextureManager
	vis      []visibleSprite
}

func NewSpriteRenderer(cfg *Config, tm *TextureManager) *SpriteRenderer {
	return &SpriteRenderer{
		screenW:     cfg.renderWidth(),
		screenH:     cfg.renderHeight(),
		fov:         cfg.FOV,
		maxDepth:    cfg.MaxDepth,
		fogDistance: cfg.FogDistance,
		textures:    tm,
	}
}

// Render draws all active sprites far-to-near. zbuffer holds the wall
// perpendicular distance for each screen column from the wall pass.
func (sr *SpriteRenderer) Render(fb *Framebuffer, sprites []*Sprite, p *Player, zbuffer []float64) {
	sr.vis = sr.cullAndSort(sprites, p, sr.vis[:0])
	for _, v := range sr.vis {
		sr.raster(fb, v, zbuffer)
	}
}

// cullAndSort keeps sprites within the cull radius and field of view
// (with a margin against edge popping) and orders them by descending
// distance so near sprites paint over far ones.
func (sr *SpriteRenderer) cullAndSort(sprites []*Sprite, p *Player, out []visibleSprite) []visibleSprite {
	for _, s := range sprites {
		if !s.Active() {
			continue
		}
		dx := s.Position.X - p.Position.X
		dy := s.Position.Y - p.Position.Y
		dist := math.Hypot(dx, dy)
		if dist > spriteCullRadius || dist < 0.1 {
			continue
		}

		rel := normalizeAngle(math.Atan2(dy, dx) - p.Angle)
		if math.Abs(rel) > sr.fov/2+spriteFOVMargin {
			continue
		}

		out = append(out, visibleSprite{
			sprite:  s,
			dist:    dist,
			perp:    dist * math.Cos(rel),
			screenX: (rel/sr.fov + 0.5) * float64(sr.screenW),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].dist > out[j].dist })
	return out
}

func (sr *SpriteRenderer) raster(fb *Framebuffer, v visibleSprite, zbuffer []float64) {
	perp := math.Max(v.perp, 0.1)
	tex := sr.textures.Get(v.sprite.currentTexID())

	// full wall band at this depth; the sprite occupies a scaled part
	// of it anchored to floor or ceiling
	band := float64(sr.screenH) / perp
	size := band * v.sprite.Scale
	half := float64(sr.screenH) / 2

	var top float64
	switch v.sprite.Anchor {
	case AnchorFloor:
		top = half + band/2 - size
	case AnchorCeiling:
		top = half - band/2
	}

	x0 := int(v.screenX - size/2)
	x1 := int(v.screenX + size/2)
	y0 := int(top)
	y1 := int(top + size)

	shade := distanceShade(perp, sr.maxDepth) * v.sprite.brightness()
	fog := fogFactor(perp, sr.fogDistance, sr.maxDepth)

	for x := x0; x < x1; x++ {
		if x < 0 || x >= sr.screenW {
			continue
		}
		if perp >= zbuffer[x] {
			continue
		}
		u := float64(x-x0) / (size - 1 + 1e-9)
		tx := int(u * float64(tex.W-1))
		for y := y0; y < y1; y++ {
			if y < 0 || y >= sr.screenH {
				continue
			}
			ty := int(float64(y-y0) / (size - 1 + 1e-9) * float64(tex.H-1))
			if tex.IsTransparent(tx, ty) {
				continue
			}
			tr, tg, tb := tex.At(tx, ty)
			cr := scaleByte(tr, shade)
			cg := scaleByte(tg, shade)
			cb := scaleByte(tb, shade)
			if fog > 0 {
				cr = mix(cr, fogR, fog)
				cg = mix(cg, fogG, fog)
				cb = mix(cb, fogB, fog)
			}
			fb.Set(x, y, cr, cg, cb)
		}
	}
}

// normalizeAngle wraps to (-π, π].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= geom.Pi2
	}
	for a <= -math.Pi {
		a += geom.Pi2
	}
	return a
}

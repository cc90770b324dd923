// renderer.go
package main

import (
	"math"
)

// fog color: the murky dark that the backrooms fade into.
const (
	fogR = 28
	fogG = 26
	fogB = 18
)

// Renderer paints the first-person view into a framebuffer: textured
// wall slices from the ray fan, floor and ceiling by inverse
// perspective, then the screen-space composites. It owns the per-column
// depth buffer the sprite pass needs for occlusion, but not the
// framebuffer or textures, which are passed in.
type Renderer struct {
	screenW  int
	screenH  int
	numRays  int
	sliceW   int
	fov      float64
	maxDepth float64

	fogDistance    float64
	flashlight     bool
	flashlightGain float64

	textures *TextureManager
	caster   *RayCaster

	rays    []RayHit
	zbuffer []float64
}

func NewRenderer(cfg *Config, tm *TextureManager) *Renderer {
	r := &Renderer{
		screenW:        cfg.renderWidth(),
		screenH:        cfg.renderHeight(),
		numRays:        cfg.NumRays,
		sliceW:         cfg.renderWidth() / cfg.NumRays,
		fov:            cfg.FOV,
		maxDepth:       cfg.MaxDepth,
		fogDistance:    cfg.FogDistance,
		flashlight:     cfg.Flashlight,
		flashlightGain: cfg.FlashlightGain,
		textures:       tm,
		caster:         NewRayCaster(cfg.NumRays, cfg.FOV, cfg.MaxDepth),
		rays:           make([]RayHit, cfg.NumRays),
		zbuffer:        make([]float64, cfg.renderWidth()),
	}
	return r
}

// ZBuffer exposes the per-column wall depths from the last wall pass.
func (r *Renderer) ZBuffer() []float64 { return r.zbuffer }

// Rays exposes the last frame's ray fan, for the minimap.
func (r *Renderer) Rays() []RayHit { return r.rays }

// RenderWorld runs the wall and floor/ceiling passes for the current
// player pose. Every screen column is painted top to bottom exactly
// once. Sprite and post passes run afterward.
func (r *Renderer) RenderWorld(fb *Framebuffer, m *Maze, p *Player) {
	r.caster.CastAll(m, p.Position, p.Angle, r.rays)

	for i := 0; i < r.numRays; i++ {
		r.renderColumn(fb, p, i)
	}
}

func (r *Renderer) renderColumn(fb *Framebuffer, p *Player, i int) {
	hit := r.rays[i]

	perp := hit.PerpDistance
	if !hit.Hit {
		perp = r.maxDepth
	}
	// clamp so the projection can't blow up against a touching wall
	if perp < 0.05 {
		perp = 0.05
	}

	lineH := int(float64(r.screenH) / perp)
	wallTop := (r.screenH - lineH) / 2
	wallBottom := wallTop + lineH
	if wallTop < 0 {
		wallTop = 0
	}
	if wallBottom > r.screenH {
		wallBottom = r.screenH
	}

	x0 := i * r.sliceW
	fog := fogFactor(perp, r.fogDistance, r.maxDepth)

	// ceiling rows above the slice, floor rows below
	r.renderFlats(fb, p, i, x0, wallTop, wallBottom)

	// wall slice
	if hit.Hit {
		tex := r.textures.Get(texWall)
		if hit.Tile == TileGoal {
			tex = r.textures.Get(texExit)
		}
		shade := distanceShade(perp, r.maxDepth) * orientationShade(hit.SideY)
		texX := int(hit.WallU * float64(tex.W))

		for y := wallTop; y < wallBottom; y++ {
			// position within the full (unclamped) slice
			v := (float64(y) - float64(r.screenH-lineH)/2) / float64(lineH)
			tr, tg, tb := tex.At(texX, int(v*float64(tex.H)))
			cr := scaleByte(tr, shade)
			cg := scaleByte(tg, shade)
			cb := scaleByte(tb, shade)
			r.paintSpan(fb, x0, y, cr, cg, cb, fog)
		}
	} else {
		for y := wallTop; y < wallBottom; y++ {
			r.paintSpan(fb, x0, y, fogR, fogG, fogB, 0)
		}
	}

	for x := x0; x < x0+r.sliceW; x++ {
		r.zbuffer[x] = perp
	}
}

// renderFlats paints the ceiling rows [0, top) and floor rows
// [bottom, screenH) for ray column i by back-projecting each row to a
// world position and sampling the flat textures.
func (r *Renderer) renderFlats(fb *Framebuffer, p *Player, i, x0, top, bottom int) {
	hit := r.rays[i]
	cosCorr := math.Cos(hit.Angle - p.Angle)
	if cosCorr < 1e-6 {
		cosCorr = 1e-6
	}
	dirX := math.Cos(hit.Angle)
	dirY := math.Sin(hit.Angle)

	floorTex := r.textures.Get(texFloor)
	ceilTex := r.textures.Get(texCeiling)
	half := float64(r.screenH) / 2

	for y := bottom; y < r.screenH; y++ {
		p1 := float64(y) - half
		if p1 < 1 {
			p1 = 1
		}
		// perpendicular distance to the floor point seen on this row
		rowPerp := half / p1
		dist := rowPerp / cosCorr
		if dist > r.maxDepth {
			r.paintSpan(fb, x0, y, fogR, fogG, fogB, 0)
			yc := r.screenH - 1 - y
			if yc < top {
				r.paintSpan(fb, x0, yc, fogR, fogG, fogB, 0)
			}
			continue
		}

		wx := p.Position.X + dirX*dist
		wy := p.Position.Y + dirY*dist
		u := wx - math.Floor(wx)
		v := wy - math.Floor(wy)
		shade := distanceShade(rowPerp, r.maxDepth)
		fog := fogFactor(rowPerp, r.fogDistance, r.maxDepth)

		tr, tg, tb := floorTex.Sample(u, v)
		r.paintSpan(fb, x0, y, scaleByte(tr, shade), scaleByte(tg, shade), scaleByte(tb, shade), fog)

		// mirrored ceiling row
		yc := r.screenH - 1 - y
		if yc < top {
			cr, cg, cb := ceilTex.Sample(u, v)
			r.paintSpan(fb, x0, yc, scaleByte(cr, shade*0.9), scaleByte(cg, shade*0.9), scaleByte(cb, shade*0.9), fog)
		}
	}
}

// paintSpan writes one row of the slice, blending toward fog.
func (r *Renderer) paintSpan(fb *Framebuffer, x0, y int, cr, cg, cb uint8, fog float64) {
	if fog > 0 {
		cr = mix(cr, fogR, fog)
		cg = mix(cg, fogG, fog)
		cb = mix(cb, fogB, fog)
	}
	for x := x0; x < x0+r.sliceW; x++ {
		fb.Set(x, y, cr, cg, cb)
	}
}

// Composite applies the screen-space passes over the finished world:
// flashlight brightening, damage flash, anxiety vignette. Order
// matters; tints go over the light.
func (r *Renderer) Composite(fb *Framebuffer, e *Effects) {
	cx := float64(r.screenW) / 2
	cy := float64(r.screenH) / 2
	maxR := math.Hypot(cx, cy)

	damage := e.DamageAlpha()
	anxiety := e.AnxietyIntensity()

	if !r.flashlight && damage <= 0 && anxiety <= 0 {
		return
	}

	for y := 0; y < r.screenH; y++ {
		dy := float64(y) - cy
		for x := 0; x < r.screenW; x++ {
			dx := float64(x) - cx
			edge := math.Hypot(dx, dy) / maxR

			if r.flashlight {
				gain := 1 + r.flashlightGain*math.Max(0, 1-edge*1.6)
				fb.Scale(x, y, gain)
			}
			if damage > 0 {
				fb.Blend(x, y, 200, 20, 20, 0.35*damage)
			}
			if anxiety > 0 {
				fb.Scale(x, y, 1-0.55*anxiety*edge)
			}
		}
	}
}

// caster.go
package main

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

const (
	defaultNumRays  = 80
	defaultFOV      = math.Pi / 3
	defaultMaxDepth = 20.0

	// Hard cap on DDA steps. A ray inside a closed maze resolves long
	// before this; the cap keeps a degenerate origin from spinning.
	maxCastSteps = 256
)

// RayHit is the result of casting a single ray. It lives for one frame.
type RayHit struct {
	Hit bool
	// Distance is the Euclidean length along the ray to the wall.
	Distance float64
	// PerpDistance is Distance corrected by the cosine of the ray's
	// offset from the facing direction, removing fisheye distortion.
	PerpDistance float64
	// TileX, TileY index the wall tile that was struck.
	TileX, TileY int
	Tile         TileKind
	// SideY is true when the crossing that found the wall was on a
	// horizontal grid line (a north/south facing surface).
	SideY bool
	// WallU is the fractional position along the struck wall face,
	// in [0, 1), used as the texture column coordinate.
	WallU float64
	Angle float64
}

// RayCaster casts a fan of rays across the field of view using DDA
// grid stepping. One caster is shared per frame; it holds no state
// between casts beyond its configuration.
type RayCaster struct {
	NumRays  int
	FOV      float64
	MaxDepth float64
}

func NewRayCaster(numRays int, fov, maxDepth float64) *RayCaster {
	return &RayCaster{NumRays: numRays, FOV: fov, MaxDepth: maxDepth}
}

// CastAll casts NumRays rays spread across the FOV centered on facing
// and writes the hits into out, which must have length NumRays. The
// slice is reused across frames to avoid per-frame allocation.
func (rc *RayCaster) CastAll(m *Maze, origin geom.Vector2, facing float64, out []RayHit) {
	step := rc.FOV / float64(rc.NumRays)
	start := facing - rc.FOV/2
	for i := 0; i < rc.NumRays; i++ {
		angle := start + (float64(i)+0.5)*step
		hit := rc.Cast(m, origin, angle)
		hit.PerpDistance = hit.Distance * math.Cos(angle-facing)
		out[i] = hit
	}
}

// Cast advances a single ray from origin at the given angle until it
// strikes a wall tile or exceeds MaxDepth. The returned distance is
// Euclidean along the ray; CastAll applies the perpendicular
// correction.
func (rc *RayCaster) Cast(m *Maze, origin geom.Vector2, angle float64) RayHit {
	dirX := math.Cos(angle)
	dirY := math.Sin(angle)

	mapX := int(math.Floor(origin.X))
	mapY := int(math.Floor(origin.Y))

	// Distance along the ray between successive grid lines per axis.
	deltaX := math.Inf(1)
	if dirX != 0 {
		deltaX = math.Abs(1 / dirX)
	}
	deltaY := math.Inf(1)
	if dirY != 0 {
		deltaY = math.Abs(1 / dirY)
	}

	var stepX, stepY int
	var sideX, sideY float64
	if dirX < 0 {
		stepX = -1
		sideX = (origin.X - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1 - origin.X) * deltaX
	}
	if dirY < 0 {
		stepY = -1
		sideY = (origin.Y - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) + 1 - origin.Y) * deltaY
	}

	hit := RayHit{Angle: angle}
	crossedY := false
	for i := 0; i < maxCastSteps; i++ {
		// On an exact tie the x axis advances, keeping the scan
		// deterministic.
		if sideX <= sideY {
			sideX += deltaX
			mapX += stepX
			crossedY = false
		} else {
			sideY += deltaY
			mapY += stepY
			crossedY = true
		}

		tile := m.TileAt(mapX, mapY)
		if !tile.Solid() {
			continue
		}

		var dist float64
		if !crossedY {
			dist = sideX - deltaX
		} else {
			dist = sideY - deltaY
		}
		if dist > rc.MaxDepth {
			break
		}

		hit.Hit = true
		hit.Distance = dist
		hit.TileX = mapX
		hit.TileY = mapY
		hit.Tile = tile
		hit.SideY = crossedY
		hit.WallU = wallU(origin, dirX, dirY, dist, crossedY)
		return hit
	}

	// No wall within range: report max depth so projection treats the
	// column as farthest fog.
	hit.Hit = false
	hit.Distance = rc.MaxDepth
	return hit
}

// wallU computes the fractional hit position along the struck wall
// face from the world-space intersection point.
func wallU(origin geom.Vector2, dirX, dirY, dist float64, crossedY bool) float64 {
	var u float64
	if crossedY {
		u = origin.X + dist*dirX
	} else {
		u = origin.Y + dist*dirY
	}
	u -= math.Floor(u)
	return u
}

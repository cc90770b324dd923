// pill.go
package main

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

type PillKind int

const (
	PillRed PillKind = iota
	PillBlue
)

const (
	pillPickupRadius = 0.6
	pillRedDamage    = 15
	pillBlueHeal     = 10
	pillBlueTimeCost = 20.0
)

// Pill is a collectible capsule resting on the maze floor. Collected
// pills stay in the slice so indexes remain stable; they are simply
// skipped by rendering and pickup checks.
type Pill struct {
	Position  geom.Vector2
	Kind      PillKind
	Collected bool
	glowTimer float64
}

func NewPill(pos geom.Vector2, kind PillKind) *Pill {
	return &Pill{Position: pos, Kind: kind}
}

func (pl *Pill) Update(dt float64) {
	pl.glowTimer += dt
}

// GlowPhase pulses in [0, 1] for the pickup shimmer.
func (pl *Pill) GlowPhase() float64 {
	return 0.5 + 0.5*math.Sin(pl.glowTimer*4)
}

// CanCollect reports whether the player at (x, y) is close enough to
// pick this pill up. Already-collected pills never match.
func (pl *Pill) CanCollect(x, y float64) bool {
	if pl.Collected {
		return false
	}
	return geom.Distance(pl.Position.X, pl.Position.Y, x, y) <= pillPickupRadius
}

const floatingTextLifetime = 1.5

// FloatingText is a short-lived pickup caption that drifts upward and
// fades out over its lifetime.
type FloatingText struct {
	Text string
	Age  float64
}

func (ft *FloatingText) Update(dt float64) {
	ft.Age += dt
}

func (ft *FloatingText) Expired() bool {
	return ft.Age >= floatingTextLifetime
}

// Alpha fades linearly from 1 to 0 over the lifetime.
func (ft *FloatingText) Alpha() float64 {
	a := 1 - ft.Age/floatingTextLifetime
	return geom.Clamp(a, 0, 1)
}

// RiseOffset is the upward screen drift in pixels at the current age.
func (ft *FloatingText) RiseOffset() float64 {
	return ft.Age * 30
}

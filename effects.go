// effects.go
package main

import (
	"math"

	"github.com/harbdog/raycaster-go/geom"
)

const (
	sessionDuration = 180.0

	idleThreshold = 5.0
	idleEpsilon   = 1e-4
	idleDamage    = 5

	damageFlashDuration = 0.5
	anxietyDuration     = 2.0

	footstepInterval = 0.5
)

// Effects owns the decaying per-session timers: damage flash, anxiety
// distortion, idle accumulation, and the countdown clock. All timers
// clamp at zero and only transition events reset them.
type Effects struct {
	TimerRemaining float64
	damageFlash    float64
	anxiety        float64
	anxietyClock   float64
	idle           float64
	footstepClock  float64
}

func NewEffects() *Effects {
	return &Effects{TimerRemaining: sessionDuration}
}

// Reset restores the session-start state. Called on every transition
// into Playing.
func (e *Effects) Reset() {
	*e = Effects{TimerRemaining: sessionDuration}
}

// Update decays the flash and anxiety timers and advances the
// countdown. It does not decide what timer expiry means; the game
// state machine reads TimerRemaining after the tick.
func (e *Effects) Update(dt float64) {
	e.TimerRemaining = math.Max(0, e.TimerRemaining-dt)
	e.damageFlash = math.Max(0, e.damageFlash-dt)
	e.anxiety = math.Max(0, e.anxiety-dt)
	if e.anxiety > 0 {
		e.anxietyClock += dt
	}
}

// TickIdle accumulates idle time from the displacement the player
// actually achieved this tick. It returns true when a full idle period
// has elapsed; the caller applies the penalty. The idle clock resets
// on movement and after each penalty, so staying put re-penalizes
// every period.
func (e *Effects) TickIdle(moved, dt float64) bool {
	if moved > idleEpsilon {
		e.idle = 0
		return false
	}
	e.idle += dt
	if e.idle >= idleThreshold {
		e.idle = 0
		return true
	}
	return false
}

// TickFootsteps advances the footstep cadence while movement input is
// held, returning true each time a step cue is due.
func (e *Effects) TickFootsteps(moving bool, dt float64) bool {
	if !moving {
		e.footstepClock = 0
		return false
	}
	e.footstepClock += dt
	if e.footstepClock >= footstepInterval {
		e.footstepClock -= footstepInterval
		return true
	}
	return false
}

func (e *Effects) TriggerDamage() { e.damageFlash = damageFlashDuration }

func (e *Effects) TriggerAnxiety() {
	e.anxiety = anxietyDuration
	e.anxietyClock = 0
}

// ReduceTimer subtracts cost from the countdown, clamped at zero. The
// clamp means a pickup can never itself push the session into a loss;
// only the per-tick decrement reaches the expiry check.
func (e *Effects) ReduceTimer(cost float64) {
	e.TimerRemaining = math.Max(0, e.TimerRemaining-cost)
}

// DamageAlpha is the red overlay strength in [0, 1].
func (e *Effects) DamageAlpha() float64 {
	return geom.Clamp(e.damageFlash/damageFlashDuration, 0, 1)
}

// AnxietyIntensity decays linearly over the anxiety window.
func (e *Effects) AnxietyIntensity() float64 {
	return geom.Clamp(e.anxiety/anxietyDuration, 0, 1)
}

// ShakeOffset is the sinusoidal screen jitter applied while anxious.
func (e *Effects) ShakeOffset() (dx, dy float64) {
	in := e.AnxietyIntensity()
	if in <= 0 {
		return 0, 0
	}
	return math.Sin(e.anxietyClock*35) * 4 * in, math.Cos(e.anxietyClock*27) * 3 * in
}

// Shading curves shared by the wall, floor and sprite passes.

// distanceShade darkens with distance, floored so nothing goes black
// before the fog takes over.
func distanceShade(dist, maxDepth float64) float64 {
	n := geom.Clamp(dist/maxDepth, 0, 1)
	return 1 - n*0.25
}

// orientationShade slightly darkens north/south facing surfaces so
// wall corners read.
func orientationShade(sideY bool) float64 {
	if sideY {
		return 0.95
	}
	return 1.0
}

// fogFactor is the blend toward the fog color in [0, 1], zero inside
// fogDistance and saturating at maxDepth.
func fogFactor(dist, fogDistance, maxDepth float64) float64 {
	if dist <= fogDistance {
		return 0
	}
	if maxDepth <= fogDistance {
		return 1
	}
	return geom.Clamp((dist-fogDistance)/(maxDepth-fogDistance), 0, 1)
}

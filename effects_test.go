package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerCountsDownAndClamps(t *testing.T) {
	e := NewEffects()
	assert.Equal(t, sessionDuration, e.TimerRemaining)

	last := e.TimerRemaining
	for i := 0; i < 120; i++ {
		e.Update(1.0 / 60)
		assert.Less(t, e.TimerRemaining, last)
		last = e.TimerRemaining
	}

	e.Update(1e6)
	assert.Equal(t, 0.0, e.TimerRemaining)
}

func TestReduceTimerClampsAtZero(t *testing.T) {
	e := NewEffects()
	e.TimerRemaining = 12

	e.ReduceTimer(20)
	assert.Equal(t, 0.0, e.TimerRemaining)

	e.ReduceTimer(5)
	assert.Equal(t, 0.0, e.TimerRemaining)
}

func TestIdlePenaltyTiming(t *testing.T) {
	t.Run("fires after the full idle period", func(t *testing.T) {
		e := NewEffects()
		fired := 0
		for i := 0; i < 60*5+2; i++ { // a hair past 5s of ticks
			if e.TickIdle(0, 1.0/60) {
				fired++
			}
		}
		assert.Equal(t, 1, fired)
	})

	t.Run("movement resets the clock", func(t *testing.T) {
		e := NewEffects()
		for i := 0; i < 60*4; i++ {
			e.TickIdle(0, 1.0/60)
		}
		assert.False(t, e.TickIdle(0.05, 1.0/60)) // moved, reset

		// 4 more idle seconds must not fire; the clock started over
		for i := 0; i < 60*4; i++ {
			assert.False(t, e.TickIdle(0, 1.0/60))
		}
	})

	t.Run("re-penalizes every period while idle", func(t *testing.T) {
		e := NewEffects()
		fired := 0
		for i := 0; i < 60*15+3; i++ {
			if e.TickIdle(0, 1.0/60) {
				fired++
			}
		}
		assert.Equal(t, 3, fired)
	})
}

func TestFootstepCadence(t *testing.T) {
	e := NewEffects()

	steps := 0
	for i := 0; i < 62; i++ { // just over one second of held movement
		if e.TickFootsteps(true, 1.0/60) {
			steps++
		}
	}
	assert.Equal(t, 2, steps)

	// stopping resets the cadence
	e.TickFootsteps(false, 1.0/60)
	assert.False(t, e.TickFootsteps(true, footstepInterval*0.9))
}

func TestEffectTimersDecayAndClamp(t *testing.T) {
	e := NewEffects()
	e.TriggerDamage()
	e.TriggerAnxiety()
	assert.Equal(t, 1.0, e.DamageAlpha())
	assert.Equal(t, 1.0, e.AnxietyIntensity())

	e.Update(damageFlashDuration / 2)
	assert.InDelta(t, 0.5, e.DamageAlpha(), 1e-9)

	e.Update(1e6)
	assert.Equal(t, 0.0, e.DamageAlpha())
	assert.Equal(t, 0.0, e.AnxietyIntensity())

	dx, dy := e.ShakeOffset()
	assert.Equal(t, 0.0, dx)
	assert.Equal(t, 0.0, dy)
}

func TestShadingCurves(t *testing.T) {
	t.Run("distance shade darkens monotonically", func(t *testing.T) {
		assert.Equal(t, 1.0, distanceShade(0, 20))
		assert.Greater(t, distanceShade(5, 20), distanceShade(15, 20))
		assert.InDelta(t, 0.75, distanceShade(20, 20), 1e-9)
		// never darker than the floor even past max depth
		assert.InDelta(t, 0.75, distanceShade(50, 20), 1e-9)
	})

	t.Run("orientation shade separates axes", func(t *testing.T) {
		assert.Less(t, orientationShade(true), orientationShade(false))
	})

	t.Run("fog ramps from fog distance to max depth", func(t *testing.T) {
		assert.Equal(t, 0.0, fogFactor(10, 15, 20))
		assert.Equal(t, 0.0, fogFactor(15, 15, 20))
		assert.InDelta(t, 0.5, fogFactor(17.5, 15, 20), 1e-9)
		assert.Equal(t, 1.0, fogFactor(20, 15, 20))
		assert.Equal(t, 1.0, fogFactor(99, 15, 20))
	})
}

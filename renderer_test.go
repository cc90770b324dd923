package main

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRenderer(t *testing.T, flashlight bool) *Renderer {
	t.Helper()
	cfg := testConfig()
	cfg.Flashlight = flashlight
	cfg.FlashlightGain = 0.35
	tm, err := NewTextureManager("")
	require.NoError(t, err)
	return NewRenderer(cfg, tm)
}

func TestRenderWorldPaintsEveryPixel(t *testing.T) {
	m := parseTestMaze(t, closedMaze)
	p := NewPlayer(m.StartPos())
	p.Angle = 0.6

	r := testRenderer(t, false)
	fb := NewFramebuffer(r.screenW, r.screenH)
	sentinel := color.RGBA{250, 0, 250, 255}
	fb.Fill(sentinel)

	r.RenderWorld(fb, m, p)

	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			cr, cg, cb := fb.At(x, y)
			require.False(t, cr == 250 && cg == 0 && cb == 250,
				"pixel %d,%d left unpainted", x, y)
		}
	}
}

func TestZBufferTracksWallDepth(t *testing.T) {
	m := parseTestMaze(t, closedMaze)
	p := NewPlayer(m.StartPos())

	r := testRenderer(t, false)
	fb := NewFramebuffer(r.screenW, r.screenH)
	r.RenderWorld(fb, m, p)

	zb := r.ZBuffer()
	rays := r.Rays()
	for i, hit := range rays {
		for x := i * r.sliceW; x < (i+1)*r.sliceW; x++ {
			assert.Greater(t, zb[x], 0.0)
			if hit.Hit {
				assert.InDelta(t, hit.PerpDistance, zb[x], 1e-12)
			}
		}
	}
}

func TestCompositeDamageTint(t *testing.T) {
	r := testRenderer(t, false)
	fb := NewFramebuffer(r.screenW, r.screenH)
	fb.Fill(color.RGBA{100, 100, 100, 255})

	e := NewEffects()
	e.TriggerDamage()
	r.Composite(fb, e)

	cr, cg, cb := fb.At(r.screenW/2, r.screenH/2)
	assert.Greater(t, cr, cg)
	assert.Greater(t, cr, cb)
}

func TestCompositeFlashlight(t *testing.T) {
	r := testRenderer(t, true)
	fb := NewFramebuffer(r.screenW, r.screenH)
	fb.Fill(color.RGBA{100, 100, 100, 255})

	r.Composite(fb, NewEffects())

	centerR, _, _ := fb.At(r.screenW/2, r.screenH/2)
	cornerR, _, _ := fb.At(2, 2)
	assert.Greater(t, centerR, cornerR)
}

func TestCompositeAnxietyVignette(t *testing.T) {
	r := testRenderer(t, false)
	fb := NewFramebuffer(r.screenW, r.screenH)
	fb.Fill(color.RGBA{100, 100, 100, 255})

	e := NewEffects()
	e.TriggerAnxiety()
	r.Composite(fb, e)

	centerR, _, _ := fb.At(r.screenW/2, r.screenH/2)
	edgeR, _, _ := fb.At(1, 1)
	assert.Less(t, edgeR, centerR)

	dx, dy := e.ShakeOffset()
	assert.True(t, dx != 0 || dy != 0, "anxiety shake should displace the frame")
}

// framebuffer.go
package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// Framebuffer is the CPU-side pixel buffer every render pass paints
// into. One frame's walls, floors, sprites and post effects all write
// here; Blit uploads the finished frame to the GPU image once.
type Framebuffer struct {
	Width  int
	Height int
	pix    []byte
	img    *ebiten.Image
}

func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		pix:    make([]byte, width*height*4),
	}
}

// Fill floods the whole buffer with one color.
func (fb *Framebuffer) Fill(c color.RGBA) {
	for i := 0; i < len(fb.pix); i += 4 {
		fb.pix[i] = c.R
		fb.pix[i+1] = c.G
		fb.pix[i+2] = c.B
		fb.pix[i+3] = 255
	}
}

// Set writes one opaque pixel. Out-of-bounds writes are dropped so
// clipping mistakes in callers cannot corrupt the buffer.
func (fb *Framebuffer) Set(x, y int, r, g, b uint8) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := (y*fb.Width + x) * 4
	fb.pix[i] = r
	fb.pix[i+1] = g
	fb.pix[i+2] = b
	fb.pix[i+3] = 255
}

// At reads a pixel back, for the post passes and for tests.
func (fb *Framebuffer) At(x, y int) (r, g, b uint8) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return 0, 0, 0
	}
	i := (y*fb.Width + x) * 4
	return fb.pix[i], fb.pix[i+1], fb.pix[i+2]
}

// Blend mixes c into the pixel at (x, y) with weight t in [0, 1].
func (fb *Framebuffer) Blend(x, y int, cr, cg, cb uint8, t float64) {
	if t <= 0 || x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	if t > 1 {
		t = 1
	}
	i := (y*fb.Width + x) * 4
	fb.pix[i] = mix(fb.pix[i], cr, t)
	fb.pix[i+1] = mix(fb.pix[i+1], cg, t)
	fb.pix[i+2] = mix(fb.pix[i+2], cb, t)
}

// Scale multiplies the pixel at (x, y) by factor, clamped to 255.
func (fb *Framebuffer) Scale(x, y int, factor float64) {
	if x < 0 || y < 0 || x >= fb.Width || y >= fb.Height {
		return
	}
	i := (y*fb.Width + x) * 4
	fb.pix[i] = scaleByte(fb.pix[i], factor)
	fb.pix[i+1] = scaleByte(fb.pix[i+1], factor)
	fb.pix[i+2] = scaleByte(fb.pix[i+2], factor)
}

// Blit uploads the buffer and draws it scaled up to the window size.
// The offset carries the anxiety shake.
func (fb *Framebuffer) Blit(screen *ebiten.Image, scale, offsetX, offsetY float64) {
	// lazily created so the buffer stays usable without a GPU context
	if fb.img == nil {
		fb.img = ebiten.NewImage(fb.Width, fb.Height)
	}
	fb.img.WritePixels(fb.pix)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(fb.img, op)
}

func mix(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}

func scaleByte(v uint8, factor float64) uint8 {
	f := float64(v) * factor
	if f > 255 {
		return 255
	}
	if f < 0 {
		return 0
	}
	return uint8(f)
}

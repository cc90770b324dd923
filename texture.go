// texture.go
package main

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

const textureSize = 64

// Texture is a CPU-side RGBA image sampled by the render passes.
type Texture struct {
	W, H int
	pix  []byte
}

func newTexture(w, h int) *Texture {
	return &Texture{W: w, H: h, pix: make([]byte, w*h*4)}
}

func (t *Texture) set(x, y int, r, g, b uint8) {
	i := (y*t.W + x) * 4
	t.pix[i] = r
	t.pix[i+1] = g
	t.pix[i+2] = b
	t.pix[i+3] = 255
}

// At reads texel (x, y), wrapping both axes.
func (t *Texture) At(x, y int) (r, g, b uint8) {
	x = ((x % t.W) + t.W) % t.W
	y = ((y % t.H) + t.H) % t.H
	i := (y*t.W + x) * 4
	return t.pix[i], t.pix[i+1], t.pix[i+2]
}

// Sample reads the texel at fractional coordinates u, v in [0, 1).
func (t *Texture) Sample(u, v float64) (r, g, b uint8) {
	return t.At(int(u*float64(t.W)), int(v*float64(t.H)))
}

// Texture ids every render pass expects to exist.
const (
	texWall     = "wall"
	texExit     = "exit"
	texFloor    = "floor"
	texCeiling  = "ceiling"
	texPillRed  = "pill_red"
	texPillBlue = "pill_blue"
	texLightOn  = "light_on"
	texLightOff = "light_off"
)

var requiredTextures = []string{
	texWall, texExit, texFloor, texCeiling,
	texPillRed, texPillBlue, texLightOn, texLightOff,
}

// TextureManager owns the texture set. With no asset directory it
// synthesizes the whole set procedurally; with one, every required
// texture must load from <dir>/<id>.png or startup fails.
type TextureManager struct {
	textures map[string]*Texture
}

func NewTextureManager(assetDir string) (*TextureManager, error) {
	tm := &TextureManager{textures: make(map[string]*Texture)}
	if assetDir == "" {
		tm.synthesize()
		return tm, nil
	}
	for _, id := range requiredTextures {
		tex, err := loadTexturePNG(filepath.Join(assetDir, id+".png"))
		if err != nil {
			return nil, fmt.Errorf("texture %q: %w", id, err)
		}
		tm.textures[id] = tex
	}
	return tm, nil
}

// Get returns the texture for id; lookups of unknown ids fall back to
// the wall texture so a rendering typo shows up visually instead of
// crashing a frame.
func (tm *TextureManager) Get(id string) *Texture {
	if t, ok := tm.textures[id]; ok {
		return t
	}
	return tm.textures[texWall]
}

func loadTexturePNG(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	t := newTexture(b.Dx(), b.Dy())
	copy(t.pix, rgba.Pix)
	return t, nil
}

func (tm *TextureManager) synthesize() {
	tm.textures[texWall] = makeWallTexture()
	tm.textures[texExit] = makeExitTexture()
	tm.textures[texFloor] = makeFloorTexture()
	tm.textures[texCeiling] = makeCeilingTexture()
	tm.textures[texPillRed] = makePillTexture(200, 40, 40)
	tm.textures[texPillBlue] = makePillTexture(50, 90, 220)
	tm.textures[texLightOn] = makeLightTexture(true)
	tm.textures[texLightOff] = makeLightTexture(false)
}

// texNoise is a cheap deterministic hash in [0, 1), good enough for
// wallpaper grain.
func texNoise(x, y int) float64 {
	n := uint32(x)*374761393 + uint32(y)*668265263
	n = (n ^ (n >> 13)) * 1274126177
	return float64(n^(n>>16)) / float64(math.MaxUint32)
}

// makeWallTexture draws faded yellow wallpaper with vertical stripes
// and mottling stains.
func makeWallTexture() *Texture {
	t := newTexture(textureSize, textureSize)
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			base := 0.88 + 0.12*texNoise(x, y)
			if x%16 < 2 {
				base *= 0.92
			}
			stain := texNoise(x/7, y/9)
			if stain > 0.8 {
				base *= 0.85
			}
			t.set(x, y, uint8(212*base), uint8(196*base), uint8(120*base))
		}
	}
	return t
}

// makeExitTexture draws a dark metal door with a frame and a handle.
func makeExitTexture() *Texture {
	t := newTexture(textureSize, textureSize)
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			border := x < 6 || x >= t.W-6 || y < 6 || y >= t.H-6
			if border {
				t.set(x, y, 90, 70, 40)
				continue
			}
			g := 0.8 + 0.2*texNoise(x, y/3)
			r8, g8, b8 := uint8(45*g), uint8(70*g), uint8(50*g)
			// handle
			if x >= 44 && x < 50 && y >= 30 && y < 36 {
				r8, g8, b8 = 200, 190, 120
			}
			t.set(x, y, r8, g8, b8)
		}
	}
	return t
}

// makeFloorTexture draws damp brownish carpet.
func makeFloorTexture() *Texture {
	t := newTexture(textureSize, textureSize)
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			base := 0.82 + 0.18*texNoise(x*3, y*3)
			wet := texNoise(x/11, y/13)
			if wet > 0.75 {
				base *= 0.8
			}
			t.set(x, y, uint8(122*base), uint8(104*base), uint8(66*base))
		}
	}
	return t
}

// makeCeilingTexture draws acoustic tiles with a grid of seams.
func makeCeilingTexture() *Texture {
	t := newTexture(textureSize, textureSize)
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			base := 0.9 + 0.1*texNoise(x*2, y*2)
			if x%32 < 2 || y%32 < 2 {
				base *= 0.78
			}
			t.set(x, y, uint8(205*base), uint8(200*base), uint8(175*base))
		}
	}
	return t
}

// makePillTexture draws a capsule on a keyed background. Pixels left
// at alpha zero are skipped by the sprite raster.
func makePillTexture(r, g, b uint8) *Texture {
	t := newTexture(textureSize, textureSize)
	cx, cy := float64(textureSize)/2, float64(textureSize)/2
	for y := 0; y < t.H; y++ {
		for x := 0; x < t.W; x++ {
			// capsule: two circles joined by a box, tilted look via offset
			dx := float64(x) - cx
			dy := (float64(y) - cy) * 2.2
			d := math.Hypot(dx, dy)
			if d > 20 {
				continue // transparent
			}
			shade := 1 - d/28
			hr, hg, hb := r, g, b
			if float64(x) < cx {
				// white half of the capsule
				hr, hg, hb = 230, 230, 230
			}
			// specular stripe
			if y > 24 && y < 30 {
				shade = math.Min(1, shade+0.3)
			}
			t.set(x, y, scaleByte(hr, shade), scaleByte(hg, shade), scaleByte(hb, shade))
		}
	}
	return t
}

// makeLightTexture draws a fluorescent tube, lit or dark.
func makeLightTexture(on bool) *Texture {
	t := newTexture(textureSize, textureSize)
	for y := 20; y < 44; y++ {
		for x := 8; x < 56; x++ {
			if on {
				glow := 1 - math.Abs(float64(y)-32)/16
				t.set(x, y, scaleByte(255, 0.7+0.3*glow), scaleByte(250, 0.7+0.3*glow), scaleByte(210, 0.7+0.3*glow))
			} else {
				t.set(x, y, 70, 70, 65)
			}
		}
	}
	return t
}

// IsTransparent reports whether the texel at (x, y) was left unset,
// used by the sprite raster to key out the background.
func (t *Texture) IsTransparent(x, y int) bool {
	x = ((x % t.W) + t.W) % t.W
	y = ((y % t.H) + t.H) % t.H
	return t.pix[(y*t.W+x)*4+3] == 0
}

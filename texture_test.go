package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizedTextureSet(t *testing.T) {
	tm, err := NewTextureManager("")
	require.NoError(t, err)

	for _, id := range requiredTextures {
		t.Run(id, func(t *testing.T) {
			tex := tm.Get(id)
			require.NotNil(t, tex)
			assert.Equal(t, textureSize, tex.W)
			assert.Equal(t, textureSize, tex.H)
		})
	}
}

func TestTextureSamplingWraps(t *testing.T) {
	tm, err := NewTextureManager("")
	require.NoError(t, err)
	tex := tm.Get(texWall)

	r1, g1, b1 := tex.At(5, 9)
	r2, g2, b2 := tex.At(5+tex.W, 9-tex.H)
	assert.Equal(t, [3]uint8{r1, g1, b1}, [3]uint8{r2, g2, b2})
}

func TestUnknownTextureFallsBackToWall(t *testing.T) {
	tm, err := NewTextureManager("")
	require.NoError(t, err)
	assert.Same(t, tm.Get(texWall), tm.Get("no-such-texture"))
}

func TestPillTextureHasTransparentBackground(t *testing.T) {
	tm, err := NewTextureManager("")
	require.NoError(t, err)
	tex := tm.Get(texPillRed)

	assert.True(t, tex.IsTransparent(0, 0), "corner should be keyed out")
	assert.False(t, tex.IsTransparent(textureSize/2, textureSize/2), "capsule center should be opaque")
}

func TestMissingAssetDirIsFatal(t *testing.T) {
	_, err := NewTextureManager(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "texture")
}

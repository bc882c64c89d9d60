package cache

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSurface(w int, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: uint8(x + y), A: 0xFF})
		}
	}
	return img
}

func TestSurfaceCacheRoundTrip(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	img := testSurface(256, 96)
	require.NoError(t, c.Store("abc", img))

	got, ok := c.Load("abc")
	require.True(t, ok)
	assert.Equal(t, img.Bounds(), got.Bounds())
	assert.Equal(t, img.Pix, got.Pix)

	_, ok = c.Load("missing")
	assert.False(t, ok)
}

func TestSurfaceCacheSubImage(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	full := testSurface(64, 64)
	sub := full.SubImage(image.Rect(8, 16, 40, 48)).(*image.RGBA)
	require.NoError(t, c.Store("sub", sub))

	got, ok := c.Load("sub")
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 32, 32), got.Bounds())
	assert.Equal(t, full.RGBAAt(8, 16), got.RGBAAt(0, 0))
	assert.Equal(t, full.RGBAAt(39, 47), got.RGBAAt(31, 31))
}

func TestSurfaceCacheOverwrite(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Store("k", testSurface(8, 8)))
	replacement := image.NewRGBA(image.Rect(0, 0, 4, 2))
	require.NoError(t, c.Store("k", replacement))

	got, ok := c.Load("k")
	require.True(t, ok)
	assert.Equal(t, replacement.Pix, got.Pix)
}

func TestSurfaceCacheCorruptEntries(t *testing.T) {
	dir := t.TempDir()
	c, err := New(dir)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Store("good", testSurface(16, 16)))
	data, err := os.ReadFile(filepath.Join(dir, "good"+fileSuffix))
	require.NoError(t, err)

	for _, tc := range []struct {
		name string
		data []byte
	}{
		{name: "empty", data: nil},
		{name: "wrong magic", data: append([]byte("NOPE"), data[4:]...)},
		{name: "truncated body", data: data[:len(data)-5]},
		{name: "zero size", data: append([]byte("VRSC\x00\x00\x00\x00\x10\x00\x00\x00"), data[headerSize:]...)},
		{name: "size disagrees with body", data: append([]byte("VRSC\x10\x00\x00\x00\x11\x00\x00\x00"), data[headerSize:]...)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(filepath.Join(dir, "bad"+fileSuffix), tc.data, 0o644))
			_, ok := c.Load("bad")
			assert.False(t, ok)
		})
	}
}

func TestSurfaceCacheRejectsPathKeys(t *testing.T) {
	c, err := New(t.TempDir())
	require.NoError(t, err)
	defer c.Close()

	for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
		assert.ErrorIs(t, c.Store(key, testSurface(8, 8)), ErrBadKey, "key %q", key)
		_, ok := c.Load(key)
		assert.False(t, ok)
	}
}

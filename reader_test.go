package phoenixvr

import (
	"bytes"
	"image"
	"testing"

	"github.com/kpfaulkner/phoenixvr-go/testcommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisteredFormat(t *testing.T) {
	data := testcommon.PictureContainer(t, false, 50, testcommon.UniformBlocks(640, 480, [3]int32{10, 0, 0}))

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "vr", format)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)

	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "vr", format)
	assert.Equal(t, image.Rect(0, 0, 640, 480), img.Bounds())
}

func TestDecodePanoramaAtlas(t *testing.T) {
	data := testcommon.PictureContainer(t, true, 50, testcommon.UniformBlocks(256, 1536, [3]int32{}))
	img, err := Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 256, 1536), img.Bounds())
}

func TestDecodeRejectsOtherData(t *testing.T) {
	_, err := Decode(bytes.NewReader([]byte("\x89PNG\r\n\x1a\n")))
	assert.Error(t, err)
}

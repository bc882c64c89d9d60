package core

import (
	"encoding/binary"
	"testing"

	"github.com/kpfaulkner/phoenixvr-go/testcommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContainer(t *testing.T) {
	data := testcommon.BuildContainer(
		testcommon.Chunk{ID: 0xDEADBEEF, Body: []byte{1, 2, 3, 4}},
		testcommon.Chunk{ID: ChunkStatic3D, Quality: 75, Payload: []byte{9, 8, 7}},
		testcommon.Chunk{ID: 0x00000001},
	)

	container, err := ParseContainer(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(len(data)), container.FileSize)
	require.Len(t, container.Chunks, 3)

	assert.Equal(t, uint32(0xDEADBEEF), container.Chunks[0].ID)
	assert.Equal(t, uint32(12), container.Chunks[0].Size)
	assert.Equal(t, 8, container.Chunks[0].Offset)
	assert.Nil(t, container.Chunks[0].Picture)
	assert.False(t, container.Chunks[0].IsPicture())

	pic, err := container.Picture()
	require.NoError(t, err)
	assert.Same(t, &container.Chunks[1], pic)
	assert.True(t, pic.IsPanorama())
	assert.Equal(t, uint32(75), pic.Picture.Quality)
	assert.Equal(t, []byte{9, 8, 7}, pic.Picture.Payload)
	assert.Contains(t, pic.String(), "static3d")
}

func TestParseContainerErrors(t *testing.T) {
	picture := testcommon.Chunk{ID: ChunkStatic2D, Quality: 50, Payload: []byte{1, 2, 3, 4}}
	valid := testcommon.BuildContainer(picture)

	badSize := testcommon.BuildContainer(testcommon.Chunk{ID: 7})
	binary.LittleEndian.PutUint32(badSize[12:], 4)

	longer := append([]byte(nil), valid...)
	binary.LittleEndian.PutUint32(longer[4:], uint32(len(valid)+8))

	for _, tc := range []struct {
		name     string
		data     []byte
		expected error
	}{
		{name: "empty", data: nil, expected: ErrTruncated},
		{name: "bad magic", data: []byte{0x89, 'P', 'N', 'G', 0, 0, 0, 0}, expected: ErrBadMagic},
		{name: "missing file size", data: valid[:6], expected: ErrTruncated},
		{name: "payload cut short", data: valid[:len(valid)-2], expected: ErrTruncated},
		{name: "file size past the data", data: longer, expected: ErrTruncated},
		{name: "chunk smaller than its header", data: badSize, expected: ErrTruncated},
		{name: "two pictures", data: testcommon.BuildContainer(picture, picture), expected: ErrDuplicatePicture},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseContainer(tc.data)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestContainerWithoutPicture(t *testing.T) {
	container, err := ParseContainer(testcommon.BuildContainer(testcommon.Chunk{ID: 3, Body: []byte{0}}))
	require.NoError(t, err)
	_, err = container.Picture()
	assert.ErrorIs(t, err, ErrNoPicture)
}

func TestSplitPayload(t *testing.T) {
	payload := []byte{
		2, 0, 0, 0, // huffman section size
		5, 0, 0, 0, // unpacked count
		0xAA, 0xBB,
		1, 0, 0, 0, // dc offset
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06,
	}

	p, err := SplitPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xAA, 0xBB}, p.Huffman)
	assert.Equal(t, 5, p.UnpackedCount)
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06}, p.AC)
	assert.Equal(t, []byte{0x06}, p.DC)
}

func TestSplitPayloadErrors(t *testing.T) {

	for _, tc := range []struct {
		name    string
		payload []byte
	}{
		{name: "no header", payload: []byte{1, 0, 0}},
		{name: "huffman section past end", payload: []byte{0xFF, 0, 0, 0, 1, 0, 0, 0, 0}},
		{name: "missing dc offset", payload: []byte{1, 0, 0, 0, 1, 0, 0, 0, 0xAA, 0}},
		{name: "dc offset past end", payload: []byte{0, 0, 0, 0, 1, 0, 0, 0, 9, 0, 0, 0, 0xAA}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SplitPayload(tc.payload)
			assert.ErrorIs(t, err, ErrTruncated)
		})
	}
}

package testcommon

import (
	"testing"

	"github.com/kpfaulkner/phoenixvr-go/vrenc"
)

const (
	ChunkStatic2D = vrenc.ChunkStatic2D
	ChunkStatic3D = vrenc.ChunkStatic3D
)

type Chunk = vrenc.Chunk

var (
	BuildContainer = vrenc.BuildContainer
	EncodePayload  = vrenc.EncodePayload
	UniformBlocks  = vrenc.UniformBlocks
)

// PictureContainer encodes blocks into a single picture container,
// failing the test on error.
func PictureContainer(t testing.TB, panorama bool, quality uint32, blocks [][64]int32) []byte {
	t.Helper()
	data, err := vrenc.EncodePicture(panorama, quality, blocks)
	if err != nil {
		t.Fatalf("error encoding picture : %v", err)
	}
	return data
}

// Package vrenc writes .vr containers. It is the inverse of the decoder and
// is used to synthesise pictures for tools and tests.
package vrenc

import (
	"encoding/binary"

	"github.com/kpfaulkner/phoenixvr-go/entropy"
	"github.com/kpfaulkner/phoenixvr-go/frame"
)

const (
	magicVR       = 0x12FA84AB
	ChunkStatic2D = 0xA0B1C400
	ChunkStatic3D = 0xA0B1C200
)

// Chunk describes one chunk for BuildContainer. Picture chunks carry
// Quality and Payload, anything else carries Body.
type Chunk struct {
	ID      uint32
	Quality uint32
	Payload []byte
	Body    []byte
}

func (c Chunk) isPicture() bool {
	return c.ID == ChunkStatic2D || c.ID == ChunkStatic3D
}

// BuildContainer lays out a complete .vr file. Picture chunks declare a
// size of 8 so nothing beyond their payload is skipped.
func BuildContainer(chunks ...Chunk) []byte {
	out := binary.LittleEndian.AppendUint32(nil, magicVR)
	out = binary.LittleEndian.AppendUint32(out, 0)
	for _, c := range chunks {
		out = binary.LittleEndian.AppendUint32(out, c.ID)
		if c.isPicture() {
			out = binary.LittleEndian.AppendUint32(out, 8)
			out = binary.LittleEndian.AppendUint32(out, c.Quality)
			out = binary.LittleEndian.AppendUint32(out, uint32(len(c.Payload)))
			out = append(out, c.Payload...)
			continue
		}
		out = binary.LittleEndian.AppendUint32(out, uint32(8+len(c.Body)))
		out = append(out, c.Body...)
	}
	binary.LittleEndian.PutUint32(out[4:], uint32(len(out)))
	return out
}

// EncodePayload packs blocks of zig-zag ordered levels, in decode order,
// into a picture payload.
func EncodePayload(blocks [][64]int32) ([]byte, error) {
	be := frame.NewBlockEncoder()
	for i := range blocks {
		if err := be.EncodeBlock(&blocks[i]); err != nil {
			return nil, err
		}
	}
	symbols := be.Symbols()
	huff, err := entropy.Pack(symbols)
	if err != nil {
		return nil, err
	}
	ac := be.ACStream()
	dc := be.DCStream()

	out := binary.LittleEndian.AppendUint32(nil, uint32(len(huff)))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(symbols)))
	out = append(out, huff...)
	out = binary.LittleEndian.AppendUint32(out, uint32(len(ac)))
	out = append(out, ac...)
	// dc starts 4 bytes past the end of ac
	out = append(out, 0, 0, 0, 0)
	return append(out, dc...), nil
}

// EncodePicture encodes blocks and wraps them in a single picture chunk.
func EncodePicture(panorama bool, quality uint32, blocks [][64]int32) ([]byte, error) {
	payload, err := EncodePayload(blocks)
	if err != nil {
		return nil, err
	}
	id := uint32(ChunkStatic2D)
	if panorama {
		id = ChunkStatic3D
	}
	return BuildContainer(Chunk{ID: id, Quality: quality, Payload: payload}), nil
}

// UniformBlocks gives the blocks for a width x height picture whose every
// cell has only DC levels, one per channel.
func UniformBlocks(width int, height int, dc [frame.NumChannels]int32) [][64]int32 {
	cells := (width / frame.BlockSize) * (height / frame.BlockSize)
	blocks := make([][64]int32, 0, cells*frame.NumChannels)
	for i := 0; i < cells; i++ {
		for c := 0; c < frame.NumChannels; c++ {
			blocks = append(blocks, [64]int32{dc[c]})
		}
	}
	return blocks
}

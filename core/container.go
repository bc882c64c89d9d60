package core

import (
	"fmt"

	"github.com/kpfaulkner/phoenixvr-go/vrio"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	MagicVR       uint32 = 0x12FA84AB
	ChunkStatic2D uint32 = 0xA0B1C400
	ChunkStatic3D uint32 = 0xA0B1C200

	chunkHeaderSize = 8
)

var (
	ErrBadMagic         = errors.New("not a vr container")
	ErrTruncated        = errors.New("container truncated")
	ErrNoPicture        = errors.New("container holds no picture")
	ErrDuplicatePicture = errors.New("container holds more than one picture")
)

// PictureChunk is the body of a Static2D or Static3D chunk.
type PictureChunk struct {
	Quality uint32
	Payload []byte
}

type Chunk struct {
	ID     uint32
	Size   uint32
	Offset int

	// Picture is only set for picture chunks.
	Picture *PictureChunk
}

func (c Chunk) IsPicture() bool {
	return c.ID == ChunkStatic2D || c.ID == ChunkStatic3D
}

func (c Chunk) IsPanorama() bool {
	return c.ID == ChunkStatic3D
}

func (c Chunk) String() string {
	switch c.ID {
	case ChunkStatic2D:
		return fmt.Sprintf("static2d @%08x size %d quality %d packed %d", c.Offset, c.Size, c.Picture.Quality, len(c.Picture.Payload))
	case ChunkStatic3D:
		return fmt.Sprintf("static3d @%08x size %d quality %d packed %d", c.Offset, c.Size, c.Picture.Quality, len(c.Picture.Payload))
	default:
		return fmt.Sprintf("chunk %08x @%08x size %d", c.ID, c.Offset, c.Size)
	}
}

// Container is the parsed chunk list of a .vr file. Payload slices alias
// the buffer passed to ParseContainer.
type Container struct {
	FileSize uint32
	Chunks   []Chunk
	picture  int
}

// Picture returns the single picture chunk.
func (c *Container) Picture() (*Chunk, error) {
	if c.picture < 0 {
		return nil, ErrNoPicture
	}
	return &c.Chunks[c.picture], nil
}

// ParseContainer walks the chunk list up to the declared file size.
//
// A picture chunk is followed by chunkSize-8 further bytes once its payload
// has been read; every other chunk is skipped the same way.
func ParseContainer(data []byte) (*Container, error) {
	bc := vrio.NewByteCursor(data)
	magic, err := bc.ReadU32()
	if err != nil {
		return nil, errors.Wrap(ErrTruncated, "reading magic")
	}
	if magic != MagicVR {
		return nil, errors.Wrapf(ErrBadMagic, "magic %08x", magic)
	}
	fileSize, err := bc.ReadU32()
	if err != nil {
		return nil, errors.Wrap(ErrTruncated, "reading file size")
	}
	log.Debugf("file size = %08x", fileSize)

	container := &Container{FileSize: fileSize, picture: -1}
	for uint64(bc.Pos()) < uint64(fileSize) {
		chunk, err := readChunk(bc)
		if err != nil {
			return nil, err
		}
		if chunk.IsPicture() {
			if container.picture >= 0 {
				return nil, errors.Wrapf(ErrDuplicatePicture, "second picture chunk at %08x", chunk.Offset)
			}
			container.picture = len(container.Chunks)
		}
		container.Chunks = append(container.Chunks, chunk)
	}
	return container, nil
}

func readChunk(bc *vrio.ByteCursor) (Chunk, error) {
	chunk := Chunk{Offset: bc.Pos()}
	var err error
	if chunk.ID, err = bc.ReadU32(); err != nil {
		return chunk, errors.Wrapf(ErrTruncated, "chunk id at %08x", chunk.Offset)
	}
	if chunk.Size, err = bc.ReadU32(); err != nil {
		return chunk, errors.Wrapf(ErrTruncated, "chunk size at %08x", chunk.Offset)
	}
	log.Debugf("chunk %08x %d", chunk.ID, chunk.Size)
	if chunk.Size < chunkHeaderSize {
		return chunk, errors.Wrapf(ErrTruncated, "chunk %08x declares size %d", chunk.ID, chunk.Size)
	}

	if chunk.IsPicture() {
		pic := &PictureChunk{}
		if pic.Quality, err = bc.ReadU32(); err != nil {
			return chunk, errors.Wrapf(ErrTruncated, "picture quality at %08x", bc.Pos())
		}
		packed, err := bc.ReadU32()
		if err != nil {
			return chunk, errors.Wrapf(ErrTruncated, "picture size at %08x", bc.Pos())
		}
		if pic.Payload, err = bc.ReadBytes(int(packed)); err != nil {
			return chunk, errors.Wrapf(ErrTruncated, "picture payload of %d bytes at %08x", packed, bc.Pos())
		}
		log.Debugf("static picture header, quality: %d, packed data size: %d", pic.Quality, packed)
		chunk.Picture = pic
	}

	if err := bc.Skip(int(chunk.Size - chunkHeaderSize)); err != nil {
		return chunk, errors.Wrapf(ErrTruncated, "skipping chunk %08x", chunk.ID)
	}
	return chunk, nil
}

package frame

import (
	"errors"
	"fmt"

	"github.com/kpfaulkner/phoenixvr-go/util"
	log "github.com/sirupsen/logrus"
)

const (
	ChannelY  = 0
	ChannelCb = 1
	ChannelCr = 2

	NumChannels = 3
	BlockSize   = 8
)

var (
	ErrPlaneOverflow  = errors.New("block lies outside the picture planes")
	ErrPlaneDimension = errors.New("plane dimensions must be positive multiples of 8")

	planePool = util.NewMatrixPool[uint8]()
)

// BlockCursor tracks where the next block goes. Blocks cycle through the
// three channels for one 8x8 cell before moving right, and wrap to the next
// row of cells at the plane width.
type BlockCursor struct {
	X       int
	Y       int
	Channel int
}

func (c *BlockCursor) Advance(width int) {
	c.Channel++
	if c.Channel < NumChannels {
		return
	}
	c.Channel = 0
	c.X += BlockSize
	if c.X >= width {
		c.X = 0
		c.Y += BlockSize
	}
}

// Planes holds the three full resolution channel planes of a picture.
type Planes struct {
	Width    int
	Height   int
	Channels [NumChannels]*util.Matrix[uint8]
	pooled   bool
}

func NewPlanes(width int, height int) (*Planes, error) {
	if err := checkPlaneSize(width, height); err != nil {
		return nil, err
	}
	p := &Planes{Width: width, Height: height}
	for c := range p.Channels {
		p.Channels[c] = util.New2DMatrix[uint8](height, width)
	}
	return p, nil
}

// NewPooledPlanes is NewPlanes backed by the package plane pool. Call
// Release once the planes have been converted.
func NewPooledPlanes(width int, height int) (*Planes, error) {
	if err := checkPlaneSize(width, height); err != nil {
		return nil, err
	}
	p := &Planes{Width: width, Height: height, pooled: true}
	for c := range p.Channels {
		p.Channels[c] = planePool.Get(height, width)
	}
	return p, nil
}

func checkPlaneSize(width int, height int) error {
	if width <= 0 || height <= 0 || width%BlockSize != 0 || height%BlockSize != 0 {
		return fmt.Errorf("%w: %dx%d", ErrPlaneDimension, width, height)
	}
	return nil
}

// PlanePoolMetrics reports how often pooled planes were reused.
func PlanePoolMetrics() (hits int64, misses int64) {
	return planePool.GetMetrics()
}

// Release hands pooled planes back. The planes must not be used afterwards.
func (p *Planes) Release() {
	if !p.pooled {
		return
	}
	for c := range p.Channels {
		planePool.Put(p.Channels[c])
		p.Channels[c] = nil
	}
	p.pooled = false
}

// PutBlock writes an 8x8 pixel block at the cursor.
func (p *Planes) PutBlock(cursor BlockCursor, block *[64]uint8) error {
	if cursor.X+BlockSize > p.Width || cursor.Y+BlockSize > p.Height {
		return fmt.Errorf("%w: block at %d,%d in %dx%d", ErrPlaneOverflow, cursor.X, cursor.Y, p.Width, p.Height)
	}
	p.Channels[cursor.Channel].SetBlock(cursor.Y, cursor.X, block)
	return nil
}

// DecodePlanes consumes blocks until the symbol sequence is exhausted and
// returns how many blocks were placed.
func DecodePlanes(planes *Planes, bd *BlockDecoder) (int, error) {
	var (
		cursor BlockCursor
		coeffs [64]float32
		pixels [64]uint8
		blocks int
	)
	for bd.More() {
		if cursor.Y >= planes.Height {
			return blocks, fmt.Errorf("%w: %d symbols left after %d blocks", ErrPlaneOverflow, len(bd.symbols)-bd.pos, blocks)
		}
		if err := bd.DecodeBlock(cursor.Channel, &coeffs); err != nil {
			return blocks, fmt.Errorf("block %d (%d,%d channel %d): %w", blocks, cursor.X, cursor.Y, cursor.Channel, err)
		}
		InverseTransform(&coeffs, &pixels)
		if err := planes.PutBlock(cursor, &pixels); err != nil {
			return blocks, err
		}
		blocks++
		cursor.Advance(planes.Width)
	}
	log.Debugf("placed %d blocks, cursor at %d,%d", blocks, cursor.X, cursor.Y)
	return blocks, nil
}

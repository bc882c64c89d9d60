package frame

import (
	"fmt"

	"github.com/kpfaulkner/phoenixvr-go/vrio"
)

const maxACBits = 15

// BlockEncoder is the inverse of BlockDecoder. It takes quantised levels
// in zig-zag order and produces the symbol sequence (before huffman
// packing) and the two raw bitstreams. Tools use it to author pictures and
// tests use it to build fixtures.
type BlockEncoder struct {
	symbols []byte
	ac      *vrio.BitWriter
	dc      *vrio.BitWriter
	blocks  int
}

func NewBlockEncoder() *BlockEncoder {
	return &BlockEncoder{
		ac: vrio.NewBitWriter(),
		dc: vrio.NewBitWriter(),
	}
}

// EncodeBlock appends one block. levels[0] is the DC level and must fit a
// signed byte; AC levels must fit 15 magnitude bits.
func (be *BlockEncoder) EncodeBlock(levels *[64]int32) error {
	if levels[0] < -128 || levels[0] > 127 {
		return fmt.Errorf("DC level %d does not fit a signed byte", levels[0])
	}
	be.dc.WriteUInt(uint32(uint8(int8(levels[0]))), 8)

	last := 0
	for idx := 1; idx < 64; idx++ {
		if levels[idx] != 0 {
			last = idx
		}
	}

	run := 0
	for idx := 1; idx <= last; idx++ {
		v := levels[idx]
		if v == 0 {
			run++
			continue
		}
		size := vrio.MagnitudeBits(v)
		if size > maxACBits {
			return fmt.Errorf("AC level %d at index %d needs %d bits", v, idx, size)
		}
		for run >= 16 {
			be.symbols = append(be.symbols, cmdSkip16)
			run -= 16
		}
		be.symbols = append(be.symbols, byte(run<<4|size))
		be.ac.WriteInt(v, size)
		run = 0
	}
	if last < 63 {
		be.symbols = append(be.symbols, cmdEndOfBlock)
	}
	be.blocks++
	return nil
}

func (be *BlockEncoder) Blocks() int {
	return be.blocks
}

func (be *BlockEncoder) Symbols() []byte {
	return be.symbols
}

func (be *BlockEncoder) ACStream() []byte {
	return be.ac.Bytes()
}

func (be *BlockEncoder) DCStream() []byte {
	return be.dc.Bytes()
}

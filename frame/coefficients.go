package frame

import (
	"errors"
	"fmt"

	"github.com/kpfaulkner/phoenixvr-go/vrio"
)

// ZigZag maps a zig-zag scan index to its natural position in the block.
var ZigZag = [64]uint8{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

const (
	cmdEndOfBlock = 0x00
	cmdSkip16     = 0xF0
)

var ErrSymbolsExhausted = errors.New("symbol stream ended inside a block")

// BlockDecoder turns the huffman symbol sequence plus the raw AC and DC
// bitstreams into dequantised coefficient blocks.
type BlockDecoder struct {
	quant   *Quantisation
	symbols []byte
	pos     int
	ac      *vrio.BitReader
	dc      *vrio.BitReader
}

func NewBlockDecoder(quant *Quantisation, symbols []byte, acStream []byte, dcStream []byte) *BlockDecoder {
	return &BlockDecoder{
		quant:   quant,
		symbols: symbols,
		ac:      vrio.NewBitReader(acStream, 0),
		dc:      vrio.NewBitReader(dcStream, 0),
	}
}

// More reports whether unread symbols remain.
func (bd *BlockDecoder) More() bool {
	return bd.pos < len(bd.symbols)
}

// SymbolsRead is how far into the symbol sequence decoding has got.
func (bd *BlockDecoder) SymbolsRead() int {
	return bd.pos
}

// DecodeBlock fills coeffs (natural order) for the next block of channel.
//
// The DC term is always 8 raw bits read as a signed byte and scaled by the
// first quantiser entry; it never passes through the symbol stream.
func (bd *BlockDecoder) DecodeBlock(channel int, coeffs *[64]float32) error {
	*coeffs = [64]float32{}
	quant := bd.quant.ForChannel(channel)

	raw, err := bd.dc.ReadUInt(8)
	if err != nil {
		return fmt.Errorf("reading DC: %w", err)
	}
	coeffs[0] = float32(quant[0] * int32(int8(raw)))

	for idx := 1; idx < 64; {
		if bd.pos >= len(bd.symbols) {
			return fmt.Errorf("%w at symbol %d", ErrSymbolsExhausted, bd.pos)
		}
		cmd := bd.symbols[bd.pos]
		bd.pos++

		if cmd == cmdEndOfBlock {
			break
		}
		if cmd == cmdSkip16 {
			idx += 16
			continue
		}

		idx += int(cmd >> 4)
		size := int(cmd & 0x0F)
		if size == 0 || idx >= 64 {
			continue
		}
		v, err := bd.ac.ReadInt(size)
		if err != nil {
			return fmt.Errorf("reading AC at index %d: %w", idx, err)
		}
		pos := ZigZag[idx]
		coeffs[pos] = float32(quant[pos] * v)
		idx++
	}
	return nil
}

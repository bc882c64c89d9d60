package vrio

import (
	"errors"
	"fmt"
)

var ErrUnexpectedEnd = errors.New("unexpected end of bitstream")

// BitReader walks a byte slice a bit at a time, most significant bit first.
// A reader belongs to a single decode call; it is never shared.
type BitReader struct {
	data    []byte
	bytePos int
	bitMask uint8
}

func NewBitReader(data []byte, bytePos int) *BitReader {
	return &BitReader{
		data:    data,
		bytePos: bytePos,
		bitMask: 0x80,
	}
}

// BytePos is the index of the byte holding the next bit.
func (br *BitReader) BytePos() int {
	return br.bytePos
}

// AtEnd reports whether every bit has been consumed.
func (br *BitReader) AtEnd() bool {
	return br.bytePos >= len(br.data)
}

// RemainingBytes counts the bytes not yet fully consumed.
func (br *BitReader) RemainingBytes() int {
	if br.bytePos >= len(br.data) {
		return 0
	}
	return len(br.data) - br.bytePos
}

func (br *BitReader) ReadBit() (bool, error) {
	if br.bytePos >= len(br.data) {
		return false, fmt.Errorf("%w: reading bit at byte %d of %d", ErrUnexpectedEnd, br.bytePos, len(br.data))
	}
	bit := br.data[br.bytePos]&br.bitMask != 0
	br.bitMask >>= 1
	if br.bitMask == 0 {
		br.bitMask = 0x80
		br.bytePos++
	}
	return bit, nil
}

// ReadUInt reads n bits. The first bit read becomes bit 0 of the result,
// the second bit 1 and so on.
func (br *BitReader) ReadUInt(n int) (uint32, error) {
	if n < 0 || n > 32 {
		return 0, fmt.Errorf("must read between 0-32 bits, got %d", n)
	}
	var value uint32
	for i := 0; i < n; i++ {
		bit, err := br.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit {
			value |= 1 << i
		}
	}
	return value, nil
}

// ReadInt reads an n bit excess coded value: when the top bit is clear the
// value is negative and (1<<n)-1 is subtracted.
func (br *BitReader) ReadInt(n int) (int32, error) {
	if n == 0 {
		return 0, nil
	}
	u, err := br.ReadUInt(n)
	if err != nil {
		return 0, err
	}
	return UnpackExcess(u, n), nil
}

func (br *BitReader) AlignToByte() {
	if br.bitMask != 0x80 {
		br.bitMask = 0x80
		br.bytePos++
	}
}

func UnpackExcess(value uint32, n int) int32 {
	v := int32(value)
	if value&(1<<(n-1)) == 0 {
		v -= int32(1)<<n - 1
	}
	return v
}

package vrio

import (
	"encoding/binary"
	"fmt"
)

// ByteCursor reads little endian fields from an in-memory buffer and
// reports ErrUnexpectedEnd instead of panicking on short input.
type ByteCursor struct {
	data []byte
	pos  int
}

func NewByteCursor(data []byte) *ByteCursor {
	return &ByteCursor{data: data}
}

func (bc *ByteCursor) Pos() int {
	return bc.pos
}

func (bc *ByteCursor) Len() int {
	return len(bc.data)
}

func (bc *ByteCursor) Remaining() int {
	return len(bc.data) - bc.pos
}

func (bc *ByteCursor) ReadU32() (uint32, error) {
	v, err := Uint32At(bc.data, bc.pos)
	if err != nil {
		return 0, err
	}
	bc.pos += 4
	return v, nil
}

// ReadBytes returns the next n bytes without copying.
func (bc *ByteCursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > bc.Remaining() {
		return nil, fmt.Errorf("%w: want %d bytes at offset %d, have %d", ErrUnexpectedEnd, n, bc.pos, bc.Remaining())
	}
	b := bc.data[bc.pos : bc.pos+n]
	bc.pos += n
	return b, nil
}

func (bc *ByteCursor) Skip(n int) error {
	_, err := bc.ReadBytes(n)
	return err
}

// Uint32At reads a little endian uint32 at offset.
func Uint32At(data []byte, offset int) (uint32, error) {
	if offset < 0 || offset+4 > len(data) {
		return 0, fmt.Errorf("%w: u32 at offset %d, length %d", ErrUnexpectedEnd, offset, len(data))
	}
	return binary.LittleEndian.Uint32(data[offset:]), nil
}

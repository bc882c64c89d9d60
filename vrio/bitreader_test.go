package vrio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadBit tests the reading of single bits, most significant first.
func TestReadBit(t *testing.T) {

	for _, tc := range []struct {
		name     string
		data     []uint8
		expected []bool
	}{
		{
			name:     "high bit first",
			data:     []uint8{0x80},
			expected: []bool{true, false, false, false, false, false, false, false},
		},
		{
			name:     "crosses byte boundary",
			data:     []uint8{0x01, 0x80},
			expected: []bool{false, false, false, false, false, false, false, true, true, false},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			br := NewBitReader(tc.data, 0)
			for i, exp := range tc.expected {
				bit, err := br.ReadBit()
				require.NoError(t, err)
				assert.Equal(t, exp, bit, "bit %d", i)
			}
		})
	}
}

// TestReadUInt checks the least significant first assembly order.
func TestReadUInt(t *testing.T) {

	for _, tc := range []struct {
		name     string
		data     []uint8
		numBits  int
		expected uint32
	}{
		{
			name:     "single set bit lands in bit 0",
			data:     []uint8{0x80},
			numBits:  4,
			expected: 1,
		},
		{
			name:     "reversed nibble",
			data:     []uint8{0xC0},
			numBits:  4,
			expected: 3,
		},
		{
			name:     "8 bits of 0x01 reverse to 0x80",
			data:     []uint8{0x01},
			numBits:  8,
			expected: 0x80,
		},
		{
			name:     "zero bits",
			data:     []uint8{},
			numBits:  0,
			expected: 0,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			br := NewBitReader(tc.data, 0)
			v, err := br.ReadUInt(tc.numBits)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v)
		})
	}
}

func TestReadInt(t *testing.T) {

	for _, tc := range []struct {
		name     string
		raw      uint32
		numBits  int
		expected int32
	}{
		{name: "1 bit set", raw: 1, numBits: 1, expected: 1},
		{name: "1 bit clear", raw: 0, numBits: 1, expected: -1},
		{name: "3 bits top set", raw: 5, numBits: 3, expected: 5},
		{name: "3 bits top clear", raw: 2, numBits: 3, expected: -5},
		{name: "3 bits zero", raw: 0, numBits: 3, expected: -7},
	} {
		t.Run(tc.name, func(t *testing.T) {
			bw := NewBitWriter()
			bw.WriteUInt(tc.raw, tc.numBits)
			br := NewBitReader(bw.Bytes(), 0)
			v, err := br.ReadInt(tc.numBits)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, v)
		})
	}
}

func TestBitRoundTrip(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, true, false, true, true, true, false, true}
	bw := NewBitWriter()
	for _, b := range bits {
		bw.WriteBit(b)
	}
	bw.WriteUInt(0x2A5, 11)
	for _, v := range []int32{-1, 1, -7, 6, -200, 255} {
		bw.WriteInt(v, MagnitudeBits(v))
	}

	br := NewBitReader(bw.Bytes(), 0)
	for i, exp := range bits {
		b, err := br.ReadBit()
		require.NoError(t, err)
		assert.Equal(t, exp, b, "bit %d", i)
	}
	u, err := br.ReadUInt(11)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x2A5), u)
	for _, exp := range []int32{-1, 1, -7, 6, -200, 255} {
		v, err := br.ReadInt(MagnitudeBits(exp))
		require.NoError(t, err)
		assert.Equal(t, exp, v)
	}
}

func TestAlignToByte(t *testing.T) {
	br := NewBitReader([]byte{0xFF, 0x0F}, 0)
	br.AlignToByte()
	assert.Equal(t, 0, br.BytePos(), "aligned reader must not move")

	_, err := br.ReadUInt(3)
	require.NoError(t, err)
	br.AlignToByte()
	assert.Equal(t, 1, br.BytePos())

	v, err := br.ReadUInt(8)
	require.NoError(t, err)
	assert.Equal(t, uint32(0xF0), v)
	assert.True(t, br.AtEnd())
}

func TestReadPastEnd(t *testing.T) {
	br := NewBitReader([]byte{0xAA}, 0)
	_, err := br.ReadUInt(8)
	require.NoError(t, err)

	_, err = br.ReadBit()
	assert.True(t, errors.Is(err, ErrUnexpectedEnd))

	_, err = NewBitReader([]byte{0xAA}, 0).ReadUInt(9)
	assert.ErrorIs(t, err, ErrUnexpectedEnd)
}

func TestByteCursor(t *testing.T) {
	bc := NewByteCursor([]byte{0xAB, 0x84, 0xFA, 0x12, 1, 2, 3})
	v, err := bc.ReadU32()
	require.NoError(t, err)
	assert.Equal(t, uint32(0x12FA84AB), v)

	b, err := bc.ReadBytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)
	assert.Equal(t, 1, bc.Remaining())

	_, err = bc.ReadU32()
	assert.ErrorIs(t, err, ErrUnexpectedEnd)
	assert.ErrorIs(t, bc.Skip(2), ErrUnexpectedEnd)
}

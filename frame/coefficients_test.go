package frame

import (
	"testing"

	"github.com/kpfaulkner/phoenixvr-go/vrio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZigZagIsPermutation(t *testing.T) {
	var seen [64]bool
	for _, pos := range ZigZag {
		assert.False(t, seen[pos], "position %d mapped twice", pos)
		seen[pos] = true
	}
	assert.Equal(t, uint8(0), ZigZag[0])
	assert.Equal(t, uint8(63), ZigZag[63])
}

func TestEncodeBlockSymbols(t *testing.T) {

	for _, tc := range []struct {
		name            string
		levels          [64]int32
		expectedSymbols []byte
	}{
		{
			name:            "dc only",
			levels:          [64]int32{12},
			expectedSymbols: []byte{0x00},
		},
		{
			name:            "short run",
			levels:          [64]int32{0, 0, 0, 5},
			expectedSymbols: []byte{0x23, 0x00},
		},
		{
			name:            "run of sixteen uses the skip command",
			levels:          [64]int32{18: -1},
			expectedSymbols: []byte{0xF0, 0x11, 0x00},
		},
		{
			name:            "last coefficient needs no end of block",
			levels:          [64]int32{63: 1},
			expectedSymbols: []byte{0xF0, 0xF0, 0xF0, 0xE1},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			be := NewBlockEncoder()
			require.NoError(t, be.EncodeBlock(&tc.levels))
			assert.Equal(t, tc.expectedSymbols, be.Symbols())
			assert.Equal(t, 1, be.Blocks())
		})
	}
}

func TestEncodeBlockRejectsLevels(t *testing.T) {
	be := NewBlockEncoder()
	assert.Error(t, be.EncodeBlock(&[64]int32{200}))
	assert.Error(t, be.EncodeBlock(&[64]int32{0, 40000}))
}

func TestDecodeBlock(t *testing.T) {
	blocks := []struct {
		channel int
		levels  [64]int32
	}{
		{channel: ChannelY, levels: [64]int32{0: -5, 1: 3, 2: -1, 20: 7, 63: -2}},
		{channel: ChannelCb, levels: [64]int32{0: 100}},
		{channel: ChannelCr, levels: [64]int32{0: -128, 5: 300, 6: -1}},
	}

	be := NewBlockEncoder()
	for _, b := range blocks {
		levels := b.levels
		require.NoError(t, be.EncodeBlock(&levels))
	}

	quant := NewQuantisation(60)
	bd := NewBlockDecoder(quant, be.Symbols(), be.ACStream(), be.DCStream())
	for i, b := range blocks {
		var coeffs [64]float32
		require.NoError(t, bd.DecodeBlock(b.channel, &coeffs), "block %d", i)

		table := quant.ForChannel(b.channel)
		var expected [64]float32
		for zz, level := range b.levels {
			pos := ZigZag[zz]
			expected[pos] = float32(level * table[pos])
		}
		expected[0] = float32(b.levels[0] * table[0])
		assert.Equal(t, expected, coeffs, "block %d", i)
	}
	assert.False(t, bd.More())
}

func TestDecodeBlockErrors(t *testing.T) {
	quant := NewQuantisation(50)

	t.Run("symbols end inside block", func(t *testing.T) {
		bw := vrio.NewBitWriter()
		bw.WriteInt(3, 2)
		bd := NewBlockDecoder(quant, []byte{0x02}, bw.Bytes(), []byte{0x10})
		var coeffs [64]float32
		assert.ErrorIs(t, bd.DecodeBlock(ChannelY, &coeffs), ErrSymbolsExhausted)
	})

	t.Run("dc stream too short", func(t *testing.T) {
		bd := NewBlockDecoder(quant, []byte{0x00}, nil, nil)
		var coeffs [64]float32
		assert.ErrorIs(t, bd.DecodeBlock(ChannelY, &coeffs), vrio.ErrUnexpectedEnd)
	})

	t.Run("ac stream too short", func(t *testing.T) {
		bd := NewBlockDecoder(quant, []byte{0x05, 0x00}, []byte{}, []byte{0x10})
		var coeffs [64]float32
		assert.ErrorIs(t, bd.DecodeBlock(ChannelY, &coeffs), vrio.ErrUnexpectedEnd)
	})
}

// TestDecodeBlockIgnoresValueBeyondBlock: a run that jumps past the last
// coefficient drops the value without consuming AC bits.
func TestDecodeBlockIgnoresValueBeyondBlock(t *testing.T) {
	quant := NewQuantisation(50)
	bw := vrio.NewBitWriter()
	bw.WriteInt(-1, 1)
	// 0xF0 x3 takes the index to 49, 0xF1 pushes it to 64
	bd := NewBlockDecoder(quant, []byte{0xF0, 0xF0, 0xF0, 0xF1, 0x00}, bw.Bytes(), []byte{0x00, 0x00})
	var coeffs [64]float32
	require.NoError(t, bd.DecodeBlock(ChannelY, &coeffs))
	assert.Equal(t, [64]float32{}, coeffs)
	assert.Equal(t, 4, bd.SymbolsRead())

	// the remaining end of block symbol belongs to the next block
	require.NoError(t, bd.DecodeBlock(ChannelY, &coeffs))
	assert.False(t, bd.More())
}

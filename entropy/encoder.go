package entropy

import (
	"fmt"

	"github.com/kpfaulkner/phoenixvr-go/vrio"
)

// FrequencyTable serialises symbol counts into the sparse run format read by
// NewHuffmanModel. Counts are scaled into a byte; a present symbol never
// scales to zero.
func FrequencyTable(symbols []byte) []byte {
	var counts [256]int
	maxCount := 0
	for _, s := range symbols {
		counts[s]++
		if counts[s] > maxCount {
			maxCount = counts[s]
		}
	}

	var freqs [256]byte
	for i, c := range counts {
		if c == 0 {
			continue
		}
		f := c
		if maxCount > 255 {
			f = c * 255 / maxCount
		}
		if f < 1 {
			f = 1
		}
		freqs[i] = byte(f)
	}

	var table []byte
	for i := 0; i < 256; {
		if freqs[i] == 0 {
			i++
			continue
		}
		end := i
		for end+1 < 256 && freqs[end+1] != 0 {
			end++
		}
		table = append(table, byte(i), byte(end))
		table = append(table, freqs[i:end+1]...)
		i = end + 1
	}
	if len(table) == 0 {
		// start above end: an empty run
		table = append(table, 1, 0)
	}
	return append(table, 0)
}

// Pack produces a complete huffman section: frequency table, then the coded
// symbols and end of stream, zero padded to a byte.
func Pack(symbols []byte) ([]byte, error) {
	table := FrequencyTable(symbols)
	hm, err := NewHuffmanModel(table)
	if err != nil {
		return nil, err
	}
	codes := hm.Codes()

	bw := vrio.NewBitWriter()
	for _, s := range symbols {
		code, ok := codes[int(s)]
		if !ok {
			return nil, fmt.Errorf("symbol %02x has no code", s)
		}
		bw.WriteCode(code)
	}
	bw.WriteCode(codes[EndOfStream])
	return append(table, bw.Bytes()...), nil
}

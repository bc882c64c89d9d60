package core

import (
	"github.com/kpfaulkner/phoenixvr-go/vrio"
	"github.com/pkg/errors"
)

// Payload is a picture chunk body split into its three streams.
type Payload struct {
	// Huffman holds the frequency table followed by the coded symbols.
	Huffman       []byte
	UnpackedCount int

	// AC runs to the end of the payload and so overlaps DC; the block
	// decoder only consumes the bits it needs.
	AC []byte
	DC []byte
}

// SplitPayload locates the streams:
//
//	u32 huffSize | u32 unpackedCount | huff[huffSize] | u32 dcOffset | ac ...
//
// The DC stream starts dcOffset bytes after the first AC byte plus four.
func SplitPayload(payload []byte) (*Payload, error) {
	huffSize, err := vrio.Uint32At(payload, 0)
	if err != nil {
		return nil, errors.Wrap(ErrTruncated, "huffman section size")
	}
	unpacked, err := vrio.Uint32At(payload, 4)
	if err != nil {
		return nil, errors.Wrap(ErrTruncated, "unpacked symbol count")
	}

	size := uint64(len(payload))
	huffEnd := 8 + uint64(huffSize)
	if huffEnd+4 > size {
		return nil, errors.Wrapf(ErrTruncated, "huffman section of %d bytes in %d byte payload", huffSize, size)
	}
	dcOffset, err := vrio.Uint32At(payload, int(huffEnd))
	if err != nil {
		return nil, errors.Wrap(ErrTruncated, "dc offset")
	}
	acStart := huffEnd + 4
	dcStart := acStart + 4 + uint64(dcOffset)
	if dcStart > size {
		return nil, errors.Wrapf(ErrTruncated, "dc stream at %d in %d byte payload", dcStart, size)
	}

	return &Payload{
		Huffman:       payload[8:huffEnd],
		UnpackedCount: int(unpacked),
		AC:            payload[acStart:],
		DC:            payload[dcStart:],
	}, nil
}

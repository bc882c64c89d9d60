package entropy

import (
	"errors"
	"fmt"
	"math"

	"github.com/kpfaulkner/phoenixvr-go/vrio"
	log "github.com/sirupsen/logrus"
)

const (
	// EndOfStream is the leaf that terminates a huffman coded stream.
	EndOfStream = 256

	// index 513 never takes part in a pairing, it only seeds the minimum search.
	sentinelIndex     = 513
	maxNodes          = 514
	sentinelFrequency = math.MaxInt32
)

var (
	ErrHuffmanCorrupted = errors.New("huffman: corrupted stream")
	ErrHuffmanOverflow  = errors.New("huffman: decoded data exceeds declared size")
	ErrHuffmanTable     = errors.New("huffman: malformed frequency table")
)

type huffNode struct {
	frequency int32
	falseIdx  int16
	trueIdx   int16
}

// HuffmanModel is the decode tree for one picture. Nodes live in a fixed
// array and refer to each other by index: 0..255 are byte leaves, 256 is
// end of stream and internal nodes are allocated from 257 upwards.
type HuffmanModel struct {
	nodes     [maxNodes]huffNode
	root      int
	next      int
	tableSize int
}

// NewHuffmanModel reads the sparse frequency table at the start of section
// and builds the tree from it.
func NewHuffmanModel(section []byte) (*HuffmanModel, error) {
	hm := &HuffmanModel{}
	if err := hm.readFrequencies(section); err != nil {
		return nil, err
	}
	if err := hm.buildTree(); err != nil {
		return nil, err
	}
	return hm, nil
}

// readFrequencies parses (start, end, freq[end-start+1]) runs. The first
// start byte is always taken as a start, so a run may begin at symbol 0;
// every later start byte of 0 ends the table.
func (hm *HuffmanModel) readFrequencies(section []byte) error {
	pos := 0
	readByte := func() (int, error) {
		if pos >= len(section) {
			return 0, fmt.Errorf("%w: table runs past byte %d", ErrHuffmanTable, len(section))
		}
		b := section[pos]
		pos++
		return int(b), nil
	}

	start, err := readByte()
	if err != nil {
		return err
	}
	for {
		end, err := readByte()
		if err != nil {
			return err
		}
		for idx := start; idx <= end; idx++ {
			f, err := readByte()
			if err != nil {
				return err
			}
			hm.nodes[idx].frequency = int32(f)
		}
		if start, err = readByte(); err != nil {
			return err
		}
		if start == 0 {
			break
		}
	}
	hm.nodes[EndOfStream].frequency = 1
	hm.nodes[sentinelIndex].frequency = sentinelFrequency
	hm.tableSize = pos
	return nil
}

// buildTree repeatedly pairs the two lowest non zero frequencies. A strictly
// smaller frequency replaces the current minimum, so on ties the node seen
// first wins. The lowest node goes on the 0 branch, the runner up on the 1
// branch.
func (hm *HuffmanModel) buildTree() error {
	hm.next = EndOfStream + 1
	for {
		lo, hi := sentinelIndex, sentinelIndex
		for idx := 0; idx < hm.next; idx++ {
			f := hm.nodes[idx].frequency
			if f == 0 {
				continue
			}
			if f < hm.nodes[lo].frequency {
				hi = lo
				lo = idx
			} else if f < hm.nodes[hi].frequency {
				hi = idx
			}
		}
		if hi == sentinelIndex {
			hm.root = hm.next - 1
			return nil
		}
		if hm.next >= sentinelIndex {
			return fmt.Errorf("%w: node table full", ErrHuffmanTable)
		}

		n := &hm.nodes[hm.next]
		n.frequency = hm.nodes[lo].frequency + hm.nodes[hi].frequency
		n.falseIdx = int16(lo)
		n.trueIdx = int16(hi)
		hm.nodes[lo].frequency = 0
		hm.nodes[hi].frequency = 0
		hm.next++
	}
}

// TableSize is the number of bytes the frequency table occupied; the coded
// bitstream starts right after it.
func (hm *HuffmanModel) TableSize() int {
	return hm.tableSize
}

func (hm *HuffmanModel) Root() int {
	return hm.root
}

// Len is the number of node slots in use, leaves included.
func (hm *HuffmanModel) Len() int {
	return hm.next
}

// Decode walks the tree for each symbol until end of stream. At most limit
// symbols are produced; a stream that has not ended by then is rejected, as
// is one that runs out of bits. The reader is byte aligned on return.
func (hm *HuffmanModel) Decode(br *vrio.BitReader, limit int) ([]byte, error) {
	// every symbol costs at least one bit, which bounds a lying header
	if limit < 0 {
		limit = 0
	}
	capHint := limit
	if bits := 8 * br.RemainingBytes(); bits < capHint {
		capHint = bits
	}
	decoded := make([]byte, 0, capHint)
	for {
		idx := hm.root
		for idx > EndOfStream {
			bit, err := br.ReadBit()
			if err != nil {
				return nil, fmt.Errorf("%w after %d symbols: %v", ErrHuffmanCorrupted, len(decoded), err)
			}
			if bit {
				idx = int(hm.nodes[idx].trueIdx)
			} else {
				idx = int(hm.nodes[idx].falseIdx)
			}
		}
		if idx == EndOfStream {
			break
		}
		if len(decoded) >= limit {
			return nil, fmt.Errorf("%w: more than %d symbols", ErrHuffmanOverflow, limit)
		}
		decoded = append(decoded, byte(idx))
	}
	br.AlignToByte()
	return decoded, nil
}

// Codes returns the bit path from the root to every reachable leaf, keyed
// by symbol. A tree holding only the end of stream leaf maps it to an empty
// code.
func (hm *HuffmanModel) Codes() map[int][]bool {
	codes := make(map[int][]bool)
	var walk func(idx int, path []bool)
	walk = func(idx int, path []bool) {
		if idx <= EndOfStream {
			codes[idx] = append([]bool(nil), path...)
			return
		}
		n := hm.nodes[idx]
		walk(int(n.falseIdx), append(path, false))
		walk(int(n.trueIdx), append(path, true))
	}
	walk(hm.root, nil)
	return codes
}

// Unpack builds the model from section and decodes the bitstream that
// follows the frequency table. limit is the declared unpacked byte count.
func Unpack(section []byte, limit int) ([]byte, error) {
	hm, err := NewHuffmanModel(section)
	if err != nil {
		return nil, err
	}
	br := vrio.NewBitReader(section, hm.TableSize())
	decoded, err := hm.Decode(br, limit)
	if err != nil {
		return nil, err
	}
	log.Debugf("decoded %d bytes at %08x", len(decoded), br.BytePos())
	if len(decoded) != limit {
		log.Warnf("huffman stream decoded %d bytes, header declared %d", len(decoded), limit)
	}
	return decoded, nil
}

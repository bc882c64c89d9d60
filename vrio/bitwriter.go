package vrio

// BitWriter is the inverse of BitReader. Bits are packed most significant
// bit first; a partially filled final byte is zero padded.
type BitWriter struct {
	buf     []byte
	current uint8
	bitMask uint8
}

func NewBitWriter() *BitWriter {
	return &BitWriter{bitMask: 0x80}
}

func (bw *BitWriter) WriteBit(bit bool) {
	if bit {
		bw.current |= bw.bitMask
	}
	bw.bitMask >>= 1
	if bw.bitMask == 0 {
		bw.buf = append(bw.buf, bw.current)
		bw.current = 0
		bw.bitMask = 0x80
	}
}

// WriteUInt writes the low n bits of value, bit 0 first.
func (bw *BitWriter) WriteUInt(value uint32, n int) {
	for i := 0; i < n; i++ {
		bw.WriteBit(value&(1<<i) != 0)
	}
}

// WriteInt writes value using the excess coding read back by ReadInt.
// value must be non zero and fit the n bit magnitude category.
func (bw *BitWriter) WriteInt(value int32, n int) {
	if value < 0 {
		value += int32(1)<<n - 1
	}
	bw.WriteUInt(uint32(value), n)
}

// WriteCode writes prefix code bits in order.
func (bw *BitWriter) WriteCode(code []bool) {
	for _, b := range code {
		bw.WriteBit(b)
	}
}

func (bw *BitWriter) AlignToByte() {
	if bw.bitMask != 0x80 {
		bw.buf = append(bw.buf, bw.current)
		bw.current = 0
		bw.bitMask = 0x80
	}
}

// Bytes returns the written bytes, flushing a partial byte.
func (bw *BitWriter) Bytes() []byte {
	bw.AlignToByte()
	return bw.buf
}

// Len is the number of whole bytes written so far.
func (bw *BitWriter) Len() int {
	return len(bw.buf)
}

// MagnitudeBits is the number of bits WriteInt needs for value.
func MagnitudeBits(value int32) int {
	if value < 0 {
		value = -value
	}
	n := 0
	for value != 0 {
		n++
		value >>= 1
	}
	return n
}

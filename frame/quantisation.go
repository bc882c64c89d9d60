package frame

import (
	"github.com/kpfaulkner/phoenixvr-go/util"
)

// Reference tables, natural (row major) order. They are the familiar JPEG
// annex K tables.
var (
	lumaBase = [64]int32{
		16, 11, 10, 16, 24, 40, 51, 61,
		12, 12, 14, 19, 26, 58, 60, 55,
		14, 13, 16, 24, 40, 57, 69, 56,
		14, 17, 22, 29, 51, 87, 80, 62,
		18, 22, 37, 56, 68, 109, 103, 77,
		24, 35, 55, 64, 81, 104, 113, 92,
		49, 64, 78, 87, 103, 121, 120, 101,
		72, 92, 95, 98, 112, 100, 103, 99,
	}

	chromaBase = [64]int32{
		17, 18, 24, 47, 99, 99, 99, 99,
		18, 21, 26, 66, 99, 99, 99, 99,
		24, 26, 56, 99, 99, 99, 99, 99,
		47, 66, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
		99, 99, 99, 99, 99, 99, 99, 99,
	}

	// AAN scale factors in 2.14 fixed point
	aanScale = [64]int32{
		0x4000, 0x58C5, 0x539F, 0x4B42, 0x4000, 0x3249, 0x22A3, 0x11A8,
		0x58C5, 0x7B21, 0x73FC, 0x6862, 0x58C5, 0x45BF, 0x300B, 0x187E,
		0x539F, 0x73FC, 0x6D41, 0x6254, 0x539F, 0x41B3, 0x2D41, 0x1712,
		0x4B42, 0x6862, 0x6254, 0x587E, 0x4B42, 0x3B21, 0x28BA, 0x14C3,
		0x4000, 0x58C5, 0x539F, 0x4B42, 0x4000, 0x3249, 0x22A3, 0x11A8,
		0x3249, 0x45BF, 0x41B3, 0x3B21, 0x3249, 0x2782, 0x1B37, 0x0DE0,
		0x22A3, 0x300B, 0x2D41, 0x28BA, 0x22A3, 0x1B37, 0x12BF, 0x098E,
		0x11A8, 0x187E, 0x1712, 0x14C3, 0x11A8, 0x0DE0, 0x098E, 0x04DF,
	}
)

const (
	minQuantStep = 8
	maxQuantStep = 255
	maxQuality   = 100
)

// Quantisation holds the dequantisation multipliers for one picture.
type Quantisation struct {
	Luma   [64]int32
	Chroma [64]int32
}

// NewQuantisation scales both reference tables by quality (0..100, values
// outside are clamped).
func NewQuantisation(quality int) *Quantisation {
	quality = util.Clamp(quality, 0, maxQuality)
	q := &Quantisation{}
	fillQuantTable(&q.Luma, &lumaBase, int32(quality))
	fillQuantTable(&q.Chroma, &chromaBase, int32(quality))
	return q
}

func fillQuantTable(dst *[64]int32, base *[64]int32, quality int32) {
	for i := range dst {
		step := util.Clamp((base[i]*quality+50)/100, minQuantStep, maxQuantStep)
		dst[i] = step * aanScale[i] >> 13
	}
}

// ForChannel returns the luma table for channel 0 and the chroma table for
// the two colour difference channels.
func (q *Quantisation) ForChannel(channel int) *[64]int32 {
	if channel == ChannelY {
		return &q.Luma
	}
	return &q.Chroma
}

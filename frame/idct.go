package frame

import (
	"math"

	"github.com/kpfaulkner/phoenixvr-go/util"
)

// idctBasis[x][u] = c(u) * cos((2x+1) u pi / 16), c(0) = 1/sqrt(2)
var idctBasis = func() [8][8]float32 {
	var basis [8][8]float32
	for x := 0; x < 8; x++ {
		for u := 0; u < 8; u++ {
			c := 1.0
			if u == 0 {
				c = math.Sqrt2 / 2
			}
			basis[x][u] = float32(c * math.Cos(float64((2*x+1)*u)*math.Pi/16))
		}
	}
	return basis
}()

// InverseTransform runs the separable 8x8 DCT-III over coeffs (natural
// order, rows are vertical frequency) and writes level shifted pixels.
// Each pass is scaled by 1/4; the result carries the quantiser's AAN
// prescale and is divided by 4 once more before the +128 shift.
func InverseTransform(coeffs *[64]float32, out *[64]uint8) {
	var tmp [64]float32

	for v := 0; v < 8; v++ {
		row := coeffs[v*8 : v*8+8]
		for x := 0; x < 8; x++ {
			basis := &idctBasis[x]
			var sum float32
			for u := 0; u < 8; u++ {
				sum += row[u] * basis[u]
			}
			tmp[v*8+x] = sum / 4
		}
	}

	for y := 0; y < 8; y++ {
		basis := &idctBasis[y]
		for x := 0; x < 8; x++ {
			var sum float32
			for v := 0; v < 8; v++ {
				sum += tmp[v*8+x] * basis[v]
			}
			out[y*8+x] = util.ClampByte(sum/4/4 + 128)
		}
	}
}

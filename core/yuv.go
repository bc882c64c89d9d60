package core

import (
	"image"
	"image/color"

	"github.com/kpfaulkner/phoenixvr-go/frame"
)

// planesToRGBA converts full resolution planes to RGB. Channel 1 carries
// the blue difference and channel 2 the red difference, both centred on
// 128 with the full range JFIF matrix.
func planesToRGBA(planes *frame.Planes) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, planes.Width, planes.Height))
	yp := planes.Channels[frame.ChannelY]
	cbp := planes.Channels[frame.ChannelCb]
	crp := planes.Channels[frame.ChannelCr]

	for y := 0; y < planes.Height; y++ {
		yRow := yp.GetRow(y)
		cbRow := cbp.GetRow(y)
		crRow := crp.GetRow(y)
		pix := img.Pix[y*img.Stride : y*img.Stride+4*planes.Width]
		for x := 0; x < planes.Width; x++ {
			r, g, b := color.YCbCrToRGB(yRow[x], cbRow[x], crRow[x])
			pix[4*x] = r
			pix[4*x+1] = g
			pix[4*x+2] = b
			pix[4*x+3] = 0xFF
		}
	}
	return img
}

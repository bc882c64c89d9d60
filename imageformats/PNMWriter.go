package imageformats

import (
	"bufio"
	"fmt"
	"image"
	"io"

	"github.com/kpfaulkner/phoenixvr-go/util"
)

// WritePPM writes img as a binary P6 pixmap, dropping alpha.
func WritePPM(img *image.RGBA, output io.Writer) error {
	b := img.Bounds()
	w := bufio.NewWriter(output)
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", b.Dx(), b.Dy()); err != nil {
		return err
	}
	rgb := make([]byte, 3*b.Dx())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):]
		for x := 0; x < b.Dx(); x++ {
			copy(rgb[3*x:3*x+3], row[4*x:4*x+3])
		}
		if _, err := w.Write(rgb); err != nil {
			return err
		}
	}
	return w.Flush()
}

// WritePGM writes one 8 bit plane as a binary P5 graymap.
func WritePGM(plane *util.Matrix[uint8], output io.Writer) error {
	w := bufio.NewWriter(output)
	if _, err := fmt.Fprintf(w, "P5\n%d %d\n255\n", plane.Width, plane.Height); err != nil {
		return err
	}
	for y := 0; y < plane.Height; y++ {
		if _, err := w.Write(plane.GetRow(y)); err != nil {
			return err
		}
	}
	return w.Flush()
}

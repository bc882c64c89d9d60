package phoenixvr

import (
	"image"
	"io"

	"github.com/kpfaulkner/phoenixvr-go/core"
)

// container magic 0x12FA84AB, little endian
const vrHeader = "\xAB\x84\xFA\x12"

func init() {
	image.RegisterFormat("vr", vrHeader, Decode, DecodeConfig)
}

// Decode returns the decoded surface. Panoramas come back as the raw
// stacked cube atlas; use the render package to view them.
func Decode(r io.Reader) (image.Image, error) {
	d, err := core.NewDecoder()
	if err != nil {
		return nil, err
	}
	pic, err := d.Decode(r)
	if err != nil {
		return nil, err
	}
	return pic.Image, nil
}

func DecodeConfig(r io.Reader) (image.Config, error) {
	d, err := core.NewDecoder()
	if err != nil {
		return image.Config{}, err
	}
	return d.DecodeConfig(r)
}

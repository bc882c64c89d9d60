package render

import (
	"errors"
	"image"
	"io"

	"github.com/kpfaulkner/phoenixvr-go/core"
	log "github.com/sirupsen/logrus"
)

var ErrNoImage = errors.New("decoded picture has no image")

type ViewerOption func(v *Viewer)

func WithDecoder(d *core.Decoder) ViewerOption {
	return func(v *Viewer) {
		v.decoder = d
	}
}

func WithRenderer(r *Renderer) ViewerOption {
	return func(v *Viewer) {
		v.renderer = r
	}
}

// Viewer owns the picture on screen and the camera looking at it. A failed
// load leaves the previous picture in place.
type Viewer struct {
	decoder  *core.Decoder
	renderer *Renderer
	camera   *Camera
	current  *core.Picture
}

func NewViewer(opts ...ViewerOption) (*Viewer, error) {
	v := &Viewer{camera: NewCamera()}
	for _, opt := range opts {
		opt(v)
	}
	if v.decoder == nil {
		d, err := core.NewDecoder()
		if err != nil {
			return nil, err
		}
		v.decoder = d
	}
	if v.renderer == nil {
		v.renderer = NewRenderer()
	}
	return v, nil
}

func (v *Viewer) Load(r io.Reader) error {
	pic, err := v.decoder.Decode(r)
	if err != nil {
		log.Warnf("keeping previous picture: %v", err)
		return err
	}
	if pic.Image == nil {
		return ErrNoImage
	}
	v.current = pic
	return nil
}

func (v *Viewer) Picture() *core.Picture {
	return v.current
}

func (v *Viewer) Camera() *Camera {
	return v.camera
}

// Clear drops the current picture; the next frame renders blank.
func (v *Viewer) Clear() {
	v.current = nil
}

func (v *Viewer) Render(dst *image.RGBA) error {
	return v.renderer.Render(dst, v.current, v.camera)
}

package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"math"
	"sync"

	"github.com/kpfaulkner/phoenixvr-go/core"
	"github.com/kpfaulkner/phoenixvr-go/util"
	log "github.com/sirupsen/logrus"
)

var ErrLayoutMismatch = errors.New("picture does not match the atlas layout")

type RendererOption func(r *Renderer)

// WithWorkers renders panoramas in n horizontal bands concurrently.
func WithWorkers(n int) RendererOption {
	return func(r *Renderer) {
		if n < 1 {
			n = 1
		}
		r.workers = n
	}
}

// WithLayout forces an atlas layout instead of the one the picture was
// decoded with.
func WithLayout(l Layout) RendererOption {
	return func(r *Renderer) {
		r.layout = &l
	}
}

// Renderer fills a framebuffer from a decoded picture. The angle tables
// are reused between frames, so a Renderer serves one framebuffer at a time.
type Renderer struct {
	workers int
	layout  *Layout

	sinAz []float64
	cosAz []float64
	sinEl []float64
	cosEl []float64
}

func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{workers: 1}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws pic into dst as seen from cam. Without a picture dst is
// cleared. Flat pictures are copied to the origin, clipped to dst. A nil
// cam renders from the initial camera.
func (r *Renderer) Render(dst *image.RGBA, pic *core.Picture, cam *Camera) error {
	if cam == nil {
		cam = NewCamera()
	}
	if pic == nil || pic.Image == nil {
		draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
		return nil
	}
	if !pic.IsPanorama() {
		draw.Draw(dst, dst.Bounds(), pic.Image, pic.Image.Bounds().Min, draw.Src)
		return nil
	}

	layout := LayoutFor(pic)
	if r.layout != nil {
		layout = *r.layout
	}
	src := pic.Image.Bounds()
	if src.Dx() < layout.Width() || src.Dy() < layout.Height() {
		return fmt.Errorf("%w: %v for a %dx%d atlas", ErrLayoutMismatch, src, layout.Width(), layout.Height())
	}

	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil
	}
	r.buildTables(w, h, cam)

	workers := util.Min(r.workers, h)
	if workers <= 1 {
		r.renderRows(dst, pic.Image, layout, 0, h)
		return nil
	}

	band := (h + workers - 1) / workers
	var wg sync.WaitGroup
	for y0 := 0; y0 < h; y0 += band {
		y1 := util.Min(y0+band, h)
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			r.renderRows(dst, pic.Image, layout, y0, y1)
		}(y0, y1)
	}
	wg.Wait()
	log.Debugf("rendered %dx%d in %d bands", w, h, workers)
	return nil
}

// buildTables precomputes the per column azimuth and per row elevation.
// cam.FOV spans the horizontal axis and the vertical field of view is
// scaled by h/w, so a 90 degree view of a face fills a landscape
// framebuffer without leaving the face while a portrait one spills over
// the top and bottom edges.
func (r *Renderer) buildTables(w int, h int, cam *Camera) {
	r.sinAz = resize(r.sinAz, w)
	r.cosAz = resize(r.cosAz, w)
	r.sinEl = resize(r.sinEl, h)
	r.cosEl = resize(r.cosEl, h)

	az := cam.Azimuth.Value()
	el := cam.Elevation.Value()
	fovV := cam.FOV * float64(h) / float64(w)

	for x := 0; x < w; x++ {
		a := az + cam.FOV*(0.5-(float64(x)+0.5)/float64(w))
		r.sinAz[x], r.cosAz[x] = math.Sincos(a)
	}
	for y := 0; y < h; y++ {
		a := el + fovV*(0.5-(float64(y)+0.5)/float64(h))
		r.sinEl[y], r.cosEl[y] = math.Sincos(a)
	}
}

func (r *Renderer) renderRows(dst *image.RGBA, src *image.RGBA, layout Layout, y0 int, y1 int) {
	b := dst.Bounds()
	sb := src.Bounds()
	for y := y0; y < y1; y++ {
		sinEl, cosEl := r.sinEl[y], r.cosEl[y]
		row := dst.Pix[dst.PixOffset(b.Min.X, b.Min.Y+y):]
		for x := range r.sinAz {
			face, u, v := Project(Vec3{r.cosAz[x] * sinEl, r.sinAz[x] * sinEl, cosEl})
			tx, ty := layout.Texel(face, u, v)
			s := src.PixOffset(sb.Min.X+tx, sb.Min.Y+ty)
			copy(row[4*x:4*x+4], src.Pix[s:s+4])
		}
	}
}

func resize(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}
	return s[:n]
}

package core

import (
	"crypto/sha256"
	"encoding/hex"
	"image"
	"image/color"
	"io"

	"github.com/kpfaulkner/phoenixvr-go/entropy"
	"github.com/kpfaulkner/phoenixvr-go/frame"
	"github.com/kpfaulkner/phoenixvr-go/options"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrSizeMismatch = errors.New("picture does not fill its surface")

// SurfaceCache stores decoded surfaces between runs. Implementations must
// return a copy the decoder may hand out as its own.
type SurfaceCache interface {
	Load(key string) (*image.RGBA, bool)
	Store(key string, img *image.RGBA) error
}

type DecoderOption func(d *Decoder) error

func WithOptions(opt *options.VROptions) DecoderOption {
	return func(d *Decoder) error {
		d.opts = options.NewVROptions(opt)
		return nil
	}
}

func WithTiledAtlas() DecoderOption {
	return func(d *Decoder) error {
		d.opts.TiledAtlas = true
		return nil
	}
}

func WithSurfaceCache(cache SurfaceCache) DecoderOption {
	return func(d *Decoder) error {
		if cache == nil {
			return errors.New("nil surface cache")
		}
		d.cache = cache
		return nil
	}
}

// WithPlaneHook calls fn with the decoded planes before colour conversion.
// The planes are only valid for the duration of the call.
func WithPlaneHook(fn func(planes *frame.Planes) error) DecoderOption {
	return func(d *Decoder) error {
		d.planeHook = fn
		return nil
	}
}

// Decoder turns .vr containers into pictures. A Decoder holds no per
// picture state and may be reused.
type Decoder struct {
	opts      *options.VROptions
	cache     SurfaceCache
	planeHook func(planes *frame.Planes) error
}

func NewDecoder(opts ...DecoderOption) (*Decoder, error) {
	d := &Decoder{opts: options.NewVROptions(nil)}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, errors.Wrap(err, "applying decoder option")
		}
	}
	if d.opts.Debug {
		log.SetLevel(log.DebugLevel)
	}
	return d, nil
}

func (d *Decoder) Decode(r io.Reader) (*Picture, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, containerError(errors.Wrap(err, "reading container"))
	}
	return d.DecodeBytes(data)
}

// DecodeBytes decodes the single picture in a container held in memory.
// With ParseOnly set the returned picture has no Image.
func (d *Decoder) DecodeBytes(data []byte) (*Picture, error) {
	container, err := ParseContainer(data)
	if err != nil {
		return nil, containerError(err)
	}
	chunk, err := container.Picture()
	if err != nil {
		return nil, containerError(err)
	}

	pic := &Picture{Quality: int(chunk.Picture.Quality)}
	if chunk.IsPanorama() {
		pic.Kind = KindPanorama
		pic.Tiled = d.opts.TiledAtlas
	}

	payload, err := SplitPayload(chunk.Picture.Payload)
	if err != nil {
		return nil, containerError(err)
	}
	if d.opts.ParseOnly {
		return pic, nil
	}

	var key string
	if d.cache != nil {
		key = CacheKey(data, pic.Tiled)
		if img, ok := d.cache.Load(key); ok {
			w, h := Dimensions(pic.Kind, pic.Tiled)
			if img.Bounds().Dx() == w && img.Bounds().Dy() == h {
				log.Debugf("surface cache hit %s", key)
				pic.Image = img
				return pic, nil
			}
			log.Warnf("surface cache entry %s is %v, want %dx%d", key, img.Bounds(), w, h)
		}
	}

	img, err := d.decodeSurface(pic, payload)
	if err != nil {
		return nil, decodeError(err)
	}
	pic.Image = img

	if d.cache != nil {
		if err := d.cache.Store(key, img); err != nil {
			log.Warnf("unable to cache surface %s: %v", key, err)
		}
	}
	return pic, nil
}

func (d *Decoder) decodeSurface(pic *Picture, payload *Payload) (*image.RGBA, error) {
	log.Debugf("huff size: %08x, unpacked huff size: %d", len(payload.Huffman), payload.UnpackedCount)
	symbols, err := entropy.Unpack(payload.Huffman, payload.UnpackedCount)
	if err != nil {
		return nil, err
	}

	w, h := Dimensions(pic.Kind, pic.Tiled)
	planes, err := frame.NewPooledPlanes(w, h)
	if err != nil {
		return nil, err
	}
	defer planes.Release()

	bd := frame.NewBlockDecoder(frame.NewQuantisation(pic.Quality), symbols, payload.AC, payload.DC)
	blocks, err := frame.DecodePlanes(planes, bd)
	if err != nil {
		return nil, err
	}
	if want := w * h / (frame.BlockSize * frame.BlockSize) * frame.NumChannels; blocks != want {
		if d.opts.StrictSize {
			return nil, errors.Wrapf(ErrSizeMismatch, "%d of %d blocks", blocks, want)
		}
		log.Warnf("%s picture has %d of %d blocks", pic.Kind, blocks, want)
	}
	if d.planeHook != nil {
		if err := d.planeHook(planes); err != nil {
			return nil, errors.Wrap(err, "plane hook")
		}
	}
	return planesToRGBA(planes), nil
}

// DecodeConfig reports the surface size without decoding any blocks.
func (d *Decoder) DecodeConfig(r io.Reader) (image.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return image.Config{}, containerError(errors.Wrap(err, "reading container"))
	}
	container, err := ParseContainer(data)
	if err != nil {
		return image.Config{}, containerError(err)
	}
	chunk, err := container.Picture()
	if err != nil {
		return image.Config{}, containerError(err)
	}
	kind := KindFlat
	if chunk.IsPanorama() {
		kind = KindPanorama
	}
	w, h := Dimensions(kind, d.opts.TiledAtlas)
	return image.Config{ColorModel: color.RGBAModel, Width: w, Height: h}, nil
}

// CacheKey identifies a decoded surface by container content and atlas layout.
func CacheKey(data []byte, tiled bool) string {
	sum := sha256.Sum256(data)
	key := hex.EncodeToString(sum[:])
	if tiled {
		key += "-tiled"
	}
	return key
}

package cache

import (
	"bytes"
	"encoding/binary"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	fileMagic  = "VRSC"
	headerSize = 12
	fileSuffix = ".vrsc"

	// decoded atlases are at most 256x6144 RGBA
	maxSurfaceBytes = 64 << 20
)

var ErrBadKey = errors.New("cache key is not a plain file name")

// SurfaceCache keeps decoded RGBA surfaces on disk, zstd compressed, one
// file per key. EncodeAll and DecodeAll are safe for concurrent use, so a
// cache may be shared between decoders.
type SurfaceCache struct {
	dir string
	enc *zstd.Encoder
	dec *zstd.Decoder
}

func New(dir string) (*SurfaceCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "creating cache dir %s", dir)
	}
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		return nil, errors.Wrap(err, "zstd encoder")
	}
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderLowmem(true),
		zstd.WithDecoderMaxMemory(maxSurfaceBytes),
	)
	if err != nil {
		enc.Close()
		return nil, errors.Wrap(err, "zstd decoder")
	}
	return &SurfaceCache{dir: dir, enc: enc, dec: dec}, nil
}

func (c *SurfaceCache) Close() {
	c.enc.Close()
	c.dec.Close()
}

func (c *SurfaceCache) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", errors.Wrapf(ErrBadKey, "%q", key)
	}
	return filepath.Join(c.dir, key+fileSuffix), nil
}

// Load returns the surface stored under key. Missing, unreadable and
// corrupt entries are all misses.
func (c *SurfaceCache) Load(key string) (*image.RGBA, bool) {
	p, err := c.path(key)
	if err != nil {
		log.Warnf("surface cache: %v", err)
		return nil, false
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("surface cache: %v", err)
		}
		return nil, false
	}
	img, err := c.unmarshal(data)
	if err != nil {
		log.Warnf("surface cache entry %s: %v", key, err)
		return nil, false
	}
	return img, true
}

func (c *SurfaceCache) unmarshal(data []byte) (*image.RGBA, error) {
	if len(data) < headerSize || string(data[:4]) != fileMagic {
		return nil, errors.New("not a surface cache file")
	}
	w := int(binary.LittleEndian.Uint32(data[4:]))
	h := int(binary.LittleEndian.Uint32(data[8:]))
	if w <= 0 || h <= 0 || w*h*4 > maxSurfaceBytes {
		return nil, errors.Errorf("bad surface size %dx%d", w, h)
	}
	pix, err := c.dec.DecodeAll(data[headerSize:], make([]byte, 0, w*h*4))
	if err != nil {
		return nil, errors.Wrap(err, "zstd decode")
	}
	if len(pix) != w*h*4 {
		return nil, errors.Errorf("surface holds %d bytes, want %d", len(pix), w*h*4)
	}
	return &image.RGBA{Pix: pix, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}, nil
}

// Store writes img under key, replacing any previous entry.
func (c *SurfaceCache) Store(key string, img *image.RGBA) error {
	p, err := c.path(key)
	if err != nil {
		return err
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	raw := make([]byte, 0, w*h*4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		raw = append(raw, img.Pix[off:off+4*w]...)
	}

	var buf bytes.Buffer
	buf.WriteString(fileMagic)
	buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(w)))
	buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(h)))
	buf.Write(c.enc.EncodeAll(raw, nil))

	tmp, err := os.CreateTemp(c.dir, ".tmp-*")
	if err != nil {
		return errors.Wrap(err, "creating cache entry")
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return errors.Wrap(err, "writing cache entry")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "closing cache entry")
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return errors.Wrap(err, "publishing cache entry")
	}
	log.Debugf("cached %dx%d surface as %s (%d bytes)", w, h, key, buf.Len())
	return nil
}

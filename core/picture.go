package core

import (
	"image"
)

const (
	FlatWidth  = 640
	FlatHeight = 480

	// FaceEdge is the edge of one stacked atlas face and of one tile in
	// the tiled atlas.
	FaceEdge  = 256
	NumFaces  = 6
	TiledFace = 2 * FaceEdge
)

type PictureKind int

const (
	KindFlat PictureKind = iota
	KindPanorama
)

func (k PictureKind) String() string {
	if k == KindPanorama {
		return "panorama"
	}
	return "flat"
}

// Picture is a decoded surface. It is never modified after Decode returns.
type Picture struct {
	Image   *image.RGBA
	Kind    PictureKind
	Quality int

	// Tiled is set when a panorama uses the 256x6144 tiled atlas.
	Tiled bool
}

func (p *Picture) IsPanorama() bool {
	return p.Kind == KindPanorama
}

// Dimensions gives the surface size for a picture of the given kind.
func Dimensions(kind PictureKind, tiled bool) (int, int) {
	switch {
	case kind == KindFlat:
		return FlatWidth, FlatHeight
	case tiled:
		// 6 faces of 4 tiles, every tile FaceEdge square
		return FaceEdge, FaceEdge * NumFaces * 4
	default:
		return FaceEdge, FaceEdge * NumFaces
	}
}

package render

import (
	"github.com/kpfaulkner/phoenixvr-go/core"
	"github.com/kpfaulkner/phoenixvr-go/util"
)

// Layout places the six cube faces in a decoded atlas.
//
// The stacked layout stores face f as a FaceEdge square at rows
// f*FaceEdge. The tiled layout stores each face at twice that edge, split
// into a 2x2 grid of FaceEdge tiles; tile t sits at rows t*FaceEdge.
type Layout struct {
	Tiled bool
}

var (
	StackedLayout = Layout{}
	TiledLayout   = Layout{Tiled: true}
)

// LayoutFor picks the layout a decoded panorama was built with.
func LayoutFor(pic *core.Picture) Layout {
	return Layout{Tiled: pic.Tiled}
}

func (l Layout) Width() int {
	return core.FaceEdge
}

func (l Layout) Height() int {
	_, h := core.Dimensions(core.KindPanorama, l.Tiled)
	return h
}

// FaceEdge is the edge of one whole face in texels.
func (l Layout) FaceEdge() int {
	if l.Tiled {
		return core.TiledFace
	}
	return core.FaceEdge
}

func (l Layout) faceTexel(u float64, v float64) (int, int) {
	edge := l.FaceEdge()
	px := util.Clamp(int(u*float64(edge)), 0, edge-1)
	py := util.Clamp(int(v*float64(edge)), 0, edge-1)
	return px, py
}

// TileID is the index of the FaceEdge tile holding (u,v) on face in the
// tiled atlas: face*4 + qy*2 + qx for the quadrant (qx,qy). It depends
// only on face, u and v.
func TileID(face Face, u float64, v float64) int {
	px, py := TiledLayout.faceTexel(u, v)
	return int(face)*4 + (py/core.FaceEdge)*2 + px/core.FaceEdge
}

// Texel converts face coordinates to an atlas pixel.
func (l Layout) Texel(face Face, u float64, v float64) (int, int) {
	px, py := l.faceTexel(u, v)
	if !l.Tiled {
		return px, int(face)*core.FaceEdge + py
	}
	tile := TileID(face, u, v)
	return px % core.FaceEdge, tile*core.FaceEdge + py%core.FaceEdge
}

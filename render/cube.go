package render

import "math"

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Scale(k float64) Vec3 {
	return Vec3{v.X * k, v.Y * k, v.Z * k}
}

type Face int

const (
	FaceFront Face = iota // +X
	FaceRight             // -Y
	FaceBack              // -X
	FaceLeft              // +Y
	FaceUp                // +Z
	FaceDown              // -Z

	NumFaces = 6
)

var faceNames = [NumFaces]string{"front", "right", "back", "left", "up", "down"}

func (f Face) String() string {
	if f < 0 || f >= NumFaces {
		return "invalid"
	}
	return faceNames[f]
}

// Project maps a view direction to a cube face and texture coordinates in
// [0,1]. The dominant axis picks the face, with ties going X then Y then Z.
// The zero vector lands in the centre of the front face.
func Project(d Vec3) (Face, float64, float64) {
	ax, ay, az := math.Abs(d.X), math.Abs(d.Y), math.Abs(d.Z)

	switch {
	case ax == 0 && ay == 0 && az == 0:
		return FaceFront, 0.5, 0.5
	case ax >= ay && ax >= az:
		v := (1 - d.Z/ax) / 2
		if d.X > 0 {
			return FaceFront, (1 - d.Y/ax) / 2, v
		}
		return FaceBack, (1 + d.Y/ax) / 2, v
	case ay >= az:
		v := (1 - d.Z/ay) / 2
		if d.Y < 0 {
			return FaceRight, (1 - d.X/ay) / 2, v
		}
		return FaceLeft, (1 + d.X/ay) / 2, v
	default:
		u := (1 - d.Y/az) / 2
		if d.Z > 0 {
			return FaceUp, u, (1 + d.X/az) / 2
		}
		return FaceDown, u, (1 - d.X/az) / 2
	}
}

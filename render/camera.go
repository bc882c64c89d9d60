package render

import "math"

const (
	Tau = 2 * math.Pi

	// elevationEpsilon keeps the elevation off both poles.
	elevationEpsilon = 1e-4

	DefaultFOV = math.Pi / 2
)

// Angle is a wrapped angle with an optional clamp range applied before
// wrapping.
type Angle struct {
	value    float64
	min      float64
	max      float64
	rangeMin float64
	rangeMax float64
	pole     bool
}

// NewAzimuth wraps into [0, 2pi).
func NewAzimuth(a float64) Angle {
	ang := Angle{min: 0, max: Tau}
	ang.ResetRange()
	ang.Set(a)
	return ang
}

// NewElevation keeps the angle strictly inside (-pi, 0), 0 being straight up.
func NewElevation(a float64) Angle {
	ang := Angle{min: -math.Pi, max: -elevationEpsilon, pole: true}
	ang.ResetRange()
	ang.Set(a)
	return ang
}

func (a *Angle) Value() float64 {
	return a.value
}

func (a *Angle) Set(v float64) {
	v = math.Max(a.rangeMin, math.Min(a.rangeMax, v))
	span := a.max - a.min
	w := math.Mod(v-a.min, span)
	if w < 0 {
		w += span
	}
	a.value = w + a.min
}

// Add turns by v. Elevation stops just short of either pole instead of
// wrapping over it.
func (a *Angle) Add(v float64) {
	v += a.value
	if a.pole {
		if v <= a.min {
			v = a.min + elevationEpsilon
		}
		if v >= a.max {
			v = a.max - elevationEpsilon
		}
	}
	a.Set(v)
}

func (a *Angle) SetRange(min float64, max float64) {
	a.rangeMin = min
	a.rangeMax = max
}

func (a *Angle) ResetRange() {
	a.SetRange(math.Inf(-1), math.Inf(1))
}

func (a *Angle) Range() (float64, float64) {
	return a.rangeMin, a.rangeMax
}

// Camera is the per frame view snapshot.
type Camera struct {
	Azimuth   Angle
	Elevation Angle
	FOV       float64
}

// NewCamera looks along +X, at the centre of the front face.
func NewCamera() *Camera {
	return &Camera{
		Azimuth:   NewAzimuth(math.Pi),
		Elevation: NewElevation(-math.Pi / 2),
		FOV:       DefaultFOV,
	}
}

func (c *Camera) Turn(dAzimuth float64, dElevation float64) {
	c.Azimuth.Add(dAzimuth)
	c.Elevation.Add(dElevation)
}

package geom

import (
	"errors"
	"math"
)

// Sentinel errors for shape validation.
var (
	// ErrShapeClass indicates an unrecognized shape class.
	ErrShapeClass = errors.New("geom: unknown shape class")
	// ErrNonPositive indicates a non-positive volume or aspect ratio.
	ErrNonPositive = errors.New("geom: volume and aspect ratios must be positive")
)

// Class selects the grain body family.
type Class int

const (
	// Ellipsoid is the quadratic body (x/a)²+(y/b)²+(z/c)² ≤ 1.
	Ellipsoid Class = 1
	// Superellipsoid raises the exponents to the shape factor N.
	Superellipsoid Class = 2
	// Cuboctahedron is a unit cube chamfered by eight half-spaces
	// controlled by the shape factor G ∈ [0,2].
	Cuboctahedron Class = 3
)

// Valid reports whether c is a recognized shape class.
func (c Class) Valid() bool {
	return c == Ellipsoid || c == Superellipsoid || c == Cuboctahedron
}

// Shape carries the intrinsic, immutable body description of a grain.
// AspectB and AspectC are the b/a and c/a semi-axis ratios; Factor is
// the shape factor ω3 (superellipsoid exponent or chamfer magnitude).
type Shape struct {
	Class   Class
	Volume  float64
	AspectB float64
	AspectC float64
	Factor  float64
	// Euler is the axis orientation (φ1, Φ, φ2) in radians, Bunge convention.
	Euler [3]float64
}

// SemiAxis returns the bounding principal semi-axis a solved from the
// volume for the shape class; the remaining semi-axes are a·AspectB
// and a·AspectC.
func (s Shape) SemiAxis() (float64, error) {
	if !s.Class.Valid() {
		return 0, ErrShapeClass
	}
	if s.Volume <= 0 || s.AspectB <= 0 || s.AspectC <= 0 {
		return 0, ErrNonPositive
	}

	var cube float64
	switch s.Class {
	case Ellipsoid:
		cube = s.Volume * (3.0 / 4.0) / math.Pi / (s.AspectB * s.AspectC)
	case Superellipsoid:
		n := s.Factor
		beta1 := math.Gamma(1/n) * math.Gamma(1/n) / math.Gamma(2/n)
		beta2 := math.Gamma(2/n) * math.Gamma(1/n) / math.Gamma(3/n)
		cube = s.Volume * (3.0 / 2.0) / (s.AspectB * s.AspectC) * (n * n / 4.0) / beta1 / beta2
	case Cuboctahedron:
		g := s.Factor
		if g >= 0 && g <= 1 {
			cube = s.Volume * 6.0 / (6 - g*g*g)
		} else {
			cube = s.Volume * 6.0 / (3 + 9*g - 9*g*g + 2*g*g*g)
		}
	}

	a := math.Cbrt(cube)
	if s.Class == Cuboctahedron {
		a /= 2.0
	}

	return a, nil
}

// insideKernel is the smooth cost kernel evaluated at the summed
// normalized axis components; positive near the center, zero at 95%
// of the boundary, -0.5 on the boundary itself.
func insideKernel(sum float64) float64 {
	const edge = 0.95 * 0.95

	return -0.5 / (1.0 - 1.0/edge) * (1.0 - sum*sum/edge)
}

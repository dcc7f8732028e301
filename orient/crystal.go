package orient

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// ErrCrystal indicates an unrecognized crystal structure.
var ErrCrystal = errors.New("orient: unknown crystal structure")

// Crystal selects the symmetry group.
type Crystal int

const (
	// Hexagonal symmetry: 12 operators, 36×36×12 ODF cells.
	Hexagonal Crystal = 1
	// Cubic symmetry: 24 operators, 18×18×18 ODF cells.
	Cubic Crystal = 2
)

// Valid reports whether c is a recognized structure.
func (c Crystal) Valid() bool { return c == Hexagonal || c == Cubic }

// EulerDims returns the ODF cell counts per Euler axis.
func (c Crystal) EulerDims() (d1, d2, d3 int) {
	if c == Hexagonal {
		return 36, 36, 12
	}

	return 18, 18, 18
}

// ODFBins returns the total ODF cell count.
func (c Crystal) ODFBins() int {
	d1, d2, d3 := c.EulerDims()

	return d1 * d2 * d3
}

// FromEuler converts a Bunge (φ1, Φ, φ2) triple to the unit
// quaternion (w + xi + yj + zk) convention used throughout.
func FromEuler(phi1, bigPhi, phi2 float64) quat.Number {
	s := math.Sin(0.5 * bigPhi)
	c := math.Cos(0.5 * bigPhi)
	s1 := math.Sin(0.5 * (phi1 - phi2))
	c1 := math.Cos(0.5 * (phi1 - phi2))
	s2 := math.Sin(0.5 * (phi1 + phi2))
	c2 := math.Cos(0.5 * (phi1 + phi2))

	return quat.Number{
		Real: c * c2,
		Imag: s * c1,
		Jmag: s * s1,
		Kmag: c * s2,
	}
}

// hexOps are the 12 hexagonal symmetry operators: rotations about the
// c axis in 60° steps and the six basal two-fold axes.
var hexOps = [12]quat.Number{
	{Real: 1},
	{Real: 0.866025403784439, Kmag: 0.5},
	{Real: 0.5, Kmag: 0.866025403784439},
	{Kmag: 1},
	{Real: -0.5, Kmag: 0.866025403784439},
	{Real: -0.866025403784439, Kmag: 0.5},
	{Imag: 1},
	{Imag: 0.866025403784439, Jmag: 0.5},
	{Imag: 0.5, Jmag: 0.866025403784439},
	{Jmag: 1},
	{Imag: -0.5, Jmag: 0.866025403784439},
	{Imag: -0.866025403784439, Jmag: 0.5},
}

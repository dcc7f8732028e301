package orient

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// degPerRad converts radians to degrees.
const degPerRad = 180.0 / math.Pi

// Disorientation returns the minimum rotation angle in degrees
// aligning orientation q2 with q1 under the crystal's symmetry group,
// together with a rotation axis. For hexagonal crystals the axis is
// that of the minimizing representative; for cubic crystals it is the
// axis of the base misorientation q1⁻¹·q2, not reduced by the symmetry
// operators. The angle is symmetric in its arguments and zero for
// q1 == q2.
func Disorientation(c Crystal, q1, q2 quat.Number) (float64, r3.Vec) {
	// Base misorientation q1⁻¹·q2, carried in the sign convention the
	// symmetry reductions below expect (scalar negated).
	r := quat.Mul(quat.Conj(q1), q2)
	m := quat.Number{Real: -r.Real, Imag: r.Imag, Jmag: r.Jmag, Kmag: r.Kmag}

	if c == Hexagonal {
		return hexDisorientation(m)
	}

	return cubicDisorientation(m)
}

// cubicDisorientation exploits the component-sort shortcut for the 24
// cubic operators.
func cubicDisorientation(m quat.Number) (float64, r3.Vec) {
	q := []float64{
		math.Abs(m.Imag), math.Abs(m.Jmag), math.Abs(m.Kmag), math.Abs(m.Real),
	}
	sort.Float64s(q)

	wmin := q[3]
	if v := (q[2] + q[3]) / math.Sqrt2; v > wmin {
		wmin = v
	}
	if v := (q[0] + q[1] + q[2] + q[3]) / 2; v > wmin {
		wmin = v
	}
	wmin = clamp1(wmin)
	angle := 2 * math.Acos(wmin) * degPerRad

	return angle, axisOf(m, 2*math.Acos(clamp1(m.Real)))
}

// hexDisorientation applies the 12 hexagonal operators explicitly.
func hexDisorientation(m quat.Number) (float64, r3.Vec) {
	wmin := math.Inf(1)
	var axis r3.Vec
	for _, op := range hexOps {
		qc := quat.Mul(m, op)
		w := 2 * math.Acos(clamp1(qc.Real))
		a := axisOf(qc, w)
		if w > math.Pi {
			w = 2*math.Pi - w
		}
		if w < wmin {
			wmin = w
			axis = a
		}
	}

	return wmin * degPerRad, axis
}

// axisOf extracts the rotation axis of q for angle w, guarding the
// w≈0 degeneracy where the axis is undefined.
func axisOf(q quat.Number, w float64) r3.Vec {
	s := math.Sin(w / 2)
	if math.Abs(s) < 1e-12 {
		return r3.Vec{}
	}

	return r3.Vec{X: q.Imag / s, Y: q.Jmag / s, Z: q.Kmag / s}
}

// clamp1 folds an acos argument into its domain.
func clamp1(x float64) float64 {
	if x < -1 {
		return -1
	}
	if x > 1 {
		return 1
	}

	return x
}

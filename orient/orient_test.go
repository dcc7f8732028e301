package orient_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"

	"github.com/MicroClue/grainsynth/orient"
	"github.com/MicroClue/grainsynth/randx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zRotation(deg float64) quat.Number {
	half := deg * math.Pi / 360.0

	return quat.Number{Real: math.Cos(half), Kmag: math.Sin(half)}
}

// randomUnit draws a uniformly distributed unit quaternion.
func randomUnit(rng *randx.Source) quat.Number {
	u1, u2, u3 := rng.Uniform(), rng.Uniform(), rng.Uniform()
	a, b := math.Sqrt(1-u1), math.Sqrt(u1)

	return quat.Number{
		Real: a * math.Sin(2*math.Pi*u2),
		Imag: a * math.Cos(2*math.Pi*u2),
		Jmag: b * math.Sin(2*math.Pi*u3),
		Kmag: b * math.Cos(2*math.Pi*u3),
	}
}

// TestDisorientation_SelfIsZero: any orientation is 0° from itself
// under both groups.
func TestDisorientation_SelfIsZero(t *testing.T) {
	rng := randx.New(3)
	for _, c := range []orient.Crystal{orient.Cubic, orient.Hexagonal} {
		for i := 0; i < 50; i++ {
			q := randomUnit(rng)
			w, _ := orient.Disorientation(c, q, q)
			require.InDelta(t, 0.0, w, 1e-6, "crystal %d", c)
		}
	}
}

// TestDisorientation_KnownCubicAngles pins the literal scenario: the
// identity against itself is 0°, and against a 45° z-rotation is 45°.
func TestDisorientation_KnownCubicAngles(t *testing.T) {
	id := quat.Number{Real: 1}

	w, _ := orient.Disorientation(orient.Cubic, id, id)
	assert.InDelta(t, 0.0, w, 1e-9)

	w, axis := orient.Disorientation(orient.Cubic, id, zRotation(45))
	assert.InDelta(t, 45.0, w, 1e-9)
	assert.InDelta(t, 0.0, axis.X, 1e-9)
	assert.InDelta(t, 0.0, axis.Y, 1e-9)

	// 90° about z is a cubic symmetry operator: disorientation 0.
	w, _ = orient.Disorientation(orient.Cubic, id, zRotation(90))
	assert.InDelta(t, 0.0, w, 1e-6)
}

// TestDisorientation_HexFold: 60° about the c axis is a hexagonal
// symmetry operator, 30° is the maximal c-axis disorientation.
func TestDisorientation_HexFold(t *testing.T) {
	id := quat.Number{Real: 1}

	w, _ := orient.Disorientation(orient.Hexagonal, id, zRotation(60))
	assert.InDelta(t, 0.0, w, 1e-6)

	w, _ = orient.Disorientation(orient.Hexagonal, id, zRotation(30))
	assert.InDelta(t, 30.0, w, 1e-6)

	w, _ = orient.Disorientation(orient.Hexagonal, id, zRotation(45))
	assert.InDelta(t, 15.0, w, 1e-6, "45° folds to 15° past the 30° boundary")
}

// TestDisorientation_Symmetric: miso(q1,q2) == miso(q2,q1) for random
// pairs under both groups.
func TestDisorientation_Symmetric(t *testing.T) {
	rng := randx.New(17)
	for _, c := range []orient.Crystal{orient.Cubic, orient.Hexagonal} {
		for i := 0; i < 50; i++ {
			q1, q2 := randomUnit(rng), randomUnit(rng)
			w12, _ := orient.Disorientation(c, q1, q2)
			w21, _ := orient.Disorientation(c, q2, q1)
			require.InDelta(t, w12, w21, 1e-6)
		}
	}
}

// TestDisorientation_CubicBound: the cubic disorientation never
// exceeds the 62.8° fundamental-zone bound.
func TestDisorientation_CubicBound(t *testing.T) {
	rng := randx.New(29)
	for i := 0; i < 200; i++ {
		w, _ := orient.Disorientation(orient.Cubic, randomUnit(rng), randomUnit(rng))
		require.GreaterOrEqual(t, w, 0.0)
		require.LessOrEqual(t, w, 62.9)
	}
}

// TestFromEuler_RoundTrip: the quaternion of (φ1,Φ,φ2) matches the
// composition convention (zero disorientation against itself after a
// full 2π shift of the angles).
func TestFromEuler_RoundTrip(t *testing.T) {
	q := orient.FromEuler(0.3, 0.8, 1.2)
	norm := math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
	assert.InDelta(t, 1.0, norm, 1e-12, "unit quaternion")

	q2 := orient.FromEuler(0.3+2*math.Pi, 0.8, 1.2)
	w, _ := orient.Disorientation(orient.Cubic, q, q2)
	assert.InDelta(t, 0.0, w, 1e-6)
}

// TestCrystal_Dims pins the ODF discretizations.
func TestCrystal_Dims(t *testing.T) {
	assert.Equal(t, 36*36*12, orient.Hexagonal.ODFBins())
	assert.Equal(t, 18*18*18, orient.Cubic.ODFBins())
	assert.True(t, orient.Cubic.Valid())
	assert.False(t, orient.Crystal(0).Valid())
}

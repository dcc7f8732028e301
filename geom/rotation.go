package geom

import "math"

// Matrix3 is a row-major 3×3 rotation matrix. It stays a value type:
// the transform runs once per candidate voxel in the innermost
// enumeration loop, so the flat array keeps the hot path free of
// indirection.
type Matrix3 [3][3]float64

// RotationMatrix builds the Bunge-convention orientation matrix
// Γ(φ1, Φ, φ2) mapping sample-frame offsets into the grain frame via
// TransposeApply.
func RotationMatrix(phi1, bigPhi, phi2 float64) Matrix3 {
	c1, s1 := math.Cos(phi1), math.Sin(phi1)
	c, s := math.Cos(bigPhi), math.Sin(bigPhi)
	c2, s2 := math.Cos(phi2), math.Sin(phi2)

	return Matrix3{
		{c1*c2 - s1*s2*c, s1*c2 + c1*s2*c, s2 * s},
		{-c1*s2 - s1*c2*c, -s1*s2 + c1*c2*c, c2 * s},
		{s1 * s, -c1 * s, c},
	}
}

// TransposeApply returns Γᵀ·(x,y,z): the sample-frame offset expressed
// in the grain's principal frame.
func (m Matrix3) TransposeApply(x, y, z float64) (xp, yp, zp float64) {
	xp = x*m[0][0] + y*m[1][0] + z*m[2][0]
	yp = x*m[0][1] + y*m[1][1] + z*m[2][1]
	zp = x*m[0][2] + y*m[1][2] + z*m[2][2]

	return xp, yp, zp
}

package grid

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrBadDimensions indicates non-positive point counts or voxel pitch.
var ErrBadDimensions = errors.New("grid: dimensions and resolution must be positive")

// Geometry describes the discretization of the sample box: integer
// voxel counts per axis and the physical voxel pitch. The box is
// periodic on all three axes; every voxel access wraps with mod.
type Geometry struct {
	XPoints, YPoints, ZPoints int
	ResX, ResY, ResZ          float64
}

// FitCube derives a cubic Geometry whose box volume covers
// totalVolume at the given pitch, the way the packer coarsens the
// domain: side = totalVolume^(1/3), points = side/res + 1. The
// returned effective volume is the open-box volume
// ((xp-1)·resx)·((yp-1)·resy)·((zp-1)·resz) used for density
// normalization downstream.
func FitCube(totalVolume, resX, resY, resZ float64) (Geometry, float64, error) {
	if totalVolume <= 0 || resX <= 0 || resY <= 0 || resZ <= 0 {
		return Geometry{}, 0, ErrBadDimensions
	}
	side := math.Cbrt(totalVolume)
	g := Geometry{
		XPoints: int(side/resX) + 1,
		YPoints: int(side/resY) + 1,
		ZPoints: int(side/resZ) + 1,
		ResX:    resX, ResY: resY, ResZ: resZ,
	}
	eff := float64(g.XPoints-1) * resX * float64(g.YPoints-1) * resY * float64(g.ZPoints-1) * resZ

	return g, eff, nil
}

// Validate reports ErrBadDimensions unless all counts and pitches are
// positive.
func (g Geometry) Validate() error {
	if g.XPoints <= 0 || g.YPoints <= 0 || g.ZPoints <= 0 ||
		g.ResX <= 0 || g.ResY <= 0 || g.ResZ <= 0 {
		return ErrBadDimensions
	}

	return nil
}

// Total returns the voxel count XPoints·YPoints·ZPoints.
func (g Geometry) Total() int { return g.XPoints * g.YPoints * g.ZPoints }

// SizeX returns the periodic box extent along x. Likewise SizeY, SizeZ.
func (g Geometry) SizeX() float64 { return float64(g.XPoints) * g.ResX }

// SizeY returns the periodic box extent along y.
func (g Geometry) SizeY() float64 { return float64(g.YPoints) * g.ResY }

// SizeZ returns the periodic box extent along z.
func (g Geometry) SizeZ() float64 { return float64(g.ZPoints) * g.ResZ }

// Index maps cell coordinates to the flat index z·X·Y + y·X + x.
// Coordinates must already be in range; use Wrap for periodic access.
func (g Geometry) Index(x, y, z int) int {
	return (z*g.XPoints*g.YPoints + y*g.XPoints) + x
}

// Coords is the inverse of Index.
func (g Geometry) Coords(index int) (x, y, z int) {
	x = index % g.XPoints
	y = (index / g.XPoints) % g.YPoints
	z = index / (g.XPoints * g.YPoints)

	return x, y, z
}

// Wrap folds an unbounded cell coordinate onto the periodic axis of
// length n. One mod covers offsets within ±n, which is all callers
// generate (bounding boxes never exceed one box length).
func Wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}

	return i
}

// CellCenter returns the physical coordinate of a voxel's center,
// matching the reference convention x = resx·column (the half-cell
// offset cancels in every distance the pipeline computes).
func (g Geometry) CellCenter(index int) r3.Vec {
	x, y, z := g.Coords(index)

	return r3.Vec{
		X: g.ResX * float64(x),
		Y: g.ResY * float64(y),
		Z: g.ResZ * float64(z),
	}
}

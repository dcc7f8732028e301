package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/MicroClue/grainsynth/grid"
)

// ForEachCell enumerates every voxel whose center lies inside the
// grain body centered at c, under periodic wrap on all three axes,
// and calls fn with the wrapped flat index and the inside-function
// value at that cell. grow widens the bounding semi-axis (the gap
// filler grows bodies pass by pass); pass 0 during packing and
// assignment.
//
// The walk covers an axis-aligned bounding box of half-extent
// a/res+1 cells around the centroid. A candidate cell outside the box
// is wrapped by one period and its physical coordinate shifted by the
// box size, so distances stay continuous across the boundary.
func (s Shape) ForEachCell(c r3.Vec, geo grid.Geometry, grow float64, fn func(index int, inside float64)) error {
	a, err := s.SemiAxis()
	if err != nil {
		return err
	}
	a += grow
	b := a * s.AspectB
	cc := a * s.AspectC
	ga := RotationMatrix(s.Euler[0], s.Euler[1], s.Euler[2])

	column := int((c.X - geo.ResX/2) / geo.ResX)
	row := int((c.Y - geo.ResY/2) / geo.ResY)
	plane := int((c.Z - geo.ResZ/2) / geo.ResZ)
	xspan := int(a/geo.ResX) + 1
	yspan := int(a/geo.ResY) + 1
	zspan := int(a/geo.ResZ) + 1

	sizeX, sizeY, sizeZ := geo.SizeX(), geo.SizeY(), geo.SizeZ()

	for i := column - xspan; i <= column+xspan; i++ {
		for j := row - yspan; j <= row+yspan; j++ {
			for k := plane - zspan; k <= plane+zspan; k++ {
				x := grid.Wrap(i, geo.XPoints)
				y := grid.Wrap(j, geo.YPoints)
				z := grid.Wrap(k, geo.ZPoints)
				index := geo.Index(x, y, z)

				p := geo.CellCenter(index)
				// Shift wrapped cells back to the un-wrapped image so the
				// centroid distance is measured across the boundary.
				if i < 0 {
					p.X -= sizeX
				} else if i > geo.XPoints-1 {
					p.X += sizeX
				}
				if j < 0 {
					p.Y -= sizeY
				} else if j > geo.YPoints-1 {
					p.Y += sizeY
				}
				if k < 0 {
					p.Z -= sizeZ
				} else if k > geo.ZPoints-1 {
					p.Z += sizeZ
				}

				d := p.Sub(c)
				if math.Sqrt(d.X*d.X+d.Y*d.Y+d.Z*d.Z) > a {
					continue
				}

				xp, yp, zp := ga.TransposeApply(d.X, d.Y, d.Z)
				inside, sum := s.insideAt(xp/a, yp/b, zp/cc)
				if !inside {
					continue
				}
				fn(index, insideKernel(sum))
			}
		}
	}

	return nil
}

// insideAt tests the normalized grain-frame point against the body
// and returns the component sum the cost kernel is evaluated at.
func (s Shape) insideAt(a1, a2, a3 float64) (bool, float64) {
	switch s.Class {
	case Superellipsoid:
		n := s.Factor
		a1 = math.Pow(math.Abs(a1), n)
		a2 = math.Pow(math.Abs(a2), n)
		a3 = math.Pow(math.Abs(a3), n)

		return 1-a1-a2-a3 >= 0, a1 + a2 + a3
	case Cuboctahedron:
		if math.Abs(a1) > 1 || math.Abs(a2) > 1 || math.Abs(a3) > 1 {
			return false, 0
		}
		// Shift to [0,2] and test the eight chamfer half-spaces.
		a1, a2, a3 = a1+1, a2+1, a3+1
		g := s.Factor
		lo := -0.5 * g
		hi := 2 - 0.5*g
		if -a1-a2+a3-(lo+lo+2) > 0 ||
			a1-a2+a3-(hi+lo+2) > 0 ||
			a1+a2+a3-(hi+hi+2) > 0 ||
			-a1+a2+a3-(lo+hi+2) > 0 ||
			-a1-a2-a3-(lo+lo) > 0 ||
			a1-a2-a3-(hi+lo) > 0 ||
			a1+a2-a3-(hi+hi) > 0 ||
			-a1+a2-a3-(lo+hi) > 0 {
			return false, 0
		}

		return true, a1 + a2 + a3
	default: // Ellipsoid
		a1, a2, a3 = a1*a1, a2*a2, a3*a3

		return 1-a1-a2-a3 >= 0, a1 + a2 + a3
	}
}

// Cells collects ForEachCell output into parallel index/inside slices.
func (s Shape) Cells(c r3.Vec, geo grid.Geometry, grow float64) (indices []int, inside []float64, err error) {
	err = s.ForEachCell(c, geo, grow, func(index int, f float64) {
		indices = append(indices, index)
		inside = append(inside, f)
	})
	if err != nil {
		return nil, nil, err
	}

	return indices, inside, nil
}

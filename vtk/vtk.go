// Package vtk writes the final labeling as a legacy-VTK ASCII
// structured-points dataset with three point scalars: GrainID,
// SurfaceVoxel (boundary face count), and Unassigned (overlap
// tie-break marker). The layout matches the downstream tooling's
// reader: 20 values per line, right-aligned integers.
package vtk

import (
	"bufio"
	"fmt"
	"io"

	"github.com/MicroClue/grainsynth/grid"
)

// valuesPerLine is the fixed row width of every scalar block.
const valuesPerLine = 20

// Write streams the grid to w. Any underlying write error is
// returned from the final flush.
func Write(w io.Writer, g *grid.Grid) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# vtk DataFile Version 2.0\n")
	fmt.Fprintf(bw, "synthetic polycrystal labeling\n")
	fmt.Fprintf(bw, "ASCII\n")
	fmt.Fprintf(bw, "DATASET STRUCTURED_POINTS\n")
	fmt.Fprintf(bw, "DIMENSIONS %d %d %d\n", g.XPoints, g.YPoints, g.ZPoints)
	fmt.Fprintf(bw, "ORIGIN 0.0 0.0 0.0\n")
	fmt.Fprintf(bw, "SPACING %g %g %g\n", g.ResX, g.ResY, g.ResZ)
	fmt.Fprintf(bw, "POINT_DATA %d\n", g.Total())

	writeScalars(bw, "GrainID", g, func(v *grid.Voxel) int { return v.Label })
	writeScalars(bw, "SurfaceVoxel", g, func(v *grid.Voxel) int { return v.SurfaceFaces })
	writeScalars(bw, "Unassigned", g, func(v *grid.Voxel) int {
		if v.Conflict {
			return 1
		}

		return 0
	})

	return bw.Flush()
}

func writeScalars(bw *bufio.Writer, name string, g *grid.Grid, field func(*grid.Voxel) int) {
	fmt.Fprintf(bw, "SCALARS %s int 1\n", name)
	fmt.Fprintf(bw, "LOOKUP_TABLE default\n")
	for i := range g.Voxels {
		if i > 0 && i%valuesPerLine == 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, " %5d", field(&g.Voxels[i]))
	}
	fmt.Fprintln(bw)
}

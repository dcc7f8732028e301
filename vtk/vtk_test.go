package vtk_test

import (
	"bufio"
	"strings"
	"testing"

	"github.com/MicroClue/grainsynth/grid"
	"github.com/MicroClue/grainsynth/vtk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWrite_HeaderAndScalars checks the legacy header, the three
// scalar blocks, and the value layout.
func TestWrite_HeaderAndScalars(t *testing.T) {
	geo := grid.Geometry{XPoints: 5, YPoints: 5, ZPoints: 2, ResX: 0.25, ResY: 0.25, ResZ: 0.5}
	g, err := grid.New(geo)
	require.NoError(t, err)
	for i := range g.Voxels {
		g.Voxels[i].Label = 1 + i%3
	}
	g.Voxels[7].Conflict = true
	g.Voxels[7].SurfaceFaces = 4

	var sb strings.Builder
	require.NoError(t, vtk.Write(&sb, g))
	out := sb.String()

	assert.True(t, strings.HasPrefix(out, "# vtk DataFile Version 2.0\n"))
	assert.Contains(t, out, "DATASET STRUCTURED_POINTS")
	assert.Contains(t, out, "DIMENSIONS 5 5 2")
	assert.Contains(t, out, "SPACING 0.25 0.25 0.5")
	assert.Contains(t, out, "POINT_DATA 50")
	for _, scalar := range []string{"SCALARS GrainID int 1", "SCALARS SurfaceVoxel int 1", "SCALARS Unassigned int 1"} {
		assert.Contains(t, out, scalar)
	}

	// Every label in the GrainID block appears; 20 values per full line.
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		if strings.Contains(sc.Text(), "LOOKUP_TABLE") {
			break
		}
	}
	require.True(t, sc.Scan())
	first := strings.Fields(sc.Text())
	assert.Len(t, first, 20)
	assert.Equal(t, "1", first[0])
	assert.Equal(t, "2", first[1])
	assert.Equal(t, "3", first[2])
}

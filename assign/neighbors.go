package assign

import (
	"sort"

	"github.com/MicroClue/grainsynth/grain"
	"github.com/MicroClue/grainsynth/grid"
)

// DiscoverNeighbors scans the final labeling with 6-connectivity and
// fills each grain's neighbor list, shared boundary areas, and the
// surface-grain flag; boundary voxels get their face counts and
// nearest-neighbor bookkeeping. Returns the total boundary area over
// which the MDF is normalized: faces are counted once per unordered
// interior pair, and once per interior-to-surface adjacency.
//
// The scan is face-bounded, not periodic: a grain touching any box
// face is a surface grain and is excluded from texture matching.
func DiscoverNeighbors(g *grid.Grid, cat *grain.Catalog, m int) float64 {
	raw := make([][]int, m+1)

	for j := range g.Voxels {
		id := g.Voxels[j].Label
		if id <= 0 {
			continue
		}
		x, y, z := g.Coords(j)
		if x == 0 || x == g.XPoints-1 || y == 0 || y == g.YPoints-1 ||
			z == 0 || z == g.ZPoints-1 {
			cat.Grains[id].Surface = true
		}

		faces := 0
		visitFaces(g, j, x, y, z, func(neighbor int) {
			nid := g.Voxels[neighbor].Label
			if nid != id && nid >= 0 {
				faces++
				raw[id] = append(raw[id], nid)
				g.Voxels[j].NearestGrain = nid
			}
		})
		g.Voxels[j].SurfaceFaces = faces
		if faces > 0 {
			g.Voxels[j].NearestDistance = 0
		} else {
			g.Voxels[j].NearestGrain = -1
			g.Voxels[j].NearestDistance = -1
		}
	}

	faceArea := g.ResX * g.ResX
	total := 0.0
	for id := 1; id <= m; id++ {
		gr := &cat.Grains[id]
		list := raw[id]
		sort.Ints(list)

		gr.Neighbors = gr.Neighbors[:0]
		gr.SharedAreas = gr.SharedAreas[:0]
		for i := 0; i < len(list); {
			nid := list[i]
			count := 0
			for i < len(list) && list[i] == nid {
				count++
				i++
			}
			if nid <= 0 {
				continue
			}
			area := float64(count) * faceArea
			gr.Neighbors = append(gr.Neighbors, nid)
			gr.SharedAreas = append(gr.SharedAreas, area)
			if !gr.Surface && (nid > id || cat.Grains[nid].Surface) {
				total += area
			}
		}
	}

	return total
}

// visitFaces calls fn with the flat index of each in-bounds face
// neighbor of voxel j at (x,y,z).
func visitFaces(g *grid.Grid, j, x, y, z int, fn func(neighbor int)) {
	xy := g.XPoints * g.YPoints
	if z > 0 {
		fn(j - xy)
	}
	if z < g.ZPoints-1 {
		fn(j + xy)
	}
	if y > 0 {
		fn(j - g.XPoints)
	}
	if y < g.YPoints-1 {
		fn(j + g.XPoints)
	}
	if x > 0 {
		fn(j - 1)
	}
	if x < g.XPoints-1 {
		fn(j + 1)
	}
}

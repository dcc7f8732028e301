package assign

import (
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/MicroClue/grainsynth/geom"
	"github.com/MicroClue/grainsynth/grain"
	"github.com/MicroClue/grainsynth/grid"
)

// ErrUnfilled indicates FillGaps could not label every voxel; growth
// stalled, which only happens on an empty active set.
var ErrUnfilled = errors.New("assign: gap fill failed to converge")

// refinement restores the true pitch from the packing grid's.
const refinement = 4.0

// maxFillPasses bounds the gap-fill loop far above any real
// microstructure's need; hitting it means no grain can grow.
const maxFillPasses = 10_000

// Voxelize allocates the fine grid (pitch = coarse/4 over the same
// physical box) and labels every cell inside one of the m grain
// bodies. Cells claimed twice are demoted to Unassigned with the
// conflict flag set; the grain order is id-ascending so the labeling
// is deterministic.
func Voxelize(cat *grain.Catalog, m int, coarse grid.Geometry, class geom.Class, workers int) (*grid.Grid, error) {
	fine := grid.Geometry{
		ResX: coarse.ResX / refinement,
		ResY: coarse.ResY / refinement,
		ResZ: coarse.ResZ / refinement,
	}
	fine.XPoints = int(coarse.SizeX()/fine.ResX) + 1
	fine.YPoints = int(coarse.SizeY()/fine.ResY) + 1
	fine.ZPoints = int(coarse.SizeZ()/fine.ResZ) + 1

	g, err := grid.New(fine)
	if err != nil {
		return nil, err
	}

	// Enumeration is pure geometry: fan out per grain, then apply the
	// claims sequentially so overlap resolution stays deterministic.
	cells, err := enumerateAll(cat, m, fine, class, 0, workers)
	if err != nil {
		return nil, err
	}

	for id := 1; id <= m; id++ {
		for _, v := range cells[id] {
			vox := &g.Voxels[v]
			switch {
			case vox.Label == grid.Unlabeled:
				vox.Label = id
			case vox.Label > 0:
				vox.Label = grid.Unassigned
				vox.Conflict = true
			case vox.Label == grid.Unassigned && !vox.Conflict:
				vox.Label = id
			}
		}
	}

	return g, nil
}

// enumerateAll voxelizes grains 1..m at the given growth, returning
// per-grain claimed-cell candidates.
func enumerateAll(cat *grain.Catalog, m int, geo grid.Geometry, class geom.Class, grow float64, workers int) ([][]int, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	cells := make([][]int, m+1)

	var eg errgroup.Group
	eg.SetLimit(workers)
	for id := 1; id <= m; id++ {
		id := id
		eg.Go(func() error {
			g := &cat.Grains[id]
			idx, _, err := g.Shape(class).Cells(g.Centroid, geo, grow)
			if err != nil {
				return err
			}
			cells[id] = idx

			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return cells, nil
}

// FillGaps labels every remaining gap cell by growing the grain
// bodies half a voxel pitch per pass; the first grain to reach a gap
// claims it. Afterwards each grain's voxel list and NumVoxels are
// rebuilt from the final labeling.
func FillGaps(g *grid.Grid, cat *grain.Catalog, m int, class geom.Class, workers int) error {
	for pass := 1; ; pass++ {
		gaps := 0
		for i := range g.Voxels {
			if g.Voxels[i].Label <= grid.Unlabeled {
				gaps++
				g.Voxels[i].Conflict = false
			}
		}
		if gaps == 0 {
			break
		}
		if pass > maxFillPasses {
			return ErrUnfilled
		}

		grow := float64(pass) * g.ResX / 2.0
		cells, err := enumerateAll(cat, m, g.Geometry, class, grow, workers)
		if err != nil {
			return err
		}
		for id := 1; id <= m; id++ {
			for _, v := range cells[id] {
				vox := &g.Voxels[v]
				if vox.Label <= grid.Unlabeled && !vox.Conflict {
					vox.Label = id
				}
			}
		}
	}

	rebuildMembership(g, cat, m)

	return nil
}

// rebuildMembership derives every grain's voxel list and count from
// the final labeling, the single source of truth after gap fill.
func rebuildMembership(g *grid.Grid, cat *grain.Catalog, m int) {
	for id := 1; id <= m; id++ {
		cat.Grains[id].Voxels = nil
		cat.Grains[id].Inside = nil
		cat.Grains[id].NumVoxels = 0
	}
	for i := range g.Voxels {
		label := g.Voxels[i].Label
		if label > 0 && label <= m {
			cat.Grains[label].Voxels = append(cat.Grains[label].Voxels, i)
			cat.Grains[label].NumVoxels++
		}
	}
}

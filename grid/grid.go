package grid

// Label values with reserved meaning. Positive labels are grain ids.
const (
	// Unlabeled marks a voxel never claimed by any grain.
	Unlabeled = 0
	// Unassigned marks a voxel demoted by an overlap conflict; gap
	// fill re-opens it for claiming.
	Unassigned = -1
)

// Voxel is one cubic cell of the grid.
//
// During packing only the coverage rows (Grains, Inside) mutate: they
// record which candidate grains currently cover the cell and the
// inside-function value each evaluated here. Label, Conflict, and the
// surface/nearest fields are written during voxel assignment and
// boundary discovery.
type Voxel struct {
	// Label is the owning grain id, or Unlabeled / Unassigned.
	Label int
	// Conflict distinguishes an overlap tie-break (true) from a cell
	// that merely has not been claimed yet.
	Conflict bool
	// SurfaceFaces counts faces shared with a different grain.
	SurfaceFaces int
	// NearestGrain is a neighboring grain id when on a boundary, -1 otherwise.
	NearestGrain int
	// NearestDistance is 0 on a boundary voxel, -1 otherwise.
	NearestDistance float64

	// Grains and Inside are parallel coverage rows: Grains[i] covers
	// this voxel with inside-function value Inside[i].
	Grains []int
	Inside []float64
}

// Grid is the mutable labeling of the sample volume.
type Grid struct {
	Geometry
	Voxels []Voxel
}

// New allocates a grid of empty voxels for the geometry.
func New(geo Geometry) (*Grid, error) {
	if err := geo.Validate(); err != nil {
		return nil, err
	}
	g := &Grid{Geometry: geo, Voxels: make([]Voxel, geo.Total())}
	for i := range g.Voxels {
		g.Voxels[i].NearestGrain = -1
		g.Voxels[i].NearestDistance = -1
	}

	return g, nil
}

// Cover appends grain to the voxel's coverage row.
func (g *Grid) Cover(index, grain int, inside float64) {
	v := &g.Voxels[index]
	v.Grains = append(v.Grains, grain)
	v.Inside = append(v.Inside, inside)
}

// Uncover removes grain from the voxel's coverage row along with its
// inside value. Removing an absent grain is a no-op.
func (g *Grid) Uncover(index, grain int) {
	v := &g.Voxels[index]
	for i, id := range v.Grains {
		if id != grain {
			continue
		}
		last := len(v.Grains) - 1
		v.Grains[i] = v.Grains[last]
		v.Inside[i] = v.Inside[last]
		v.Grains = v.Grains[:last]
		v.Inside = v.Inside[:last]

		return
	}
}

// Covered reports how many grains currently cover the voxel.
func (g *Grid) Covered(index int) int { return len(g.Voxels[index].Grains) }

// FillingCost returns the voxel's contribution to the filling error:
// 1 for an empty cell, 0 for single coverage, and the summed inside
// values when two or more grains overlap.
func (g *Grid) FillingCost(index int) float64 {
	v := &g.Voxels[index]
	switch len(v.Grains) {
	case 0:
		return 1
	case 1:
		return 0
	default:
		sum := 0.0
		for _, f := range v.Inside {
			sum += f
		}

		return sum
	}
}

// FillingError recomputes the total filling error from scratch. The
// packer maintains the same quantity incrementally; the two must agree
// to within floating-point drift (a checked invariant).
func (g *Grid) FillingError() float64 {
	total := 0.0
	for i := range g.Voxels {
		total += g.FillingCost(i)
	}

	return total
}

// CoverageCount returns the summed length of all coverage rows. It
// must equal the summed membership list lengths over active grains.
func (g *Grid) CoverageCount() int {
	n := 0
	for i := range g.Voxels {
		n += len(g.Voxels[i].Grains)
	}

	return n
}

// ForEach calls fn for every voxel with its cell coordinates and label.
func (g *Grid) ForEach(fn func(x, y, z, label int)) {
	for i := range g.Voxels {
		x, y, z := g.Coords(i)
		fn(x, y, z, g.Voxels[i].Label)
	}
}

package grain

import (
	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/MicroClue/grainsynth/geom"
)

// ShellCountDepth is the number of neighborhood distance shells tracked
// per grain (centroid distance 0..4 radii in steps of one radius).
const ShellCountDepth = 4

// Grain is one candidate. Shape fields are immutable after Generate;
// packing mutates Active, Centroid, Voxels/Inside, and ShellCount;
// voxelization and texture matching fill the remaining fields.
type Grain struct {
	// Volume and EquivDiameter describe the sampled size.
	Volume        float64
	EquivDiameter float64
	// AspectB, AspectC, Factor, AxisEuler parameterize the body (see geom.Shape).
	AspectB   float64
	AspectC   float64
	Factor    float64
	AxisEuler [3]float64

	Centroid r3.Vec
	Active   bool

	// Voxels and Inside are the parallel membership rows mirrored by
	// the grid's per-voxel coverage rows during packing, and the
	// claimed-voxel list after assignment.
	Voxels []int
	Inside []float64

	// ShellCount[s] is the number of active grains currently within
	// shell s of this grain; Shells[s] lists the grains whose counter
	// at s this grain touches when toggling active.
	ShellCount [ShellCountDepth]int
	Shells     [ShellCountDepth][]int

	// Crystallographic state, assigned by the texture stage.
	Euler [3]float64
	Quat  quat.Number

	// Final-labeling neighborhood, filled by boundary discovery.
	Neighbors       []int
	SharedAreas     []float64
	Misorientations []float64
	Surface         bool
	NumVoxels       int
}

// Shape bundles the grain's body description for voxelization.
func (g *Grain) Shape(class geom.Class) geom.Shape {
	return geom.Shape{
		Class:   class,
		Volume:  g.Volume,
		AspectB: g.AspectB,
		AspectC: g.AspectC,
		Factor:  g.Factor,
		Euler:   g.AxisEuler,
	}
}

// Radius returns the equivalent-sphere radius used for shell binning.
func (g *Grain) Radius() float64 { return g.EquivDiameter / 2 }

// Catalog is the 1-based grain array. Grains[0] is a zero sentinel so
// grain ids coincide with positive voxel labels.
type Catalog struct {
	Grains []Grain
}

// NewCatalog allocates a catalog for n grains (indices 1..n).
func NewCatalog(n int) *Catalog {
	return &Catalog{Grains: make([]Grain, n+1)}
}

// Len returns the number of real grains (excludes the zero sentinel).
func (c *Catalog) Len() int { return len(c.Grains) - 1 }

// Compact reorders the grains named by ids (ascending, deduplicated by
// the caller) into slots 1..len(ids) and truncates the catalog, the
// post-packing renumbering that turns the surviving candidates into
// the final contiguous id space.
func (c *Catalog) Compact(ids []int) {
	for i, id := range ids {
		c.Grains[i+1] = c.Grains[id]
	}
	c.Grains = c.Grains[:len(ids)+1]
}

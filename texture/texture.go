package texture

import (
	"errors"
	"math"

	"github.com/MicroClue/grainsynth/grain"
	"github.com/MicroClue/grainsynth/orient"
	"github.com/MicroClue/grainsynth/randx"
	"github.com/MicroClue/grainsynth/stats"
)

// Sentinel errors for texture construction.
var (
	// ErrBadInput indicates a missing ODF/MDF table or a bad volume.
	ErrBadInput = errors.New("texture: invalid tables or volumes")
	// ErrNoInterior indicates every grain touches the box surface, so
	// nothing can be matched.
	ErrNoInterior = errors.New("texture: no interior grains to match")
)

// odfCellDegrees is the Euler-space cell width shared by every ODF
// discretization.
const odfCellDegrees = 5.0

// Texture is the orientation-matching context over a final labeling.
type Texture struct {
	cat     *grain.Catalog
	m       int
	crystal orient.Crystal
	tables  *stats.Tables
	rng     *randx.Source

	// voxelVol is the fine voxel volume; totalVol the box volume:
	// together they turn voxel counts into ODF density weights.
	voxelVol float64
	totalVol float64
	// totalArea normalizes MDF contributions; set by
	// MeasureMisorientations.
	totalArea float64

	odfPrefix []float64

	// SimODF and SimMDF are the simulated accumulators matched
	// against the targets.
	SimODF []float64
	SimMDF []float64
}

// New builds a Texture over grains 1..m.
func New(cat *grain.Catalog, m int, tables *stats.Tables, crystal orient.Crystal,
	rng *randx.Source, voxelVol, totalVol float64) (*Texture, error) {
	if !crystal.Valid() {
		return nil, orient.ErrCrystal
	}
	bins := crystal.ODFBins()
	if len(tables.ODF) != bins || len(tables.MDF) != stats.MDFBins ||
		voxelVol <= 0 || totalVol <= 0 || m <= 0 || m > cat.Len() {
		return nil, ErrBadInput
	}

	t := &Texture{
		cat: cat, m: m, crystal: crystal, tables: tables, rng: rng,
		voxelVol: voxelVol, totalVol: totalVol,
		SimODF: make([]float64, bins),
		SimMDF: make([]float64, stats.MDFBins),
	}
	t.odfPrefix = make([]float64, bins)
	sum := 0.0
	for i, d := range tables.ODF {
		sum += d
		t.odfPrefix[i] = sum
	}

	return t, nil
}

// weight is the grain's volume fraction of the box.
func (t *Texture) weight(id int) float64 {
	return float64(t.cat.Grains[id].NumVoxels) * t.voxelVol / t.totalVol
}

// binOf maps a grain's Euler triple back to its ODF cell.
func (t *Texture) binOf(euler [3]float64) int {
	d1, d2, _ := t.crystal.EulerDims()
	cell := odfCellDegrees * math.Pi / 180.0
	b1 := int(euler[0] / cell)
	b2 := int(euler[1] / cell)
	b3 := int(euler[2] / cell)

	return b3*d1*d2 + b2*d1 + b1
}

// sampleOrientation draws an ODF cell and a jittered Euler triple
// inside it.
func (t *Texture) sampleOrientation() (bin int, euler [3]float64) {
	bin = grain.SampleBin(t.odfPrefix, t.rng.Uniform())
	d1, d2, _ := t.crystal.EulerDims()
	b := [3]int{bin % d1, (bin / d1) % d2, bin / (d1 * d2)}
	for i := 0; i < 3; i++ {
		deg := float64(b[i])*odfCellDegrees + t.rng.Uniform()*odfCellDegrees
		euler[i] = deg * math.Pi / 180.0
	}

	return bin, euler
}

// AssignOrientations samples every grain's initial orientation and
// seeds the simulated ODF with the non-surface volume fractions.
func (t *Texture) AssignOrientations() {
	for id := 1; id <= t.m; id++ {
		bin, euler := t.sampleOrientation()
		g := &t.cat.Grains[id]
		g.Euler = euler
		g.Quat = orient.FromEuler(euler[0], euler[1], euler[2])
		if !g.Surface {
			t.SimODF[bin] += t.weight(id)
		}
	}
}

// mdfBin folds a disorientation angle into its 5° bin.
func mdfBin(angle float64) int {
	b := int(angle / stats.MDFBinWidth)
	if b >= stats.MDFBins {
		b = stats.MDFBins - 1
	}
	if b < 0 {
		b = 0
	}

	return b
}

// MeasureMisorientations fills every grain's disorientation list
// against its neighbors and accumulates the simulated MDF, each
// boundary counted once (interior pairs from the lower id, boundaries
// to surface grains from the interior side). totalArea is the
// normalizer returned by neighbor discovery.
func (t *Texture) MeasureMisorientations(totalArea float64) {
	t.totalArea = totalArea
	for i := range t.SimMDF {
		t.SimMDF[i] = 0
	}
	for id := 1; id <= t.m; id++ {
		g := &t.cat.Grains[id]
		g.Misorientations = make([]float64, len(g.Neighbors))
		for j, nid := range g.Neighbors {
			w, _ := orient.Disorientation(t.crystal, g.Quat, t.cat.Grains[nid].Quat)
			g.Misorientations[j] = w
			if !g.Surface && (nid > id || t.cat.Grains[nid].Surface) && totalArea > 0 {
				t.SimMDF[mdfBin(w)] += g.SharedAreas[j] / totalArea
			}
		}
	}
}

// ODFError returns the summed squared per-bin ODF deviation.
func (t *Texture) ODFError() float64 {
	return sqDiff(t.tables.ODF, t.SimODF)
}

// MDFError returns the summed squared per-bin MDF deviation.
func (t *Texture) MDFError() float64 {
	return sqDiff(t.tables.MDF, t.SimMDF)
}

func sqDiff(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}

	return sum
}

// Microtexture bins, per interior grain, the fraction of its
// boundaries below 15° misorientation into tenths.
func (t *Texture) Microtexture() []float64 {
	bins := make([]float64, stats.MicroBins)
	for id := 1; id <= t.m; id++ {
		g := &t.cat.Grains[id]
		if g.Surface || len(g.Misorientations) == 0 {
			continue
		}
		low := 0.0
		for _, w := range g.Misorientations {
			if w < 15 {
				low++
			}
		}
		frac := low / float64(len(g.Misorientations))
		b := int(frac / 0.1)
		if b >= stats.MicroBins {
			b = stats.MicroBins - 1
		}
		bins[b]++
	}

	return bins
}

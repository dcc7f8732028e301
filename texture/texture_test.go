package texture_test

import (
	"math"
	"testing"

	"github.com/MicroClue/grainsynth/grain"
	"github.com/MicroClue/grainsynth/orient"
	"github.com/MicroClue/grainsynth/randx"
	"github.com/MicroClue/grainsynth/stats"
	"github.com/MicroClue/grainsynth/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chainFixture builds a hand-wired six-grain system: interior grains
// 1..4 in a chain with shared area 2 per boundary, surface grains 5
// and 6 capping the ends with area 1. Total counted boundary area: 8.
func chainFixture(crystal orient.Crystal) (*grain.Catalog, *stats.Tables, float64) {
	cat := grain.NewCatalog(6)
	link := func(a, b int, area float64) {
		cat.Grains[a].Neighbors = append(cat.Grains[a].Neighbors, b)
		cat.Grains[a].SharedAreas = append(cat.Grains[a].SharedAreas, area)
		cat.Grains[b].Neighbors = append(cat.Grains[b].Neighbors, a)
		cat.Grains[b].SharedAreas = append(cat.Grains[b].SharedAreas, area)
	}
	for id := 1; id <= 6; id++ {
		cat.Grains[id].NumVoxels = 100 + id
	}
	cat.Grains[5].Surface = true
	cat.Grains[6].Surface = true
	link(1, 2, 2)
	link(2, 3, 2)
	link(3, 4, 2)
	link(1, 5, 1)
	link(4, 6, 1)

	bins := crystal.ODFBins()
	tb := &stats.Tables{
		ODF: make([]float64, bins),
		MDF: make([]float64, stats.MDFBins),
	}
	for i := range tb.ODF {
		tb.ODF[i] = 1.0 / float64(bins)
	}
	for i := range tb.MDF {
		tb.MDF[i] = 1.0 / float64(stats.MDFBins)
	}

	return cat, tb, 8.0
}

func newTexture(t *testing.T, crystal orient.Crystal, seed uint64) (*texture.Texture, *grain.Catalog) {
	t.Helper()
	cat, tb, area := chainFixture(crystal)
	tex, err := texture.New(cat, 6, tb, crystal, randx.New(seed), 1.0, 1000.0)
	require.NoError(t, err)
	tex.AssignOrientations()
	tex.MeasureMisorientations(area)

	return tex, cat
}

// TestNew_Validation rejects mismatched tables.
func TestNew_Validation(t *testing.T) {
	cat, tb, _ := chainFixture(orient.Cubic)
	_, err := texture.New(cat, 6, tb, orient.Hexagonal, randx.New(1), 1, 1000)
	assert.ErrorIs(t, err, texture.ErrBadInput, "cubic-sized ODF under hexagonal symmetry")

	_, err = texture.New(cat, 6, tb, orient.Crystal(5), randx.New(1), 1, 1000)
	assert.ErrorIs(t, err, orient.ErrCrystal)
}

// TestAssignOrientations_Invariants: unit quaternions, Euler angles
// inside the table span, and the simulated ODF carrying exactly the
// interior volume fractions.
func TestAssignOrientations_Invariants(t *testing.T) {
	tex, cat := newTexture(t, orient.Cubic, 21)

	span := [3]float64{90, 90, 90} // cubic: 18 cells × 5°
	for id := 1; id <= 6; id++ {
		g := &cat.Grains[id]
		q := g.Quat
		norm := math.Sqrt(q.Real*q.Real + q.Imag*q.Imag + q.Jmag*q.Jmag + q.Kmag*q.Kmag)
		require.InDelta(t, 1.0, norm, 1e-9)
		for i, ea := range g.Euler {
			require.GreaterOrEqual(t, ea, 0.0)
			require.Less(t, ea, span[i]*math.Pi/180.0+1e-9)
		}
	}

	wantODF := 0.0
	for id := 1; id <= 4; id++ {
		wantODF += float64(cat.Grains[id].NumVoxels) * 1.0 / 1000.0
	}
	gotODF := 0.0
	for _, d := range tex.SimODF {
		gotODF += d
	}
	assert.InDelta(t, wantODF, gotODF, 1e-9, "only interior grains accumulate")
}

// TestMeasureMisorientations_MDFNormalized: the simulated MDF sums to
// 1 (every counted boundary contributes area/totalArea exactly once).
func TestMeasureMisorientations_MDFNormalized(t *testing.T) {
	tex, cat := newTexture(t, orient.Cubic, 33)

	sum := 0.0
	for _, d := range tex.SimMDF {
		sum += d
	}
	assert.InDelta(t, 1.0, sum, 1e-9)

	// Pairwise lists are symmetric in angle.
	w12 := cat.Grains[1].Misorientations[0] // neighbor 2
	w21 := cat.Grains[2].Misorientations[0] // neighbor 1
	assert.InDelta(t, w12, w21, 1e-6)
}

// TestMatch_WeightedErrorDecreases: accepted moves lower the weighted
// error 4·ODF² + 0.25·MDF². The per-move delta is evaluated against
// frozen accumulators, so boundaries sharing an MDF bin can shave the
// realized improvement; the bound below allows for that slack.
func TestMatch_WeightedErrorDecreases(t *testing.T) {
	for _, crystal := range []orient.Crystal{orient.Cubic, orient.Hexagonal} {
		tex, _ := newTexture(t, crystal, 47)
		before := 4*tex.ODFError() + 0.25*tex.MDFError()

		res, err := tex.Match(texture.MatchOptions{Iterations: 3000, BadTryLimit: 500})
		require.NoError(t, err)
		require.Greater(t, res.Iterations, 0)
		after := 4*res.ODFError + 0.25*res.MDFError
		assert.LessOrEqual(t, after, before+0.05, "crystal %d", crystal)
	}
}

// TestMatch_NoInterior errors when every grain touches the surface.
func TestMatch_NoInterior(t *testing.T) {
	tex, cat := newTexture(t, orient.Cubic, 5)
	for id := 1; id <= 6; id++ {
		cat.Grains[id].Surface = true
	}
	_, err := tex.Match(texture.MatchOptions{})
	assert.ErrorIs(t, err, texture.ErrNoInterior)
}

// TestMatch_AccumulatorsStayConsistent: after matching, the simulated
// MDF still sums to 1 and the ODF total is unchanged (weights only
// move between bins).
func TestMatch_AccumulatorsStayConsistent(t *testing.T) {
	tex, _ := newTexture(t, orient.Cubic, 61)
	odfBefore := 0.0
	for _, d := range tex.SimODF {
		odfBefore += d
	}

	_, err := tex.Match(texture.MatchOptions{Iterations: 2000, BadTryLimit: 400})
	require.NoError(t, err)

	odfAfter, mdfAfter := 0.0, 0.0
	for _, d := range tex.SimODF {
		odfAfter += d
	}
	for _, d := range tex.SimMDF {
		mdfAfter += d
	}
	assert.InDelta(t, odfBefore, odfAfter, 1e-9)
	assert.InDelta(t, 1.0, mdfAfter, 1e-9)
}

// TestSampleOrientation_BinRoundTrip: a sampled bin, re-expressed as
// a jittered Euler triple, maps back to the same bin under both
// discretizations.
func TestSampleOrientation_BinRoundTrip(t *testing.T) {
	for _, crystal := range []orient.Crystal{orient.Cubic, orient.Hexagonal} {
		tex, _ := newTexture(t, crystal, 89)
		for i := 0; i < 500; i++ {
			bin, euler := tex.SampleOrientationForTest()
			require.Equal(t, bin, tex.BinOfForTest(euler), "crystal %d", crystal)
		}
	}
}

// TestMicrotexture_CountsInteriorGrains: the fractions bin once per
// interior grain with neighbors.
func TestMicrotexture_CountsInteriorGrains(t *testing.T) {
	tex, _ := newTexture(t, orient.Cubic, 73)
	bins := tex.Microtexture()
	total := 0.0
	for _, b := range bins {
		total += b
	}
	assert.InDelta(t, 4.0, total, 1e-12, "four interior grains")
}

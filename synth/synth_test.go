package synth_test

import (
	"math"
	"testing"

	"github.com/MicroClue/grainsynth/orient"
	"github.com/MicroClue/grainsynth/stats"
	"github.com/MicroClue/grainsynth/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fullTables builds a complete in-memory target set (stats + axis ODF
// + ODF + MDF + microtexture) for cubic symmetry, diameters 8..12.
func fullTables() *stats.Tables {
	t := &stats.Tables{
		NumBins:       5,
		MinDiameter:   8,
		MaxDiameter:   12,
		SizeMeanLog:   math.Log(10),
		SizeStdDevLog: 0.1,
		SizeCount:     200,
	}
	t.BoverA = make([]stats.BetaParams, 13)
	t.CoverA = make([]stats.BetaParams, 13)
	t.CoverB = make([]stats.BetaParams, 13)
	t.Omega3 = make([]stats.BetaParams, 13)
	t.Neighbors = make([]stats.NeighborRow, 13)
	for d := 8; d <= 12; d++ {
		t.BoverA[d] = stats.BetaParams{Alpha: 8, Beta: 2, Count: 40}
		t.CoverA[d] = stats.BetaParams{Alpha: 7, Beta: 3, Count: 40}
		t.CoverB[d] = stats.BetaParams{Alpha: 2, Beta: 2, Count: 40}
		t.Omega3[d] = stats.BetaParams{Alpha: 9, Beta: 2, Count: 40}
		t.Neighbors[d] = stats.NeighborRow{
			Mean:   [4]float64{1, 4, 9, 15},
			StdDev: [4]float64{0.5, 1, 2, 3},
			Count:  40,
		}
	}
	t.AxisODF = make([]float64, stats.AxisODFBins)
	sum := 0.0
	for i := range t.AxisODF {
		sum += 1.0 / float64(stats.AxisODFBins)
		t.AxisODF[i] = sum
	}
	bins := orient.Cubic.ODFBins()
	t.ODF = make([]float64, bins)
	for i := range t.ODF {
		t.ODF[i] = 1.0 / float64(bins)
	}
	t.MDF = make([]float64, stats.MDFBins)
	for i := range t.MDF {
		t.MDF[i] = 1.0 / float64(stats.MDFBins)
	}
	t.Microtexture = make([]float64, stats.MicroBins)

	return t
}

func smallOptions(grains int, seed uint64) synth.Options {
	o := synth.DefaultOptions()
	o.Grains = grains
	o.Seed = seed
	o.CandidateFactor = 5
	o.PackIterations = 1500
	o.MatchIterations = 2000
	o.MatchBadTryLimit = 400
	o.ResX, o.ResY, o.ResZ = 1, 1, 1

	return o
}

// TestNew_Validation rejects bad options and mismatched tables before
// the RNG exists.
func TestNew_Validation(t *testing.T) {
	tb := fullTables()

	bad := smallOptions(0, 1)
	_, err := synth.New(tb, bad)
	assert.ErrorIs(t, err, synth.ErrBadOptions)

	hex := smallOptions(3, 1)
	hex.Crystal = orient.Hexagonal // tables are cubic-sized
	_, err = synth.New(tb, hex)
	assert.ErrorIs(t, err, synth.ErrBadOptions)

	precip := smallOptions(3, 1)
	precip.PrecipitateFraction = 0.2 // fraction without a type
	_, err = synth.New(tb, precip)
	assert.ErrorIs(t, err, synth.ErrBadOptions)
}

// TestRun_EndToEnd drives the full pipeline and verifies the output
// contracts: complete labeling in 1..M, consistent grain table, and a
// normalized (or empty) MDF.
func TestRun_EndToEnd(t *testing.T) {
	s, err := synth.New(fullTables(), smallOptions(3, 11))
	require.NoError(t, err)
	require.NoError(t, s.Run())

	m := s.NumGrains()
	require.Greater(t, m, 0)

	voxels := 0
	err = s.ForEachVoxel(func(x, y, z, label int) {
		voxels++
		require.Greater(t, label, 0)
		require.LessOrEqual(t, label, m)
	})
	require.NoError(t, err)
	assert.Equal(t, s.Grid().Total(), voxels)

	grains, err := s.Grains()
	require.NoError(t, err)
	require.Len(t, grains, m)
	totalVoxels := 0
	for _, gi := range grains {
		assert.Greater(t, gi.EquivDiameter, 0.0)
		totalVoxels += s.Catalog().Grains[gi.ID].NumVoxels
	}
	assert.Equal(t, s.Grid().Total(), totalVoxels, "labels partition the volume")

	mdf, err := s.MDF()
	require.NoError(t, err)
	require.Len(t, mdf, stats.MDFBins)
	sum := 0.0
	for _, d := range mdf {
		sum += d
	}
	assert.LessOrEqual(t, sum, 1.0+1e-6)

	micro, err := s.Microtexture()
	require.NoError(t, err)
	assert.Len(t, micro, stats.MicroBins)
}

// TestRun_SingleGrain is the degenerate scenario: with one target
// grain the whole volume ends up labeled and the pipeline still
// completes (matching is skipped when no interior grain exists).
func TestRun_SingleGrain(t *testing.T) {
	o := smallOptions(1, 3)
	o.CandidateFactor = 2
	o.PackIterations = 200

	s, err := synth.New(fullTables(), o)
	require.NoError(t, err)
	require.NoError(t, s.Run())

	require.GreaterOrEqual(t, s.NumGrains(), 1)
	err = s.ForEachVoxel(func(x, y, z, label int) {
		require.Greater(t, label, 0)
	})
	require.NoError(t, err)
}

// TestRun_Deterministic: identical seeds reproduce the identical
// labeling; a different seed diverges.
func TestRun_Deterministic(t *testing.T) {
	run := func(seed uint64) []int {
		s, err := synth.New(fullTables(), smallOptions(2, seed))
		require.NoError(t, err)
		require.NoError(t, s.Run())
		labels := make([]int, 0, s.Grid().Total())
		require.NoError(t, s.ForEachVoxel(func(x, y, z, label int) {
			labels = append(labels, label)
		}))

		return labels
	}

	a := run(42)
	b := run(42)
	c := run(43)
	assert.Equal(t, a, b, "same seed, same volume")
	assert.NotEqual(t, a, c, "different seed diverges")
}

// TestAccessors_BeforeRun error with ErrNotRun.
func TestAccessors_BeforeRun(t *testing.T) {
	s, err := synth.New(fullTables(), smallOptions(2, 1))
	require.NoError(t, err)

	_, err = s.Grains()
	assert.ErrorIs(t, err, synth.ErrNotRun)
	_, err = s.MDF()
	assert.ErrorIs(t, err, synth.ErrNotRun)
	assert.ErrorIs(t, s.ForEachVoxel(func(x, y, z, label int) {}), synth.ErrNotRun)
}

package pack_test

import (
	"math"
	"testing"

	"github.com/MicroClue/grainsynth/geom"
	"github.com/MicroClue/grainsynth/pack"
	"github.com/MicroClue/grainsynth/randx"
	"github.com/MicroClue/grainsynth/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTables builds an in-memory target set centered on diameter 10.
func testTables() *stats.Tables {
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

	return t
}

func testOptions(target int) pack.Options {
	o := pack.DefaultOptions()
	o.TargetGrains = target
	o.CandidateFactor = 5
	o.Iterations = 2000

	return o
}

// TestNew_Validation rejects broken options before any state exists.
func TestNew_Validation(t *testing.T) {
	tb := testTables()
	bad := pack.DefaultOptions() // TargetGrains unset
	_, err := pack.New(tb, bad, randx.New(1))
	assert.ErrorIs(t, err, pack.ErrBadOptions)

	worse := testOptions(4)
	worse.Shape = geom.Class(9)
	_, err = pack.New(tb, worse, randx.New(1))
	assert.ErrorIs(t, err, pack.ErrBadOptions)
}

// TestSetup_Invariants checks the post-setup state: pool size, active
// count, and agreement between the incremental filling error and a
// from-scratch recompute.
func TestSetup_Invariants(t *testing.T) {
	o, err := pack.New(testTables(), testOptions(4), randx.New(9))
	require.NoError(t, err)
	require.NoError(t, o.Setup())

	assert.Equal(t, 20, o.Catalog().Len(), "pool = factor × target")
	assert.Len(t, o.Active(), 5, "slot 0 + target actives")
	require.NoError(t, o.CheckConsistency())

	actives := 0
	for id := 1; id <= o.Catalog().Len(); id++ {
		if o.Catalog().Grains[id].Active {
			actives++
		}
	}
	assert.Equal(t, 4, actives)
}

// TestRun_KeepsConsistency runs the loop and re-verifies the
// incremental state against the ground truth afterwards.
func TestRun_KeepsConsistency(t *testing.T) {
	o, err := pack.New(testTables(), testOptions(4), randx.New(31))
	require.NoError(t, err)
	require.NoError(t, o.Setup())
	require.NoError(t, o.Run())
	require.NoError(t, o.CheckConsistency())

	filling, size, _ := o.Errors()
	assert.False(t, math.IsNaN(filling))
	assert.GreaterOrEqual(t, size, 0.0)
	assert.LessOrEqual(t, size, 1.0)
}

// TestRun_BeforeSetup errors cleanly.
func TestRun_BeforeSetup(t *testing.T) {
	o, err := pack.New(testTables(), testOptions(4), randx.New(1))
	require.NoError(t, err)
	assert.ErrorIs(t, o.Run(), pack.ErrNotSetup)
	_, err = o.Finalize()
	assert.ErrorIs(t, err, pack.ErrNotSetup)
}

// TestFinalize_Compacts renumbers survivors to 1..M and keeps them
// active with cleared packing scaffolding.
func TestFinalize_Compacts(t *testing.T) {
	o, err := pack.New(testTables(), testOptions(4), randx.New(55))
	require.NoError(t, err)
	require.NoError(t, o.Setup())
	require.NoError(t, o.Run())

	m, err := o.Finalize()
	require.NoError(t, err)
	require.Greater(t, m, 0)
	require.Equal(t, m, o.Catalog().Len())
	for id := 1; id <= m; id++ {
		g := &o.Catalog().Grains[id]
		assert.True(t, g.Active)
		assert.Empty(t, g.Shells[1], "shell index cleared after renumbering")
	}
}

// TestProgress_Telemetry fires on the documented cadence and reports
// a finite neighborhood error.
func TestProgress_Telemetry(t *testing.T) {
	o, err := pack.New(testTables(), testOptions(3), randx.New(2))
	require.NoError(t, err)
	require.NoError(t, o.Setup())

	calls := 0
	o.Progress = func(iter int, filling, size, neighborhood float64, active int) {
		calls++
		assert.False(t, math.IsNaN(neighborhood))
		assert.Greater(t, active, 0)
	}
	require.NoError(t, o.Run())
	assert.Equal(t, 2000/80, calls)
}

// TestNeighborhoodError_Hypothetical leaves the shell counters
// untouched after evaluating a hypothetical move.
func TestNeighborhoodError_Hypothetical(t *testing.T) {
	o, err := pack.New(testTables(), testOptions(4), randx.New(13))
	require.NoError(t, err)
	require.NoError(t, o.Setup())

	var before [][4]int
	cat := o.Catalog()
	for id := 1; id <= cat.Len(); id++ {
		before = append(before, cat.Grains[id].ShellCount)
	}

	// Evaluate with an arbitrary inactive add and active remove.
	var inactive int
	for id := 1; id <= cat.Len(); id++ {
		if !cat.Grains[id].Active {
			inactive = id

			break
		}
	}
	_ = o.NeighborhoodError(inactive, o.Active()[1])

	for id := 1; id <= cat.Len(); id++ {
		assert.Equal(t, before[id-1], cat.Grains[id].ShellCount, "grain %d", id)
	}
}

package grain

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/MicroClue/grainsynth/randx"
	"github.com/MicroClue/grainsynth/stats"
)

// axisBinsPerAxis is the axis-ODF discretization (18 cells of 5° per
// Euler angle).
const (
	axisBinsPerAxis = 18
	axisCellDegrees = 5.0
)

// Generate samples the intrinsic fields of grain id from the target
// tables: a log-normal equivalent diameter clamped at ±2σ, beta
// aspect ratios conditioned on the integer diameter and filtered by
// the c-over-b acceptance check, an axis orientation drawn from the
// axis-ODF prefix sum with uniform jitter inside the 5° cell, and a
// beta shape factor.
func (c *Catalog) Generate(id int, t *stats.Tables, rng *randx.Source) {
	g := &c.Grains[id]

	// Diameter: sample log-space, reject outside ±2σ.
	var logD float64
	for {
		logD = rng.Normal(t.SizeMeanLog, t.SizeStdDevLog)
		if math.Abs(logD-t.SizeMeanLog)/t.SizeStdDevLog <= 2.0 {
			break
		}
	}
	diam := math.Exp(logD)
	g.EquivDiameter = diam
	g.Volume = (4.0 / 3.0) * math.Pi * math.Pow(diam/2, 3)

	di := t.ClampDiameter(diam)

	// Aspect ratios: b/a and c/a are independent betas, thinned by the
	// c-over-b beta density so the implied c/b also matches its table.
	cb := t.CoverB[di]
	coverBPDF := distuv.Beta{Alpha: cb.Alpha, Beta: cb.Beta}
	for {
		rB := rng.Beta(t.BoverA[di].Alpha, t.BoverA[di].Beta)
		rC := rng.Beta(t.CoverA[di].Alpha, t.CoverA[di].Beta)
		cob := rC / rB
		if cob > 1 {
			continue
		}
		if coverBPDF.Prob(cob) > rng.Uniform() {
			g.AspectB, g.AspectC = rB, rC

			break
		}
	}

	// Axis orientation from the axis-ODF prefix sum.
	bin := SampleBin(t.AxisODF, rng.Uniform())
	b1 := bin % axisBinsPerAxis
	b2 := (bin / axisBinsPerAxis) % axisBinsPerAxis
	b3 := bin / (axisBinsPerAxis * axisBinsPerAxis)
	for i, b := range []int{b1, b2, b3} {
		deg := float64(b)*axisCellDegrees + rng.Uniform()*axisCellDegrees
		g.AxisEuler[i] = deg * math.Pi / 180.0
	}

	g.Factor = rng.Beta(t.Omega3[di].Alpha, t.Omega3[di].Beta)
}

// SampleBin inverts a prefix-sum table at u: the last bin whose
// cumulative density is still below u, 0 when u falls before the
// first. Binary search keeps candidate generation O(log n) per draw.
func SampleBin(prefix []float64, u float64) int {
	i := sort.SearchFloat64s(prefix, u)
	if i > 0 {
		i--
	}

	return i
}

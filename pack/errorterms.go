package pack

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/MicroClue/grainsynth/grain"
	"github.com/MicroClue/grainsynth/stats"
)

// sizeDistError evaluates the size-distribution error of the
// hypothetical active set: current actives minus gremove plus gadd
// (either may be 0 for "none"). The log-diameters are t-tested
// against the target and mapped to 1−2p.
func (o *Optimizer) sizeDistError(gadd, gremove int) float64 {
	o.logDiams = o.logDiams[:0]
	for _, id := range o.active[1:] {
		if id == gremove {
			continue
		}
		o.logDiams = append(o.logDiams, math.Log(o.cat.Grains[id].EquivDiameter))
	}
	if gadd > 0 {
		o.logDiams = append(o.logDiams, math.Log(o.cat.Grains[gadd].EquivDiameter))
	}
	if len(o.logDiams) <= 1 {
		return 0
	}

	mean := stat.Mean(o.logDiams, nil)
	uvar := stat.Variance(o.logDiams, nil)

	return stats.WelchError(o.tables.SizeMeanLog, o.tables.SizeStdDevLog,
		o.tables.SizeCount, mean, uvar, float64(len(o.logDiams)))
}

// shellRow accumulates per-diameter neighborhood statistics: the
// count of contributing grains and, per shell, the running sum and
// squared deviation of neighbor counts.
type shellRow struct {
	n   float64
	sum [grain.ShellCountDepth]float64
	sq  [grain.ShellCountDepth]float64
}

// NeighborhoodError evaluates the per-diameter, per-shell t-test sum
// for the hypothetical active set (gadd joining, gremove leaving).
// Shell counters are shifted for the duration of the evaluation and
// restored before returning; the grain's own counters already track
// the full pool, so the added grain contributes its stored row
// directly. Diagnostic only: Run never gates acceptance on it.
func (o *Optimizer) NeighborhoodError(gadd, gremove int) float64 {
	if gadd > 0 {
		o.cat.ShiftShellCounts(gadd, +1)
	}
	if gremove > 0 {
		o.cat.ShiftShellCounts(gremove, -1)
	}
	defer func() {
		if gadd > 0 {
			o.cat.ShiftShellCounts(gadd, -1)
		}
		if gremove > 0 {
			o.cat.ShiftShellCounts(gremove, +1)
		}
	}()

	rows := o.rows
	for i := range rows {
		rows[i] = shellRow{}
	}

	o.eachHypotheticalActive(gadd, gremove, func(g *grain.Grain) {
		d := o.tables.ClampDiameter(g.EquivDiameter)
		rows[d].n++
		for s := 0; s < grain.ShellCountDepth; s++ {
			if g.ShellCount[s] > 0 {
				rows[d].sum[s] += float64(g.ShellCount[s])
			}
		}
	})
	// Means, then squared deviations in a second pass.
	for d := range rows {
		if rows[d].n == 0 {
			continue
		}
		for s := 0; s < grain.ShellCountDepth; s++ {
			rows[d].sum[s] /= rows[d].n
		}
	}
	o.eachHypotheticalActive(gadd, gremove, func(g *grain.Grain) {
		d := o.tables.ClampDiameter(g.EquivDiameter)
		for s := 0; s < grain.ShellCountDepth; s++ {
			if g.ShellCount[s] > 0 {
				dev := rows[d].sum[s] - float64(g.ShellCount[s])
				rows[d].sq[s] += dev * dev
			}
		}
	})

	total := 0.0
	for d := range rows {
		if rows[d].n <= 1 {
			continue
		}
		target := o.tables.Neighbors[0]
		if d < len(o.tables.Neighbors) {
			target = o.tables.Neighbors[d]
		}
		for s := 0; s < grain.ShellCountDepth; s++ {
			uvar := rows[d].sq[s] / (rows[d].n - 1)
			total += stats.WelchError(target.Mean[s], target.StdDev[s],
				target.Count, rows[d].sum[s], uvar, rows[d].n)
		}
	}

	return total
}

// eachHypotheticalActive visits the hypothetical active set: every
// current active except gremove, plus gadd.
func (o *Optimizer) eachHypotheticalActive(gadd, gremove int, fn func(*grain.Grain)) {
	for _, id := range o.active[1:] {
		if id == gremove {
			continue
		}
		fn(&o.cat.Grains[id])
	}
	if gadd > 0 {
		fn(&o.cat.Grains[gadd])
	}
}

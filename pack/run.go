package pack

import (
	"math"
	"sort"
)

// Run executes the fixed-length stochastic packing loop. Acceptance
// follows the decaying-allowance rule: the summed relative change of
// the filling and size errors must not exceed
// gain · meanAcceptedChange · ((total−iter)/total)². The size term
// stops contributing once it is already at or below its floor.
func (o *Optimizer) Run() error {
	if !o.ready {
		return ErrNotSetup
	}

	total := float64(o.opts.Iterations)
	for iter := 0; iter < o.opts.Iterations; iter++ {
		if o.Progress != nil && iter%progressStride == 0 {
			o.oldNeighborhood = o.NeighborhoodError(0, 0)
			o.Progress(iter, o.oldFilling, o.oldSize, o.oldNeighborhood, len(o.active)-1)
		}

		allowable := 0.0
		if o.accepted > 0 {
			cool := (total - float64(iter)) / total
			allowable = DefaultAllowanceGain * (o.totalChange / float64(o.accepted)) * cool * cool
		}

		m, ok := o.propose(moveKind(iter % 4))
		if !ok {
			continue
		}

		filling, size := o.costDelta(m)
		change1 := (filling - o.oldFilling) / o.oldFilling
		if o.oldFilling < 0 {
			change1 = -change1
		}
		change2 := (size - o.oldSize) / o.oldSize
		if size <= sizeErrorFloor {
			change2 = 0
		}

		if change1+change2 > allowable {
			o.rollback(m)

			continue
		}

		o.commit(m)
		o.oldFilling = filling
		o.oldSize = size
		o.totalChange += math.Abs(change1 + change2)
		o.accepted++
	}

	return nil
}

// Finalize sorts and deduplicates the active list, compacts the
// surviving grains into catalog slots 1..M, and clears the packing
// scaffolding (shell index, counters) that is meaningless after
// renumbering. Returns M.
func (o *Optimizer) Finalize() (int, error) {
	if !o.ready {
		return 0, ErrNotSetup
	}

	ids := append([]int(nil), o.active[1:]...)
	sort.Ints(ids)
	ids = dedupSorted(ids)

	o.cat.Compact(ids)
	for i := 1; i <= o.cat.Len(); i++ {
		g := &o.cat.Grains[i]
		g.Active = true
		g.Shells = [4][]int{}
		g.ShellCount = [4]int{}
	}

	return len(ids), nil
}

// dedupSorted removes repeats and non-positive ids in place.
func dedupSorted(ids []int) []int {
	out := ids[:0]
	prev := 0
	for _, id := range ids {
		if id <= 0 || id == prev {
			continue
		}
		out = append(out, id)
		prev = id
	}

	return out
}

// CheckConsistency recomputes the filling error and the coverage /
// membership correspondence from scratch and reports ErrInconsistent
// when the incremental state has drifted beyond 1e−9 per pool grain.
// Intended for tests and stage-boundary verification.
func (o *Optimizer) CheckConsistency() error {
	if !o.ready {
		return ErrNotSetup
	}

	tol := 1e-9 * float64(o.cat.Len())
	if math.Abs(o.grid.FillingError()-o.oldFilling) > tol {
		return ErrInconsistent
	}

	members := 0
	for _, id := range o.active[1:] {
		g := &o.cat.Grains[id]
		members += len(g.Voxels)
		for _, v := range g.Voxels {
			if !covers(o.grid.Voxels[v].Grains, id) {
				return ErrInconsistent
			}
		}
	}
	if members != o.grid.CoverageCount() {
		return ErrInconsistent
	}

	return nil
}

func covers(row []int, id int) bool {
	for _, g := range row {
		if g == id {
			return true
		}
	}

	return false
}

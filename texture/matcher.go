package texture

import (
	"gonum.org/v1/gonum/num/quat"

	"github.com/MicroClue/grainsynth/orient"
)

// Default matching budgets.
const (
	// DefaultMatchIterations caps the annealing loop.
	DefaultMatchIterations = 100_000
	// DefaultBadTryLimit ends matching after this many consecutive
	// rejected trials.
	DefaultBadTryLimit = 5000
	// odfGain and mdfGain weight the two error deltas in the
	// acceptance rule.
	odfGain = 4.0
	mdfGain = 0.25
)

// MatchOptions tunes the annealing loop. Zero fields take defaults.
type MatchOptions struct {
	Iterations  int
	BadTryLimit int
}

// MatchResult reports how the loop ended.
type MatchResult struct {
	Iterations int
	Accepted   int
	ODFError   float64
	MDFError   float64
}

// Match anneals grain orientations toward the target ODF and MDF.
// Each trial flips a coin between reorienting one interior grain from
// the ODF and exchanging two interior grains' orientations; a trial
// commits iff the weighted old-minus-new squared-error delta
// 4·ΔODF + 0.25·ΔMDF is positive.
func (t *Texture) Match(opts MatchOptions) (MatchResult, error) {
	if opts.Iterations <= 0 {
		opts.Iterations = DefaultMatchIterations
	}
	if opts.BadTryLimit <= 0 {
		opts.BadTryLimit = DefaultBadTryLimit
	}

	interior := 0
	for id := 1; id <= t.m; id++ {
		if !t.cat.Grains[id].Surface {
			interior++
		}
	}
	if interior == 0 {
		return MatchResult{}, ErrNoInterior
	}

	var res MatchResult
	badTries := 0
	for res.Iterations < opts.Iterations && badTries < opts.BadTryLimit {
		res.Iterations++
		badTries++

		accepted := false
		if t.rng.Uniform() < 0.5 || interior < 2 {
			accepted = t.trySwap()
		} else {
			accepted = t.tryExchange()
		}
		if accepted {
			res.Accepted++
			badTries = 0
		}
	}
	res.ODFError = t.ODFError()
	res.MDFError = t.MDFError()

	return res, nil
}

// pickInterior draws a uniformly random non-surface grain.
func (t *Texture) pickInterior() int {
	for {
		id := t.rng.Intn(t.m) + 1
		if !t.cat.Grains[id].Surface {
			return id
		}
	}
}

// odfDelta is the old-minus-new squared error of moving weight w into
// (or out of, w<0) one ODF bin.
func (t *Texture) odfDelta(bin int, w float64) float64 {
	a, s := t.tables.ODF[bin], t.SimODF[bin]
	old := a - s
	next := a - (s + w)

	return old*old - next*next
}

// mdfDelta is the old-minus-new squared error of shifting weight aw
// from one MDF bin to another.
func (t *Texture) mdfDelta(fromBin, toBin int, aw float64) float64 {
	delta := 0.0
	a, s := t.tables.MDF[fromBin], t.SimMDF[fromBin]
	old, next := a-s, a-(s-aw)
	delta += old*old - next*next
	a, s = t.tables.MDF[toBin], t.SimMDF[toBin]
	old, next = a-s, a-(s+aw)
	delta += old*old - next*next

	return delta
}

// neighborMDFDelta sums the MDF delta of giving grain id the
// orientation q, without committing anything.
func (t *Texture) neighborMDFDelta(id int, q quat.Number) float64 {
	g := &t.cat.Grains[id]
	delta := 0.0
	for j, nid := range g.Neighbors {
		w, _ := orient.Disorientation(t.crystal, q, t.cat.Grains[nid].Quat)
		aw := g.SharedAreas[j] / t.totalArea
		delta += t.mdfDelta(mdfBin(g.Misorientations[j]), mdfBin(w), aw)
	}

	return delta
}

// commitOrientation installs orientation (euler, q) on grain id and
// rewrites its misorientation list, the neighbors' reciprocal
// entries, and the simulated MDF.
func (t *Texture) commitOrientation(id int, euler [3]float64, q quat.Number) {
	g := &t.cat.Grains[id]
	g.Euler = euler
	g.Quat = q
	for j, nid := range g.Neighbors {
		w, _ := orient.Disorientation(t.crystal, q, t.cat.Grains[nid].Quat)
		aw := g.SharedAreas[j] / t.totalArea
		t.SimMDF[mdfBin(g.Misorientations[j])] -= aw
		t.SimMDF[mdfBin(w)] += aw
		g.Misorientations[j] = w
		n := &t.cat.Grains[nid]
		for k, back := range n.Neighbors {
			if back == id {
				n.Misorientations[k] = w
			}
		}
	}
}

// trySwap reorients one interior grain from the ODF.
func (t *Texture) trySwap() bool {
	id := t.pickInterior()
	g := &t.cat.Grains[id]
	curBin := t.binOf(g.Euler)

	newBin, euler := t.sampleOrientation()
	q := orient.FromEuler(euler[0], euler[1], euler[2])

	w := t.weight(id)
	odfChange := t.odfDelta(newBin, w) + t.odfDelta(curBin, -w)
	mdfChange := t.neighborMDFDelta(id, q)

	if odfGain*odfChange+mdfGain*mdfChange <= 0 {
		return false
	}

	t.SimODF[newBin] += w
	t.SimODF[curBin] -= w
	t.commitOrientation(id, euler, q)

	return true
}

// tryExchange swaps the orientations of two interior grains.
func (t *Texture) tryExchange() bool {
	id1 := t.pickInterior()
	id2 := t.pickInterior()
	if id1 == id2 {
		return false
	}
	g1, g2 := &t.cat.Grains[id1], &t.cat.Grains[id2]
	bin1, bin2 := t.binOf(g1.Euler), t.binOf(g2.Euler)
	w1, w2 := t.weight(id1), t.weight(id2)

	odfChange := t.odfDelta(bin1, w2-w1) + t.odfDelta(bin2, w1-w2)
	mdfChange := t.neighborMDFDelta(id1, g2.Quat) + t.neighborMDFDelta(id2, g1.Quat)

	if odfGain*odfChange+mdfGain*mdfChange <= 0 {
		return false
	}

	t.SimODF[bin1] += w2 - w1
	t.SimODF[bin2] += w1 - w2
	e1, q1 := g1.Euler, g1.Quat
	t.commitOrientation(id1, g2.Euler, g2.Quat)
	t.commitOrientation(id2, e1, q1)

	return true
}

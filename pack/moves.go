package pack

// moveKind enumerates the four packing moves, selected by iteration
// mod 4.
type moveKind int

const (
	moveAdd moveKind = iota
	moveRemove
	moveReplace
	moveReplaceNeighbor
)

// move is one proposed mutation of the active set. add/remove are
// grain ids, 0 when the move has no such side.
//
// Evaluation order matters for replace moves: the removed grain is
// tentatively withdrawn before the added grain is costed, so the
// filling delta stays exact even when the two bodies share voxels.
// rollback undoes the tentative withdrawal on rejection.
type move struct {
	kind        moveKind
	add, remove int
}

// propose draws the move's participants. ok is false when the move
// cannot be formed this iteration (candidate pool exhausted, or no
// inactive shell-1 neighbor).
func (o *Optimizer) propose(kind moveKind) (move, bool) {
	pool := o.cat.Len()
	exhausted := len(o.active)-1 >= pool
	if kind != moveAdd && len(o.active) <= 1 {
		return move{}, false
	}
	switch kind {
	case moveAdd:
		if exhausted {
			return move{}, false
		}

		return move{kind: kind, add: o.randomInactive(pool)}, true
	case moveRemove:
		return move{kind: kind, remove: o.randomActive()}, true
	case moveReplace:
		if exhausted {
			return move{}, false
		}
		m := move{kind: kind, remove: o.randomActive()}
		m.add = o.randomInactive(pool)

		return m, true
	default: // moveReplaceNeighbor
		m := move{kind: kind, remove: o.randomActive()}
		// First inactive grain in the removed grain's shell 1, in
		// index-build order; the move is skipped when none exists.
		for _, id := range o.cat.Grains[m.remove].Shells[1] {
			if !o.cat.Grains[id].Active && id != m.remove {
				m.add = id

				return m, true
			}
		}

		return move{}, false
	}
}

// costDelta evaluates the hypothetical filling and size errors after
// m. The removal side is applied tentatively; the caller must follow
// with commit or rollback.
func (o *Optimizer) costDelta(m move) (filling, size float64) {
	filling = o.oldFilling
	if m.remove > 0 {
		filling += o.removeCost(m.remove)
		o.withdraw(m.remove)
	}
	if m.add > 0 {
		filling += o.addCost(m.add)
	}
	size = o.sizeDistError(m.add, m.remove)

	return filling, size
}

// commit makes an accepted move permanent: the tentative withdrawal
// stands, the added grain registers, and the active list is rewritten.
func (o *Optimizer) commit(m move) {
	if m.remove > 0 {
		o.cat.Grains[m.remove].Active = false
		for i, id := range o.active[1:] {
			if id == m.remove {
				o.active = append(o.active[:i+1], o.active[i+2:]...)

				break
			}
		}
	}
	if m.add > 0 {
		o.cat.Grains[m.add].Active = true
		o.insert(m.add)
		o.active = append(o.active, m.add)
	}
}

// rollback restores the tentative withdrawal of a rejected move.
func (o *Optimizer) rollback(m move) {
	if m.remove > 0 {
		o.insert(m.remove)
	}
}

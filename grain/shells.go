package grain

import "math"

// shellReach is the neighborhood cutoff in units of the candidate's
// equivalent radius: grains further than 4 radii never interact.
const shellReach = 4.0

// BuildShellIndex computes the pairwise neighborhood index over the
// whole catalog. After the build, X.Shells[s] lists every grain i
// (i ≠ X) with |X−i| < 4·rᵢ and s = ⌊|X−i| / rᵢ⌋: exactly the grains
// whose ShellCount[s] must move when X toggles active. The reverse
// counters start at zero; the packer maintains them incrementally.
//
// Complexity: O(n²) pairs, run once at setup.
func BuildShellIndex(c *Catalog) {
	n := c.Len()
	for i := 1; i <= n; i++ {
		gi := &c.Grains[i]
		ri := gi.Radius()
		for j := i + 1; j <= n; j++ {
			gj := &c.Grains[j]
			d := gi.Centroid.Sub(gj.Centroid)
			dist := math.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)

			if dist < shellReach*ri {
				s := int(dist / ri)
				gj.Shells[s] = append(gj.Shells[s], i)
			}
			if rj := gj.Radius(); dist < shellReach*rj {
				s := int(dist / rj)
				gi.Shells[s] = append(gi.Shells[s], j)
			}
		}
	}
}

// ShiftShellCounts applies delta to the shell counters of every grain
// listed in id's shells: +1 when id activates, −1 when it deactivates.
func (c *Catalog) ShiftShellCounts(id, delta int) {
	g := &c.Grains[id]
	for s := 0; s < ShellCountDepth; s++ {
		for _, other := range g.Shells[s] {
			c.Grains[other].ShellCount[s] += delta
		}
	}
}

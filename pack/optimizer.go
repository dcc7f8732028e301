package pack

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/MicroClue/grainsynth/grain"
	"github.com/MicroClue/grainsynth/grid"
	"github.com/MicroClue/grainsynth/randx"
	"github.com/MicroClue/grainsynth/stats"
)

// Optimizer is the packing context: every move function reads and
// mutates this struct and nothing else.
type Optimizer struct {
	opts   Options
	tables *stats.Tables
	rng    *randx.Source

	cat  *grain.Catalog
	grid *grid.Grid

	// active holds the chosen grain ids; slot 0 is unused so the list
	// mirrors the catalog's 1-based id space.
	active []int

	// TotalVolume is the effective coarse box volume, the density
	// normalizer reused by the texture stage.
	TotalVolume float64

	oldFilling      float64
	oldSize         float64
	oldNeighborhood float64
	totalChange     float64
	accepted        int

	// Progress, when set, receives telemetry every 80 iterations.
	Progress func(iter int, filling, size, neighborhood float64, active int)

	// scratch buffers reused across moves.
	logDiams []float64
	rows     []shellRow

	ready bool
}

// New builds an Optimizer over the given targets. The RNG is owned by
// the caller so one stream can drive the whole pipeline.
func New(tables *stats.Tables, opts Options, rng *randx.Source) (*Optimizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}

	return &Optimizer{opts: opts, tables: tables, rng: rng}, nil
}

// Grid exposes the coarse grid (primarily for invariant checks).
func (o *Optimizer) Grid() *grid.Grid { return o.grid }

// Catalog exposes the candidate catalog.
func (o *Optimizer) Catalog() *grain.Catalog { return o.cat }

// Active returns the current active grain ids (slot 0 unused).
func (o *Optimizer) Active() []int { return o.active }

// Errors returns the incrementally maintained error terms.
func (o *Optimizer) Errors() (filling, size, neighborhood float64) {
	return o.oldFilling, o.oldSize, o.oldNeighborhood
}

// Setup runs the packing preamble: candidate generation, coarse grid
// construction, candidate voxelization, the shell index, and the
// initial activation of TargetGrains random candidates.
func (o *Optimizer) Setup() error {
	pool := o.opts.TargetGrains * o.opts.CandidateFactor
	o.cat = grain.NewCatalog(pool)

	// Candidate shapes come from the single RNG stream, sequentially:
	// determinism of the whole run hinges on this order.
	nominal := 0.0
	for id := 1; id <= pool; id++ {
		o.cat.Generate(id, o.tables, o.rng)
		nominal += o.cat.Grains[id].Volume
	}
	// The pool oversamples 25×; scale back to the target count's volume.
	nominal = nominal * float64(o.opts.TargetGrains) / float64(pool)

	geo, effVol, err := grid.FitCube(nominal,
		o.opts.ResX*coarsening, o.opts.ResY*coarsening, o.opts.ResZ*coarsening)
	if err != nil {
		return err
	}
	o.TotalVolume = effVol
	if o.grid, err = grid.New(geo); err != nil {
		return err
	}

	for id := 1; id <= pool; id++ {
		o.cat.Grains[id].Centroid = r3.Vec{
			X: o.rng.Uniform() * geo.SizeX(),
			Y: o.rng.Uniform() * geo.SizeY(),
			Z: o.rng.Uniform() * geo.SizeZ(),
		}
	}

	if err = o.enumerateCandidates(pool); err != nil {
		return err
	}
	grain.BuildShellIndex(o.cat)

	// Error baselines: the empty grid's true filling error, so the
	// incremental total stays equal to a from-scratch recompute.
	o.oldFilling = float64(o.grid.Total())
	o.oldSize = 1
	o.oldNeighborhood = float64((o.tables.MaxDiameter + 1) * grain.ShellCountDepth)

	o.logDiams = make([]float64, 0, o.opts.TargetGrains*2)
	o.rows = make([]shellRow, o.tables.MaxDiameter+1)

	o.active = make([]int, 1, o.opts.TargetGrains+1)
	for len(o.active) <= o.opts.TargetGrains {
		id := o.randomInactive(pool)
		delta := o.addCost(id)
		o.cat.Grains[id].Active = true
		o.insert(id)
		o.active = append(o.active, id)
		o.oldFilling += delta
	}

	o.ready = true

	return nil
}

// enumerateCandidates voxelizes every candidate at the coarse pitch.
// Enumeration is pure geometry (no RNG), so it fans out over disjoint
// catalog slices without touching the shared stream.
func (o *Optimizer) enumerateCandidates(pool int) error {
	workers := o.opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	var eg errgroup.Group
	eg.SetLimit(workers)
	geo := o.grid.Geometry
	for start := 1; start <= pool; start += 256 {
		lo, hi := start, start+256
		if hi > pool+1 {
			hi = pool + 1
		}
		eg.Go(func() error {
			for id := lo; id < hi; id++ {
				g := &o.cat.Grains[id]
				voxels, inside, err := g.Shape(o.opts.Shape).Cells(g.Centroid, geo, 0)
				if err != nil {
					return err
				}
				g.Voxels, g.Inside = voxels, inside
			}

			return nil
		})
	}

	return eg.Wait()
}

// insert registers an active grain: every voxel in its membership row
// gains a coverage entry, and its shell neighbors' counters rise.
func (o *Optimizer) insert(id int) {
	g := &o.cat.Grains[id]
	for i, v := range g.Voxels {
		o.grid.Cover(v, id, g.Inside[i])
	}
	o.cat.ShiftShellCounts(id, +1)
}

// withdraw is the exact inverse of insert.
func (o *Optimizer) withdraw(id int) {
	g := &o.cat.Grains[id]
	for _, v := range g.Voxels {
		o.grid.Uncover(v, id)
	}
	o.cat.ShiftShellCounts(id, -1)
}

// randomInactive picks a uniform random candidate and probes forward
// to the next inactive one, wrapping at the pool boundary.
func (o *Optimizer) randomInactive(pool int) int {
	id := o.rng.Intn(pool) + 1
	for o.cat.Grains[id].Active {
		id++
		if id > pool {
			id = 1
		}
	}

	return id
}

// randomActive picks a uniform entry of the active list.
func (o *Optimizer) randomActive() int {
	return o.active[o.rng.Intn(len(o.active)-1)+1]
}

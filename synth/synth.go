package synth

import (
	"errors"
	"fmt"
	"math"

	"github.com/MicroClue/grainsynth/assign"
	"github.com/MicroClue/grainsynth/grain"
	"github.com/MicroClue/grainsynth/grid"
	"github.com/MicroClue/grainsynth/pack"
	"github.com/MicroClue/grainsynth/randx"
	"github.com/MicroClue/grainsynth/stats"
	"github.com/MicroClue/grainsynth/texture"
)

// Synthesizer runs the pipeline and holds its outputs.
type Synthesizer struct {
	opts   Options
	tables *stats.Tables
	rng    *randx.Source

	cat       *grain.Catalog
	fine      *grid.Grid
	tex       *texture.Texture
	numGrains int
	totalVol  float64
	totalArea float64
	done      bool
}

// GrainInfo is one row of the per-grain output table.
type GrainInfo struct {
	ID            int
	EquivDiameter float64
	NumNeighbors  int
	Surface       bool
	Euler         [3]float64
}

// New validates the configuration and the loaded tables. The RNG is
// not created until here, so statistics loading failures always
// precede any stochastic state.
func New(tables *stats.Tables, opts Options) (*Synthesizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	if len(tables.ODF) != opts.Crystal.ODFBins() || len(tables.MDF) != stats.MDFBins {
		return nil, fmt.Errorf("%w: ODF/MDF tables do not match crystal structure", ErrBadOptions)
	}

	return &Synthesizer{
		opts:   opts,
		tables: tables,
		rng:    randx.New(opts.Seed),
	}, nil
}

// Run executes pack → voxelize → gap fill → neighbor discovery →
// orientation assignment → misorientation measurement → matching.
func (s *Synthesizer) Run() error {
	log := s.opts.Logger

	// Packing on the coarse grid.
	popts := pack.DefaultOptions()
	popts.TargetGrains = s.opts.Grains
	popts.CandidateFactor = s.opts.CandidateFactor
	popts.Iterations = s.opts.PackIterations
	popts.Shape = s.opts.Shape
	popts.ResX, popts.ResY, popts.ResZ = s.opts.ResX, s.opts.ResY, s.opts.ResZ
	popts.Workers = s.opts.Workers

	opt, err := pack.New(s.tables, popts, s.rng)
	if err != nil {
		return fmt.Errorf("synth: packing: %w", err)
	}
	log.Info().Int("grains", s.opts.Grains).Int("pool", s.opts.Grains*s.opts.CandidateFactor).
		Msg("packing started")
	opt.Progress = func(iter int, filling, size, neighborhood float64, active int) {
		log.Debug().Int("iter", iter).Float64("filling", filling).
			Float64("size", size).Float64("neighborhood", neighborhood).
			Int("active", active).Msg("packing progress")
	}
	if err = opt.Setup(); err != nil {
		return fmt.Errorf("synth: packing: %w", err)
	}
	if err = opt.Run(); err != nil {
		return fmt.Errorf("synth: packing: %w", err)
	}
	if s.opts.CheckInvariants {
		if err = opt.CheckConsistency(); err != nil {
			return fmt.Errorf("%w: packing: %v", ErrInvariant, err)
		}
	}
	m, err := opt.Finalize()
	if err != nil {
		return fmt.Errorf("synth: packing: %w", err)
	}
	s.numGrains = m
	s.totalVol = opt.TotalVolume
	s.cat = opt.Catalog()
	coarse := opt.Grid().Geometry
	log.Info().Int("selected", m).Msg("packing finished")

	// Release the coarse grid before the fine allocation; the two
	// must never be resident together.
	opt = nil

	// Voxel assignment and gap fill at the true resolution.
	s.fine, err = assign.Voxelize(s.cat, m, coarse, s.opts.Shape, s.opts.Workers)
	if err != nil {
		return fmt.Errorf("synth: voxelization: %w", err)
	}
	if err = assign.FillGaps(s.fine, s.cat, m, s.opts.Shape, s.opts.Workers); err != nil {
		return fmt.Errorf("synth: gap fill: %w", err)
	}
	if s.opts.CheckInvariants {
		if err = s.checkLabeling(); err != nil {
			return err
		}
	}
	s.totalArea = assign.DiscoverNeighbors(s.fine, s.cat, m)
	log.Info().Int("voxels", s.fine.Total()).Float64("boundary_area", s.totalArea).
		Msg("labeling finished")

	// Orientation assignment and matching.
	voxelVol := s.fine.ResX * s.fine.ResY * s.fine.ResZ
	s.tex, err = texture.New(s.cat, m, s.tables, s.opts.Crystal, s.rng, voxelVol, s.totalVol)
	if err != nil {
		return fmt.Errorf("synth: texture: %w", err)
	}
	s.tex.AssignOrientations()
	s.tex.MeasureMisorientations(s.totalArea)

	res, err := s.tex.Match(texture.MatchOptions{
		Iterations:  s.opts.MatchIterations,
		BadTryLimit: s.opts.MatchBadTryLimit,
	})
	switch {
	case errors.Is(err, texture.ErrNoInterior):
		log.Warn().Msg("all grains touch the box surface; orientation matching skipped")
	case err != nil:
		return fmt.Errorf("synth: matching: %w", err)
	default:
		log.Info().Int("iterations", res.Iterations).Int("accepted", res.Accepted).
			Float64("odf_error", res.ODFError).Float64("mdf_error", res.MDFError).
			Msg("matching finished")
	}

	s.done = true

	return nil
}

// checkLabeling verifies the post-gap-fill labeling invariants.
func (s *Synthesizer) checkLabeling() error {
	counts := make([]int, s.numGrains+1)
	for i := range s.fine.Voxels {
		label := s.fine.Voxels[i].Label
		if label <= 0 || label > s.numGrains {
			return fmt.Errorf("%w: gap fill: voxel %d labeled %d", ErrInvariant, i, label)
		}
		counts[label]++
	}
	for id := 1; id <= s.numGrains; id++ {
		if counts[id] != s.cat.Grains[id].NumVoxels {
			return fmt.Errorf("%w: gap fill: grain %d count mismatch", ErrInvariant, id)
		}
	}

	return nil
}

// NumGrains returns the final grain count M.
func (s *Synthesizer) NumGrains() int { return s.numGrains }

// Grid exposes the final labeled grid.
func (s *Synthesizer) Grid() *grid.Grid { return s.fine }

// Catalog exposes the final grain catalog.
func (s *Synthesizer) Catalog() *grain.Catalog { return s.cat }

// ForEachVoxel iterates the final labeling as (x, y, z, label).
func (s *Synthesizer) ForEachVoxel(fn func(x, y, z, label int)) error {
	if !s.done {
		return ErrNotRun
	}
	s.fine.ForEach(fn)

	return nil
}

// Grains returns the per-grain output table. Diameters are recomputed
// from the final voxel counts, matching the written volume.
func (s *Synthesizer) Grains() ([]GrainInfo, error) {
	if !s.done {
		return nil, ErrNotRun
	}
	voxelVol := s.fine.ResX * s.fine.ResY * s.fine.ResZ
	out := make([]GrainInfo, 0, s.numGrains)
	for id := 1; id <= s.numGrains; id++ {
		g := &s.cat.Grains[id]
		vol := float64(g.NumVoxels) * voxelVol
		out = append(out, GrainInfo{
			ID:            id,
			EquivDiameter: 2 * math.Cbrt(0.75*vol/math.Pi),
			NumNeighbors:  len(g.Neighbors),
			Surface:       g.Surface,
			Euler:         g.Euler,
		})
	}

	return out, nil
}

// MDF returns the simulated misorientation distribution, summing to
// about 1 over the counted boundary network.
func (s *Synthesizer) MDF() ([]float64, error) {
	if !s.done {
		return nil, ErrNotRun
	}

	return append([]float64(nil), s.tex.SimMDF...), nil
}

// Microtexture returns the 10-bin low-angle fraction histogram.
func (s *Synthesizer) Microtexture() ([]float64, error) {
	if !s.done {
		return nil, ErrNotRun
	}

	return s.tex.Microtexture(), nil
}

package synth

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/MicroClue/grainsynth/geom"
	"github.com/MicroClue/grainsynth/orient"
	"github.com/MicroClue/grainsynth/pack"
	"github.com/MicroClue/grainsynth/texture"
)

// Sentinel errors for pipeline configuration and execution.
var (
	// ErrBadOptions indicates an invalid configuration.
	ErrBadOptions = errors.New("synth: invalid options")
	// ErrInvariant indicates an internal consistency check failed; the
	// wrapped message names the stage.
	ErrInvariant = errors.New("synth: internal invariant violation")
	// ErrNotRun indicates an output accessor was called before Run.
	ErrNotRun = errors.New("synth: pipeline has not run")
)

// PrecipitateType selects where precipitates would be seeded.
type PrecipitateType int

const (
	// PrecipNone disables precipitates.
	PrecipNone PrecipitateType = iota
	// PrecipBoundary seeds precipitates on grain boundaries.
	PrecipBoundary
	// PrecipBulk seeds precipitates anywhere.
	PrecipBulk
)

// Options configures a synthesis run. Zero value is not meaningful;
// use DefaultOptions and override.
type Options struct {
	// Grains is the target grain count N.
	Grains int
	// Shape is the grain body family shared by all candidates.
	Shape geom.Class
	// Crystal selects the symmetry group and ODF discretization.
	Crystal orient.Crystal
	// ResX/ResY/ResZ is the final voxel pitch.
	ResX, ResY, ResZ float64
	// Seed drives the single RNG stream; 0 means the fixed default.
	Seed uint64

	// PackIterations and CandidateFactor tune the packing stage.
	PackIterations  int
	CandidateFactor int
	// MatchIterations and MatchBadTryLimit tune orientation matching.
	MatchIterations  int
	MatchBadTryLimit int

	// Precipitate policy: validated and carried for the insertion
	// stage, which runs outside this core.
	Precipitates        PrecipitateType
	PrecipitateFraction float64
	OverlapAllowed      float64
	OverlapAssignment   int

	// Workers bounds the parallel geometry enumeration; 0 = GOMAXPROCS.
	Workers int
	// CheckInvariants enables the stage-boundary consistency checks.
	CheckInvariants bool
	// Logger receives stage and telemetry events. Defaults to Nop.
	Logger zerolog.Logger
}

// DefaultOptions returns production defaults for everything but
// Grains, which must be set by the caller.
func DefaultOptions() Options {
	return Options{
		Shape:            geom.Ellipsoid,
		Crystal:          orient.Cubic,
		ResX:             0.25,
		ResY:             0.25,
		ResZ:             0.25,
		PackIterations:   pack.DefaultIterations,
		CandidateFactor:  pack.DefaultCandidateFactor,
		MatchIterations:  texture.DefaultMatchIterations,
		MatchBadTryLimit: texture.DefaultBadTryLimit,
		CheckInvariants:  true,
		Logger:           zerolog.Nop(),
	}
}

// Validate reports ErrBadOptions on any inconsistent knob.
func (o Options) Validate() error {
	switch {
	case o.Grains <= 0,
		!o.Shape.Valid(),
		!o.Crystal.Valid(),
		o.ResX <= 0 || o.ResY <= 0 || o.ResZ <= 0,
		o.PackIterations <= 0,
		o.CandidateFactor <= 1,
		o.MatchIterations <= 0,
		o.MatchBadTryLimit <= 0,
		o.PrecipitateFraction < 0 || o.PrecipitateFraction >= 1,
		o.Precipitates < PrecipNone || o.Precipitates > PrecipBulk:
		return ErrBadOptions
	}
	if o.Precipitates == PrecipNone && o.PrecipitateFraction > 0 {
		return ErrBadOptions
	}

	return nil
}

package pack

import (
	"errors"

	"github.com/MicroClue/grainsynth/geom"
)

// Sentinel errors for packing configuration and invariant checks.
var (
	// ErrBadOptions indicates a non-positive grain count, factor, or pitch.
	ErrBadOptions = errors.New("pack: invalid options")
	// ErrNotSetup indicates Run/Finalize before Setup.
	ErrNotSetup = errors.New("pack: optimizer not set up")
	// ErrInconsistent indicates the incremental state diverged from a
	// from-scratch recompute (a correctness bug, not a user error).
	ErrInconsistent = errors.New("pack: incremental state inconsistent")
)

// Default knobs.
const (
	// DefaultIterations is the fixed packing loop length.
	DefaultIterations = 1_000_000
	// DefaultCandidateFactor is the candidate pool multiplier.
	DefaultCandidateFactor = 25
	// DefaultAllowanceGain scales the mean accepted change into the
	// move-acceptance allowance.
	DefaultAllowanceGain = 0.4
	// sizeErrorFloor is the size-distribution error below which its
	// change stops gating acceptance.
	sizeErrorFloor = 0.05
	// coarsening is the grid pitch multiplier during packing.
	coarsening = 4.0
	// progressStride is the telemetry cadence in iterations.
	progressStride = 80
)

// Options configures one packing run. Zero value is not meaningful;
// use DefaultOptions and override.
type Options struct {
	// TargetGrains is the number of grains the packed set approximates.
	TargetGrains int
	// CandidateFactor scales the candidate pool (pool = factor × target).
	CandidateFactor int
	// Iterations is the fixed optimizer loop length.
	Iterations int
	// Shape selects the grain body family for every candidate.
	Shape geom.Class
	// ResX/ResY/ResZ is the FINAL voxel pitch; packing runs at 4× this.
	ResX, ResY, ResZ float64
	// Workers bounds the parallel candidate enumeration in Setup.
	// Zero means GOMAXPROCS.
	Workers int
}

// DefaultOptions returns production defaults for everything but
// TargetGrains, which has no meaningful default and must be set.
func DefaultOptions() Options {
	return Options{
		CandidateFactor: DefaultCandidateFactor,
		Iterations:      DefaultIterations,
		Shape:           geom.Ellipsoid,
		ResX:            1, ResY: 1, ResZ: 1,
	}
}

// Validate reports ErrBadOptions on any non-positive knob.
func (o Options) Validate() error {
	if o.TargetGrains <= 0 || o.CandidateFactor <= 1 || o.Iterations <= 0 ||
		o.ResX <= 0 || o.ResY <= 0 || o.ResZ <= 0 || !o.Shape.Valid() {
		return ErrBadOptions
	}

	return nil
}

package stats

import "errors"

// Fixed histogram geometries shared with the original file formats.
const (
	// AxisODFBins is the 18×18×18 axis-orientation histogram size.
	AxisODFBins = 18 * 18 * 18
	// MDFBins spans 0..180° in 5° steps.
	MDFBins = 36
	// MDFBinWidth is the misorientation bin width in degrees.
	MDFBinWidth = 5.0
	// MicroBins is the microtexture fraction histogram size.
	MicroBins = 10
)

// Sentinel errors for statistics loading and validation.
var (
	// ErrMissingDiameterInfo indicates a per-diameter table precedes Grain_Diameter_Info.
	ErrMissingDiameterInfo = errors.New("stats: Grain_Diameter_Info must precede per-diameter tables")
	// ErrDiameterRange indicates an inconsistent diameter range.
	ErrDiameterRange = errors.New("stats: invalid diameter range")
	// ErrTruncated indicates a table ended before all rows were read.
	ErrTruncated = errors.New("stats: truncated table")
	// ErrIncomplete indicates a required table was never loaded.
	ErrIncomplete = errors.New("stats: required table missing")
	// ErrBadValue indicates a token that is not a number where one is required.
	ErrBadValue = errors.New("stats: malformed numeric value")
)

// BetaParams is one per-diameter row of a beta-distributed shape
// table: the distribution parameters plus the sample count behind them.
type BetaParams struct {
	Alpha, Beta, Count float64
}

// NeighborRow is one per-diameter row of the neighborhood table:
// mean and standard deviation of the neighbor count at shells 0..3,
// plus the sample count.
type NeighborRow struct {
	Mean, StdDev [4]float64
	Count        float64
}

// Tables is the full set of read-only targets. Per-diameter slices
// are indexed by integer diameter 0..MaxDiameter; rows below
// MinDiameter are zero.
type Tables struct {
	NumBins     int
	MinDiameter int
	MaxDiameter int

	// SizeMeanLog/SizeStdDevLog parameterize the log-normal grain
	// size distribution; SizeCount is the sample count behind it.
	SizeMeanLog   float64
	SizeStdDevLog float64
	SizeCount     float64

	BoverA []BetaParams
	CoverA []BetaParams
	CoverB []BetaParams
	Omega3 []BetaParams

	Neighbors []NeighborRow

	// AxisODF is the 18³ axis-orientation table stored as prefix sums,
	// ready for inverse-CDF sampling.
	AxisODF []float64
	// ODF is the crystallographic orientation density, raw (not summed).
	ODF []float64
	// MDF is the 36-bin misorientation density.
	MDF []float64
	// Microtexture is the 10-bin low-angle fraction density.
	Microtexture []float64
}

// ClampDiameter folds a real diameter into the table's integer range.
func (t *Tables) ClampDiameter(d float64) int {
	i := int(d)
	if i > t.MaxDiameter {
		i = t.MaxDiameter
	}
	if i < t.MinDiameter {
		i = t.MinDiameter
	}

	return i
}

// Validate reports ErrIncomplete unless every table the packer
// dereferences has been loaded. The ODF and MDF tables are not
// checked here.
func (t *Tables) Validate() error {
	if t.MaxDiameter <= 0 {
		return ErrMissingDiameterInfo
	}
	if t.MinDiameter > t.MaxDiameter {
		return ErrDiameterRange
	}
	switch {
	case t.SizeCount == 0,
		len(t.BoverA) == 0, len(t.CoverA) == 0, len(t.CoverB) == 0,
		len(t.Omega3) == 0, len(t.Neighbors) == 0,
		len(t.AxisODF) != AxisODFBins:
		return ErrIncomplete
	}

	return nil
}

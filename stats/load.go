package stats

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// scanner wraps whitespace-delimited token reading the way the
// original column files are consumed: one numeric token at a time,
// keywords interleaved with data rows.
type scanner struct {
	s *bufio.Scanner
}

func newScanner(r io.Reader) *scanner {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)

	return &scanner{s: s}
}

// next returns the next token, or "" at EOF.
func (sc *scanner) next() string {
	if !sc.s.Scan() {
		return ""
	}

	return sc.s.Text()
}

// float reads one numeric token.
func (sc *scanner) float() (float64, error) {
	tok := sc.next()
	if tok == "" {
		return 0, ErrTruncated
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadValue, tok)
	}

	return v, nil
}

// floats reads n numeric tokens into dst.
func (sc *scanner) floats(dst []float64) error {
	for i := range dst {
		v, err := sc.float()
		if err != nil {
			return err
		}
		dst[i] = v
	}

	return nil
}

// Recognized keywords of the grain statistics file.
const (
	kwDiameterInfo = "Grain_Diameter_Info"
	kwSizeDist     = "Grain_Size_Distribution"
	kwBoverA       = "Grain_SizeVBoverA_Distributions"
	kwCoverA       = "Grain_SizeVCoverA_Distributions"
	kwCoverB       = "Grain_SizeVCoverB_Distributions"
	kwNeighbors    = "Grain_SizeVNeighbors_Distributions"
	kwOmega3       = "Grain_SizeVOmega3_Distributions"
	kwAxisODF      = "Grain_AxisODF"
)

// Load parses the grain statistics file: diameter range, size
// distribution, and the per-diameter shape and neighborhood tables.
// Unrecognized tokens are skipped, matching the tolerant keyword
// format. The returned Tables still needs the orientation files
// (LoadAxisODF, LoadODF, LoadMDF, LoadMicrotexture).
func Load(r io.Reader) (*Tables, error) {
	t := &Tables{}
	sc := newScanner(r)

	for tok := sc.next(); tok != ""; tok = sc.next() {
		var err error
		switch tok {
		case kwDiameterInfo:
			err = t.readDiameterInfo(sc)
		case kwSizeDist:
			err = t.readSizeDist(sc)
		case kwBoverA:
			t.BoverA, err = t.readBetaTable(sc)
		case kwCoverA:
			t.CoverA, err = t.readBetaTable(sc)
		case kwCoverB:
			t.CoverB, err = t.readBetaTable(sc)
		case kwOmega3:
			t.Omega3, err = t.readBetaTable(sc)
		case kwNeighbors:
			err = t.readNeighborTable(sc)
		}
		if err != nil {
			return nil, err
		}
	}
	// The axis ODF and texture tables arrive from their own files;
	// everything this file owns must be present and coherent now.
	if t.MaxDiameter <= 0 {
		return nil, ErrMissingDiameterInfo
	}
	if t.SizeCount == 0 || len(t.BoverA) == 0 || len(t.CoverA) == 0 ||
		len(t.CoverB) == 0 || len(t.Omega3) == 0 || len(t.Neighbors) == 0 {
		return nil, ErrIncomplete
	}

	return t, nil
}

func (t *Tables) readDiameterInfo(sc *scanner) error {
	vals := make([]float64, 3)
	if err := sc.floats(vals); err != nil {
		return err
	}
	t.NumBins = int(vals[0])
	t.MaxDiameter = int(vals[1])
	t.MinDiameter = int(vals[2])
	if t.NumBins <= 0 || t.MinDiameter < 0 || t.MinDiameter > t.MaxDiameter {
		return ErrDiameterRange
	}

	return nil
}

func (t *Tables) readSizeDist(sc *scanner) error {
	vals := make([]float64, 3)
	if err := sc.floats(vals); err != nil {
		return err
	}
	t.SizeMeanLog, t.SizeStdDevLog, t.SizeCount = vals[0], vals[1], vals[2]

	return nil
}

// readBetaTable reads one `diam alpha beta count` row per diameter in
// [MinDiameter, MaxDiameter].
func (t *Tables) readBetaTable(sc *scanner) ([]BetaParams, error) {
	if t.MaxDiameter <= 0 {
		return nil, ErrMissingDiameterInfo
	}
	rows := make([]BetaParams, t.MaxDiameter+1)
	vals := make([]float64, 4)
	for d := t.MinDiameter; d <= t.MaxDiameter; d++ {
		if err := sc.floats(vals); err != nil {
			return nil, err
		}
		diam := int(vals[0])
		if diam < 0 || diam > t.MaxDiameter {
			return nil, ErrDiameterRange
		}
		rows[diam] = BetaParams{Alpha: vals[1], Beta: vals[2], Count: vals[3]}
	}

	return rows, nil
}

// readNeighborTable reads one `diam s0μ s0σ s1μ s1σ s2μ s2σ s3μ s3σ count`
// row per diameter.
func (t *Tables) readNeighborTable(sc *scanner) error {
	if t.MaxDiameter <= 0 {
		return ErrMissingDiameterInfo
	}
	t.Neighbors = make([]NeighborRow, t.MaxDiameter+1)
	vals := make([]float64, 10)
	for d := t.MinDiameter; d <= t.MaxDiameter; d++ {
		if err := sc.floats(vals); err != nil {
			return err
		}
		diam := int(vals[0])
		if diam < 0 || diam > t.MaxDiameter {
			return ErrDiameterRange
		}
		row := NeighborRow{Count: vals[9]}
		for s := 0; s < 4; s++ {
			row.Mean[s] = vals[1+2*s]
			row.StdDev[s] = vals[2+2*s]
		}
		t.Neighbors[diam] = row
	}

	return nil
}

// LoadAxisODF reads the 18³ axis-orientation densities (one float per
// token, a Grain_AxisODF keyword allowed in front) and stores the
// running prefix sum for inverse-CDF sampling.
func (t *Tables) LoadAxisODF(r io.Reader) error {
	sc := newScanner(r)
	tok := sc.next()
	if tok == "" {
		return ErrTruncated
	}
	if tok != kwAxisODF {
		// No keyword: the first token is already a density.
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrBadValue, tok)
		}

		return t.readAxisODF(sc, v, true)
	}

	return t.readAxisODF(sc, 0, false)
}

func (t *Tables) readAxisODF(sc *scanner, first float64, haveFirst bool) error {
	t.AxisODF = make([]float64, AxisODFBins)
	total := 0.0
	for k := 0; k < AxisODFBins; k++ {
		v := first
		if k > 0 || !haveFirst {
			var err error
			if v, err = sc.float(); err != nil {
				return err
			}
		}
		total += v
		t.AxisODF[k] = total
	}

	return nil
}

// LoadODF reads bins raw orientation densities; bins depends on the
// crystal structure (36·36·12 hexagonal, 18³ cubic).
func (t *Tables) LoadODF(r io.Reader, bins int) error {
	if bins <= 0 {
		return ErrDiameterRange
	}
	t.ODF = make([]float64, bins)

	return newScanner(r).floats(t.ODF)
}

// LoadMDF reads the 36 misorientation densities.
func (t *Tables) LoadMDF(r io.Reader) error {
	t.MDF = make([]float64, MDFBins)

	return newScanner(r).floats(t.MDF)
}

// LoadMicrotexture reads the 10 microtexture densities.
func (t *Tables) LoadMicrotexture(r io.Reader) error {
	t.Microtexture = make([]float64, MicroBins)

	return newScanner(r).floats(t.Microtexture)
}

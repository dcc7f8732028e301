package stats

import (
	"math"

	"gonum.org/v1/gonum/mathext"
)

// WelchError compares a sample against a stored target distribution
// with Welch's unequal-variance t-test and maps the two-sided p-value
// to the error contribution 1−2p ∈ [0,1]: 0 when the sample is
// indistinguishable from the target, approaching 1 as it diverges.
//
// sampleVar is the unbiased (n−1) sample variance. Degenerate inputs
// (either side with ≤1 observations, zero pooled variance, or a
// non-finite statistic) contribute p = 0.5, i.e. zero error, per the
// numeric-degeneracy policy: empty bins must not poison the total.
func WelchError(targetMean, targetStdDev, targetCount, sampleMean, sampleVar, sampleCount float64) float64 {
	if sampleCount <= 1 || targetCount <= 1 {
		return 0
	}

	// The target table stores the population standard deviation; undo
	// the 1/n to get its unbiased variance before pooling.
	targetVar := targetStdDev * targetStdDev * targetCount / (targetCount - 1)
	pooled := sampleVar/sampleCount + targetVar/targetCount
	if pooled <= 0 || math.IsNaN(pooled) {
		return 0
	}

	tval := math.Abs((targetMean - sampleMean) / math.Sqrt(pooled))
	df := pooled * pooled /
		(math.Pow(sampleVar/sampleCount, 2)/(sampleCount-1) +
			math.Pow(targetVar/targetCount, 2)/(targetCount-1))
	if df <= 0 || math.IsNaN(df) || math.IsInf(df, 0) {
		return 0
	}

	p := 0.5 * mathext.RegIncBeta(df/2, 0.5, df/(df+tval*tval))

	return 1 - 2*p
}

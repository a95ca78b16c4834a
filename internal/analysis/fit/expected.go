package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	domain "distfit/domain/fit"
	"distfit/internal/errors"
)

// CDF returns the cumulative distribution function of the fitted params.
// A zero or negative scale has no continuous CDF and is rejected.
func CDF(params domain.Params) (func(float64) float64, error) {
	switch p := params.(type) {
	case domain.UniformParams:
		if !(p.Width > 0) {
			return nil, errors.DegenerateSample(fmt.Sprintf("uniform fit has zero width (%s)", p))
		}
		dist := distuv.Uniform{Min: p.Low, Max: p.High()}
		return dist.CDF, nil

	case domain.NormalParams:
		if !(p.StdDev > 0) {
			return nil, errors.DegenerateSample(fmt.Sprintf("normal fit has zero standard deviation (%s)", p))
		}
		dist := distuv.Normal{Mu: p.Mean, Sigma: p.StdDev}
		return dist.CDF, nil
	}
	return nil, errors.InternalError(fmt.Sprintf("unsupported parameter set %T", params))
}

// binMassFunc returns the probability mass params assigns to [lo, hi).
func binMassFunc(params domain.Params) (func(lo, hi float64) float64, error) {
	switch p := params.(type) {
	case domain.UniformParams:
		if !(p.Width > 0) {
			return nil, errors.DegenerateSample(fmt.Sprintf("uniform fit has zero width (%s)", p))
		}
	case domain.NormalParams:
		if !(p.StdDev > 0) {
			// A point mass has no density over any interval.
			return func(lo, hi float64) float64 { return 0 }, nil
		}
	default:
		return nil, errors.InternalError(fmt.Sprintf("unsupported parameter set %T", params))
	}

	cdf, err := CDF(params)
	if err != nil {
		return nil, err
	}
	return func(lo, hi float64) float64 { return cdf(hi) - cdf(lo) }, nil
}

// ExpectedFrequencies returns the expected count per bin under params,
// rescaled so the vector sums to sampleSize. A histogram built from the sample
// counts every value, so sampleSize equals the observed total.
func ExpectedFrequencies(params domain.Params, edges []float64, sampleSize int) ([]float64, error) {
	if len(edges) < 2 {
		return nil, errors.InvalidInput(fmt.Sprintf("need at least two bin edges, got %d", len(edges)))
	}
	if sampleSize <= 0 {
		return nil, errors.EmptySample("expected frequencies need a positive sample size")
	}

	mass, err := binMassFunc(params)
	if err != nil {
		return nil, err
	}

	expected := make([]float64, len(edges)-1)
	for i := range expected {
		expected[i] = mass(edges[i], edges[i+1]) * float64(sampleSize)
	}

	total := floats.Sum(expected)
	if total == 0 || math.IsNaN(total) || math.IsInf(total, 0) {
		return nil, errors.ZeroExpectedMass(fmt.Sprintf("%s fit (%s) assigns no mass to the observed range", params.Family(), params))
	}

	floats.Scale(float64(sampleSize)/total, expected)
	return expected, nil
}

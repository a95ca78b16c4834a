package fit

import (
	"github.com/montanaflynn/stats"

	domain "distfit/domain/fit"
	"distfit/internal/errors"
)

// Estimate fits the parameters of family to sample.
//
// Uniform: Low = min, Width = max - min. Normal: Mean = Σx/N and StdDev is the
// population standard deviation (divisor N). Constant input yields a zero
// Width or StdDev; the estimator itself never rejects it.
func Estimate(sample domain.Sample, family domain.Family) (domain.Params, error) {
	if len(sample) == 0 {
		return nil, errors.EmptySample("cannot estimate parameters of an empty sample")
	}
	data := []float64(sample)

	lo, err := stats.Min(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute minimum")
	}
	hi, err := stats.Max(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute maximum")
	}

	switch family {
	case domain.FamilyUniform:
		return domain.UniformParams{Low: lo, Width: hi - lo}, nil

	case domain.FamilyNormal:
		mean, err := stats.Mean(data)
		if err != nil {
			return nil, errors.Wrap(err, "failed to compute mean")
		}
		if lo == hi {
			// Summation can leave residue in the mean; constant data has no spread.
			return domain.NormalParams{Mean: lo, StdDev: 0}, nil
		}
		stdDev, err := stats.StandardDeviationPopulation(data)
		if err != nil {
			return nil, errors.Wrap(err, "failed to compute standard deviation")
		}
		return domain.NormalParams{Mean: mean, StdDev: stdDev}, nil
	}

	return nil, errors.UnknownFamily(string(family))
}

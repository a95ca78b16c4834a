package fit

import (
	"fmt"
	"math"

	"distfit/domain/core"
	domain "distfit/domain/fit"
	"distfit/internal/errors"
)

// Evaluate fits both families to sample, runs the chi-square and KS tests
// against each and decides the verdict.
//
// Only an empty sample or a non-finite value aborts the evaluation. A family
// that cannot be fitted keeps its error in the outcome and is excluded from the
// decision.
func Evaluate(sample domain.Sample) (*domain.Evaluation, error) {
	if len(sample) == 0 {
		return nil, errors.EmptySample("cannot evaluate an empty sample")
	}
	for i, x := range sample {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, errors.MalformedInput(fmt.Sprintf("value %d is not finite (%g)", i+1, x), nil)
		}
	}

	hist, err := BuildHistogram(sample)
	if err != nil {
		return nil, err
	}

	uniform := evaluateFamily(sample, hist, domain.FamilyUniform)
	normal := evaluateFamily(sample, hist, domain.FamilyNormal)

	return &domain.Evaluation{
		ID:          core.NewEvaluationID(),
		Fingerprint: core.HashFloats(sample),
		SampleSize:  len(sample),
		Histogram:   hist,
		Verdict:     Decide(uniform, normal),
	}, nil
}

func evaluateFamily(sample domain.Sample, hist domain.Histogram, family domain.Family) domain.FamilyOutcome {
	outcome := domain.FamilyOutcome{Family: family}

	params, err := Estimate(sample, family)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Params = params

	expected, err := ExpectedFrequencies(params, hist.Edges, hist.Total())
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Expected = expected

	chi, err := ChiSquareTest(hist.Counts, expected)
	if err != nil {
		outcome.Err = errors.Wrapf(err, "%s chi-square test", family)
		return outcome
	}
	outcome.ChiSquare = &chi

	cdf, err := CDF(params)
	if err != nil {
		outcome.Err = err
		return outcome
	}
	ks, err := KSTest(sample, cdf)
	if err != nil {
		outcome.Err = errors.Wrapf(err, "%s KS test", family)
		return outcome
	}
	outcome.KS = &ks

	return outcome
}

package fit

import (
	"math"
	"sort"

	domain "distfit/domain/fit"
	"distfit/internal/errors"
)

// KSTest runs the one-sample two-sided Kolmogorov–Smirnov test of sample
// against cdf. The p-value comes from the limiting Kolmogorov distribution
// evaluated at (√n + 0.12 + 0.11/√n)·D, Stephens' finite-n correction of the
// plain asymptotic argument √n·D. The two converge as n grows; for small n the
// corrected argument is larger, so p-values are somewhat smaller than Q(√n·D).
func KSTest(sample domain.Sample, cdf func(float64) float64) (domain.TestResult, error) {
	n := len(sample)
	if n == 0 {
		return domain.TestResult{}, errors.EmptySample("KS test needs at least one observation")
	}
	if cdf == nil {
		return domain.TestResult{}, errors.InvalidInput("KS test needs a CDF")
	}

	sorted := make([]float64, n)
	copy(sorted, sample)
	sort.Float64s(sorted)

	nf := float64(n)
	var dPlus, dMinus float64
	for i, x := range sorted {
		f := cdf(x)
		if above := float64(i+1)/nf - f; above > dPlus {
			dPlus = above
		}
		if below := f - float64(i)/nf; below > dMinus {
			dMinus = below
		}
	}
	d := math.Max(dPlus, dMinus)

	sqrtN := math.Sqrt(nf)
	lambda := (sqrtN + 0.12 + 0.11/sqrtN) * d

	return domain.TestResult{
		Test:      domain.TestKS,
		Statistic: d,
		PValue:    kolmogorovSurvival(lambda),
	}, nil
}

// kolmogorovSurvival returns P(K > lambda) for the Kolmogorov distribution.
// Small arguments use the Jacobi theta form of the CDF, which converges where
// the alternating series does not.
func kolmogorovSurvival(lambda float64) float64 {
	if lambda <= 0 {
		return 1
	}
	if lambda < 1.18 {
		// P(K <= λ) = √(2π)/λ · Σ exp(-(2k-1)²π²/(8λ²))
		y := math.Exp(-math.Pi * math.Pi / (8 * lambda * lambda))
		y8 := math.Pow(y, 8)
		sum := y * (1 + y8*(1+y8*y8*(1+y8*y8*y8)))
		cdf := math.Sqrt(2*math.Pi) / lambda * sum
		return clampProbability(1 - cdf)
	}

	// P(K > λ) = 2 Σ (-1)^(k-1) exp(-2k²λ²)
	const (
		eps1     = 1e-3
		eps2     = 1e-12
		maxTerms = 100
	)
	a2 := -2 * lambda * lambda
	sign := 2.0
	sum := 0.0
	prevTerm := 0.0
	for k := 1; k <= maxTerms; k++ {
		term := sign * math.Exp(a2*float64(k*k))
		sum += term
		if math.Abs(term) <= eps1*prevTerm || math.Abs(term) <= eps2*sum {
			return clampProbability(sum)
		}
		sign = -sign
		prevTerm = math.Abs(term)
	}
	return clampProbability(sum)
}

package fit

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	domain "distfit/domain/fit"
	"distfit/internal/errors"
)

// ChiSquareTest compares observed bin counts with expected counts.
//
// Degrees of freedom are k-1 with no reduction for estimated parameters. A bin
// expecting nothing but observing something makes the statistic infinite; a
// bin with neither contributes nothing.
func ChiSquareTest(observed []int, expected []float64) (domain.TestResult, error) {
	if len(observed) != len(expected) {
		return domain.TestResult{}, errors.InvalidInput(fmt.Sprintf("observed has %d bins but expected has %d", len(observed), len(expected)))
	}
	if len(observed) == 0 {
		return domain.TestResult{}, errors.InvalidInput("chi-square test needs at least one bin")
	}

	df := len(observed) - 1
	result := domain.TestResult{Test: domain.TestChiSquare, DegreesOfFreedom: df}

	obs := make([]float64, 0, len(observed))
	exp := make([]float64, 0, len(expected))
	for i, e := range expected {
		if e < 0 || math.IsNaN(e) {
			return domain.TestResult{}, errors.InvalidInput(fmt.Sprintf("expected count %d is %g", i, e))
		}
		if e == 0 {
			if observed[i] > 0 {
				result.Statistic = math.Inf(1)
				result.PValue = 0
				return result, nil
			}
			continue
		}
		obs = append(obs, float64(observed[i]))
		exp = append(exp, e)
	}

	result.Statistic = stat.ChiSquare(obs, exp)
	result.PValue = chiSquareSurvival(result.Statistic, df)
	return result, nil
}

func chiSquareSurvival(statistic float64, df int) float64 {
	if df <= 0 {
		return 1
	}
	if math.IsInf(statistic, 1) {
		return 0
	}
	chiDist := distuv.ChiSquared{K: float64(df)}
	return clampProbability(chiDist.Survival(statistic))
}

func clampProbability(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 1
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

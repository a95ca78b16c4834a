package fit

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "distfit/domain/fit"
	"distfit/internal/errors"
)

func TestChiSquareTest(t *testing.T) {
	result, err := ChiSquareTest([]int{10, 20, 30}, []float64{20, 20, 20})
	require.NoError(t, err)

	assert.Equal(t, domain.TestChiSquare, result.Test)
	assert.InDelta(t, 10.0, result.Statistic, 1e-12)
	assert.Equal(t, 2, result.DegreesOfFreedom)
	// With two degrees of freedom the survival function is exp(-x/2).
	assert.InDelta(t, math.Exp(-5), result.PValue, 1e-12)
}

func TestChiSquareTestPerfectFit(t *testing.T) {
	result, err := ChiSquareTest([]int{5, 5, 5, 5}, []float64{5, 5, 5, 5})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Statistic)
	assert.InDelta(t, 1.0, result.PValue, 1e-12)
}

func TestChiSquareTestZeroExpectedBins(t *testing.T) {
	result, err := ChiSquareTest([]int{4, 0, 6}, []float64{5, 0, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0.4, result.Statistic, 1e-12)
	assert.Equal(t, 2, result.DegreesOfFreedom)

	result, err = ChiSquareTest([]int{4, 1, 5}, []float64{5, 0, 5})
	require.NoError(t, err)
	assert.True(t, math.IsInf(result.Statistic, 1))
	assert.Equal(t, 0.0, result.PValue)
}

func TestChiSquareTestSingleBin(t *testing.T) {
	result, err := ChiSquareTest([]int{12}, []float64{12})
	require.NoError(t, err)
	assert.Equal(t, 0, result.DegreesOfFreedom)
	assert.Equal(t, 1.0, result.PValue)
}

func TestChiSquareTestInvalid(t *testing.T) {
	_, err := ChiSquareTest([]int{1, 2}, []float64{1})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = ChiSquareTest(nil, nil)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))

	_, err = ChiSquareTest([]int{1, 2}, []float64{1, -2})
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestKSTestStatistic(t *testing.T) {
	uniformCDF, err := CDF(domain.UniformParams{Low: 0, Width: 1})
	require.NoError(t, err)

	result, err := KSTest(domain.Sample{0.9, 0.1, 0.5}, uniformCDF)
	require.NoError(t, err)

	assert.Equal(t, domain.TestKS, result.Test)
	assert.InDelta(t, 0.7/3, result.Statistic, 1e-12)
	assert.Greater(t, result.PValue, 0.5)
}

// The p-value uses the finite-n corrected argument, which is never smaller than √n·D.
func TestKSTestFiniteSampleCorrection(t *testing.T) {
	uniformCDF, err := CDF(domain.UniformParams{Low: 0, Width: 1})
	require.NoError(t, err)

	sample := domain.Sample{0.05, 0.2, 0.25, 0.3, 0.9}
	result, err := KSTest(sample, uniformCDF)
	require.NoError(t, err)

	sqrtN := math.Sqrt(float64(len(sample)))
	corrected := (sqrtN + 0.12 + 0.11/sqrtN) * result.Statistic
	assert.InDelta(t, kolmogorovSurvival(corrected), result.PValue, 1e-15)
	assert.LessOrEqual(t, result.PValue, kolmogorovSurvival(sqrtN*result.Statistic))
}

func TestKSTestRejectsShiftedSample(t *testing.T) {
	normalCDF, err := CDF(domain.NormalParams{Mean: 0, StdDev: 1})
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(1, 2))
	sample := make(domain.Sample, 500)
	for i := range sample {
		sample[i] = rng.NormFloat64() + 1
	}

	result, err := KSTest(sample, normalCDF)
	require.NoError(t, err)
	assert.Less(t, result.PValue, 1e-6)
}

func TestKSTestErrors(t *testing.T) {
	_, err := KSTest(nil, func(float64) float64 { return 0 })
	assert.Equal(t, errors.CodeEmptySample, errors.GetCode(err))

	_, err = KSTest(domain.Sample{1}, nil)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestKolmogorovSurvival(t *testing.T) {
	tests := []struct {
		lambda float64
		want   float64
	}{
		{0, 1},
		{0.2, 1},
		{0.5, 0.9639},
		{1.0, 0.2700},
		{1.36, 0.0495},
		{1.63, 0.0098},
		{2.0, 6.709e-4},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, kolmogorovSurvival(tt.lambda), 1e-3, "lambda=%v", tt.lambda)
	}
}

// The two series forms must agree where they hand over.
func TestKolmogorovSurvivalContinuous(t *testing.T) {
	below := kolmogorovSurvival(1.18 - 1e-9)
	above := kolmogorovSurvival(1.18)
	assert.InDelta(t, below, above, 1e-6)

	prev := 1.0
	for lambda := 0.05; lambda < 4; lambda += 0.05 {
		p := kolmogorovSurvival(lambda)
		assert.LessOrEqual(t, p, prev+1e-12, "survival must not increase at lambda=%v", lambda)
		prev = p
	}
}

// Identical inputs produce identical results.
func TestTestsAreDeterministic(t *testing.T) {
	sample := domain.Sample{0.3, 1.7, -0.4, 2.2, 0.9, 1.1, 0.0, -1.3}
	first, err := Evaluate(sample)
	require.NoError(t, err)
	second, err := Evaluate(sample)
	require.NoError(t, err)

	assert.Equal(t, first.Verdict, second.Verdict)
	assert.Equal(t, first.Histogram, second.Histogram)
}

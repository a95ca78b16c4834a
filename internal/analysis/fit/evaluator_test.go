package fit

import (
	stderrors "errors"
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "distfit/domain/fit"
	"distfit/internal/errors"
)

func TestEvaluateConstantSample(t *testing.T) {
	eval, err := Evaluate(domain.Sample{5, 5, 5, 5})
	require.NoError(t, err)

	v := eval.Verdict
	assert.Equal(t, domain.DecisionNone, v.Decision)

	assert.True(t, stderrors.Is(v.Uniform.Err, errors.ErrDegenerateSample), "uniform: %v", v.Uniform.Err)
	assert.Nil(t, v.Uniform.ChiSquare)
	assert.Nil(t, v.Uniform.KS)

	assert.True(t, stderrors.Is(v.Normal.Err, errors.ErrZeroExpectedMass), "normal: %v", v.Normal.Err)
	require.NotNil(t, v.Normal.Params)
	assert.Equal(t, 0.0, v.Normal.Params.(domain.NormalParams).StdDev)

	report := Report(eval)
	assert.Contains(t, report, "Neither distribution could be evaluated")
	assert.Contains(t, report, "not evaluable")
}

func TestEvaluateSingleValue(t *testing.T) {
	eval, err := Evaluate(domain.Sample{42})
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionNone, eval.Verdict.Decision)
	assert.Equal(t, 1, eval.SampleSize)
}

func TestEvaluateRejectsBadSamples(t *testing.T) {
	_, err := Evaluate(nil)
	assert.True(t, stderrors.Is(err, errors.ErrEmptySample))

	_, err = Evaluate(domain.Sample{1, math.NaN(), 3})
	assert.True(t, stderrors.Is(err, errors.ErrMalformedInput))

	_, err = Evaluate(domain.Sample{1, math.Inf(-1)})
	assert.True(t, stderrors.Is(err, errors.ErrMalformedInput))
}

func TestEvaluatePValuesInUnitInterval(t *testing.T) {
	rng := rand.New(rand.NewPCG(99, 1))
	for trial := 0; trial < 60; trial++ {
		size := 2 + rng.IntN(400)
		sample := make(domain.Sample, size)
		for i := range sample {
			switch trial % 3 {
			case 0:
				sample[i] = rng.Float64()
			case 1:
				sample[i] = rng.NormFloat64()
			default:
				sample[i] = rng.ExpFloat64()
			}
		}

		eval, err := Evaluate(sample)
		require.NoError(t, err)

		for _, outcome := range eval.Verdict.Outcomes() {
			if !outcome.Evaluable() {
				continue
			}
			assert.GreaterOrEqual(t, outcome.ChiSquare.PValue, 0.0)
			assert.LessOrEqual(t, outcome.ChiSquare.PValue, 1.0)
			assert.GreaterOrEqual(t, outcome.KS.PValue, 0.0)
			assert.LessOrEqual(t, outcome.KS.PValue, 1.0)
		}
	}
}

func TestEvaluateExponentialIsNeither(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	sample := make(domain.Sample, 2000)
	for i := range sample {
		sample[i] = rng.ExpFloat64()
	}

	eval, err := Evaluate(sample)
	require.NoError(t, err)
	assert.Equal(t, domain.DecisionNone, eval.Verdict.Decision)
}

func TestReportListsEveryPValue(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	sample := make(domain.Sample, 300)
	for i := range sample {
		sample[i] = rng.Float64()
	}

	eval, err := Evaluate(sample)
	require.NoError(t, err)
	report := Report(eval)

	assert.Contains(t, report, "**Uniform distribution**")
	assert.Contains(t, report, "**Normal distribution**")
	assert.Equal(t, 2, strings.Count(report, "Chi-square p-value"))
	assert.Equal(t, 2, strings.Count(report, "KS p-value"))
	assert.True(t, strings.HasSuffix(report, Conclusion(eval.Verdict.Decision)+"\n"))
}

func TestConclusion(t *testing.T) {
	assert.Equal(t, "The sample most resembles a normal distribution.", Conclusion(domain.DecisionNormal))
	assert.Equal(t, "The sample does not resemble a uniform or a normal distribution.", Conclusion(domain.DecisionNone))
}

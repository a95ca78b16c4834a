package api

import (
	"math"

	domain "distfit/domain/fit"
	"distfit/internal/analysis/fit"
	"distfit/internal/errors"
)

type evaluateRequest struct {
	Sample []float64 `json:"sample"`
}

type batchRequest struct {
	Samples [][]float64 `json:"samples"`
}

type generateRequest struct {
	Distribution string  `json:"distribution"`
	Count        int     `json:"count"`
	Seed         *uint64 `json:"seed,omitempty"`
}

type generateResponse struct {
	Distribution domain.Family `json:"distribution"`
	Count        int           `json:"count"`
	Seed         *uint64       `json:"seed,omitempty"`
	Sample       []float64     `json:"sample"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

// testResponse mirrors domain.TestResult. JSON has no infinity, so a
// statistic that diverged is reported as null.
type testResponse struct {
	Test             domain.TestName `json:"test"`
	Statistic        *float64        `json:"statistic"`
	PValue           float64         `json:"p_value"`
	DegreesOfFreedom int             `json:"degrees_of_freedom,omitempty"`
	Passed           bool            `json:"passed"`
}

type outcomeResponse struct {
	Family    domain.Family `json:"family"`
	Params    any           `json:"params,omitempty"`
	Expected  []float64     `json:"expected,omitempty"`
	ChiSquare *testResponse `json:"chi_square,omitempty"`
	KS        *testResponse `json:"ks,omitempty"`
	Passed    bool          `json:"passed"`
	Error     *errorBody    `json:"error,omitempty"`
}

type evaluationResponse struct {
	ID          string           `json:"id"`
	Fingerprint string           `json:"fingerprint"`
	SampleSize  int              `json:"sample_size"`
	Decision    domain.Decision  `json:"decision"`
	Conclusion  string           `json:"conclusion"`
	Histogram   domain.Histogram `json:"histogram"`
	Uniform     outcomeResponse  `json:"uniform"`
	Normal      outcomeResponse  `json:"normal"`
	Report      string           `json:"report,omitempty"`
}

type batchItem struct {
	Index      int                 `json:"index"`
	Evaluation *evaluationResponse `json:"evaluation,omitempty"`
	Error      *errorBody          `json:"error,omitempty"`
}

type batchResponse struct {
	Results []batchItem `json:"results"`
}

func newErrorBody(err error) *errorBody {
	return &errorBody{Code: errors.GetCode(err), Message: err.Error()}
}

func newTestResponse(r *domain.TestResult) *testResponse {
	if r == nil {
		return nil
	}
	out := &testResponse{
		Test:             r.Test,
		PValue:           r.PValue,
		DegreesOfFreedom: r.DegreesOfFreedom,
		Passed:           r.Passed(domain.Alpha),
	}
	if !math.IsInf(r.Statistic, 0) && !math.IsNaN(r.Statistic) {
		stat := r.Statistic
		out.Statistic = &stat
	}
	return out
}

func newOutcomeResponse(o domain.FamilyOutcome) outcomeResponse {
	out := outcomeResponse{
		Family:    o.Family,
		Params:    o.Params,
		Expected:  o.Expected,
		ChiSquare: newTestResponse(o.ChiSquare),
		KS:        newTestResponse(o.KS),
		Passed:    o.Passes(domain.Alpha),
	}
	if o.Err != nil {
		out.Error = newErrorBody(o.Err)
	}
	return out
}

func newEvaluationResponse(eval *domain.Evaluation, withReport bool) *evaluationResponse {
	out := &evaluationResponse{
		ID:          eval.ID.String(),
		Fingerprint: eval.Fingerprint.String(),
		SampleSize:  eval.SampleSize,
		Decision:    eval.Verdict.Decision,
		Conclusion:  fit.Conclusion(eval.Verdict.Decision),
		Histogram:   eval.Histogram,
		Uniform:     newOutcomeResponse(eval.Verdict.Uniform),
		Normal:      newOutcomeResponse(eval.Verdict.Normal),
	}
	if withReport {
		out.Report = fit.Report(eval)
	}
	return out
}

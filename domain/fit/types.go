package fit

import (
	"fmt"
	"strconv"
	"strings"

	"distfit/domain/core"
	"distfit/internal/errors"
)

// Alpha is the fixed significance threshold applied to every p-value.
const Alpha = 0.05

// Sample is an ordered sequence of finite observations. The core never mutates it.
type Sample []float64

// Len returns the number of observations
func (s Sample) Len() int {
	return len(s)
}

// Family identifies a candidate distribution family
type Family string

const (
	FamilyUniform Family = "uniform"
	FamilyNormal  Family = "normal"
)

// Families lists the candidate families in decision order
var Families = []Family{FamilyUniform, FamilyNormal}

// String returns the family name
func (f Family) String() string {
	return string(f)
}

// ParseFamily maps a user supplied distribution name to a Family.
// Both the English names and the names used by the original tool are accepted.
func ParseFamily(name string) (Family, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "uniform", "uniforme":
		return FamilyUniform, nil
	case "normal", "norm":
		return FamilyNormal, nil
	}
	return "", errors.UnknownFamily(name)
}

// ParseSize reads a requested sample size. Anything but a positive base-10
// integer is an INVALID_SIZE error.
func ParseSize(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errors.InvalidSize("sample size is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, errors.InvalidSize(fmt.Sprintf("sample size must be a positive integer, got %q", raw))
	}
	return n, nil
}

// Params is the fitted parameter set of one family. It is implemented only by
// UniformParams and NormalParams; consumers dispatch with a type switch.
type Params interface {
	Family() Family
	// Scale is the width (uniform) or standard deviation (normal)
	Scale() float64
	String() string
	sealed()
}

// UniformParams describes the uniform distribution on [Low, Low+Width]
type UniformParams struct {
	Low   float64 `json:"low"`
	Width float64 `json:"width"`
}

func (UniformParams) Family() Family { return FamilyUniform }
func (p UniformParams) Scale() float64 { return p.Width }
func (UniformParams) sealed() {}
func (p UniformParams) High() float64 { return p.Low + p.Width }
func (p UniformParams) String() string {
	return fmt.Sprintf("low=%g, width=%g", p.Low, p.Width)
}

// NormalParams describes the normal distribution N(Mean, StdDev²)
type NormalParams struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

func (NormalParams) Family() Family { return FamilyNormal }
func (p NormalParams) Scale() float64 { return p.StdDev }
func (NormalParams) sealed() {}
func (p NormalParams) String() string {
	return fmt.Sprintf("mean=%g, stddev=%g", p.Mean, p.StdDev)
}

// Histogram holds bin edges and the observed count per bin.
// len(Edges) == len(Counts)+1 and Edges is strictly increasing.
type Histogram struct {
	Edges  []float64 `json:"edges"`
	Counts []int     `json:"counts"`
}

// Bins returns the number of bins
func (h Histogram) Bins() int {
	return len(h.Counts)
}

// Total returns the sum of observed counts
func (h Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// TestName identifies a goodness-of-fit test
type TestName string

const (
	TestChiSquare TestName = "chi_square"
	TestKS        TestName = "ks"
)

// TestResult is the outcome of one (family, test) pair
type TestResult struct {
	Test             TestName `json:"test"`
	Statistic        float64  `json:"statistic"`
	PValue           float64  `json:"p_value"`
	DegreesOfFreedom int      `json:"degrees_of_freedom,omitempty"`
}

// Passed reports whether the p-value exceeds the threshold
func (r TestResult) Passed(alpha float64) bool {
	return r.PValue > alpha
}

// FamilyOutcome collects everything computed for one family. When Err is set
// the family could not be evaluated and never passes.
type FamilyOutcome struct {
	Family    Family      `json:"family"`
	Params    Params      `json:"params,omitempty"`
	Expected  []float64   `json:"expected,omitempty"`
	ChiSquare *TestResult `json:"chi_square,omitempty"`
	KS        *TestResult `json:"ks,omitempty"`
	Err       error       `json:"-"`
}

// Evaluable reports whether both tests produced a result
func (o FamilyOutcome) Evaluable() bool {
	return o.Err == nil && o.ChiSquare != nil && o.KS != nil
}

// Passes reports whether both p-values exceed alpha
func (o FamilyOutcome) Passes(alpha float64) bool {
	return o.Evaluable() && o.ChiSquare.Passed(alpha) && o.KS.Passed(alpha)
}

// Decision is the categorical answer of an evaluation
type Decision string

const (
	DecisionUniform Decision = "uniform"
	DecisionNormal  Decision = "normal"
	DecisionNone    Decision = "none"
)

// Verdict is the decision plus every outcome that produced it
type Verdict struct {
	Decision Decision      `json:"decision"`
	Uniform  FamilyOutcome `json:"uniform"`
	Normal   FamilyOutcome `json:"normal"`
}

// Outcomes returns the family outcomes in decision order
func (v Verdict) Outcomes() []FamilyOutcome {
	return []FamilyOutcome{v.Uniform, v.Normal}
}

// Evaluation is the full result of evaluating one sample
type Evaluation struct {
	ID          core.EvaluationID `json:"id"`
	Fingerprint core.Hash         `json:"fingerprint"`
	SampleSize  int               `json:"sample_size"`
	Histogram   Histogram         `json:"histogram"`
	Verdict     Verdict           `json:"verdict"`
}

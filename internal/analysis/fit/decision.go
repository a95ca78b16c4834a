package fit

import (
	domain "distfit/domain/fit"
)

// Decide applies the fixed threshold to both families. Uniform is checked
// first, so a sample passing both is reported as uniform. A family that could
// not be evaluated never passes.
func Decide(uniform, normal domain.FamilyOutcome) domain.Verdict {
	verdict := domain.Verdict{
		Decision: domain.DecisionNone,
		Uniform:  uniform,
		Normal:   normal,
	}

	switch {
	case uniform.Passes(domain.Alpha):
		verdict.Decision = domain.DecisionUniform
	case normal.Passes(domain.Alpha):
		verdict.Decision = domain.DecisionNormal
	}

	return verdict
}

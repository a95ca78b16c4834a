package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "distfit/domain/fit"
	"distfit/internal/errors"
)

func outcomeWith(family domain.Family, chiP, ksP float64) domain.FamilyOutcome {
	return domain.FamilyOutcome{
		Family:    family,
		ChiSquare: &domain.TestResult{Test: domain.TestChiSquare, PValue: chiP},
		KS:        &domain.TestResult{Test: domain.TestKS, PValue: ksP},
	}
}

func TestDecide(t *testing.T) {
	failed := domain.FamilyOutcome{Family: domain.FamilyNormal, Err: errors.ZeroExpectedMass("no mass")}

	tests := []struct {
		name    string
		uniform domain.FamilyOutcome
		normal  domain.FamilyOutcome
		want    domain.Decision
	}{
		{"uniform passes", outcomeWith(domain.FamilyUniform, 0.4, 0.3), outcomeWith(domain.FamilyNormal, 0.01, 0.2), domain.DecisionUniform},
		{"normal passes", outcomeWith(domain.FamilyUniform, 0.4, 0.01), outcomeWith(domain.FamilyNormal, 0.5, 0.6), domain.DecisionNormal},
		{"both pass, uniform wins", outcomeWith(domain.FamilyUniform, 0.06, 0.07), outcomeWith(domain.FamilyNormal, 0.9, 0.9), domain.DecisionUniform},
		{"neither passes", outcomeWith(domain.FamilyUniform, 0.04, 0.9), outcomeWith(domain.FamilyNormal, 0.9, 0.01), domain.DecisionNone},
		{"threshold is strict", outcomeWith(domain.FamilyUniform, domain.Alpha, 0.9), outcomeWith(domain.FamilyNormal, 0.9, domain.Alpha), domain.DecisionNone},
		{"failed family never passes", outcomeWith(domain.FamilyUniform, 0.01, 0.01), failed, domain.DecisionNone},
		{"missing KS result never passes", domain.FamilyOutcome{Family: domain.FamilyUniform, ChiSquare: &domain.TestResult{PValue: 0.9}}, outcomeWith(domain.FamilyNormal, 0.2, 0.2), domain.DecisionNormal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verdict := Decide(tt.uniform, tt.normal)
			assert.Equal(t, tt.want, verdict.Decision)
			assert.Equal(t, tt.uniform, verdict.Uniform)
			assert.Equal(t, tt.normal, verdict.Normal)
		})
	}
}

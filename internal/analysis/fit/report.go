package fit

import (
	"fmt"
	"strings"

	domain "distfit/domain/fit"
)

var familyTitles = map[domain.Family]string{
	domain.FamilyUniform: "Uniform",
	domain.FamilyNormal:  "Normal",
}

// Report renders an evaluation as Markdown-flavoured text that also reads
// well on a terminal.
func Report(eval *domain.Evaluation) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## Test results\n\n")
	fmt.Fprintf(&b, "Sample size: %d, bins: %d\n\n", eval.SampleSize, eval.Histogram.Bins())

	failures := 0
	for _, outcome := range eval.Verdict.Outcomes() {
		writeOutcome(&b, outcome)
		if outcome.Err != nil {
			failures++
		}
	}

	if failures == len(eval.Verdict.Outcomes()) {
		b.WriteString("Neither distribution could be evaluated; the verdict defaults to none.\n\n")
	}

	b.WriteString(Conclusion(eval.Verdict.Decision))
	b.WriteString("\n")
	return b.String()
}

func writeOutcome(b *strings.Builder, outcome domain.FamilyOutcome) {
	title := familyTitles[outcome.Family]
	if outcome.Params != nil {
		fmt.Fprintf(b, "**%s distribution** (%s)\n\n", title, outcome.Params)
	} else {
		fmt.Fprintf(b, "**%s distribution**\n\n", title)
	}

	if outcome.Err != nil {
		fmt.Fprintf(b, "- not evaluable: %v\n\n", outcome.Err)
		return
	}
	if outcome.ChiSquare != nil {
		fmt.Fprintf(b, "- Chi-square p-value: %.6g (statistic %.6g, df %d)\n",
			outcome.ChiSquare.PValue, outcome.ChiSquare.Statistic, outcome.ChiSquare.DegreesOfFreedom)
	}
	if outcome.KS != nil {
		fmt.Fprintf(b, "- KS p-value: %.6g (statistic %.6g)\n", outcome.KS.PValue, outcome.KS.Statistic)
	}
	b.WriteString("\n")
}

// Conclusion is the one-line verdict sentence
func Conclusion(decision domain.Decision) string {
	if decision == domain.DecisionNone {
		return "The sample does not resemble a uniform or a normal distribution."
	}
	return fmt.Sprintf("The sample most resembles a %s distribution.", decision)
}

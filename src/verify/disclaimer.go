package verify

import (
	"regexp"
	"strings"
)

var disclaimerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`not financial advice`),
	regexp.MustCompile(`not a recommendation`),
	regexp.MustCompile(`informational purposes`),
	regexp.MustCompile(`consult.*(?:financial|professional|advisor)`),
	regexp.MustCompile(`does not constitute.*advice`),
	regexp.MustCompile(`for informational`),
	regexp.MustCompile(`not intended as.*advice`),
	regexp.MustCompile(`disclaimer`),
}

// Tools whose output is financial analysis requiring a disclaimer.
var financialTools = map[string]bool{
	"portfolio_analysis":   true,
	"benchmark_comparison": true,
	"risk_assessment":      true,
	"dividend_analysis":    true,
}

// checkDisclaimer verifies that an answer built on financial analysis tools
// carries a disclaimer. Failing the check causes the canonical disclaimer to
// be appended by the pipeline, which also makes the check idempotent: a
// re-verified amended answer matches the "informational purposes" pattern.
func checkDisclaimer(answer string, toolsUsed []string) (bool, string) {
	needed := false
	for _, name := range toolsUsed {
		if financialTools[name] {
			needed = true
			break
		}
	}
	if !needed {
		return true, ""
	}

	lower := strings.ToLower(answer)
	for _, pattern := range disclaimerPatterns {
		if pattern.MatchString(lower) {
			return true, ""
		}
	}

	return false, "Response uses financial analysis tools but lacks a disclaimer. " +
		"Consider adding: 'This is for informational purposes only and " +
		"does not constitute financial advice.'"
}

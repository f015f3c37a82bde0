package verify

import (
	"fmt"
	"regexp"
	"strings"
)

var numberRe = regexp.MustCompile(`-?\d[\d,]*\.?\d*`)

// extractNumbers pulls significant numbers (2+ integer digits) out of text,
// normalized by stripping thousands separators.
func extractNumbers(text string) map[string]bool {
	numbers := make(map[string]bool)
	for _, raw := range numberRe.FindAllString(text, -1) {
		clean := strings.ReplaceAll(raw, ",", "")
		intPart := strings.SplitN(strings.TrimPrefix(clean, "-"), ".", 2)[0]
		if len(intPart) >= 2 {
			numbers[clean] = true
		}
	}
	return numbers
}

// checkNumericConsistency cross-references significant numbers in the answer
// against the raw tool outputs, catching values the model invented instead of
// reporting. Flags only when more than half the numbers are unmatched with
// at least two offenders. Logged, never blocking.
func checkNumericConsistency(answer string, toolOutputs []string) (bool, string) {
	if len(toolOutputs) == 0 {
		return true, ""
	}

	answerNumbers := extractNumbers(answer)
	if len(answerNumbers) == 0 {
		return true, ""
	}

	toolNumbers := extractNumbers(strings.Join(toolOutputs, " "))
	if len(toolNumbers) == 0 {
		return true, ""
	}

	var unmatched []string
	for rn := range answerNumbers {
		if !matchesAny(rn, toolNumbers) {
			unmatched = append(unmatched, rn)
		}
	}
	if len(unmatched) == 0 {
		return true, ""
	}

	ratio := float64(len(unmatched)) / float64(len(answerNumbers))
	if ratio > 0.5 && len(unmatched) >= 2 {
		sample := unmatched
		if len(sample) > 5 {
			sample = sample[:5]
		}
		return false, fmt.Sprintf(
			"Potential hallucination: %d/%d numbers in response not found in tool outputs. Unmatched: %v",
			len(unmatched), len(answerNumbers), sample)
	}

	return true, ""
}

// matchesAny allows for formatting differences (52,450.00 vs 52450.0) by
// comparing trailing-zero-trimmed forms and substring containment.
func matchesAny(rn string, toolNumbers map[string]bool) bool {
	rnBase := trimNumber(rn)
	for tn := range toolNumbers {
		if rnBase == trimNumber(tn) || strings.Contains(tn, rn) || strings.Contains(rn, tn) {
			return true
		}
	}
	return false
}

func trimNumber(n string) string {
	if strings.Contains(n, ".") {
		n = strings.TrimRight(n, "0")
		n = strings.TrimRight(n, ".")
	}
	return n
}

package verify

import (
	"fmt"
	"math"
	"regexp"
	"strings"
)

// LowConfidenceThreshold is the score below which a caveat is appended.
const LowConfidenceThreshold = 0.4

// LowConfidenceCaveat is appended after any disclaimer so it stays the most
// visible trailing text.
const LowConfidenceCaveat = "\n\n> **Note:** This response has lower confidence because it is " +
	"based on limited or no tool data. Please verify the information " +
	"with your portfolio directly."

// Tools that return authoritative data from the portfolio backend.
var dataTools = map[string]bool{
	"portfolio_analysis":   true,
	"transaction_history":  true,
	"market_data":          true,
	"risk_assessment":      true,
	"benchmark_comparison": true,
	"dividend_analysis":    true,
	"account_summary":      true,
}

var hedgingPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bapproximately\b`),
	regexp.MustCompile(`\brough(?:ly)?\b`),
	regexp.MustCompile(`\bestimate[ds]?\b`),
	regexp.MustCompile(`\bmight\b`),
	regexp.MustCompile(`\bcould be\b`),
	regexp.MustCompile(`\bpossibly\b`),
	regexp.MustCompile(`\bunclear\b`),
	regexp.MustCompile(`\bnot sure\b`),
	regexp.MustCompile(`\bi(?:'m| am) not certain\b`),
	regexp.MustCompile(`\bgenerally\b`),
	regexp.MustCompile(`\btypically\b`),
	regexp.MustCompile(`\bit depends\b`),
}

var concreteDataPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$[\d,]+\.?\d*`),        // dollar amounts
	regexp.MustCompile(`\d+\.\d+%`),             // percentages with decimals
	regexp.MustCompile(`\b\d{2,}(?:,\d{3})*\b`), // large numbers
}

// scoreConfidence rates an answer from 0.0 to 1.0. Data-tool usage and
// concrete figures raise the score; hedging language, tool errors, and
// tool-free answers lower it.
func scoreConfidence(answer string, toolsUsed, toolOutputs []string) (float64, string) {
	lower := strings.ToLower(answer)

	score := 0.5
	var factors []string

	dataToolsUsed := 0
	for _, name := range toolsUsed {
		if dataTools[name] {
			dataToolsUsed++
		}
	}
	if dataToolsUsed > 0 {
		bonus := math.Min(float64(dataToolsUsed)*0.15, 0.3)
		score += bonus
		factors = append(factors, fmt.Sprintf("+%.2f data tools called (%d)", bonus, dataToolsUsed))
	}

	successful, failed := splitToolOutputs(toolOutputs)
	if successful > 0 {
		score += 0.1
		factors = append(factors, "+0.10 tool outputs received")
	}

	concreteCount := 0
	for _, pattern := range concreteDataPatterns {
		if pattern.MatchString(answer) {
			concreteCount++
		}
	}
	if concreteCount >= 2 {
		score += 0.1
		factors = append(factors, "+0.10 concrete numeric data present")
	}

	if len(toolsUsed) == 0 {
		score -= 0.2
		factors = append(factors, "-0.20 no tools called")
	}

	hedgingCount := 0
	for _, pattern := range hedgingPatterns {
		if pattern.MatchString(lower) {
			hedgingCount++
		}
	}
	if hedgingCount >= 2 {
		penalty := math.Min(float64(hedgingCount)*0.05, 0.15)
		score -= penalty
		factors = append(factors, fmt.Sprintf("-%.2f hedging language (%d instances)", penalty, hedgingCount))
	}

	if failed > 0 {
		penalty := math.Min(float64(failed)*0.1, 0.2)
		score -= penalty
		factors = append(factors, fmt.Sprintf("-%.2f tool errors (%d)", penalty, failed))
	}

	score = math.Max(0.0, math.Min(1.0, math.Round(score*100)/100))

	detail := fmt.Sprintf("confidence=%.2f", score)
	if len(factors) > 0 {
		detail += " (" + strings.Join(factors, ", ") + ")"
	}
	return score, detail
}

// splitToolOutputs counts outputs that carried data versus ones reporting an
// error. An output counts as an error when "error" appears near the start.
func splitToolOutputs(toolOutputs []string) (successful, failed int) {
	for _, out := range toolOutputs {
		if out == "" {
			continue
		}
		head := strings.ToLower(out)
		if len(head) > 50 {
			head = head[:50]
		}
		if strings.Contains(head, "error") {
			failed++
		} else {
			successful++
		}
	}
	return successful, failed
}

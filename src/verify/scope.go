package verify

import (
	"regexp"
	"strings"
)

// Keywords that strongly indicate the answer stayed on-topic.
var onTopicSignals = []*regexp.Regexp{
	regexp.MustCompile(`portfolio`),
	regexp.MustCompile(`holdings?`),
	regexp.MustCompile(`allocation`),
	regexp.MustCompile(`performance`),
	regexp.MustCompile(`dividends?`),
	regexp.MustCompile(`benchmark`),
	regexp.MustCompile(`risk`),
	regexp.MustCompile(`returns?`),
	regexp.MustCompile(`market\s+data`),
	regexp.MustCompile(`symbol`),
	regexp.MustCompile(`ticker`),
	regexp.MustCompile(`order`),
	regexp.MustCompile(`transaction`),
	regexp.MustCompile(`account`),
	regexp.MustCompile(`invest`),
	regexp.MustCompile(`shares?`),
	regexp.MustCompile(`currency`),
	regexp.MustCompile(`asset`),
	regexp.MustCompile(`stock`),
	regexp.MustCompile(`bond`),
	regexp.MustCompile(`etf`),
	regexp.MustCompile(`fund`),
	regexp.MustCompile(`balance`),
	regexp.MustCompile(`net\s+worth`),
	regexp.MustCompile(`preference`),
}

// Phrases indicating the assistant correctly declined an off-topic request.
var declinedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`portfolio assistant`),
	regexp.MustCompile(`can(?:'t| not|not) help with`),
	regexp.MustCompile(`outside (?:my|the) scope`),
	regexp.MustCompile(`only (?:help|assist) with.*(?:portfolio|invest|financ)`),
	regexp.MustCompile(`not (?:able|designed) to`),
	regexp.MustCompile(`(?:unrelated|off.topic)`),
}

var portfolioTools = map[string]bool{
	"portfolio_analysis":     true,
	"transaction_history":    true,
	"market_data":            true,
	"risk_assessment":        true,
	"benchmark_comparison":   true,
	"dividend_analysis":      true,
	"account_summary":        true,
	"create_order":           true,
	"delete_order":           true,
	"get_user_preferences":   true,
	"save_user_preference":   true,
	"delete_user_preference": true,
}

// checkScope verifies the answer stays within financial/portfolio scope.
// A failure only logs; the answer is never altered.
func checkScope(answer string, toolsUsed []string) (bool, string) {
	lower := strings.ToLower(answer)

	// Tool use means the assistant engaged with portfolio data.
	for _, name := range toolsUsed {
		if portfolioTools[name] {
			return true, ""
		}
	}

	// Declining an off-topic request is correct behavior.
	for _, pattern := range declinedPatterns {
		if pattern.MatchString(lower) {
			return true, ""
		}
	}

	onTopicCount := 0
	for _, pattern := range onTopicSignals {
		if pattern.MatchString(lower) {
			onTopicCount++
		}
	}
	if onTopicCount >= 2 {
		return true, ""
	}

	// Short responses (greetings, acknowledgements) are fine.
	if len(strings.Fields(answer)) < 20 {
		return true, ""
	}

	return false, "Response may be off-topic: no portfolio tools were called and " +
		"the content lacks financial/portfolio keywords. The agent should " +
		"either use tools to answer portfolio questions or decline " +
		"off-topic requests."
}

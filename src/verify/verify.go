// Package verify post-processes final answers, catching missing disclaimers,
// fabricated numbers, off-topic drift, and low-confidence replies before they
// reach the user.
package verify

import (
	"log/slog"
)

// DisclaimerText is the canonical disclaimer appended when a financial
// analysis answer lacks one.
const DisclaimerText = "\n\n*This is for informational purposes only and does not constitute financial advice.*"

// CheckResult records the outcome of one verification check.
type CheckResult struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Input carries the evidence the checks evaluate the answer against.
type Input struct {
	// ToolsUsed is the distinct tool names invoked during the run.
	ToolsUsed []string
	// ToolOutputs is the raw content of every tool result, successful or not.
	ToolOutputs []string
}

// Result is the outcome of the full pipeline.
type Result struct {
	// Answer is the possibly amended answer text.
	Answer string
	// Checks lists each check outcome in pipeline order.
	Checks []CheckResult
	// Amended reports whether the answer was modified.
	Amended bool
}

// Verify runs every check against the final answer. Check order is fixed:
// the disclaimer is appended before any low-confidence caveat so the caveat
// stays the most visible trailing text. A panicking check is logged and
// treated as passed, never blocking the response.
func Verify(answer string, input Input, logger *slog.Logger) Result {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "verify")

	result := Result{Answer: answer}

	result.record(logger, "scope", func() (bool, string) {
		return checkScope(answer, input.ToolsUsed)
	})

	disclaimerPassed := result.record(logger, "disclaimer", func() (bool, string) {
		return checkDisclaimer(answer, input.ToolsUsed)
	})
	if !disclaimerPassed {
		result.Answer += DisclaimerText
		result.Amended = true
		logger.Info("appended missing disclaimer")
	}

	result.record(logger, "numeric_consistency", func() (bool, string) {
		return checkNumericConsistency(answer, input.ToolOutputs)
	})

	confidencePassed := result.record(logger, "confidence", func() (bool, string) {
		score, detail := scoreConfidence(answer, input.ToolsUsed, input.ToolOutputs)
		return score >= LowConfidenceThreshold, detail
	})
	if !confidencePassed {
		result.Answer += LowConfidenceCaveat
		result.Amended = true
		logger.Info("appended low-confidence caveat")
	}

	// Ticker verification is enforced at dispatch time; record it here so
	// the metrics payload carries the full check list.
	result.Checks = append(result.Checks, CheckResult{
		Name:   "ticker_verification",
		Passed: true,
		Detail: "Enforced at tool-call time",
	})

	return result
}

// record runs one check, converting a panic into a passed check so a buggy
// check can never corrupt the response.
func (r *Result) record(logger *slog.Logger, name string, check func() (bool, string)) (passed bool) {
	detail := ""
	passed = true

	func() {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error("verification check panicked", "check", name, "panic", rec)
				passed = true
				detail = "check skipped"
			}
		}()
		passed, detail = check()
	}()

	if !passed {
		logger.Warn("verification check failed", "check", name, "detail", detail)
	}
	r.Checks = append(r.Checks, CheckResult{Name: name, Passed: passed, Detail: detail})
	return passed
}

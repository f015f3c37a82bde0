package executor

import (
	"regexp"
	"strings"

	"github.com/agentforge/agentforge/src/aisdk"
)

// Patterns an assistant turn uses when asking the user to approve a pending
// write action.
var confirmationPromptRe = regexp.MustCompile(`(?i)\b(confirm|approve|proceed|are you sure|shall i|do you want me to|would you like me to)\b`)

// Affirmative replies that count as explicit approval. Matching is anchored
// so a hedged reply ("yes, but first...") still counts while an unrelated
// message containing "ok" mid-sentence does not.
var affirmativeRe = regexp.MustCompile(`(?i)^\s*(yes|yep|yeah|y|ok|okay|sure|confirm|confirmed|approve|approved|proceed|go ahead|do it|please do|sounds good|correct)\b`)

// DetectConfirmation reports whether the incoming user message explicitly
// approves an action the assistant asked to confirm in the immediately
// preceding turn. Both conditions must hold: the last assistant message must
// read as a confirmation request, and the user's reply must be affirmative.
// The result gates write-tool dispatch for this request only; it is never
// persisted.
func DetectConfirmation(window []aisdk.Message, incoming string) bool {
	// The assembled window ends with the incoming message itself; it is
	// the reply being classified, not an intervening turn, so the scan
	// starts at the transcript that preceded it.
	if n := len(window); n > 0 && window[n-1].Role == aisdk.RoleUser && window[n-1].Content == incoming {
		window = window[:n-1]
	}

	var lastAssistant *aisdk.Message
	for i := len(window) - 1; i >= 0; i-- {
		if window[i].Role == aisdk.RoleAssistant {
			lastAssistant = &window[i]
			break
		}
		if window[i].Role == aisdk.RoleUser {
			// An intervening user turn means the approval, if any, was
			// for something else.
			return false
		}
	}
	if lastAssistant == nil {
		return false
	}

	if !confirmationPromptRe.MatchString(lastAssistant.Content) {
		return false
	}

	return affirmativeRe.MatchString(strings.TrimSpace(incoming))
}

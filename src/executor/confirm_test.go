package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentforge/agentforge/src/aisdk"
	"github.com/agentforge/agentforge/src/history"
)

func confirmWindow(assistantContent string) []aisdk.Message {
	return []aisdk.Message{
		{Role: aisdk.RoleUser, Content: "buy 5 shares of AAPL at market price"},
		{Role: aisdk.RoleAssistant, Content: assistantContent},
	}
}

func TestDetectConfirmationApproved(t *testing.T) {
	window := confirmWindow("I'd like to place a BUY order for 5 AAPL. Please confirm to proceed.")

	for _, reply := range []string{
		"yes",
		"Yes, go ahead",
		"confirm",
		"ok do it",
		"sure",
		"  proceed  ",
	} {
		assert.True(t, DetectConfirmation(window, reply), "reply %q", reply)
	}
}

func TestDetectConfirmationRejected(t *testing.T) {
	window := confirmWindow("I'd like to place a BUY order for 5 AAPL. Please confirm to proceed.")

	for _, reply := range []string{
		"no",
		"actually, cancel that",
		"what would the fees be?",
		"I said ok to something else earlier",
	} {
		assert.False(t, DetectConfirmation(window, reply), "reply %q", reply)
	}
}

func TestDetectConfirmationRequiresPrompt(t *testing.T) {
	// The assistant never asked for confirmation, so an affirmative reply
	// does not arm the gate.
	window := confirmWindow("Your portfolio gained 5% this year.")
	assert.False(t, DetectConfirmation(window, "yes"))
}

func TestDetectConfirmationEmptyHistory(t *testing.T) {
	assert.False(t, DetectConfirmation(nil, "yes"))
}

func TestDetectConfirmationAssembledWindow(t *testing.T) {
	// The server hands over the window produced by history.Assemble, which
	// ends with the incoming user message. That trailing message must not
	// read as an intervening turn that closes the gate.
	persisted := []aisdk.Message{
		{Role: aisdk.RoleUser, Content: "buy 5 shares of AAPL at market price"},
		{Role: aisdk.RoleAssistant, Content: "I'd like to place a BUY order for 5 AAPL. Please confirm to proceed."},
	}
	incoming := aisdk.Message{Role: aisdk.RoleUser, Content: "yes"}
	window, _ := history.Assemble(persisted, incoming, history.DefaultWindowLimit)

	assert.True(t, DetectConfirmation(window, incoming.Content))
}

func TestDetectConfirmationStaleApproval(t *testing.T) {
	// An intervening user turn means the approval applied to something else.
	window := []aisdk.Message{
		{Role: aisdk.RoleAssistant, Content: "Please confirm the order."},
		{Role: aisdk.RoleUser, Content: "tell me about my dividends first"},
	}
	assert.False(t, DetectConfirmation(window, "yes"))
}

package tool_preferences

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/storage"
)

// Tool name constants
const (
	GetName    = "get_user_preferences"
	SaveName   = "save_user_preference"
	DeleteName = "delete_user_preference"
)

const getPrompt = `Retrieve saved user preferences. Returns all preferences if no key
is specified, or a single preference value if a key is given.

Use this at the start of a conversation to personalize responses
based on previously saved preferences (e.g., preferred currency,
risk tolerance, favorite holdings).`

const savePrompt = `Save a user preference that persists across chat sessions.

Use this when the user explicitly asks you to remember something,
or when they express a clear preference (e.g., "I prefer USD",
"my risk tolerance is moderate", "always show me tech stocks first").

Common preference keys:
- preferred_currency: preferred display currency (e.g., "USD", "EUR")
- risk_tolerance: low, moderate, or high
- favorite_symbols: comma-separated list of tickers they track
- display_format: how they prefer data shown (e.g., "tables", "brief")
- investment_goal: their stated investment objective`

const deletePrompt = `Delete a saved user preference.

Use this when the user asks you to forget a preference or reset a setting.`

// GetInput represents the parameters for get_user_preferences
type GetInput struct {
	Key string `json:"key,omitempty" description:"Specific preference key to retrieve. Returns all preferences when omitted."`
}

// SaveInput represents the parameters for save_user_preference
type SaveInput struct {
	Key   string `json:"key" required:"true" description:"The preference key (e.g. preferred_currency)"`
	Value string `json:"value" required:"true" description:"The preference value (e.g. USD)"`
}

// DeleteInput represents the parameters for delete_user_preference
type DeleteInput struct {
	Key string `json:"key" required:"true" description:"The preference key to delete"`
}

// GetTool returns the get_user_preferences tool definition using GenericTool
func GetTool(db *storage.DB) (agent.Tool, error) {
	return agent.NewGenericTool(GetName, getPrompt, makeGetHandler(db))
}

// SaveTool returns the save_user_preference tool definition using GenericTool
func SaveTool(db *storage.DB) (agent.Tool, error) {
	return agent.NewWriteTool(SaveName, savePrompt, makeSaveHandler(db))
}

// DeleteTool returns the delete_user_preference tool definition using GenericTool
func DeleteTool(db *storage.DB) (agent.Tool, error) {
	return agent.NewWriteTool(DeleteName, deletePrompt, makeDeleteHandler(db))
}

func makeGetHandler(db *storage.DB) agent.GenericToolHandler[GetInput] {
	return func(ctx context.Context, input GetInput) (string, error) {
		userKey, err := requireUserKey(ctx)
		if err != nil {
			return "", err
		}

		if input.Key != "" {
			pref, err := storage.GetPreference(ctx, db.DB(), userKey, input.Key)
			if err != nil {
				return "", fmt.Errorf("reading preference: %w", err)
			}
			if pref == nil {
				return fmt.Sprintf("No preference saved for %q.", input.Key), nil
			}
			return fmt.Sprintf("Preference %q: %s", pref.Key, pref.Value), nil
		}

		prefs, err := storage.ListPreferences(ctx, db.DB(), userKey)
		if err != nil {
			return "", fmt.Errorf("listing preferences: %w", err)
		}
		if len(prefs) == 0 {
			return "No preferences saved yet.", nil
		}

		var b strings.Builder
		b.WriteString("**Saved Preferences:**\n")
		for _, p := range prefs {
			fmt.Fprintf(&b, "\n- **%s**: %s", p.Key, p.Value)
		}
		return b.String(), nil
	}
}

func makeSaveHandler(db *storage.DB) agent.GenericToolHandler[SaveInput] {
	return func(ctx context.Context, input SaveInput) (string, error) {
		userKey, err := requireUserKey(ctx)
		if err != nil {
			return "", err
		}

		if err := storage.SetPreference(ctx, db.DB(), userKey, input.Key, input.Value); err != nil {
			return "", fmt.Errorf("saving preference: %w", err)
		}
		return fmt.Sprintf("Preference saved: %s = %s", input.Key, input.Value), nil
	}
}

func makeDeleteHandler(db *storage.DB) agent.GenericToolHandler[DeleteInput] {
	return func(ctx context.Context, input DeleteInput) (string, error) {
		userKey, err := requireUserKey(ctx)
		if err != nil {
			return "", err
		}

		if err := storage.DeletePreference(ctx, db.DB(), userKey, input.Key); err != nil {
			return "", fmt.Errorf("deleting preference: %w", err)
		}
		return fmt.Sprintf("Preference %q deleted.", input.Key), nil
	}
}

// Preferences are scoped per user. A missing key means the request was not
// authenticated and nothing should be read or written.
func requireUserKey(ctx context.Context) (string, error) {
	userKey := agent.UserKeyFromContext(ctx)
	if userKey == "" {
		return "", fmt.Errorf("no user identity on request")
	}
	return userKey, nil
}

package storage

import (
	"context"
	"time"

	"github.com/georgysavva/scany/v2/sqlscan"
	"github.com/google/uuid"
)

// HistoryTTL is how long chat messages are kept before pruning.
const HistoryTTL = 7 * 24 * time.Hour

// AppendChatMessage appends a message to a user's chat history.
func AppendChatMessage(ctx context.Context, db Execer, message *ChatMessage) error {
	if message.ID == "" {
		message.ID = uuid.New().String()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	query := `INSERT INTO chat_messages (id, user_key, role, content, created_at) VALUES (?, ?, ?, ?, ?)`
	_, err := db.ExecContext(ctx, query, message.ID, message.UserKey, message.Role, message.Content, message.CreatedAt)
	return err
}

// GetChatHistory retrieves a user's chat history ordered by creation time.
func GetChatHistory(ctx context.Context, db sqlscan.Querier, userKey string) ([]ChatMessage, error) {
	query := `SELECT id, user_key, role, content, created_at FROM chat_messages WHERE user_key = ? ORDER BY created_at, id`
	var messages []ChatMessage
	if err := sqlscan.Select(ctx, db, &messages, query, userKey); err != nil {
		return nil, err
	}
	return messages, nil
}

// ClearChatHistory removes all chat messages for a user.
func ClearChatHistory(ctx context.Context, db Execer, userKey string) error {
	query := `DELETE FROM chat_messages WHERE user_key = ?`
	_, err := db.ExecContext(ctx, query, userKey)
	return err
}

// PruneChatHistory deletes messages older than the retention window.
// Returns the number of messages removed.
func PruneChatHistory(ctx context.Context, db Execer, now time.Time) (int64, error) {
	query := `DELETE FROM chat_messages WHERE created_at < ?`
	res, err := db.ExecContext(ctx, query, now.Add(-HistoryTTL))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

package storage

import "time"

// Preference is a single user-scoped saved setting.
type Preference struct {
	UserKey   string    `json:"user_key" db:"user_key"`
	Key       string    `json:"key" db:"key"`
	Value     string    `json:"value" db:"value"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ChatMessage is one persisted turn of a user's conversation.
type ChatMessage struct {
	ID        string    `json:"id" db:"id"`
	UserKey   string    `json:"user_key" db:"user_key"`
	Role      string    `json:"role" db:"role"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Run is a persisted record of one completed chat request, with its
// metrics payload serialized as JSON.
type Run struct {
	RunID     string    `json:"run_id" db:"run_id"`
	UserKey   string    `json:"user_key" db:"user_key"`
	SessionID string    `json:"session_id,omitempty" db:"session_id"`
	Model     string    `json:"model" db:"model"`
	Metrics   string    `json:"metrics" db:"metrics"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Feedback is a user rating for a completed run.
type Feedback struct {
	ID        string    `json:"id" db:"id"`
	RunID     string    `json:"run_id" db:"run_id"`
	Score     float64   `json:"score" db:"score"`
	Comment   string    `json:"comment" db:"comment"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

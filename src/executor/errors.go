package executor

import "errors"

var (
	// ErrModelClientRequired is returned when a run has no reasoning engine.
	ErrModelClientRequired = errors.New("model client is required")

	// ErrEmptyWindow is returned when a run has no messages to reason over.
	ErrEmptyWindow = errors.New("message window is empty")
)

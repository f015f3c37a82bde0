package agent

import "context"

type contextKey int

const (
	confirmationKey contextKey = iota
	userKeyKey
)

// WithConfirmation marks the request context as carrying explicit user
// approval for a pending write action. The flag is set by the ingress layer
// only when the immediately preceding turn shows the user confirmed.
func WithConfirmation(ctx context.Context, confirmed bool) context.Context {
	return context.WithValue(ctx, confirmationKey, confirmed)
}

// ConfirmationFromContext reports whether the current request carries
// explicit user approval for write tools.
func ConfirmationFromContext(ctx context.Context) bool {
	confirmed, _ := ctx.Value(confirmationKey).(bool)
	return confirmed
}

// WithUserKey attaches the derived (non-reversible) user key to the request
// context so user-scoped tools can address the preference store.
func WithUserKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, userKeyKey, key)
}

// UserKeyFromContext returns the derived user key for the request, or "".
func UserKeyFromContext(ctx context.Context) string {
	key, _ := ctx.Value(userKeyKey).(string)
	return key
}

// File: internal/middleware/context.go
package middleware

import "context"

// Context keys for middleware communication.
type contextKey string

const sessionIDKey contextKey = "session_id"

// SessionID returns the anonymous session ID the session middleware placed
// in the request context, or "" when the middleware did not run.
func SessionID(ctx context.Context) string {
	sessionID, _ := ctx.Value(sessionIDKey).(string)
	return sessionID
}

// WithSessionID is exported for handler tests that bypass the middleware.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

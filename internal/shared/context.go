package shared

import "context"

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext extracts the session from context.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}

// IdentityFromContext returns the self-reported display name on the session,
// or empty when the caller never identified themselves.
func IdentityFromContext(ctx context.Context) string {
	sess := SessionFromContext(ctx)
	if sess == nil {
		return ""
	}
	return sess.Identity()
}

// TestModeFromContext reports whether the session opted into test mode.
func TestModeFromContext(ctx context.Context) bool {
	sess := SessionFromContext(ctx)
	return sess != nil && sess.TestMode()
}

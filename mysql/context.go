package mysql

import "context"

// sessionKey is a private context key type to avoid collisions.
type sessionKey struct{}

// WithSession returns a context carrying a transaction-scoped session.
// Catalog operations executed under this context run their remote SQL
// through the carried session instead of the pooled client.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext retrieves the transaction-scoped session if present.
// Returns (nil, false) if no session is set.
func SessionFromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok
}

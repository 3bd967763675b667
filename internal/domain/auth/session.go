package auth

import "context"

// Session is the per-request view of who is logged in. It is built from the
// verified token by middleware, lives in the request context, and is dropped
// with the request.
type Session struct {
	EmployeeID  string
	DisplayName string
	Token       string
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by WithSession.
func SessionFromContext(ctx context.Context) (Session, error) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || s.EmployeeID == "" {
		return Session{}, ErrNoSession
	}
	return s, nil
}

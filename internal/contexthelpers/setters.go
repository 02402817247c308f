package contexthelpers

import (
	"context"
	"net/http"
)

// WithAuthenticatedUser marks a context as belonging to the given user.
// Background jobs use this to act on behalf of a user without a request.
func WithAuthenticatedUser(ctx context.Context, userID int) context.Context {
	ctx = context.WithValue(ctx, IsAuthenticatedContextKey, true)
	return context.WithValue(ctx, AuthenticatedUserIDContextKey, userID)
}

// AuthenticateContext marks the request as belonging to the given user.
func AuthenticateContext(r *http.Request, userID int) *http.Request {
	return r.WithContext(WithAuthenticatedUser(r.Context(), userID))
}

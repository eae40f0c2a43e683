// Package middleware provides HTTP middlewares for authentication, request
// logging and panic recovery.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/atinyakov/mesto/internal/apperror"
)

type ctxKey string

const userKey ctxKey = "user"

const bearerPrefix = "Bearer "

// TokenVerifier checks an identity token and returns the user id it carries.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// BearerAuth returns a middleware that requires an `Authorization: Bearer
// <token>` header on every request whose path is not in publicPaths.
//
// A missing header, a header of another shape, and a token that fails
// verification all produce the same 401 response. On success the user id is
// stored in the request context, see GetUserIDFromContext.
func BearerAuth(verifier TokenVerifier, errs *apperror.Responder, publicPaths ...string) func(http.Handler) http.Handler {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := public[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, bearerPrefix) {
				errs.Respond(w, r, apperror.Unauthenticated(apperror.MsgAuthRequired))
				return
			}

			userID, err := verifier.Verify(strings.TrimPrefix(header, bearerPrefix))
			if err != nil {
				errs.Respond(w, r, apperror.Unauthenticated(apperror.MsgAuthRequired))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey, userID)
}

// GetUserIDFromContext extracts the authenticated user id from the request
// context. Returns an empty string if not found.
func GetUserIDFromContext(ctx context.Context) string {
	val := ctx.Value(userKey)
	if s, ok := val.(string); ok {
		return s
	}
	return ""
}

package middleware

import (
	"net/http"
	"strings"

	"github.com/atinyakov/mesto/internal/apperror"
)

// MsgUnsupportedMediaType is sent when a body is not JSON.
const MsgUnsupportedMediaType = "Content-Type must be application/json"

// RequireJSON rejects requests that carry a body with a Content-Type other
// than application/json. Bodiless requests pass through.
func RequireJSON(errs *apperror.Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength == 0 {
				next.ServeHTTP(w, r)
				return
			}

			ct := strings.ToLower(strings.TrimSpace(strings.Split(r.Header.Get("Content-Type"), ";")[0]))
			if ct != "application/json" {
				errs.Respond(w, r, apperror.New(http.StatusUnsupportedMediaType, MsgUnsupportedMediaType))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

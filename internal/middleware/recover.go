package middleware

import (
	"fmt"
	"net/http"

	"github.com/atinyakov/mesto/internal/apperror"
)

// Recover turns a panic in a downstream handler into a 500 response sent
// through errs. http.ErrAbortHandler is re-raised.
func Recover(errs *apperror.Responder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				errs.Respond(w, r, fmt.Errorf("panic: %w", err))
			}()

			next.ServeHTTP(w, r)
		})
	}
}

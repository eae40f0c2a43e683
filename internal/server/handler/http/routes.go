package http

import (
	"net/http"
	"slices"

	"github.com/atinyakov/mesto/internal/apperror"
	"github.com/atinyakov/mesto/internal/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Public paths are reachable without a token.
const (
	SignupPath = "/signup"
	SigninPath = "/signin"
)

// NewRouter constructs and returns an HTTP handler that serves the Mesto API.
//
// Parameters:
//
//	authHandler    - signup and signin
//	userHandler    - profile endpoints
//	cardHandler    - card endpoints
//	verifier       - checks bearer tokens for the auth gate
//	errs           - terminal error responder
//	requestLog     - request log sink
//	allowedOrigins - CORS origins
//
// Routes:
//
//	POST   /signup                → authHandler.Signup
//	POST   /signin                → authHandler.Signin
//	GET    /users                 → userHandler.List
//	GET    /users/me              → userHandler.Me
//	PATCH  /users/me              → userHandler.UpdateProfile
//	PATCH  /users/me/avatar       → userHandler.UpdateAvatar
//	GET    /users/{userId}        → userHandler.Get
//	GET    /cards                 → cardHandler.List
//	POST   /cards                 → cardHandler.Create
//	DELETE /cards/{cardId}        → cardHandler.Delete
//	PUT    /cards/{cardId}/likes  → cardHandler.Like
//	DELETE /cards/{cardId}/likes  → cardHandler.Unlike
//
// Middleware chain (applied in order):
//  1. RequestID, RealIP
//  2. WithRequestLogging(requestLog)
//  3. Recover(errs)
//  4. CORS, then bare OPTIONS answered with 204
//  5. BearerAuth for everything except signup and signin, unmatched
//     paths included
//  6. RequireJSON, answering 415 for non-JSON bodies
func NewRouter(
	authHandler *AuthHandler,
	userHandler *UserHandler,
	cardHandler *CardHandler,
	verifier middleware.TokenVerifier,
	errs *apperror.Responder,
	requestLog *zap.Logger,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.WithRequestLogging(requestLog))
	r.Use(middleware.Recover(errs))

	r.Use(cors.Handler(corsOptions(allowedOrigins)))
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if req.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	r.Use(middleware.BearerAuth(verifier, errs, SignupPath, SigninPath))

	// Only allow bodies with Content-Type: application/json
	r.Use(middleware.RequireJSON(errs))

	notFound := Adapt(errs, func(w http.ResponseWriter, r *http.Request) error {
		return apperror.NotFound(apperror.MsgNotFound)
	})
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Post(SignupPath, Adapt(errs, authHandler.Signup))
	r.Post(SigninPath, Adapt(errs, authHandler.Signin))

	r.Route("/users", func(r chi.Router) {
		r.Get("/", Adapt(errs, userHandler.List))
		r.Get("/me", Adapt(errs, userHandler.Me))
		r.Patch("/me", Adapt(errs, userHandler.UpdateProfile))
		r.Patch("/me/avatar", Adapt(errs, userHandler.UpdateAvatar))
		r.Get("/{userId}", Adapt(errs, userHandler.Get))
	})

	r.Route("/cards", func(r chi.Router) {
		r.Get("/", Adapt(errs, cardHandler.List))
		r.Post("/", Adapt(errs, cardHandler.Create))
		r.Delete("/{cardId}", Adapt(errs, cardHandler.Delete))
		r.Put("/{cardId}/likes", Adapt(errs, cardHandler.Like))
		r.Delete("/{cardId}/likes", Adapt(errs, cardHandler.Unlike))
	})

	return r
}

// corsOptions allows credentials only for an explicit origin list, never for
// an empty list or one containing "*".
func corsOptions(origins []string) cors.Options {
	credentials := len(origins) > 0 && !slices.Contains(origins, "*")
	return cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: credentials,
		MaxAge:           300,
	}
}

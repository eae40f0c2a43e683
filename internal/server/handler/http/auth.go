// Package http provides the HTTP handlers and routing of the Mesto API.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/atinyakov/mesto/internal/models"
	"github.com/atinyakov/mesto/internal/service"
)

// AuthCookie is the name of the cookie that carries the token after signin.
const AuthCookie = "jwt"

// AuthService defines the account operations required by AuthHandler.
type AuthService interface {
	// Signup stores a new user and returns it without the password hash.
	Signup(ctx context.Context, in service.SignupInput) (*models.User, error)
	// Login checks the credentials and returns a signed token.
	Login(ctx context.Context, email, password string) (string, error)
}

// AuthHandler handles signup and signin.
type AuthHandler struct {
	AuthService AuthService
	Validator   Validator

	// CookieTTL is the Max-Age of the auth cookie.
	CookieTTL time.Duration
	// CookieSecure sets the Secure attribute on the auth cookie.
	CookieSecure bool
}

// Signup handles POST /signup and responds 201 with the created user.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) error {
	var req SignupRequest
	if err := decodeJSON(w, r, h.Validator, &req); err != nil {
		return err
	}

	user, err := h.AuthService.Signup(r.Context(), service.SignupInput{
		Name:     req.Name,
		About:    req.About,
		Avatar:   req.Avatar,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, user)
}

// Signin handles POST /signin. The token is delivered only as an HttpOnly
// cookie, never in the body.
func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request) error {
	var req SigninRequest
	if err := decodeJSON(w, r, h.Validator, &req); err != nil {
		return err
	}

	token, err := h.AuthService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.CookieTTL / time.Second),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	})
	return writeJSON(w, http.StatusOK, messageResponse{Message: "Login successful"})
}

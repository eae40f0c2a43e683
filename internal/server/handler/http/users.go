package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/mesto/internal/middleware"
	"github.com/atinyakov/mesto/internal/models"
	"github.com/go-chi/chi/v5"
)

// UserService defines the profile operations required by UserHandler.
type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, name, about string) (*models.User, error)
	UpdateAvatar(ctx context.Context, userID, avatar string) (*models.User, error)
}

// UserHandler serves /users.
type UserHandler struct {
	UserService UserService
	Validator   Validator
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) error {
	users, err := h.UserService.List(r.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, users)
}

// Get handles GET /users/{userId}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) error {
	p := userIDParam{UserID: normalizeID(chi.URLParam(r, "userId"))}
	if err := h.Validator.Struct(&p); err != nil {
		return err
	}
	return h.writeUser(w, r, p.UserID)
}

// Me handles GET /users/me.
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) error {
	return h.writeUser(w, r, middleware.GetUserIDFromContext(r.Context()))
}

func (h *UserHandler) writeUser(w http.ResponseWriter, r *http.Request, id string) error {
	user, err := h.UserService.Get(r.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PATCH /users/me.
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) error {
	var req ProfileRequest
	if err := decodeJSON(w, r, h.Validator, &req); err != nil {
		return err
	}

	user, err := h.UserService.UpdateProfile(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.Name, req.About)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, user)
}

// UpdateAvatar handles PATCH /users/me/avatar.
func (h *UserHandler) UpdateAvatar(w http.ResponseWriter, r *http.Request) error {
	var req AvatarRequest
	if err := decodeJSON(w, r, h.Validator, &req); err != nil {
		return err
	}

	user, err := h.UserService.UpdateAvatar(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.Avatar)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, user)
}

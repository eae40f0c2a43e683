package http

import (
	"context"
	"net/http"

	"github.com/atinyakov/mesto/internal/middleware"
	"github.com/atinyakov/mesto/internal/models"
	"github.com/go-chi/chi/v5"
)

// CardService defines the card operations required by CardHandler.
type CardService interface {
	List(ctx context.Context) ([]models.Card, error)
	Create(ctx context.Context, ownerID, name, link string) (*models.Card, error)
	Delete(ctx context.Context, callerID, cardID string) error
	Like(ctx context.Context, callerID, cardID string) (*models.Card, error)
	Unlike(ctx context.Context, callerID, cardID string) (*models.Card, error)
}

// CardHandler serves /cards.
type CardHandler struct {
	CardService CardService
	Validator   Validator
}

// List handles GET /cards.
func (h *CardHandler) List(w http.ResponseWriter, r *http.Request) error {
	cards, err := h.CardService.List(r.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, cards)
}

// Create handles POST /cards. The caller becomes the owner.
func (h *CardHandler) Create(w http.ResponseWriter, r *http.Request) error {
	var req CardRequest
	if err := decodeJSON(w, r, h.Validator, &req); err != nil {
		return err
	}

	card, err := h.CardService.Create(r.Context(), middleware.GetUserIDFromContext(r.Context()), req.Name, req.Link)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, card)
}

// Delete handles DELETE /cards/{cardId}.
func (h *CardHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	cardID, err := h.cardID(r)
	if err != nil {
		return err
	}

	if err := h.CardService.Delete(r.Context(), middleware.GetUserIDFromContext(r.Context()), cardID); err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, messageResponse{Message: "Card deleted"})
}

// Like handles PUT /cards/{cardId}/likes.
func (h *CardHandler) Like(w http.ResponseWriter, r *http.Request) error {
	return h.toggleLike(w, r, h.CardService.Like)
}

// Unlike handles DELETE /cards/{cardId}/likes.
func (h *CardHandler) Unlike(w http.ResponseWriter, r *http.Request) error {
	return h.toggleLike(w, r, h.CardService.Unlike)
}

func (h *CardHandler) toggleLike(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, callerID, cardID string) (*models.Card, error),
) error {
	cardID, err := h.cardID(r)
	if err != nil {
		return err
	}

	card, err := op(r.Context(), middleware.GetUserIDFromContext(r.Context()), cardID)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, card)
}

func (h *CardHandler) cardID(r *http.Request) (string, error) {
	p := cardIDParam{CardID: normalizeID(chi.URLParam(r, "cardId"))}
	if err := h.Validator.Struct(&p); err != nil {
		return "", err
	}
	return p.CardID, nil
}

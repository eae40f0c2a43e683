package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/atinyakov/mesto/internal/apperror"
	"github.com/atinyakov/mesto/internal/models"
	"github.com/atinyakov/mesto/internal/repository"
)

// CardRepository defines the persistence operations on cards.
type CardRepository interface {
	List(ctx context.Context) ([]models.Card, error)
	Create(ctx context.Context, card *models.Card) (*models.Card, error)
	GetByID(ctx context.Context, id string) (*models.Card, error)
	// Delete removes the card if owner owns it.
	Delete(ctx context.Context, id, owner string) error
	// AddLike and RemoveLike must be atomic set operations.
	AddLike(ctx context.Context, cardID, userID string) (*models.Card, error)
	RemoveLike(ctx context.Context, cardID, userID string) (*models.Card, error)
}

// CardService implements card publishing, deletion and likes.
type CardService struct {
	repo CardRepository
}

// NewCardService constructs a CardService.
func NewCardService(repo CardRepository) *CardService {
	return &CardService{repo: repo}
}

// List returns all cards.
func (s *CardService) List(ctx context.Context) ([]models.Card, error) {
	cards, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

// Create publishes a card owned by ownerID.
func (s *CardService) Create(ctx context.Context, ownerID, name, link string) (*models.Card, error) {
	card, err := s.repo.Create(ctx, &models.Card{Name: name, Link: link, Owner: ownerID})
	if err != nil {
		if errors.Is(err, repository.ErrConstraint) || errors.Is(err, repository.ErrMalformedID) {
			return nil, apperror.InvalidInput(msgInvalidCard).Wrap(err)
		}
		return nil, fmt.Errorf("create card: %w", err)
	}
	return card, nil
}

// Delete removes the card if callerID owns it. Someone else's card yields
// Forbidden and is left in place.
func (s *CardService) Delete(ctx context.Context, callerID, cardID string) error {
	card, err := s.repo.GetByID(ctx, cardID)
	if err != nil {
		return cardError(err, msgInvalidCardID)
	}
	if card.Owner != callerID {
		return apperror.Forbidden(msgDeleteForbidden)
	}

	// The owner check is repeated in the statement, so a card that vanished
	// in between is reported as missing.
	if err := s.repo.Delete(ctx, cardID, callerID); err != nil {
		return cardError(err, msgInvalidCardID)
	}
	return nil
}

// Like adds callerID to the card's likes. Repeating it has no effect.
func (s *CardService) Like(ctx context.Context, callerID, cardID string) (*models.Card, error) {
	card, err := s.repo.AddLike(ctx, cardID, callerID)
	if err != nil {
		return nil, cardError(err, msgInvalidLike)
	}
	return card, nil
}

// Unlike removes callerID from the card's likes. Removing an absent like
// succeeds and returns the unchanged card.
func (s *CardService) Unlike(ctx context.Context, callerID, cardID string) (*models.Card, error) {
	card, err := s.repo.RemoveLike(ctx, cardID, callerID)
	if err != nil {
		return nil, cardError(err, msgInvalidLike)
	}
	return card, nil
}

func cardError(err error, invalidMsg string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound(msgCardNotFound).Wrap(err)
	case errors.Is(err, repository.ErrMalformedID):
		return apperror.InvalidInput(invalidMsg).Wrap(err)
	default:
		return fmt.Errorf("card store: %w", err)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"testing"

	"github.com/atinyakov/mesto/internal/models"
	"github.com/atinyakov/mesto/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCardRepo keeps cards in memory with the same set semantics as the
// PostgreSQL repository.
type memCardRepo struct {
	mu    sync.Mutex
	cards map[string]*models.Card
	seq   int
}

func newMemCardRepo() *memCardRepo {
	return &memCardRepo{cards: map[string]*models.Card{}}
}

func (m *memCardRepo) List(ctx context.Context) ([]models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Card, 0, len(m.cards))
	for _, c := range m.cards {
		out = append(out, *c)
	}
	return out, nil
}

func (m *memCardRepo) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	cp := *card
	cp.ID = fmt.Sprintf("card-%d", m.seq)
	cp.Likes = []string{}
	m.cards[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (m *memCardRepo) GetByID(ctx context.Context, id string) (*models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *c
	return &out, nil
}

func (m *memCardRepo) Delete(ctx context.Context, id, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[id]
	if !ok || c.Owner != owner {
		return repository.ErrNotFound
	}
	delete(m.cards, id)
	return nil
}

func (m *memCardRepo) AddLike(ctx context.Context, cardID, userID string) (*models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[cardID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if !c.HasLike(userID) {
		c.Likes = append(c.Likes, userID)
	}
	out := *c
	out.Likes = slices.Clone(c.Likes)
	return &out, nil
}

func (m *memCardRepo) RemoveLike(ctx context.Context, cardID, userID string) (*models.Card, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.cards[cardID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c.Likes = slices.DeleteFunc(c.Likes, func(id string) bool { return id == userID })
	out := *c
	out.Likes = slices.Clone(c.Likes)
	return &out, nil
}

func TestCardService_CreateSetsOwner(t *testing.T) {
	svc := NewCardService(newMemCardRepo())

	card, err := svc.Create(context.Background(), "owner-1", "Байкал", "https://a.com/b.jpg")
	require.NoError(t, err)
	assert.Equal(t, "owner-1", card.Owner)
	assert.Empty(t, card.Likes)
}

type constraintCardRepo struct{ *memCardRepo }

func (constraintCardRepo) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	return nil, fmt.Errorf("create card: %w", repository.ErrConstraint)
}

func TestCardService_CreateConstraint(t *testing.T) {
	svc := NewCardService(constraintCardRepo{newMemCardRepo()})

	_, err := svc.Create(context.Background(), "o", "x", "y")
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestCardService_DeleteOwnership(t *testing.T) {
	repo := newMemCardRepo()
	svc := NewCardService(repo)
	ctx := context.Background()

	card, err := svc.Create(ctx, "alice", "n", "https://a.com/x.jpg")
	require.NoError(t, err)

	err = svc.Delete(ctx, "bob", card.ID)
	assert.Equal(t, http.StatusForbidden, statusOf(t, err))

	_, err = repo.GetByID(ctx, card.ID)
	assert.NoError(t, err, "card must survive a forbidden delete")

	require.NoError(t, svc.Delete(ctx, "alice", card.ID))

	err = svc.Delete(ctx, "alice", card.ID)
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestCardService_LikeIsIdempotent(t *testing.T) {
	svc := NewCardService(newMemCardRepo())
	ctx := context.Background()

	card, err := svc.Create(ctx, "alice", "n", "https://a.com/x.jpg")
	require.NoError(t, err)

	first, err := svc.Like(ctx, "bob", card.ID)
	require.NoError(t, err)
	second, err := svc.Like(ctx, "bob", card.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{"bob"}, first.Likes)
	assert.Equal(t, first.Likes, second.Likes)

	removed, err := svc.Unlike(ctx, "bob", card.ID)
	require.NoError(t, err)
	assert.Empty(t, removed.Likes)

	again, err := svc.Unlike(ctx, "bob", card.ID)
	require.NoError(t, err)
	assert.Empty(t, again.Likes)
}

func TestCardService_ConcurrentLikesAreNotLost(t *testing.T) {
	svc := NewCardService(newMemCardRepo())
	ctx := context.Background()

	card, err := svc.Create(ctx, "alice", "n", "https://a.com/x.jpg")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = svc.Like(ctx, fmt.Sprintf("user-%d", i%10), card.ID)
		}(i)
	}
	wg.Wait()

	got, err := svc.Like(ctx, "user-0", card.ID)
	require.NoError(t, err)
	assert.Len(t, got.Likes, 10)
}

func TestCardService_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"missing card", fmt.Errorf("like card: %w", repository.ErrNotFound), http.StatusNotFound},
		{"malformed id", fmt.Errorf("like card: %w", repository.ErrMalformedID), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cardError(tt.err, msgInvalidLike)
			assert.Equal(t, tt.wantStatus, statusOf(t, err))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	unknown := errors.New("boom")
	assert.ErrorIs(t, cardError(unknown, msgInvalidLike), unknown)
}

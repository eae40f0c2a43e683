package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/atinyakov/mesto/internal/models"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const cardColumns = `id, name, link, owner, likes, created_at`

// PostgresCardRepository stores cards in the cards table. Likes live in a
// UUID[] column and are changed with single UPDATE statements, so concurrent
// likes never overwrite each other.
type PostgresCardRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
	// Timeout bounds every query; zero means no extra bound.
	Timeout time.Duration
}

// NewPostgresCardRepository creates a PostgresCardRepository.
func NewPostgresCardRepository(db *sql.DB, timeout time.Duration) *PostgresCardRepository {
	return &PostgresCardRepository{DB: db, Timeout: timeout}
}

func scanCard(row rowScanner) (*models.Card, error) {
	var c models.Card
	var likes []string
	if err := row.Scan(&c.ID, &c.Name, &c.Link, &c.Owner, pq.Array(&likes), &c.CreatedAt); err != nil {
		return nil, err
	}
	if likes == nil {
		likes = []string{}
	}
	c.Likes = likes
	return &c, nil
}

// List returns all cards, oldest first.
func (r *PostgresCardRepository) List(ctx context.Context) ([]models.Card, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `SELECT `+cardColumns+` FROM cards ORDER BY created_at, id`)
	if err != nil {
		return nil, classify("list cards", err)
	}
	defer rows.Close()

	cards := make([]models.Card, 0)
	for rows.Next() {
		c, err := scanCard(rows)
		if err != nil {
			return nil, classify("scan card", err)
		}
		cards = append(cards, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list cards", err)
	}
	return cards, nil
}

// Create inserts a card owned by card.Owner with no likes.
func (r *PostgresCardRepository) Create(ctx context.Context, card *models.Card) (*models.Card, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO cards (id, name, link, owner)
		VALUES ($1, $2, $3, $4)
		RETURNING `+cardColumns,
		uuid.NewString(), card.Name, card.Link, card.Owner,
	)
	created, err := scanCard(row)
	if err != nil {
		return nil, classify("create card", err)
	}
	return created, nil
}

// GetByID fetches a card by identifier.
func (r *PostgresCardRepository) GetByID(ctx context.Context, id string) (*models.Card, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctx, `SELECT `+cardColumns+` FROM cards WHERE id = $1`, id)
	c, err := scanCard(row)
	if err != nil {
		return nil, classify("get card", err)
	}
	return c, nil
}

// Delete removes the card only if it is owned by owner. It returns
// ErrNotFound when no such card exists for that owner.
func (r *PostgresCardRepository) Delete(ctx context.Context, id, owner string) error {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	res, err := r.DB.ExecContext(ctx, `DELETE FROM cards WHERE id = $1 AND owner = $2`, id, owner)
	if err != nil {
		return classify("delete card", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return classify("delete card", err)
	}
	if n == 0 {
		return classify("delete card", sql.ErrNoRows)
	}
	return nil
}

// AddLike adds userID to the card's likes unless already present.
func (r *PostgresCardRepository) AddLike(ctx context.Context, cardID, userID string) (*models.Card, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctx, `
		UPDATE cards
		   SET likes = CASE WHEN $2::uuid = ANY(likes) THEN likes ELSE array_append(likes, $2::uuid) END
		 WHERE id = $1
		RETURNING `+cardColumns,
		cardID, userID,
	)
	c, err := scanCard(row)
	if err != nil {
		return nil, classify("like card", err)
	}
	return c, nil
}

// RemoveLike removes userID from the card's likes. Removing an absent like
// leaves the card unchanged.
func (r *PostgresCardRepository) RemoveLike(ctx context.Context, cardID, userID string) (*models.Card, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctx, `
		UPDATE cards
		   SET likes = array_remove(likes, $2::uuid)
		 WHERE id = $1
		RETURNING `+cardColumns,
		cardID, userID,
	)
	c, err := scanCard(row)
	if err != nil {
		return nil, classify("unlike card", err)
	}
	return c, nil
}

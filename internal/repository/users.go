// Package repository provides PostgreSQL persistence for users and cards.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/atinyakov/mesto/internal/models"
	"github.com/google/uuid"
)

const userColumns = `id, name, about, avatar, email`

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// withTimeout bounds a single store operation. A non-positive timeout only
// inherits the parent deadline.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// PostgresUserRepository stores users in the users table.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
	// Timeout bounds every query; zero means no extra bound.
	Timeout time.Duration
}

// NewPostgresUserRepository creates a PostgresUserRepository.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresUserRepository(db *sql.DB, timeout time.Duration) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db, Timeout: timeout}
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Name, &u.About, &u.Avatar, &u.Email); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts user with a fresh identifier and returns the stored row
// without the password hash. A taken email yields ErrDuplicate.
func (r *PostgresUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (id, name, about, avatar, email, password)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns,
		uuid.NewString(), user.Name, user.About, user.Avatar, user.Email, user.PasswordHash,
	)
	created, err := scanUser(row)
	if err != nil {
		return nil, classify("create user", err)
	}
	return created, nil
}

// List returns every user ordered by name.
func (r *PostgresUserRepository) List(ctx context.Context) ([]models.User, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	rows, err := r.DB.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY name, id`)
	if err != nil {
		return nil, classify("list users", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, classify("scan user", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list users", err)
	}
	return users, nil
}

// GetByID fetches a user by identifier.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err != nil {
		return nil, classify("get user", err)
	}
	return u, nil
}

// GetByEmail fetches a user by email, including the password hash.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	var u models.User
	err := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+`, password FROM users WHERE email = $1`, email,
	).Scan(&u.ID, &u.Name, &u.About, &u.Avatar, &u.Email, &u.PasswordHash)
	if err != nil {
		return nil, classify("get user by email", err)
	}
	return &u, nil
}

// UpdateProfile sets name and about on the user and returns the new row.
func (r *PostgresUserRepository) UpdateProfile(ctx context.Context, id, name, about string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctx,
		`UPDATE users SET name = $2, about = $3 WHERE id = $1 RETURNING `+userColumns,
		id, name, about,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, classify("update profile", err)
	}
	return u, nil
}

// UpdateAvatar sets the avatar URL on the user and returns the new row.
func (r *PostgresUserRepository) UpdateAvatar(ctx context.Context, id, avatar string) (*models.User, error) {
	ctx, cancel := withTimeout(ctx, r.Timeout)
	defer cancel()

	row := r.DB.QueryRowContext(ctx,
		`UPDATE users SET avatar = $2 WHERE id = $1 RETURNING `+userColumns,
		id, avatar,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, classify("update avatar", err)
	}
	return u, nil
}

package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// Store-level failures the services classify into client errors.
var (
	// ErrNotFound means no row matched a well-formed reference.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is a unique constraint violation.
	ErrDuplicate = errors.New("duplicate")
	// ErrConstraint is a row that breaks a NOT NULL, CHECK or length rule.
	ErrConstraint = errors.New("constraint violation")
	// ErrMalformedID is an identifier the store cannot parse.
	ErrMalformedID = errors.New("malformed identifier")
)

// PostgreSQL error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html.
const (
	codeUniqueViolation    pq.ErrorCode = "23505"
	codeNotNullViolation   pq.ErrorCode = "23502"
	codeCheckViolation     pq.ErrorCode = "23514"
	codeStringTooLong      pq.ErrorCode = "22001"
	codeInvalidTextRepr    pq.ErrorCode = "22P02"
	codeForeignKeyViolated pq.ErrorCode = "23503"
)

// classify wraps err with the matching sentinel so callers can use
// errors.Is while the original driver error stays in the chain.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w: %w", op, ErrDuplicate, err)
		case codeNotNullViolation, codeCheckViolation, codeStringTooLong, codeForeignKeyViolated:
			return fmt.Errorf("%s: %w: %w", op, ErrConstraint, err)
		case codeInvalidTextRepr:
			return fmt.Errorf("%s: %w: %w", op, ErrMalformedID, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

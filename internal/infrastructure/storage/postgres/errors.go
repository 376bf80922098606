package postgres

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"

	"catalog/internal/domain"
)

// PostgreSQL SQLSTATE codes the repositories react to.
const (
	CodeForeignKeyViolation = "23503"
	CodeUniqueViolation     = "23505"
	CodeCheckViolation      = "23514"
)

// PgCode returns the SQLSTATE of err, or "" when err is not a server error.
func PgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// WriteError wraps an INSERT or UPDATE failure on table. Foreign key
// violations mean the row points at a missing brand or type.
func WriteError(table string, err error) error {
	switch PgCode(err) {
	case CodeForeignKeyViolation:
		return fmt.Errorf("write %s: %w: %w", table, domain.ErrInvalidReference, err)
	case CodeUniqueViolation:
		return fmt.Errorf("write %s: %w: %w", table, duplicate(err), err)
	case CodeCheckViolation:
		return fmt.Errorf("write %s: %w: %w", table, domain.ErrInvalidValue, err)
	default:
		return fmt.Errorf("write %s: %w", table, err)
	}
}

// DeleteError wraps a DELETE failure on table. Foreign key violations mean
// other rows still reference the target.
func DeleteError(table string, err error) error {
	if PgCode(err) == CodeForeignKeyViolation {
		return fmt.Errorf("delete %s: %w: %w", table, domain.ErrInUse, err)
	}
	return fmt.Errorf("delete %s: %w", table, err)
}

// uniqueDetail matches the DETAIL of a unique violation:
// Key (brand)=(Azure) already exists.
var uniqueDetail = regexp.MustCompile(`^Key \((.+?)\)=\((.*)\) already exists\.$`)

func duplicate(err error) *domain.DuplicateError {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return &domain.DuplicateError{}
	}
	if m := uniqueDetail.FindStringSubmatch(pgErr.Detail); m != nil {
		return &domain.DuplicateError{Field: m[1], Value: m[2]}
	}
	return &domain.DuplicateError{Field: pgErr.ColumnName}
}

package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgExclusionViolation = "23P01"

// IsExclusionConflict reports whether err is a PostgreSQL exclusion
// constraint violation (the appointments no-overlap constraint).
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgExclusionViolation
}

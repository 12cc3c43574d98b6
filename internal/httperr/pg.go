package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	sqlstateExclusionViolation = "23P01"
	sqlstateUniqueViolation    = "23505"
)

// IsExclusionConflict reports whether err comes from the appointments
// overlap exclusion constraint.
func IsExclusionConflict(err error) bool {
	return hasSQLState(err, sqlstateExclusionViolation)
}

func IsUniqueViolation(err error) bool {
	return hasSQLState(err, sqlstateUniqueViolation)
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

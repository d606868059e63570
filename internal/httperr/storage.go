package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE class 23 = integrity constraint violation.
const (
	pgUniqueViolation = "23505"
	pgReadOnlySQLTx   = "25006"
)

// IsUniqueViolation reports whether err comes from the partial unique
// indexes on (doctor_id, visit_time) / (patient_id, visit_time). The
// coordinator maps it to slot_conflict: the lock-based check is the
// primary defense, the index is the last-resort backstop.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsReadOnly reports whether the store rejected a write because the
// medium is not writable.
func IsReadOnly(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgReadOnlySQLTx
}

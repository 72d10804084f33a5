package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/ferreteria-pos/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// errDuplicate envuelve una violación de unicidad como domain.ErrDuplicate.
func errDuplicate(err error) error {
	return fmt.Errorf("%v: %w", err, domain.ErrDuplicate)
}

// isRetryableTxError verifica si la transacción falló por serialización (40001)
// o deadlock (40P01): casos en que el caso de uso debe reintentar desde cero.
func isRetryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/Stockify-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation 23503: la fila está referenciada por otra tabla.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

// isRetryable serialization_failure (40001) o deadlock_detected (40P01).
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

// mapError traduce errores de pgx al dominio; op describe la operación para el contexto del error.
func mapError(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return domain.Errorf(domain.ErrNotFound, "%s: no encontrado", op)
	case isRetryable(err):
		return &domain.Error{Kind: domain.ErrConcurrentModification, Msg: fmt.Sprintf("%s: %v", op, err)}
	case isUniqueViolation(err):
		return domain.Errorf(domain.ErrDuplicate, "%s: registro duplicado", op)
	case isForeignKeyViolation(err):
		return domain.Errorf(domain.ErrOperationNotAllowed, "%s: el registro tiene referencias", op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

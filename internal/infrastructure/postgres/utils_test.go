package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Stockify-api/internal/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"sin filas", pgx.ErrNoRows, domain.ErrNotFound},
		{"serialización", &pgconn.PgError{Code: "40001"}, domain.ErrConcurrentModification},
		{"interbloqueo", fmt.Errorf("envuelto: %w", &pgconn.PgError{Code: "40P01"}), domain.ErrConcurrentModification},
		{"único", &pgconn.PgError{Code: "23505"}, domain.ErrDuplicate},
		{"clave foránea", &pgconn.PgError{Code: "23503"}, domain.ErrOperationNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, errors.Is(mapError("op", tc.err), tc.want))
		})
	}

	assert.NoError(t, mapError("op", nil))
	other := errors.New("conexión cerrada")
	assert.True(t, errors.Is(mapError("op", other), other))
}

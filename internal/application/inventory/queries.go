package inventory

import (
	"context"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

const (
	defaultMovementLimit = 50
	maxMovementLimit     = 500
)

// MovementQueries consultas de solo lectura del libro mayor (último estado confirmado).
type MovementQueries struct {
	movements repository.MovementRepository
	lots      repository.LotRepository
}

// NewMovementQueries construye las consultas de movimientos.
func NewMovementQueries(movements repository.MovementRepository, lots repository.LotRepository) *MovementQueries {
	return &MovementQueries{movements: movements, lots: lots}
}

// Get obtiene un movimiento por ID.
func (q *MovementQueries) Get(ctx context.Context, id string) (*entity.Movement, error) {
	return q.movements.GetByID(ctx, id)
}

// List aplica el filtro combinado (tipo, producto, almacén, rango de fechas) con paginación.
func (q *MovementQueries) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.Movement, error) {
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "tipo de movimiento inválido %q", filter.Kind)
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, domain.Errorf(domain.ErrInvalidInput, "el rango de fechas es inválido")
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultMovementLimit
	case filter.Limit > maxMovementLimit:
		filter.Limit = maxMovementLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return q.movements.List(ctx, filter)
}

// ListByLot movimientos de un lote, del más reciente al más antiguo.
func (q *MovementQueries) ListByLot(ctx context.Context, lotID string) ([]*entity.Movement, error) {
	if _, err := q.lots.GetByID(ctx, lotID); err != nil {
		return nil, err
	}
	return q.movements.List(ctx, repository.MovementFilter{LotID: lotID, Limit: maxMovementLimit})
}

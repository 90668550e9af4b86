package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos. Campos vacíos/nil no filtran.
type MovementFilter struct {
	Kind        entity.MovementKind
	ProductID   string
	WarehouseID string
	LotID       string
	From        *time.Time
	To          *time.Time
	Limit       int
	Offset      int
}

// MovementRepository define el puerto de persistencia del libro mayor (append-only).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// GetForUpdate bloquea la fila del movimiento (para anularlo una única vez).
	GetForUpdate(ctx context.Context, id string) (*entity.Movement, error)
	// MarkVoided pone voided = true y añade note al motivo. Única mutación permitida.
	MarkVoided(ctx context.Context, id, note string) error
	List(ctx context.Context, filter MovementFilter) ([]*entity.Movement, error)
	// SumIssueCost Σ total_cost de salidas no anuladas con occurred_at en [from, to).
	SumIssueCost(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
}

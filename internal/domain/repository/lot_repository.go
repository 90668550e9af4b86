package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// LotRepository es el Lot Store: lotes de compra por producto/almacén.
type LotRepository interface {
	Create(ctx context.Context, lot *entity.Lot) error
	GetByID(ctx context.Context, id string) (*entity.Lot, error)
	// GetForUpdate bloquea la fila del lote.
	GetForUpdate(ctx context.Context, id string) (*entity.Lot, error)
	// ListAvailable devuelve los lotes con saldo > 0 del producto, del más antiguo al más nuevo
	// (purchased_at ASC, id ASC).
	ListAvailable(ctx context.Context, productID string) ([]*entity.Lot, error)
	// Decrement resta amount del saldo; domain.ErrInsufficientLotQuantity si amount > saldo.
	Decrement(ctx context.Context, lotID string, amount decimal.Decimal) error
	// Increment repone amount (solo anulaciones); domain.ErrInvalidReversal si supera la cantidad inicial.
	Increment(ctx context.Context, lotID string, amount decimal.Decimal) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.Lot, error)
	// ListExpiring lotes con saldo cuyo vencimiento es anterior a before.
	ListExpiring(ctx context.Context, before time.Time) ([]*entity.Lot, error)
	// SumInventoryValue Σ(available_quantity * unit_cost) sobre todos los lotes.
	SumInventoryValue(ctx context.Context) (decimal.Decimal, error)
}

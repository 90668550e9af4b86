package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/inventory"
)

// issueMeta datos comunes a todos los movimientos de una salida.
type issueMeta struct {
	Reason string
	Source string
	UserID string
	Now    time.Time
}

// allocate consume qty de los lotes del producto en orden FIFO: decrementa cada lote y publica un
// movimiento ISSUE por porción al costo del lote. No toca el contador del producto.
func allocate(ctx context.Context, repos Repos, log zerolog.Logger, productID string, qty decimal.Decimal, meta issueMeta) ([]*entity.Movement, error) {
	lots, err := repos.Lots.ListAvailable(ctx, productID)
	if err != nil {
		return nil, err
	}
	allocs, remaining := inventory.PlanFIFO(lots, qty)
	if remaining.IsPositive() {
		log.Error().
			Str("product_id", productID).
			Str("solicitado", qty.String()).
			Str("faltante", remaining.String()).
			Msg("los lotes no cubren la salida")
		return nil, domain.Errorf(domain.ErrStockAllocationFailed,
			"no se pudo asignar la salida: faltan %s del producto %s", remaining.String(), productID)
	}

	movements := make([]*entity.Movement, 0, len(allocs))
	for _, a := range allocs {
		if err := repos.Lots.Decrement(ctx, a.Lot.ID, a.Quantity); err != nil {
			if errors.Is(err, domain.ErrInsufficientLotQuantity) {
				// otro escritor cambió el saldo entre la lectura y el UPDATE condicional
				return nil, domain.Errorf(domain.ErrConcurrentModification, "el lote %s cambió durante la asignación", a.Lot.Code)
			}
			return nil, err
		}
		mov := &entity.Movement{
			ID:          uuid.New().String(),
			Kind:        entity.MovementIssue,
			Quantity:    a.Quantity,
			UnitCost:    a.Lot.UnitCost,
			TotalCost:   a.Cost(),
			OccurredAt:  meta.Now,
			Reason:      meta.Reason,
			Source:      meta.Source,
			ProductID:   productID,
			WarehouseID: a.Lot.WarehouseID,
			LotID:       a.Lot.ID,
			UserID:      meta.UserID,
		}
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return nil, err
		}
		movements = append(movements, mov)
	}
	return movements, nil
}

package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// Allocation es la porción de una salida que se toma de un lote.
type Allocation struct {
	Lot      *entity.Lot
	Quantity decimal.Decimal
}

// Cost devuelve el costo de la porción al costo unitario del lote.
func (a Allocation) Cost() decimal.Decimal {
	return a.Quantity.Mul(a.Lot.UnitCost)
}

// PlanFIFO reparte qty sobre lots en el orden recibido (del más antiguo al más nuevo).
// Los lotes sin saldo se saltan. remaining > 0 indica que los lotes no alcanzan.
// No modifica los lotes.
func PlanFIFO(lots []*entity.Lot, qty decimal.Decimal) (allocs []Allocation, remaining decimal.Decimal) {
	remaining = qty
	for _, lot := range lots {
		if !remaining.IsPositive() {
			break
		}
		if !lot.AvailableQuantity.IsPositive() {
			continue
		}
		used := decimal.Min(remaining, lot.AvailableQuantity)
		allocs = append(allocs, Allocation{Lot: lot, Quantity: used})
		remaining = remaining.Sub(used)
	}
	return allocs, remaining
}

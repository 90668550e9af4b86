package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain"
)

// ApplyStockDelta suma delta al contador de stock. El contador nunca queda negativo.
func ApplyStockDelta(current, delta decimal.Decimal) (decimal.Decimal, error) {
	next := current.Add(delta)
	if next.IsNegative() {
		return current, domain.Errorf(domain.ErrInsufficientStock,
			"stock insuficiente: disponible %s, solicitado %s", current.String(), delta.Neg().String())
	}
	return next, nil
}

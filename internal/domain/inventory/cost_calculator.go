package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.Div(sum)
}

// WeightedAverageCost acumula el promedio ponderado sobre el saldo disponible de los lotes.
// Lotes agotados no aportan. Devuelve cero si no hay saldo.
func WeightedAverageCost(lots []*entity.Lot) decimal.Decimal {
	qty, cost := decimal.Zero, decimal.Zero
	for _, l := range lots {
		if !l.AvailableQuantity.IsPositive() {
			continue
		}
		cost = CostCalculator(qty, cost, l.AvailableQuantity, l.UnitCost)
		qty = qty.Add(l.AvailableQuantity)
	}
	return cost
}

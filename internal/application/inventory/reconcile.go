package inventory

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// StockDrift producto cuyo contador no coincide con la suma de sus lotes.
type StockDrift struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Cached    decimal.Decimal `json:"cached"`
	LotSum    decimal.Decimal `json:"lot_sum"`
	Diff      decimal.Decimal `json:"diff"` // Cached - LotSum
}

// ReconcileUseCase diagnóstico fuera del camino caliente: no corrige, solo informa.
type ReconcileUseCase struct {
	products repository.ProductRepository
	log      zerolog.Logger
}

// NewReconcileUseCase construye el caso de uso.
func NewReconcileUseCase(products repository.ProductRepository, log zerolog.Logger) *ReconcileUseCase {
	return &ReconcileUseCase{products: products, log: log.With().Str("component", "reconcile").Logger()}
}

// Run devuelve las derivas encontradas y las registra con nivel error.
func (uc *ReconcileUseCase) Run(ctx context.Context) ([]StockDrift, error) {
	rows, err := uc.products.ListStockDrift(ctx)
	if err != nil {
		return nil, err
	}
	drifts := make([]StockDrift, 0, len(rows))
	for _, r := range rows {
		d := StockDrift{
			ProductID: r.ProductID,
			Name:      r.Name,
			Cached:    r.Cached,
			LotSum:    r.LotSum,
			Diff:      r.Cached.Sub(r.LotSum),
		}
		uc.log.Error().
			Str("product_id", d.ProductID).
			Str("cached", d.Cached.String()).
			Str("lot_sum", d.LotSum.String()).
			Msg("stock_actual difiere de la suma de lotes")
		drifts = append(drifts, d)
	}
	if len(drifts) == 0 {
		uc.log.Info().Msg("conciliación sin diferencias")
	}
	return drifts, nil
}

package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/inventory"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// ProductLots lotes de un producto con su saldo total y costo promedio ponderado del saldo.
type ProductLots struct {
	ProductID      string
	Lots           []*entity.Lot
	TotalAvailable decimal.Decimal
	AverageCost    decimal.Decimal
}

// LotQueries consultas de lotes.
type LotQueries struct {
	lots         repository.LotRepository
	products     repository.ProductRepository
	expiringDays int
	now          func() time.Time
}

// NewLotQueries construye las consultas. expiringDays es la ventana por defecto de ListExpiring.
func NewLotQueries(lots repository.LotRepository, products repository.ProductRepository, expiringDays int) *LotQueries {
	if expiringDays <= 0 {
		expiringDays = 7
	}
	return &LotQueries{lots: lots, products: products, expiringDays: expiringDays, now: time.Now}
}

// Get obtiene un lote por ID.
func (q *LotQueries) Get(ctx context.Context, id string) (*entity.Lot, error) {
	return q.lots.GetByID(ctx, id)
}

// ListAvailable lotes con saldo en el orden en que los consumiría una salida.
func (q *LotQueries) ListAvailable(ctx context.Context, productID string) ([]*entity.Lot, error) {
	if _, err := q.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return q.lots.ListAvailable(ctx, productID)
}

// ListByProduct todos los lotes del producto (incluidos agotados) con su resumen.
func (q *LotQueries) ListByProduct(ctx context.Context, productID string) (*ProductLots, error) {
	if _, err := q.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	lots, err := q.lots.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	for _, l := range lots {
		total = total.Add(l.AvailableQuantity)
	}
	return &ProductLots{
		ProductID:      productID,
		Lots:           lots,
		TotalAvailable: total,
		AverageCost:    inventory.WeightedAverageCost(lots),
	}, nil
}

// ListExpiring lotes con saldo que vencen dentro de days días (0 = ventana por defecto).
func (q *LotQueries) ListExpiring(ctx context.Context, days int) ([]*entity.Lot, error) {
	if days < 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "los días deben ser positivos")
	}
	if days == 0 {
		days = q.expiringDays
	}
	return q.lots.ListExpiring(ctx, q.now().AddDate(0, 0, days))
}

package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE); serializa el libro mayor por producto.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// AddStock aplica delta a stock_actual y devuelve el valor resultante. No permite quedar en negativo.
	AddStock(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
	// ListStockDrift compara stock_actual con la suma de saldos de lotes y devuelve solo los que difieren.
	ListStockDrift(ctx context.Context) ([]StockDrift, error)
}

// StockDrift diferencia entre el contador en caché y la suma de lotes de un producto.
type StockDrift struct {
	ProductID string
	Name      string
	Cached    decimal.Decimal
	LotSum    decimal.Decimal
}

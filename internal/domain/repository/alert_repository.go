package repository

import (
	"context"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// AlertRepository persistencia de alertas de stock.
type AlertRepository interface {
	Create(ctx context.Context, alert *entity.Alert) error
	GetByID(ctx context.Context, id string) (*entity.Alert, error)
	List(ctx context.Context, onlyPending bool, limit, offset int) ([]*entity.Alert, error)
	ListByProduct(ctx context.Context, productID string) ([]*entity.Alert, error)
	MarkResolved(ctx context.Context, id string) error
}

package repository

import (
	"context"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// ValuationRepository persistencia de periodos de valorización.
type ValuationRepository interface {
	Create(ctx context.Context, period *entity.ValuationPeriod) error
	GetByID(ctx context.Context, id string) (*entity.ValuationPeriod, error)
	Latest(ctx context.Context) (*entity.ValuationPeriod, error)
	List(ctx context.Context, limit, offset int) ([]*entity.ValuationPeriod, error)
	Close(ctx context.Context, id, observations string) error
	Delete(ctx context.Context, id string) error
}

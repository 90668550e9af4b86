package repository

import (
	"context"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// RecipeRepository persistencia de recetas base y sus ingredientes.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *entity.Recipe) error
	GetByID(ctx context.Context, id string) (*entity.Recipe, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Recipe, error)
}

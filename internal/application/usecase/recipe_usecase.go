package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/application/inventory"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// RecipeUseCase alta y consulta de recetas base.
type RecipeUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.RecipeRepository
}

// NewRecipeUseCase construye el caso de uso. El alta corre en una transacción (receta + ingredientes).
func NewRecipeUseCase(txRunner inventory.TxRunner, repo repository.RecipeRepository) *RecipeUseCase {
	return &RecipeUseCase{txRunner: txRunner, repo: repo}
}

// Create valida que cada ingrediente exista y tenga cantidad positiva.
func (uc *RecipeUseCase) Create(ctx context.Context, in dto.CreateRecipeRequest) (*dto.RecipeResponse, error) {
	if len(in.Ingredients) == 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "la receta necesita al menos un ingrediente")
	}
	recipe := &entity.Recipe{
		ID:           uuid.New().String(),
		DishName:     in.DishName,
		Description:  in.Description,
		BasePortions: in.BasePortions,
		PortionUnit:  in.PortionUnit,
		CreatedAt:    time.Now(),
	}
	if recipe.BasePortions <= 0 {
		recipe.BasePortions = 1
	}
	for _, ing := range in.Ingredients {
		if !ing.QtyPerPortion.IsPositive() {
			return nil, domain.Errorf(domain.ErrInvalidInput, "la cantidad por porción debe ser mayor que cero")
		}
	}
	err := uc.txRunner.Run(ctx, func(repos inventory.Repos) error {
		for _, ing := range in.Ingredients {
			product, err := repos.Products.GetByID(ctx, ing.ProductID)
			if err != nil {
				return err
			}
			unit := ing.UnitMeasure
			if unit == "" {
				unit = product.UnitMeasure
			}
			recipe.Ingredients = append(recipe.Ingredients, entity.RecipeIngredient{
				ProductID:     ing.ProductID,
				QtyPerPortion: ing.QtyPerPortion,
				UnitMeasure:   unit,
			})
		}
		return repos.Recipes.Create(ctx, recipe)
	})
	if err != nil {
		return nil, err
	}
	return toRecipeResponse(recipe), nil
}

func (uc *RecipeUseCase) GetByID(ctx context.Context, id string) (*dto.RecipeResponse, error) {
	recipe, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRecipeResponse(recipe), nil
}

func (uc *RecipeUseCase) List(ctx context.Context, limit, offset int) ([]dto.RecipeResponse, error) {
	list, err := uc.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecipeResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toRecipeResponse(r))
	}
	return out, nil
}

func toRecipeResponse(r *entity.Recipe) *dto.RecipeResponse {
	out := &dto.RecipeResponse{
		ID:           r.ID,
		DishName:     r.DishName,
		Description:  r.Description,
		BasePortions: r.BasePortions,
		PortionUnit:  r.PortionUnit,
		CreatedAt:    r.CreatedAt,
		Ingredients:  make([]dto.RecipeIngredientResponse, 0, len(r.Ingredients)),
	}
	for _, ing := range r.Ingredients {
		out.Ingredients = append(out.Ingredients, dto.RecipeIngredientResponse{
			ProductID:     ing.ProductID,
			QtyPerPortion: ing.QtyPerPortion,
			UnitMeasure:   ing.UnitMeasure,
		})
	}
	return out
}

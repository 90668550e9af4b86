package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

var _ repository.RecipeRepository = (*RecipeRepo)(nil)

// RecipeRepo recetas base e ingredientes sobre PostgreSQL.
type RecipeRepo struct {
	q Querier
}

// NewRecipeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecipeRepository(q Querier) *RecipeRepo {
	return &RecipeRepo{q: q}
}

// Create persiste la receta y sus ingredientes en un batch (usar dentro de una tx para que sea atómico).
func (r *RecipeRepo) Create(ctx context.Context, recipe *entity.Recipe) error {
	batch := &pgx.Batch{}
	batch.Queue(`
		INSERT INTO recipes (id, dish_name, description, base_portions, portion_unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		recipe.ID, recipe.DishName, recipe.Description, recipe.BasePortions, recipe.PortionUnit, recipe.CreatedAt)
	for i, ing := range recipe.Ingredients {
		batch.Queue(`
			INSERT INTO recipe_ingredients (recipe_id, product_id, qty_per_portion, unit_measure, position)
			VALUES ($1, $2, $3, $4, $5)`,
			recipe.ID, ing.ProductID, ing.QtyPerPortion, ing.UnitMeasure, i)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			return mapError("insert recipe", err)
		}
	}
	return nil
}

// GetByID obtiene la receta con sus ingredientes en orden.
func (r *RecipeRepo) GetByID(ctx context.Context, id string) (*entity.Recipe, error) {
	var rec entity.Recipe
	err := r.q.QueryRow(ctx, `
		SELECT id, dish_name, description, base_portions, portion_unit, created_at
		FROM recipes WHERE id = $1`, id).
		Scan(&rec.ID, &rec.DishName, &rec.Description, &rec.BasePortions, &rec.PortionUnit, &rec.CreatedAt)
	if err != nil {
		return nil, mapError("get recipe", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT product_id, qty_per_portion, unit_measure
		FROM recipe_ingredients WHERE recipe_id = $1 ORDER BY position`, id)
	if err != nil {
		return nil, mapError("get recipe ingredients", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ing entity.RecipeIngredient
		if err := rows.Scan(&ing.ProductID, &ing.QtyPerPortion, &ing.UnitMeasure); err != nil {
			return nil, fmt.Errorf("scan ingredient: %w", err)
		}
		rec.Ingredients = append(rec.Ingredients, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get recipe ingredients: %w", err)
	}
	return &rec, nil
}

// List recetas sin ingredientes, por nombre.
func (r *RecipeRepo) List(ctx context.Context, limit, offset int) ([]*entity.Recipe, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, dish_name, description, base_portions, portion_unit, created_at
		FROM recipes ORDER BY dish_name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, mapError("list recipes", err)
	}
	defer rows.Close()
	var list []*entity.Recipe
	for rows.Next() {
		var rec entity.Recipe
		if err := rows.Scan(&rec.ID, &rec.DishName, &rec.Description, &rec.BasePortions, &rec.PortionUnit, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan recipe: %w", err)
		}
		list = append(list, &rec)
	}
	return list, rows.Err()
}

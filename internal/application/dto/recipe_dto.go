package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeIngredientRequest ingrediente de una receta.
type RecipeIngredientRequest struct {
	ProductID     string          `json:"product_id" validate:"required"`
	QtyPerPortion decimal.Decimal `json:"qty_per_portion"`
	UnitMeasure   string          `json:"unit_measure" validate:"max=20"`
}

// CreateRecipeRequest entrada para crear una receta base.
type CreateRecipeRequest struct {
	DishName     string                    `json:"dish_name" validate:"required,min=1,max=200"`
	Description  string                    `json:"description"`
	BasePortions int                       `json:"base_portions" validate:"min=0"`
	PortionUnit  string                    `json:"portion_unit" validate:"max=50"`
	Ingredients  []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
}

// RecipeIngredientResponse ingrediente en la salida.
type RecipeIngredientResponse struct {
	ProductID     string          `json:"product_id"`
	QtyPerPortion decimal.Decimal `json:"qty_per_portion"`
	UnitMeasure   string          `json:"unit_measure"`
}

// RecipeResponse salida de una receta.
type RecipeResponse struct {
	ID           string                     `json:"id"`
	DishName     string                     `json:"dish_name"`
	Description  string                     `json:"description"`
	BasePortions int                        `json:"base_portions"`
	PortionUnit  string                     `json:"portion_unit"`
	CreatedAt    time.Time                  `json:"created_at"`
	Ingredients  []RecipeIngredientResponse `json:"ingredients"`
}

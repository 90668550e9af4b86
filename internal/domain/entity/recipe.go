package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe es una receta base (plato) con los insumos necesarios por porción.
type Recipe struct {
	ID           string
	DishName     string
	Description  string
	BasePortions int
	PortionUnit  string
	CreatedAt    time.Time
	Ingredients  []RecipeIngredient
}

// RecipeIngredient cantidad de un producto requerida por porción.
type RecipeIngredient struct {
	ProductID     string
	QtyPerPortion decimal.Decimal
	UnitMeasure   string
}

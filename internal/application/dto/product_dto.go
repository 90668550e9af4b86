package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock nace en 0 y solo lo mueve el libro mayor.
type CreateProductRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	UnitMeasure string          `json:"unit_measure" validate:"required,max=20"`
	Category    string          `json:"category" validate:"max=100"`
	StockMinimo decimal.Decimal `json:"stock_minimo"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	UnitMeasure *string          `json:"unit_measure" validate:"omitempty,max=20"`
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	StockMinimo *decimal.Decimal `json:"stock_minimo"`
	Active      *bool            `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitMeasure string          `json:"unit_measure"`
	Category    string          `json:"category"`
	StockMinimo decimal.Decimal `json:"stock_minimo"`
	StockActual decimal.Decimal `json:"stock_actual"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

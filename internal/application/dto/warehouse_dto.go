package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateWarehouseRequest entrada para crear un almacén.
type CreateWarehouseRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Location    string          `json:"location"`
	Responsible string          `json:"responsible"`
	MaxCapacity decimal.Decimal `json:"max_capacity"`
}

// UpdateWarehouseRequest entrada para actualizar un almacén.
type UpdateWarehouseRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Location    *string          `json:"location"`
	Responsible *string          `json:"responsible"`
	MaxCapacity *decimal.Decimal `json:"max_capacity"`
	Active      *bool            `json:"active"`
}

// WarehouseResponse salida de un almacén.
type WarehouseResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Location    string          `json:"location"`
	Responsible string          `json:"responsible"`
	MaxCapacity decimal.Decimal `json:"max_capacity"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// WarehouseListResponse lista paginada de almacenes.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

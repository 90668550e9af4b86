package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Warehouse representa un almacén (cámara, despensa, bodega) donde se guardan los lotes.
type Warehouse struct {
	ID          string
	Name        string
	Location    string
	Responsible string
	MaxCapacity decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

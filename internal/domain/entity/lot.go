package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un lote. Son informativos: el asignador FIFO no los consulta.
const (
	LotStatusActive   = "ACTIVE"
	LotStatusDepleted = "DEPLETED"
	LotStatusExpired  = "EXPIRED"
)

// Lot representa un lote de compra de un producto en un almacén, con su propio costo y vencimiento.
// Invariante: 0 <= AvailableQuantity <= InitialQuantity.
type Lot struct {
	ID                string
	ProductID         string
	WarehouseID       string
	Code              string
	UnitCost          decimal.Decimal
	TotalCost         decimal.Decimal // UnitCost * InitialQuantity al crear
	InitialQuantity   decimal.Decimal // inmutable
	AvailableQuantity decimal.Decimal
	PurchasedAt       time.Time
	ExpiresAt         *time.Time
	Status            string
	CreatedAt         time.Time
}

// StatusFor devuelve el estado informativo que corresponde a un saldo disponible.
func StatusFor(available decimal.Decimal) string {
	if available.IsPositive() {
		return LotStatusActive
	}
	return LotStatusDepleted
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de valorización.
const (
	ValuationFIFO            = "FIFO"
	ValuationWeightedAverage = "PROMEDIO_PONDERADO"
)

// ValuationMethods lista los métodos soportados.
func ValuationMethods() []string {
	return []string{ValuationFIFO, ValuationWeightedAverage}
}

// ValuationPeriod es un snapshot de valorización de un mes. Cerrado => inmutable.
type ValuationPeriod struct {
	ID              string
	Period          string // YYYY-MM
	Method          string
	InventoryValue  decimal.Decimal
	PeriodIssueCost decimal.Decimal
	Observations    string
	CreatedBy       string
	CreatedAt       time.Time
	Closed          bool
}

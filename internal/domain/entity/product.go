package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un insumo de cocina controlado por lotes.
// StockActual es un valor derivado (caché) de la suma de saldos de sus lotes; solo lo modifica el libro mayor.
type Product struct {
	ID          string
	Name        string
	Description string
	UnitMeasure string          // kg, lt, und...
	Category    string
	StockMinimo decimal.Decimal // punto de reorden
	StockActual decimal.Decimal // Σ lot.AvailableQuantity
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// BelowMinimum indica si el stock actual rompió el mínimo.
func (p *Product) BelowMinimum() bool {
	return p.StockActual.LessThan(p.StockMinimo)
}

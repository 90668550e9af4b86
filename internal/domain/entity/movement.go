package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind es la variante del movimiento del libro mayor.
type MovementKind string

// Tipos de movimiento.
const (
	MovementReceipt MovementKind = "RECEIPT" // entrada: crea un lote
	MovementIssue   MovementKind = "ISSUE"   // salida: consume un lote
)

// Valid indica si el tipo es conocido.
func (k MovementKind) Valid() bool {
	return k == MovementReceipt || k == MovementIssue
}

// StockSign devuelve +1 si el movimiento suma stock y -1 si lo resta.
func (k MovementKind) StockSign() int64 {
	if k == MovementReceipt {
		return 1
	}
	return -1
}

// VoidNote se añade al motivo del movimiento al anularlo.
const VoidNote = "Movimiento anulado."

// Movement es un asiento inmutable del libro mayor. Tras publicarse solo cambian Voided y Reason (una vez).
type Movement struct {
	ID          string
	Kind        MovementKind
	Quantity    decimal.Decimal // siempre > 0; el signo lo da Kind
	UnitCost    decimal.Decimal
	TotalCost   decimal.Decimal
	OccurredAt  time.Time
	Reason      string
	Source      string
	ProductID   string
	WarehouseID string
	LotID       string
	UserID      string // FK opaca al colaborador de identidad; vacío si no hay actor
	Voided      bool
}

// SignedQuantity devuelve la cantidad con el signo de su efecto sobre el stock.
func (m *Movement) SignedQuantity() decimal.Decimal {
	return m.Quantity.Mul(decimal.NewFromInt(m.Kind.StockSign()))
}

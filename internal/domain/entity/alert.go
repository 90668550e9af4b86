package entity

import "time"

// Prioridades de alerta de stock.
const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Alert es una alerta de stock bajo. Solo la crea el clasificador de alertas del libro mayor.
type Alert struct {
	ID        string
	ProductID string
	Message   string
	Priority  string
	CreatedAt time.Time
	Resolved  bool
}

package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

var (
	lowThreshold    = decimal.RequireFromString("0.25")
	mediumThreshold = decimal.RequireFromString("0.5")
)

// AlertDecision resultado de clasificar el stock de un producto.
type AlertDecision struct {
	Priority string
	Message  string
}

// ClassifyAlert decide si el stock actual rompe el mínimo y con qué prioridad.
// ok = false si stockActual >= stockMinimo.
func ClassifyAlert(productName string, stockActual, stockMinimo decimal.Decimal) (AlertDecision, bool) {
	if !stockActual.LessThan(stockMinimo) {
		return AlertDecision{}, false
	}
	deficit := stockMinimo.Sub(stockActual)
	priority := entity.PriorityHigh
	switch {
	case deficit.LessThanOrEqual(stockMinimo.Mul(lowThreshold)):
		priority = entity.PriorityLow
	case deficit.LessThanOrEqual(stockMinimo.Mul(mediumThreshold)):
		priority = entity.PriorityMedium
	}
	return AlertDecision{
		Priority: priority,
		Message:  fmt.Sprintf("El producto '%s' está por debajo del stock mínimo.", productName),
	}, true
}

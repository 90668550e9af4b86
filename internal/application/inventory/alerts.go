package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/inventory"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// checkStockAlert clasifica el nuevo stock del producto y, si rompe el mínimo, persiste la alerta
// con el repositorio de la transacción en curso. Devuelve nil si no hay alerta.
func checkStockAlert(ctx context.Context, alerts repository.AlertRepository, product *entity.Product, stock decimal.Decimal, now time.Time) (*entity.Alert, error) {
	decision, ok := inventory.ClassifyAlert(product.Name, stock, product.StockMinimo)
	if !ok {
		return nil, nil
	}
	alert := &entity.Alert{
		ID:        uuid.New().String(),
		ProductID: product.ID,
		Message:   decision.Message,
		Priority:  decision.Priority,
		CreatedAt: now,
	}
	if err := alerts.Create(ctx, alert); err != nil {
		return nil, err
	}
	return alert, nil
}

// publishAlerts entrega las alertas ya confirmadas. Un fallo no invalida la operación.
func (uc *LedgerUseCase) publishAlerts(ctx context.Context, alerts []*entity.Alert) {
	for _, a := range alerts {
		ev := AlertCreatedEvent{
			AlertID:   a.ID,
			ProductID: a.ProductID,
			Message:   a.Message,
			Priority:  a.Priority,
			CreatedAt: a.CreatedAt,
		}
		if err := uc.publisher.PublishAlertCreated(ctx, ev); err != nil {
			uc.log.Warn().Err(err).Str("alert_id", a.ID).Str("product_id", a.ProductID).Msg("no se pudo publicar la alerta")
		}
	}
}

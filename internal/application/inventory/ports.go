package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// Repos agrupa los repositorios atados a una misma transacción.
type Repos struct {
	Products   repository.ProductRepository
	Warehouses repository.WarehouseRepository
	Lots       repository.LotRepository
	Movements  repository.MovementRepository
	Alerts     repository.AlertRepository
	Recipes    repository.RecipeRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro mayor: si fn devuelve error se hace Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}

// AlertCreatedEvent hecho publicado tras el commit de una operación que creó una alerta.
type AlertCreatedEvent struct {
	AlertID   string    `json:"alert_id"`
	ProductID string    `json:"product_id"`
	Message   string    `json:"message"`
	Priority  string    `json:"priority"`
	CreatedAt time.Time `json:"created_at"`
}

// AlertPublisher entrega el hecho "alerta creada" al colaborador de notificaciones.
type AlertPublisher interface {
	PublishAlertCreated(ctx context.Context, event AlertCreatedEvent) error
}

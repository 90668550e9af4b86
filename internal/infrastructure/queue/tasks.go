package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/Stockify-api/internal/application/inventory"
)

const (
	// QueueDefault cola por defecto del worker.
	QueueDefault = "default"
	// TaskAlertCreated hecho "alerta creada" para el colaborador de notificaciones.
	TaskAlertCreated = "stock:alert_created"
	// TaskStockReconcile conciliación programada de stock_actual contra lotes.
	TaskStockReconcile = "stock:reconcile"
)

// NewAlertCreatedTask construye la tarea asynq con el payload del evento.
func NewAlertCreatedTask(ev inventory.AlertCreatedEvent) (*asynq.Task, error) {
	data, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAlertCreated, data, asynq.Queue(QueueDefault), asynq.MaxRetry(5)), nil
}

// ReconcilePayload metadatos de programación.
type ReconcilePayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewReconcileTask construye la tarea de conciliación.
func NewReconcileTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(ReconcilePayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStockReconcile, body, asynq.Queue(QueueDefault)), nil
}

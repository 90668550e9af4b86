package queue

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Stockify-api/internal/application/inventory"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
)

// AlertJob consume TaskAlertCreated. El formateo y envío de correo vive fuera de este servicio;
// aquí queda el registro estructurado que consume el colaborador de notificaciones.
type AlertJob struct {
	log zerolog.Logger
}

// NewAlertJob construye el handler.
func NewAlertJob(log zerolog.Logger) *AlertJob {
	return &AlertJob{log: log.With().Str("component", "alert_job").Logger()}
}

// Handle procesa una tarea. Un payload ilegible no se reintenta.
func (j *AlertJob) Handle(ctx context.Context, t *asynq.Task) error {
	var ev inventory.AlertCreatedEvent
	if err := json.Unmarshal(t.Payload(), &ev); err != nil || ev.AlertID == "" {
		j.log.Warn().Bytes("payload", t.Payload()).Msg("payload de alerta inválido")
		return asynq.SkipRetry
	}
	evt := j.log.Info()
	if ev.Priority == entity.PriorityHigh {
		evt = j.log.Warn()
	}
	evt.Str("alert_id", ev.AlertID).
		Str("product_id", ev.ProductID).
		Str("priority", ev.Priority).
		Time("created_at", ev.CreatedAt).
		Msg(ev.Message)
	return nil
}

// Reconciler abstrae el caso de uso de conciliación.
type Reconciler interface {
	Run(ctx context.Context) ([]inventory.StockDrift, error)
}

// ReconcileJob ejecuta la conciliación programada.
type ReconcileJob struct {
	uc  Reconciler
	log zerolog.Logger
}

// NewReconcileJob construye el handler.
func NewReconcileJob(uc Reconciler, log zerolog.Logger) *ReconcileJob {
	return &ReconcileJob{uc: uc, log: log.With().Str("component", "reconcile_job").Logger()}
}

func (j *ReconcileJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.uc == nil {
		return errors.New("reconcile: handler no configurado")
	}
	var payload ReconcilePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	drifts, err := j.uc.Run(ctx)
	if err != nil {
		j.log.Error().Err(err).Msg("conciliación fallida")
		return err
	}
	j.log.Info().Int("drifts", len(drifts)).Time("scheduled_for", payload.ScheduledFor).Msg("conciliación terminada")
	return nil
}

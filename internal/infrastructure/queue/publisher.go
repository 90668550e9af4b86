package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Stockify-api/internal/application/inventory"
)

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqPublisher implementa inventory.AlertPublisher encolando TaskAlertCreated.
type AsynqPublisher struct {
	client enqueuer
	log    zerolog.Logger
}

// NewAsynqPublisher construye el publicador sobre un cliente asynq.
func NewAsynqPublisher(client *asynq.Client, log zerolog.Logger) *AsynqPublisher {
	return newAsynqPublisher(client, log)
}

func newAsynqPublisher(client enqueuer, log zerolog.Logger) *AsynqPublisher {
	return &AsynqPublisher{client: client, log: log.With().Str("component", "alert_publisher").Logger()}
}

// PublishAlertCreated encola el evento. El ID de la tarea es el de la alerta: un reenvío no duplica.
func (p *AsynqPublisher) PublishAlertCreated(ctx context.Context, ev inventory.AlertCreatedEvent) error {
	task, err := NewAlertCreatedTask(ev)
	if err != nil {
		return fmt.Errorf("queue: build alert task: %w", err)
	}
	info, err := p.client.EnqueueContext(ctx, task, asynq.TaskID(ev.AlertID))
	if err != nil {
		return fmt.Errorf("queue: enqueue alert %s: %w", ev.AlertID, err)
	}
	p.log.Debug().Str("alert_id", ev.AlertID).Str("task_id", info.ID).Msg("alerta encolada")
	return nil
}

// LogPublisher publicador sin Redis: solo registra el evento.
type LogPublisher struct {
	log zerolog.Logger
}

// NewLogPublisher construye el publicador de respaldo.
func NewLogPublisher(log zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: log.With().Str("component", "alert_publisher").Logger()}
}

func (p *LogPublisher) PublishAlertCreated(_ context.Context, ev inventory.AlertCreatedEvent) error {
	p.log.Info().
		Str("alert_id", ev.AlertID).
		Str("product_id", ev.ProductID).
		Str("priority", ev.Priority).
		Msg(ev.Message)
	return nil
}

package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Stockify-api/internal/application/inventory"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	opts  [][]asynq.Option
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	f.opts = append(f.opts, opts)
	return &asynq.TaskInfo{ID: "t-1", Type: task.Type()}, nil
}

func sampleEvent() inventory.AlertCreatedEvent {
	return inventory.AlertCreatedEvent{
		AlertID:   "a-1",
		ProductID: "p-1",
		Message:   "Stock crítico de Harina: 2 unidades",
		Priority:  "HIGH",
		CreatedAt: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestAsynqPublisher_EncolaEvento(t *testing.T) {
	enq := &fakeEnqueuer{}
	pub := newAsynqPublisher(enq, zerolog.Nop())

	require.NoError(t, pub.PublishAlertCreated(context.Background(), sampleEvent()))
	require.Len(t, enq.tasks, 1)
	assert.Equal(t, TaskAlertCreated, enq.tasks[0].Type())

	var got map[string]any
	require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &got))
	assert.Equal(t, "a-1", got["alert_id"])
	assert.Equal(t, "p-1", got["product_id"])
	assert.Equal(t, "HIGH", got["priority"])
	assert.Contains(t, got, "created_at")
	assert.Len(t, enq.opts[0], 1, "TaskID de la alerta")
}

func TestAsynqPublisher_ErrorDeCola(t *testing.T) {
	pub := newAsynqPublisher(&fakeEnqueuer{err: errors.New("redis caído")}, zerolog.Nop())
	err := pub.PublishAlertCreated(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a-1")
}

func TestAlertJob_Handle(t *testing.T) {
	var buf bytes.Buffer
	job := NewAlertJob(zerolog.New(&buf))

	task, err := NewAlertCreatedTask(sampleEvent())
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	assert.Contains(t, buf.String(), `"alert_id":"a-1"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)

	bad := asynq.NewTask(TaskAlertCreated, []byte("{"))
	assert.ErrorIs(t, job.Handle(context.Background(), bad), asynq.SkipRetry)
}

type fakeReconciler struct {
	drifts []inventory.StockDrift
	err    error
	calls  int
}

func (f *fakeReconciler) Run(context.Context) ([]inventory.StockDrift, error) {
	f.calls++
	return f.drifts, f.err
}

func TestReconcileJob_Handle(t *testing.T) {
	rec := &fakeReconciler{drifts: []inventory.StockDrift{{ProductID: "p-1"}}}
	job := NewReconcileJob(rec, zerolog.Nop())

	task, err := NewReconcileTask(time.Now())
	require.NoError(t, err)
	require.NoError(t, job.Handle(context.Background(), task))
	assert.Equal(t, 1, rec.calls)

	rec.err = errors.New("db")
	assert.Error(t, job.Handle(context.Background(), task))

	assert.ErrorIs(t, job.Handle(context.Background(), asynq.NewTask(TaskStockReconcile, []byte("x"))), asynq.SkipRetry)
}

func TestLogPublisher(t *testing.T) {
	var buf bytes.Buffer
	pub := NewLogPublisher(zerolog.New(&buf))
	require.NoError(t, pub.PublishAlertCreated(context.Background(), sampleEvent()))
	assert.Contains(t, buf.String(), "Stock crítico de Harina")
}

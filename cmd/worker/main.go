package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/Stockify-api/internal/application/inventory"
	"github.com/jhoicas/Stockify-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Stockify-api/internal/infrastructure/queue"
	"github.com/jhoicas/Stockify-api/pkg/config"
	"github.com/jhoicas/Stockify-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, Service: cfg.App.Name + "-worker"})

	if !cfg.Redis.Enabled() {
		log.Fatal().Msg("el worker requiere REDIS_ADDR")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	reconcileUC := inventory.NewReconcileUseCase(postgres.NewProductRepository(pool), log.Zerolog())
	alertJob := queue.NewAlertJob(log.Zerolog())
	reconcileJob := queue.NewReconcileJob(reconcileUC, log.Zerolog())

	var crons []queue.CronRegistration
	if cfg.Ledger.ReconcileCron != "" {
		task, err := queue.NewReconcileTask(time.Now())
		if err != nil {
			log.Fatal().Err(err).Msg("construir tarea de conciliación")
		}
		crons = append(crons, queue.CronRegistration{
			Spec:    cfg.Ledger.ReconcileCron,
			Task:    task,
			Options: []asynq.Option{asynq.MaxRetry(1)},
		})
	}

	worker, err := queue.NewWorker(queue.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB},
		Logger:    log.Component("worker"),
		Location:  cfg.App.Location(),
		Handlers: []queue.TaskHandler{
			{Type: queue.TaskAlertCreated, Handler: alertJob.Handle},
			{Type: queue.TaskStockReconcile, Handler: reconcileJob.Handle},
		},
		Cron: crons,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar worker")
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("worker")
	}
	log.Info().Msg("worker detenido")
}

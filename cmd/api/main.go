package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hibiken/asynq"

	"github.com/jhoicas/Stockify-api/internal/application/inventory"
	"github.com/jhoicas/Stockify-api/internal/application/usecase"
	"github.com/jhoicas/Stockify-api/internal/application/valuation"
	"github.com/jhoicas/Stockify-api/internal/infrastructure/cache"
	"github.com/jhoicas/Stockify-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Stockify-api/internal/infrastructure/queue"
	httpRouter "github.com/jhoicas/Stockify-api/internal/interfaces/http"
	"github.com/jhoicas/Stockify-api/pkg/config"
	"github.com/jhoicas/Stockify-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	valuationRepo := postgres.NewValuationRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Notificaciones e idempotencia dependen de Redis; sin él se degrada a log y sin idempotencia.
	var publisher inventory.AlertPublisher = queue.NewLogPublisher(log.Zerolog())
	deps := httpRouter.RouterDeps{}
	if cfg.Redis.Enabled() {
		redisClient, err := cache.New(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisClient.Close()
		deps.Idempotency = cache.NewIdempotencyStore(redisClient, cfg.HTTP.IdempotencyTTL)

		asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer asynqClient.Close()
		publisher = queue.NewAsynqPublisher(asynqClient, log.Zerolog())
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: alertas solo en log y POST sin idempotencia")
	}

	deps.Ledger = inventory.NewLedgerUseCase(txRunner, publisher, log.Zerolog(), inventory.LedgerOptions{
		MaxRetries:   cfg.Ledger.MaxRetries,
		RetryBackoff: cfg.Ledger.RetryBackoff,
	})
	deps.Movements = inventory.NewMovementQueries(movementRepo, lotRepo)
	deps.Lots = inventory.NewLotQueries(lotRepo, productRepo, cfg.Ledger.ExpiringDays)
	deps.Reconcile = inventory.NewReconcileUseCase(productRepo, log.Zerolog())
	deps.Valuation = valuation.NewUseCase(valuationRepo, lotRepo, movementRepo, cfg.App.Location(), log.Zerolog())
	deps.AlertUC = usecase.NewAlertUseCase(alertRepo)
	deps.ProductUC = usecase.NewProductUseCase(productRepo)
	deps.WarehouseUC = usecase.NewWarehouseUseCase(warehouseRepo)
	deps.RecipeUC = usecase.NewRecipeUseCase(txRunner, recipeRepo)
	deps.JWTSecret = cfg.JWT.Secret
	deps.JWTIssuer = cfg.JWT.Issuer
	deps.Logger = log.Component("http")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Stockify API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := pool.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

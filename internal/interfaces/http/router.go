package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Stockify-api/internal/application/inventory"
	"github.com/jhoicas/Stockify-api/internal/application/usecase"
	"github.com/jhoicas/Stockify-api/internal/application/valuation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger      *inventory.LedgerUseCase
	Movements   *inventory.MovementQueries
	Lots        *inventory.LotQueries
	Reconcile   *inventory.ReconcileUseCase
	Valuation   *valuation.UseCase
	AlertUC     *usecase.AlertUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	RecipeUC    *usecase.RecipeUseCase
	Idempotency IdempotencyStore // nil = sin idempotencia
	JWTSecret   string
	JWTIssuer   string
	Logger      zerolog.Logger
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer), RequestLogger(deps.Logger))
	idem := Idempotency(deps.Idempotency, deps.Logger)

	// Libro mayor
	inv := api.Group("/inventory")
	invHandler := NewInventoryHandler(deps.Ledger, deps.Movements, deps.Reconcile)
	inv.Post("/receipts", idem, invHandler.PostReceipt)
	inv.Post("/issues", idem, invHandler.PostIssue)
	inv.Post("/recipe-issues", idem, invHandler.PostRecipeIssue)
	inv.Post("/movements/:id/void", idem, invHandler.VoidMovement)
	inv.Get("/movements", invHandler.ListMovements)
	inv.Get("/movements/:id", invHandler.GetMovement)
	inv.Get("/lots/:id/movements", invHandler.ListLotMovements)
	inv.Get("/reconciliation", invHandler.Reconciliation)

	// Lotes (las rutas fijas antes de /:id)
	lots := api.Group("/lots")
	lotHandler := NewLotHandler(deps.Lots)
	lots.Get("/expiring", lotHandler.ListExpiring)
	lots.Get("/available/:productId", lotHandler.ListAvailable)
	lots.Get("/product/:productId", lotHandler.ListByProduct)
	lots.Get("/:id", lotHandler.GetByID)

	alerts := api.Group("/alerts")
	alertHandler := NewAlertHandler(deps.AlertUC)
	alerts.Get("/", alertHandler.List)
	alerts.Get("/product/:productId", alertHandler.ListByProduct)
	alerts.Patch("/:id/resolve", alertHandler.Resolve)

	vals := api.Group("/valuations")
	valHandler := NewValuationHandler(deps.Valuation)
	vals.Post("/", valHandler.Run)
	vals.Get("/", valHandler.List)
	vals.Get("/latest", valHandler.Latest)
	vals.Get("/methods", valHandler.Methods)
	vals.Get("/:id", valHandler.GetByID)
	vals.Patch("/:id/close", valHandler.Close)
	vals.Delete("/:id", valHandler.Delete)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	recipes := api.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:id", recipeHandler.GetByID)
}

package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/application/inventory"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// InventoryHandler maneja el libro mayor: entradas, salidas, anulaciones y consultas de movimientos.
type InventoryHandler struct {
	ledger    *inventory.LedgerUseCase
	queries   *inventory.MovementQueries
	reconcile *inventory.ReconcileUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, queries *inventory.MovementQueries, reconcile *inventory.ReconcileUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, queries: queries, reconcile: reconcile}
}

// PostReceipt godoc
// @Summary      Registrar entrada (crea un lote)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Clave de idempotencia"
// @Param        body  body  dto.ReceiptRequest  true  "product_id, warehouse_id, quantity, unit_cost"
// @Success      201   {object}  dto.ReceiptResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/receipts [post]
func (h *InventoryHandler) PostReceipt(c *fiber.Ctx) error {
	var in dto.ReceiptRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.ledger.PostReceipt(c.Context(), inventory.ReceiptInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		UnitCost:    in.UnitCost,
		Reason:      in.Reason,
		Source:      in.Source,
		UserID:      GetUserID(c),
		PurchasedAt: in.PurchasedAt,
		ExpiresAt:   in.ExpiresAt,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ReceiptResponse{
		Movement:    dto.NewMovementResponse(res.Movement),
		Lot:         dto.NewLotResponse(res.Lot),
		StockActual: res.StockActual,
	})
}

// PostIssue godoc
// @Summary      Registrar salida (asignación FIFO)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header  string  false  "Clave de idempotencia"
// @Param        body  body  dto.IssueRequest  true  "product_id, quantity"
// @Success      201   {object}  dto.IssueResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/issues [post]
func (h *InventoryHandler) PostIssue(c *fiber.Ctx) error {
	var in dto.IssueRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.ledger.PostIssue(c.Context(), inventory.IssueInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		Reason:      in.Reason,
		Source:      in.Source,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.IssueResponse{
		Movements:   dto.NewMovementList(res.Movements),
		StockActual: res.StockActual,
		Alert:       dto.NewAlertPtr(res.Alert),
	})
}

// PostRecipeIssue godoc
// @Summary      Salida por receta (todo o nada)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecipeIssueRequest  true  "recipe_id, portions"
// @Success      201   {object}  dto.RecipeIssueResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/recipe-issues [post]
func (h *InventoryHandler) PostRecipeIssue(c *fiber.Ctx) error {
	var in dto.RecipeIssueRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	res, err := h.ledger.PostRecipeIssue(c.Context(), inventory.RecipeIssueInput{
		RecipeID: in.RecipeID,
		Portions: in.Portions,
		UserID:   GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.RecipeIssueResponse{
		Movements: dto.NewMovementList(res.Movements),
		Alerts:    dto.NewAlertList(res.Alerts),
	})
}

// VoidMovement godoc
// @Summary      Anular movimiento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.VoidResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id}/void [post]
func (h *InventoryHandler) VoidMovement(c *fiber.Ctx) error {
	res, err := h.ledger.VoidMovement(c.Context(), c.Params("id"), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.VoidResponse{
		Movement:    dto.NewMovementResponse(res.Movement),
		StockActual: res.StockActual,
		Alert:       dto.NewAlertPtr(res.Alert),
	})
}

// ListMovements godoc
// @Summary      Listar movimientos con filtros
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        type          query  string  false  "RECEIPT | ISSUE"
// @Param        product_id    query  string  false  "Producto"
// @Param        warehouse_id  query  string  false  "Almacén"
// @Param        from          query  string  false  "Desde (RFC3339 o YYYY-MM-DD)"
// @Param        to            query  string  false  "Hasta (RFC3339 o YYYY-MM-DD)"
// @Param        limit         query  int     false  "Límite"  default(50)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	from, ok := parseTimeParam(c.Query("from"), false)
	if !ok {
		return badRequest(c, "VALIDATION", "from inválido")
	}
	to, ok := parseTimeParam(c.Query("to"), true)
	if !ok {
		return badRequest(c, "VALIDATION", "to inválido")
	}
	list, err := h.queries.List(c.Context(), repository.MovementFilter{
		Kind:        entity.MovementKind(c.Query("type")),
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		From:        from,
		To:          to,
		Limit:       c.QueryInt("limit", 0),
		Offset:      c.QueryInt("offset", 0),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewMovementList(list))
}

// GetMovement godoc
// @Summary      Obtener movimiento
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	m, err := h.queries.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewMovementResponse(m))
}

// ListLotMovements godoc
// @Summary      Movimientos de un lote
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/lots/{id}/movements [get]
func (h *InventoryHandler) ListLotMovements(c *fiber.Ctx) error {
	list, err := h.queries.ListByLot(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewMovementList(list))
}

// Reconciliation godoc
// @Summary      Conciliar stock_actual contra la suma de lotes
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory/reconciliation [get]
func (h *InventoryHandler) Reconciliation(c *fiber.Ctx) error {
	drifts, err := h.reconcile.Run(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":  len(drifts),
		"drifts": drifts,
	})
}

// parseTimeParam acepta RFC3339 o fecha simple. Una fecha simple en "to" cubre el día completo.
func parseTimeParam(raw string, endOfDay bool) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return nil, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, true
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/application/inventory"
)

// LotHandler consultas de lotes.
type LotHandler struct {
	q *inventory.LotQueries
}

func NewLotHandler(q *inventory.LotQueries) *LotHandler {
	return &LotHandler{q: q}
}

// GetByID godoc
// @Summary      Obtener lote
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lote"
// @Success      200  {object}  dto.LotResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lots/{id} [get]
func (h *LotHandler) GetByID(c *fiber.Ctx) error {
	lot, err := h.q.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewLotResponse(lot))
}

// ListAvailable godoc
// @Summary      Lotes disponibles en orden FIFO
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}  dto.LotResponse
// @Router       /api/lots/available/{productId} [get]
func (h *LotHandler) ListAvailable(c *fiber.Ctx) error {
	lots, err := h.q.ListAvailable(c.Context(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewLotList(lots))
}

// ListByProduct godoc
// @Summary      Todos los lotes de un producto con resumen
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductLotsResponse
// @Router       /api/lots/product/{productId} [get]
func (h *LotHandler) ListByProduct(c *fiber.Ctx) error {
	res, err := h.q.ListByProduct(c.Context(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ProductLotsResponse{
		ProductID:      res.ProductID,
		TotalAvailable: res.TotalAvailable,
		AverageCost:    res.AverageCost,
		Lots:           dto.NewLotList(res.Lots),
	})
}

// ListExpiring godoc
// @Summary      Lotes por vencer
// @Tags         lots
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Ventana en días"  default(7)
// @Success      200  {array}  dto.LotResponse
// @Router       /api/lots/expiring [get]
func (h *LotHandler) ListExpiring(c *fiber.Ctx) error {
	lots, err := h.q.ListExpiring(c.Context(), c.QueryInt("days", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewLotList(lots))
}

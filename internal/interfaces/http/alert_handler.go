package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stockify-api/internal/application/usecase"
)

// AlertHandler consulta y resolución de alertas de stock.
type AlertHandler struct {
	uc *usecase.AlertUseCase
}

func NewAlertHandler(uc *usecase.AlertUseCase) *AlertHandler {
	return &AlertHandler{uc: uc}
}

// List godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        pending  query  bool  false  "Solo pendientes"
// @Param        limit    query  int   false  "Límite"  default(20)
// @Param        offset   query  int   false  "Offset"  default(0)
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	page := pageParams(c)
	out, err := h.uc.List(c.Context(), c.QueryBool("pending", false), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByProduct godoc
// @Summary      Alertas de un producto
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {array}  dto.AlertResponse
// @Router       /api/alerts/product/{productId} [get]
func (h *AlertHandler) ListByProduct(c *fiber.Ctx) error {
	out, err := h.uc.ListByProduct(c.Context(), c.Params("productId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Resolver alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id}/resolve [patch]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	out, err := h.uc.Resolve(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/application/valuation"
)

// ValuationHandler periodos de valorización.
type ValuationHandler struct {
	uc *valuation.UseCase
}

func NewValuationHandler(uc *valuation.UseCase) *ValuationHandler {
	return &ValuationHandler{uc: uc}
}

// Run godoc
// @Summary      Calcular valorización de un periodo
// @Tags         valuations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RunValuationRequest  true  "period (YYYY-MM), method"
// @Success      201   {object}  dto.ValuationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/valuations [post]
func (h *ValuationHandler) Run(c *fiber.Ctx) error {
	var in dto.RunValuationRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	v, err := h.uc.Run(c.Context(), in.Period, in.Method, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewValuationResponse(v))
}

// List godoc
// @Summary      Listar valorizaciones
// @Tags         valuations
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.ValuationResponse
// @Router       /api/valuations [get]
func (h *ValuationHandler) List(c *fiber.Ctx) error {
	page := pageParams(c)
	list, err := h.uc.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewValuationList(list))
}

// Latest godoc
// @Summary      Última valorización
// @Tags         valuations
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ValuationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/valuations/latest [get]
func (h *ValuationHandler) Latest(c *fiber.Ctx) error {
	v, err := h.uc.Latest(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewValuationResponse(v))
}

// Methods godoc
// @Summary      Métodos de valorización soportados
// @Tags         valuations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/valuations/methods [get]
func (h *ValuationHandler) Methods(c *fiber.Ctx) error {
	return c.JSON(h.uc.Methods())
}

// GetByID godoc
// @Summary      Obtener valorización
// @Tags         valuations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.ValuationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/valuations/{id} [get]
func (h *ValuationHandler) GetByID(c *fiber.Ctx) error {
	v, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewValuationResponse(v))
}

// Close godoc
// @Summary      Cerrar periodo
// @Tags         valuations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID"
// @Param        body  body  dto.CloseValuationRequest  false  "Observaciones"
// @Success      200   {object}  dto.ValuationResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/valuations/{id}/close [patch]
func (h *ValuationHandler) Close(c *fiber.Ctx) error {
	var in dto.CloseValuationRequest
	if len(c.Body()) > 0 {
		if err := bind(c, &in); err != nil {
			return respondError(c, err)
		}
	}
	v, err := h.uc.Close(c.Context(), c.Params("id"), in.Observations)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewValuationResponse(v))
}

// Delete godoc
// @Summary      Eliminar periodo abierto
// @Tags         valuations
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/valuations/{id} [delete]
func (h *ValuationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

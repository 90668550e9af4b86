package http

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/domain"
)

var validate = validator.New()

type errorMapping struct {
	kind   error
	status int
	code   string
}

// Orden de evaluación: el primer centinela que coincida gana.
var errorTable = []errorMapping{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK"},
	{domain.ErrInsufficientLotQuantity, fiber.StatusConflict, "INSUFFICIENT_LOT_QUANTITY"},
	{domain.ErrStockAllocationFailed, fiber.StatusInternalServerError, "STOCK_ALLOCATION_FAILED"},
	{domain.ErrAlreadyVoided, fiber.StatusConflict, "ALREADY_VOIDED"},
	{domain.ErrOperationNotAllowed, fiber.StatusForbidden, "OPERATION_NOT_ALLOWED"},
	{domain.ErrInvalidReversal, fiber.StatusUnprocessableEntity, "INVALID_REVERSAL"},
	{domain.ErrConcurrentModification, fiber.StatusConflict, "CONCURRENT_MODIFICATION"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
}

// ErrorStatus traduce un error de dominio a status HTTP y código estable.
func ErrorStatus(err error) (int, string) {
	for _, m := range errorTable {
		if errors.Is(err, m.kind) {
			return m.status, m.code
		}
	}
	return fiber.StatusInternalServerError, "INTERNAL"
}

// respondError escribe dto.ErrorResponse. Los errores no clasificados no exponen su detalle.
func respondError(c *fiber.Ctx, err error) error {
	status, code := ErrorStatus(err)
	msg := err.Error()
	if code == "INTERNAL" {
		c.Locals(localError, err)
		msg = "error interno"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// bind parsea el cuerpo JSON y aplica las etiquetas validate del DTO.
// Devuelve un error de entrada inválida listo para respondError.
func bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return domain.Errorf(domain.ErrInvalidInput, "cuerpo inválido")
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, strings.ToLower(fe.Field())+" ("+fe.Tag()+")")
			}
			return domain.Errorf(domain.ErrInvalidInput, "campos inválidos: %s", strings.Join(fields, ", "))
		}
		return domain.Errorf(domain.ErrInvalidInput, "%s", err.Error())
	}
	return nil
}

// pageParams lee limit/offset con límites por defecto.
func pageParams(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	if p.Limit > 100 {
		p.Limit = 100
	}
	return p
}

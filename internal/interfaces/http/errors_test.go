package http

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Stockify-api/internal/domain"
)

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
		{domain.Errorf(domain.ErrInvalidInput, "cantidad"), fiber.StatusBadRequest, "VALIDATION"},
		{domain.Errorf(domain.ErrInsufficientStock, "Harina: 2 < 5"), fiber.StatusConflict, "INSUFFICIENT_STOCK"},
		{domain.ErrInsufficientLotQuantity, fiber.StatusConflict, "INSUFFICIENT_LOT_QUANTITY"},
		{domain.ErrStockAllocationFailed, fiber.StatusInternalServerError, "STOCK_ALLOCATION_FAILED"},
		{domain.ErrAlreadyVoided, fiber.StatusConflict, "ALREADY_VOIDED"},
		{domain.ErrOperationNotAllowed, fiber.StatusForbidden, "OPERATION_NOT_ALLOWED"},
		{domain.ErrInvalidReversal, fiber.StatusUnprocessableEntity, "INVALID_REVERSAL"},
		{fmt.Errorf("lot repo: %w", domain.ErrConcurrentModification), fiber.StatusConflict, "CONCURRENT_MODIFICATION"},
		{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE"},
		{errors.New("conexión rechazada"), fiber.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			status, code := ErrorStatus(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, code)
		})
	}
}

func TestParseTimeParam(t *testing.T) {
	v, ok := parseTimeParam("", false)
	assert.True(t, ok)
	assert.Nil(t, v)

	v, ok = parseTimeParam("2024-03-01", true)
	assert.True(t, ok)
	assert.Equal(t, 23, v.Hour())

	v, ok = parseTimeParam("2024-03-01T10:00:00Z", false)
	assert.True(t, ok)
	assert.Equal(t, 10, v.Hour())

	_, ok = parseTimeParam("ayer", false)
	assert.False(t, ok)
}

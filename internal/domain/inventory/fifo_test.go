package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func lot(id, available, cost string, day int) *entity.Lot {
	return &entity.Lot{
		ID:                id,
		UnitCost:          d(cost),
		InitialQuantity:   d(available),
		AvailableQuantity: d(available),
		PurchasedAt:       time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC),
	}
}

// Salida de 15 sobre lotes [10 @2000, 10 @2500]: toma 10 del primero y 5 del segundo.
func TestPlanFIFO_ConsumeEnOrdenCronologico(t *testing.T) {
	lots := []*entity.Lot{lot("a", "10", "2000", 1), lot("b", "10", "2500", 2)}

	allocs, remaining := inventory.PlanFIFO(lots, d("15"))

	require.Len(t, allocs, 2)
	assert.True(t, remaining.IsZero())
	assert.Equal(t, "a", allocs[0].Lot.ID)
	assert.True(t, allocs[0].Quantity.Equal(d("10")))
	assert.True(t, allocs[0].Cost().Equal(d("20000")))
	assert.Equal(t, "b", allocs[1].Lot.ID)
	assert.True(t, allocs[1].Quantity.Equal(d("5")))
	assert.True(t, allocs[1].Cost().Equal(d("12500")))
	// el plan no toca los lotes
	assert.True(t, lots[0].AvailableQuantity.Equal(d("10")))
}

func TestPlanFIFO_SaltaLotesAgotados(t *testing.T) {
	lots := []*entity.Lot{lot("a", "0", "1", 1), lot("b", "4", "3", 2)}

	allocs, remaining := inventory.PlanFIFO(lots, d("2"))

	require.Len(t, allocs, 1)
	assert.Equal(t, "b", allocs[0].Lot.ID)
	assert.True(t, remaining.IsZero())
}

func TestPlanFIFO_NoUsaLotesSobrantes(t *testing.T) {
	lots := []*entity.Lot{lot("a", "5", "1", 1), lot("b", "5", "1", 2)}

	allocs, _ := inventory.PlanFIFO(lots, d("5"))

	require.Len(t, allocs, 1)
	assert.Equal(t, "a", allocs[0].Lot.ID)
}

func TestPlanFIFO_FaltanteCuandoNoAlcanza(t *testing.T) {
	lots := []*entity.Lot{lot("a", "3", "1", 1), lot("b", "2.5", "1", 2)}

	allocs, remaining := inventory.PlanFIFO(lots, d("7"))

	require.Len(t, allocs, 2)
	assert.True(t, remaining.Equal(d("1.5")), "faltante: %s", remaining)
}

func TestPlanFIFO_SinLotes(t *testing.T) {
	allocs, remaining := inventory.PlanFIFO(nil, d("1"))
	assert.Empty(t, allocs)
	assert.True(t, remaining.Equal(d("1")))
}

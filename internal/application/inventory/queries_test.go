package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Stockify-api/internal/application/inventory"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

func TestMovementQueries_Filtros(t *testing.T) {
	h := newHarness(t)
	h.receive(t, testProduct, "10", "1000", 1)
	h.receive(t, testProduct2, "5", "8000", 2)
	_, err := h.issue(testProduct, "4")
	require.NoError(t, err)

	repos := h.store.repos()
	q := inventory.NewMovementQueries(repos.Movements, repos.Lots)
	ctx := context.Background()

	all, err := q.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	issues, err := q.List(ctx, repository.MovementFilter{Kind: entity.MovementIssue})
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, testProduct, issues[0].ProductID)

	byProduct, err := q.List(ctx, repository.MovementFilter{ProductID: testProduct2})
	require.NoError(t, err)
	assert.Len(t, byProduct, 1)

	_, err = q.List(ctx, repository.MovementFilter{Kind: "TRANSFER"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = q.List(ctx, repository.MovementFilter{From: &from, To: &to})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "rango invertido")
}

func TestMovementQueries_ListByLot(t *testing.T) {
	h := newHarness(t)
	rec := h.receive(t, testProduct, "10", "1000", 1)
	_, err := h.issue(testProduct, "3")
	require.NoError(t, err)

	repos := h.store.repos()
	q := inventory.NewMovementQueries(repos.Movements, repos.Lots)

	movs, err := q.ListByLot(context.Background(), rec.Lot.ID)
	require.NoError(t, err)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementIssue, movs[0].Kind, "más reciente primero")

	_, err = q.ListByLot(context.Background(), "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLotQueries_ResumenPorProducto(t *testing.T) {
	h := newHarness(t)
	h.receive(t, testProduct, "10", "1000", 1)
	h.receive(t, testProduct, "10", "3000", 2)
	_, err := h.issue(testProduct, "10")
	require.NoError(t, err)

	repos := h.store.repos()
	q := inventory.NewLotQueries(repos.Lots, repos.Products, 7)
	ctx := context.Background()

	res, err := q.ListByProduct(ctx, testProduct)
	require.NoError(t, err)
	assert.Len(t, res.Lots, 2, "incluye el lote agotado")
	assertDec(t, "10", res.TotalAvailable)
	assertDec(t, "3000", res.AverageCost)

	avail, err := q.ListAvailable(ctx, testProduct)
	require.NoError(t, err)
	require.Len(t, avail, 1)
	assertDec(t, "3000", avail[0].UnitCost)

	_, err = q.ListAvailable(ctx, "no-existe")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestLotQueries_PorVencer(t *testing.T) {
	h := newHarness(t)
	soon := time.Now().Add(72 * time.Hour)
	later := time.Now().Add(30 * 24 * time.Hour)
	for _, exp := range []*time.Time{&soon, &later} {
		_, err := h.ledger.PostReceipt(context.Background(), inventory.ReceiptInput{
			ProductID:   testProduct,
			WarehouseID: testWarehouse,
			Quantity:    dec("1"),
			UnitCost:    dec("100"),
			ExpiresAt:   exp,
		})
		require.NoError(t, err)
	}

	repos := h.store.repos()
	q := inventory.NewLotQueries(repos.Lots, repos.Products, 7)
	ctx := context.Background()

	lots, err := q.ListExpiring(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, lots, 1, "ventana por defecto de 7 días")

	lots, err = q.ListExpiring(ctx, 60)
	require.NoError(t, err)
	assert.Len(t, lots, 2)

	_, err = q.ListExpiring(ctx, -1)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestReconcile_DetectaDeriva(t *testing.T) {
	h := newHarness(t)
	h.receive(t, testProduct, "10", "1000", 1)

	uc := inventory.NewReconcileUseCase(h.store.repos().Products, zerolog.Nop())
	drifts, err := uc.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, drifts)

	p := h.store.products[testProduct]
	p.StockActual = dec("12")
	h.store.products[testProduct] = p

	drifts, err = uc.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, drifts, 1)
	assert.Equal(t, testProduct, drifts[0].ProductID)
	assertDec(t, "2", drifts[0].Diff)
}

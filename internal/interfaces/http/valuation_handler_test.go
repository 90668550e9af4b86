package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Stockify-api/internal/application/valuation"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Stockify-api/internal/interfaces/http"
)

type stubLots struct{ repository.LotRepository }

func (stubLots) SumInventoryValue(context.Context) (decimal.Decimal, error) {
	return decimal.NewFromInt(57500), nil
}

type stubMovements struct{ repository.MovementRepository }

func (stubMovements) SumIssueCost(context.Context, time.Time, time.Time) (decimal.Decimal, error) {
	return decimal.NewFromInt(32500), nil
}

type memValuations struct {
	repository.ValuationRepository
	items map[string]*entity.ValuationPeriod
}

func (m *memValuations) Create(_ context.Context, v *entity.ValuationPeriod) error {
	cp := *v
	m.items[v.ID] = &cp
	return nil
}

func (m *memValuations) GetByID(_ context.Context, id string) (*entity.ValuationPeriod, error) {
	v, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *memValuations) Close(_ context.Context, id, obs string) error {
	m.items[id].Closed = true
	m.items[id].Observations = obs
	return nil
}

func (m *memValuations) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func buildValuationApp() *fiber.App {
	uc := valuation.NewUseCase(&memValuations{items: map[string]*entity.ValuationPeriod{}}, stubLots{}, stubMovements{}, time.UTC, zerolog.Nop())
	h := apphttp.NewValuationHandler(uc)
	app := fiber.New()
	app.Post("/valuations", h.Run)
	app.Get("/valuations/methods", h.Methods)
	app.Get("/valuations/:id", h.GetByID)
	app.Patch("/valuations/:id/close", h.Close)
	app.Delete("/valuations/:id", h.Delete)
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func TestValuationHandler_Ciclo(t *testing.T) {
	app := buildValuationApp()

	status, body := call(t, app, http.MethodPost, "/valuations", `{"period":"2024-02","method":"FIFO"}`)
	require.Equal(t, http.StatusCreated, status)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "57500", body["inventory_value"])
	assert.Equal(t, false, body["closed"])

	status, body = call(t, app, http.MethodPatch, "/valuations/"+id+"/close", `{"observations":"Cierre febrero"}`)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["closed"])
	assert.Equal(t, "Cierre febrero", body["observations"])

	status, body = call(t, app, http.MethodPatch, "/valuations/"+id+"/close", "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "OPERATION_NOT_ALLOWED", body["code"])

	status, _ = call(t, app, http.MethodDelete, "/valuations/"+id, "")
	assert.Equal(t, http.StatusForbidden, status)
}

func TestValuationHandler_Validacion(t *testing.T) {
	app := buildValuationApp()

	status, body := call(t, app, http.MethodPost, "/valuations", `{"period":"2024-02","method":"LIFO"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, body = call(t, app, http.MethodPost, "/valuations", `{"period":"2024-13","method":"FIFO"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body["code"])

	status, body = call(t, app, http.MethodGet, "/valuations/no-existe", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])
}

func TestValuationHandler_Methods(t *testing.T) {
	app := buildValuationApp()
	req := httptest.NewRequest(http.MethodGet, "/valuations/methods", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var methods []string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&methods))
	assert.Equal(t, []string{"FIFO", "PROMEDIO_PONDERADO"}, methods)
}

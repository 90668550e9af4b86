package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Stockify-api/internal/application/dto"
	"github.com/jhoicas/Stockify-api/internal/application/inventory"
	"github.com/jhoicas/Stockify-api/internal/application/usecase"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

type memAlerts struct {
	repository.AlertRepository
	items map[string]*entity.Alert
}

func (m *memAlerts) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	a, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memAlerts) MarkResolved(_ context.Context, id string) error {
	m.items[id].Resolved = true
	return nil
}

func TestAlertUseCase_Resolve(t *testing.T) {
	repo := &memAlerts{items: map[string]*entity.Alert{"a1": {ID: "a1", ProductID: "p1", Priority: entity.PriorityHigh}}}
	uc := usecase.NewAlertUseCase(repo)
	ctx := context.Background()

	out, err := uc.Resolve(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, out.Resolved)
	assert.True(t, repo.items["a1"].Resolved)

	_, err = uc.Resolve(ctx, "a1")
	assert.True(t, errors.Is(err, domain.ErrOperationNotAllowed), "resolver dos veces no está permitido")

	_, err = uc.Resolve(ctx, "nada")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

type memProducts struct {
	repository.ProductRepository
	items map[string]*entity.Product
}

func (m *memProducts) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func (m *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProducts) Update(_ context.Context, p *entity.Product) error {
	cp := *p
	m.items[p.ID] = &cp
	return nil
}

func TestProductUseCase_StockNaceEnCeroYNoSeEdita(t *testing.T) {
	repo := &memProducts{items: map[string]*entity.Product{}}
	uc := usecase.NewProductUseCase(repo)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Harina", UnitMeasure: "kg", StockMinimo: decimal.NewFromInt(10)})
	require.NoError(t, err)
	assert.True(t, out.StockActual.IsZero())

	name := "Harina 000"
	upd, err := uc.Update(ctx, out.ID, dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Harina 000", upd.Name)
	assert.True(t, upd.StockActual.IsZero())

	neg := decimal.NewFromInt(-1)
	_, err = uc.Update(ctx, out.ID, dto.UpdateProductRequest{StockMinimo: &neg})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "X", UnitMeasure: "kg", StockMinimo: neg})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

type memRecipes struct {
	repository.RecipeRepository
	created []*entity.Recipe
}

func (m *memRecipes) Create(_ context.Context, r *entity.Recipe) error {
	m.created = append(m.created, r)
	return nil
}

type directTx struct{ repos inventory.Repos }

func (d directTx) Run(_ context.Context, fn func(inventory.Repos) error) error {
	return fn(d.repos)
}

func TestRecipeUseCase_Create(t *testing.T) {
	products := &memProducts{items: map[string]*entity.Product{
		"harina": {ID: "harina", Name: "Harina", UnitMeasure: "kg"},
	}}
	recipes := &memRecipes{}
	uc := usecase.NewRecipeUseCase(directTx{repos: inventory.Repos{Products: products, Recipes: recipes}}, recipes)
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateRecipeRequest{
		DishName:    "Pan",
		Ingredients: []dto.RecipeIngredientRequest{{ProductID: "harina", QtyPerPortion: decimal.RequireFromString("0.25")}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.BasePortions)
	require.Len(t, out.Ingredients, 1)
	assert.Equal(t, "kg", out.Ingredients[0].UnitMeasure, "hereda la unidad del producto")

	t.Run("ingrediente inexistente", func(t *testing.T) {
		_, err := uc.Create(ctx, dto.CreateRecipeRequest{
			DishName:    "Sopa",
			Ingredients: []dto.RecipeIngredientRequest{{ProductID: "nada", QtyPerPortion: decimal.NewFromInt(1)}},
		})
		assert.True(t, errors.Is(err, domain.ErrNotFound))
	})
	t.Run("cantidad no positiva", func(t *testing.T) {
		_, err := uc.Create(ctx, dto.CreateRecipeRequest{
			DishName:    "Sopa",
			Ingredients: []dto.RecipeIngredientRequest{{ProductID: "harina", QtyPerPortion: decimal.Zero}},
		})
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	})
	assert.Len(t, recipes.created, 1)
}

package inventory_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/application/inventory"
	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Stockify-api/internal/domain/inventory"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria con semántica de transacción: el TxRunner toma una foto
// antes de ejecutar y la restaura si la función devuelve error.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	lots       map[string]entity.Lot
	movements  map[string]entity.Movement
	movOrder   []string
	alerts     []entity.Alert
	recipes    map[string]entity.Recipe

	// duplicateLotCodes hace que los próximos N Create de lote choquen por código.
	duplicateLotCodes int
}

func newMemStore() *memStore {
	return &memStore{
		products:   map[string]entity.Product{},
		warehouses: map[string]entity.Warehouse{},
		lots:       map[string]entity.Lot{},
		movements:  map[string]entity.Movement{},
		recipes:    map[string]entity.Recipe{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.lots {
		c.lots[k] = v
	}
	for k, v := range s.movements {
		c.movements[k] = v
	}
	for k, v := range s.recipes {
		c.recipes[k] = v
	}
	c.movOrder = append([]string(nil), s.movOrder...)
	c.alerts = append([]entity.Alert(nil), s.alerts...)
	c.duplicateLotCodes = s.duplicateLotCodes
	return c
}

func (s *memStore) restore(from *memStore) { *s = *from }

func (s *memStore) repos() inventory.Repos {
	return inventory.Repos{
		Products:   &memProducts{s},
		Warehouses: &memWarehouses{s},
		Lots:       &memLots{s},
		Movements:  &memMovements{s},
		Alerts:     &memAlerts{s},
		Recipes:    &memRecipes{s},
	}
}

func (s *memStore) lotSum(productID string) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range s.lots {
		if l.ProductID == productID {
			sum = sum.Add(l.AvailableQuantity)
		}
	}
	return sum
}

// fakeTx serializa las transacciones (equivale al bloqueo por producto) y hace rollback en error.
type fakeTx struct {
	mu    sync.Mutex
	store *memStore
	// conflicts primeras N ejecuciones terminan en conflicto de concurrencia tras hacer rollback.
	conflicts int
	runs      int
}

func (f *fakeTx) Run(ctx context.Context, fn func(repos inventory.Repos) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.runs++
	snap := f.store.clone()
	err := fn(f.store.repos())
	if err == nil && f.conflicts > 0 {
		f.conflicts--
		err = domain.Errorf(domain.ErrConcurrentModification, "conflicto simulado")
	}
	if err != nil {
		f.store.restore(snap)
		return err
	}
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []inventory.AlertCreatedEvent
	err    error
}

func (p *fakePublisher) PublishAlertCreated(_ context.Context, ev inventory.AlertCreatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

// ── productos ────────────────────────────────────────────────────────────────

type memProducts struct{ s *memStore }

func (r *memProducts) Create(_ context.Context, p *entity.Product) error {
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *memProducts) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *memProducts) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *memProducts) Update(_ context.Context, p *entity.Product) error {
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockActual = cur.StockActual
	r.s.products[p.ID] = *p
	return nil
}

func (r *memProducts) AddStock(_ context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	p, ok := r.s.products[id]
	if !ok {
		return decimal.Zero, domain.ErrNotFound
	}
	next, err := domaininv.ApplyStockDelta(p.StockActual, delta)
	if err != nil {
		return decimal.Zero, err
	}
	p.StockActual = next
	r.s.products[id] = p
	return next, nil
}

func (r *memProducts) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return page(out, limit, offset), nil
}

func (r *memProducts) Delete(_ context.Context, id string) error {
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.products, id)
	return nil
}

func (r *memProducts) ListStockDrift(_ context.Context) ([]repository.StockDrift, error) {
	var out []repository.StockDrift
	for _, p := range r.s.products {
		sum := r.s.lotSum(p.ID)
		if !sum.Equal(p.StockActual) {
			out = append(out, repository.StockDrift{ProductID: p.ID, Name: p.Name, Cached: p.StockActual, LotSum: sum})
		}
	}
	return out, nil
}

// ── almacenes ────────────────────────────────────────────────────────────────

type memWarehouses struct{ s *memStore }

func (r *memWarehouses) Create(_ context.Context, w *entity.Warehouse) error {
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *memWarehouses) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &w, nil
}

func (r *memWarehouses) Update(_ context.Context, w *entity.Warehouse) error {
	r.s.warehouses[w.ID] = *w
	return nil
}

func (r *memWarehouses) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r.s.warehouses {
		w := w
		out = append(out, &w)
	}
	return page(out, limit, offset), nil
}

func (r *memWarehouses) Delete(_ context.Context, id string) error {
	delete(r.s.warehouses, id)
	return nil
}

// ── lotes ────────────────────────────────────────────────────────────────────

type memLots struct{ s *memStore }

func (r *memLots) Create(_ context.Context, l *entity.Lot) error {
	if r.s.duplicateLotCodes > 0 {
		r.s.duplicateLotCodes--
		return domain.ErrDuplicate
	}
	for _, other := range r.s.lots {
		if other.Code == l.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.lots[l.ID] = *l
	return nil
}

func (r *memLots) GetByID(_ context.Context, id string) (*entity.Lot, error) {
	l, ok := r.s.lots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &l, nil
}

func (r *memLots) GetForUpdate(ctx context.Context, id string) (*entity.Lot, error) {
	return r.GetByID(ctx, id)
}

func (r *memLots) sorted(keep func(entity.Lot) bool) []*entity.Lot {
	var out []*entity.Lot
	for _, l := range r.s.lots {
		if keep(l) {
			l := l
			out = append(out, &l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PurchasedAt.Equal(out[j].PurchasedAt) {
			return out[i].PurchasedAt.Before(out[j].PurchasedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (r *memLots) ListAvailable(_ context.Context, productID string) ([]*entity.Lot, error) {
	return r.sorted(func(l entity.Lot) bool {
		return l.ProductID == productID && l.AvailableQuantity.IsPositive()
	}), nil
}

func (r *memLots) Decrement(_ context.Context, lotID string, amount decimal.Decimal) error {
	l, ok := r.s.lots[lotID]
	if !ok {
		return domain.ErrNotFound
	}
	if amount.GreaterThan(l.AvailableQuantity) {
		return domain.ErrInsufficientLotQuantity
	}
	l.AvailableQuantity = l.AvailableQuantity.Sub(amount)
	l.Status = entity.StatusFor(l.AvailableQuantity)
	r.s.lots[lotID] = l
	return nil
}

func (r *memLots) Increment(_ context.Context, lotID string, amount decimal.Decimal) error {
	l, ok := r.s.lots[lotID]
	if !ok {
		return domain.ErrNotFound
	}
	next := l.AvailableQuantity.Add(amount)
	if next.GreaterThan(l.InitialQuantity) {
		return domain.ErrInvalidReversal
	}
	l.AvailableQuantity = next
	l.Status = entity.StatusFor(next)
	r.s.lots[lotID] = l
	return nil
}

func (r *memLots) ListByProduct(_ context.Context, productID string) ([]*entity.Lot, error) {
	return r.sorted(func(l entity.Lot) bool { return l.ProductID == productID }), nil
}

func (r *memLots) ListExpiring(_ context.Context, before time.Time) ([]*entity.Lot, error) {
	return r.sorted(func(l entity.Lot) bool {
		return l.ExpiresAt != nil && l.ExpiresAt.Before(before) && l.AvailableQuantity.IsPositive()
	}), nil
}

func (r *memLots) SumInventoryValue(_ context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, l := range r.s.lots {
		sum = sum.Add(l.AvailableQuantity.Mul(l.UnitCost))
	}
	return sum, nil
}

// ── movimientos ──────────────────────────────────────────────────────────────

type memMovements struct{ s *memStore }

func (r *memMovements) Create(_ context.Context, m *entity.Movement) error {
	if m.LotID == "" || !m.Kind.Valid() {
		return domain.ErrInvalidInput
	}
	r.s.movements[m.ID] = *m
	r.s.movOrder = append(r.s.movOrder, m.ID)
	return nil
}

func (r *memMovements) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	m, ok := r.s.movements[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &m, nil
}

func (r *memMovements) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	return r.GetByID(ctx, id)
}

func (r *memMovements) MarkVoided(_ context.Context, id, note string) error {
	m, ok := r.s.movements[id]
	if !ok {
		return domain.ErrNotFound
	}
	if m.Voided {
		return domain.ErrAlreadyVoided
	}
	m.Voided = true
	m.Reason = inventory.AppendVoidNote(m.Reason)
	r.s.movements[id] = m
	return nil
}

func (r *memMovements) List(_ context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for i := len(r.s.movOrder) - 1; i >= 0; i-- {
		m := r.s.movements[r.s.movOrder[i]]
		if (f.Kind != "" && m.Kind != f.Kind) ||
			(f.ProductID != "" && m.ProductID != f.ProductID) ||
			(f.WarehouseID != "" && m.WarehouseID != f.WarehouseID) ||
			(f.LotID != "" && m.LotID != f.LotID) ||
			(f.From != nil && m.OccurredAt.Before(*f.From)) ||
			(f.To != nil && !m.OccurredAt.Before(*f.To)) {
			continue
		}
		out = append(out, &m)
	}
	return page(out, f.Limit, f.Offset), nil
}

func (r *memMovements) SumIssueCost(_ context.Context, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, m := range r.s.movements {
		if m.Kind == entity.MovementIssue && !m.Voided && !m.OccurredAt.Before(from) && m.OccurredAt.Before(to) {
			sum = sum.Add(m.TotalCost)
		}
	}
	return sum, nil
}

// ── alertas y recetas ────────────────────────────────────────────────────────

type memAlerts struct{ s *memStore }

func (r *memAlerts) Create(_ context.Context, a *entity.Alert) error {
	r.s.alerts = append(r.s.alerts, *a)
	return nil
}

func (r *memAlerts) GetByID(_ context.Context, id string) (*entity.Alert, error) {
	for _, a := range r.s.alerts {
		if a.ID == id {
			a := a
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memAlerts) List(_ context.Context, onlyPending bool, limit, offset int) ([]*entity.Alert, error) {
	var out []*entity.Alert
	for _, a := range r.s.alerts {
		if onlyPending && a.Resolved {
			continue
		}
		a := a
		out = append(out, &a)
	}
	return page(out, limit, offset), nil
}

func (r *memAlerts) ListByProduct(_ context.Context, productID string) ([]*entity.Alert, error) {
	var out []*entity.Alert
	for _, a := range r.s.alerts {
		if a.ProductID == productID {
			a := a
			out = append(out, &a)
		}
	}
	return out, nil
}

func (r *memAlerts) MarkResolved(_ context.Context, id string) error {
	for i := range r.s.alerts {
		if r.s.alerts[i].ID == id {
			r.s.alerts[i].Resolved = true
			return nil
		}
	}
	return domain.ErrNotFound
}

type memRecipes struct{ s *memStore }

func (r *memRecipes) Create(_ context.Context, rec *entity.Recipe) error {
	r.s.recipes[rec.ID] = *rec
	return nil
}

func (r *memRecipes) GetByID(_ context.Context, id string) (*entity.Recipe, error) {
	rec, ok := r.s.recipes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &rec, nil
}

func (r *memRecipes) List(_ context.Context, limit, offset int) ([]*entity.Recipe, error) {
	var out []*entity.Recipe
	for _, rec := range r.s.recipes {
		rec := rec
		out = append(out, &rec)
	}
	return page(out, limit, offset), nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

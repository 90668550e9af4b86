package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

const lotColumns = `id, product_id, warehouse_id, code, unit_cost, total_cost, initial_quantity,
	available_quantity, purchased_at, expires_at, status, created_at`

// LotRepo Lot Store sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

func scanLot(row pgx.Row) (*entity.Lot, error) {
	var l entity.Lot
	err := row.Scan(&l.ID, &l.ProductID, &l.WarehouseID, &l.Code, &l.UnitCost, &l.TotalCost,
		&l.InitialQuantity, &l.AvailableQuantity, &l.PurchasedAt, &l.ExpiresAt, &l.Status, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *LotRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Lot, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()
	var list []*entity.Lot
	for rows.Next() {
		l, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		list = append(list, l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(op, err)
	}
	return list, nil
}

// Create persiste el lote. Un código repetido devuelve domain.ErrDuplicate sin abortar la transacción.
func (r *LotRepo) Create(ctx context.Context, lot *entity.Lot) error {
	var id string
	err := r.q.QueryRow(ctx, `
		INSERT INTO lots (`+lotColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (code) DO NOTHING
		RETURNING id`,
		lot.ID, lot.ProductID, lot.WarehouseID, lot.Code, lot.UnitCost, lot.TotalCost,
		lot.InitialQuantity, lot.AvailableQuantity, lot.PurchasedAt, lot.ExpiresAt, lot.Status, lot.CreatedAt,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Errorf(domain.ErrDuplicate, "código de lote %s repetido", lot.Code)
	}
	return mapError("insert lot", err)
}

// GetByID obtiene un lote por ID.
func (r *LotRepo) GetByID(ctx context.Context, id string) (*entity.Lot, error) {
	l, err := scanLot(r.q.QueryRow(ctx, `SELECT `+lotColumns+` FROM lots WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("get lot", err)
	}
	return l, nil
}

// GetForUpdate obtiene el lote bloqueando su fila.
func (r *LotRepo) GetForUpdate(ctx context.Context, id string) (*entity.Lot, error) {
	l, err := scanLot(r.q.QueryRow(ctx, `SELECT `+lotColumns+` FROM lots WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, mapError("lock lot", err)
	}
	return l, nil
}

// ListAvailable lotes con saldo en orden FIFO, bloqueados hasta el fin de la transacción.
func (r *LotRepo) ListAvailable(ctx context.Context, productID string) ([]*entity.Lot, error) {
	return r.list(ctx, "list available lots", `
		SELECT `+lotColumns+` FROM lots
		WHERE product_id = $1 AND available_quantity > 0
		ORDER BY purchased_at ASC, id ASC
		FOR UPDATE`, productID)
}

// Decrement resta amount con un UPDATE condicional; si otra transacción consumió el saldo no hay filas.
func (r *LotRepo) Decrement(ctx context.Context, lotID string, amount decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE lots SET
			available_quantity = available_quantity - $2,
			status = CASE WHEN available_quantity - $2 > 0 THEN 'ACTIVE' ELSE 'DEPLETED' END
		WHERE id = $1 AND available_quantity >= $2`, lotID, amount)
	if err != nil {
		return mapError("decrement lot", err)
	}
	if cmd.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, lotID); err != nil {
			return err
		}
		return domain.Errorf(domain.ErrInsufficientLotQuantity, "el lote %s no tiene %s disponibles", lotID, amount.String())
	}
	return nil
}

// Increment repone amount sin superar la cantidad inicial (solo anulaciones).
func (r *LotRepo) Increment(ctx context.Context, lotID string, amount decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE lots SET available_quantity = available_quantity + $2, status = 'ACTIVE'
		WHERE id = $1 AND available_quantity + $2 <= initial_quantity`, lotID, amount)
	if err != nil {
		return mapError("increment lot", err)
	}
	if cmd.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, lotID); err != nil {
			return err
		}
		return domain.Errorf(domain.ErrInvalidReversal, "reponer %s superaría la cantidad inicial del lote %s", amount.String(), lotID)
	}
	return nil
}

// ListByProduct todos los lotes del producto en orden FIFO.
func (r *LotRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Lot, error) {
	return r.list(ctx, "list lots by product", `
		SELECT `+lotColumns+` FROM lots WHERE product_id = $1 ORDER BY purchased_at ASC, id ASC`, productID)
}

// ListExpiring lotes con saldo que vencen antes de before, los más próximos primero.
func (r *LotRepo) ListExpiring(ctx context.Context, before time.Time) ([]*entity.Lot, error) {
	return r.list(ctx, "list expiring lots", `
		SELECT `+lotColumns+` FROM lots
		WHERE expires_at IS NOT NULL AND expires_at < $1 AND available_quantity > 0
		ORDER BY expires_at ASC, id ASC`, before)
}

// SumInventoryValue Σ(available_quantity * unit_cost).
func (r *LotRepo) SumInventoryValue(ctx context.Context) (decimal.Decimal, error) {
	var v decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(available_quantity * unit_cost), 0) FROM lots`).Scan(&v)
	if err != nil {
		return decimal.Zero, mapError("sum inventory value", err)
	}
	return v, nil
}

package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

const alertColumns = `id, product_id, message, priority, created_at, resolved`

// AlertRepo alertas de stock sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

func scanAlerts(rows pgx.Rows) ([]*entity.Alert, error) {
	defer rows.Close()
	var list []*entity.Alert
	for rows.Next() {
		var a entity.Alert
		if err := rows.Scan(&a.ID, &a.ProductID, &a.Message, &a.Priority, &a.CreatedAt, &a.Resolved); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Create persiste la alerta (misma transacción que el movimiento que la originó).
func (r *AlertRepo) Create(ctx context.Context, a *entity.Alert) error {
	_, err := r.q.Exec(ctx, `INSERT INTO alerts (`+alertColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.ProductID, a.Message, a.Priority, a.CreatedAt, a.Resolved)
	return mapError("insert alert", err)
}

// GetByID obtiene una alerta por ID.
func (r *AlertRepo) GetByID(ctx context.Context, id string) (*entity.Alert, error) {
	var a entity.Alert
	err := r.q.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id).
		Scan(&a.ID, &a.ProductID, &a.Message, &a.Priority, &a.CreatedAt, &a.Resolved)
	if err != nil {
		return nil, mapError("get alert", err)
	}
	return &a, nil
}

// List alertas recientes primero; onlyPending excluye las resueltas.
func (r *AlertRepo) List(ctx context.Context, onlyPending bool, limit, offset int) ([]*entity.Alert, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+alertColumns+` FROM alerts
		WHERE ($1 = FALSE OR resolved = FALSE)
		ORDER BY created_at DESC, id
		LIMIT $2 OFFSET $3`, onlyPending, limit, offset)
	if err != nil {
		return nil, mapError("list alerts", err)
	}
	return scanAlerts(rows)
}

// ListByProduct historial de alertas del producto.
func (r *AlertRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Alert, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+alertColumns+` FROM alerts WHERE product_id = $1 ORDER BY created_at DESC, id`, productID)
	if err != nil {
		return nil, mapError("list product alerts", err)
	}
	return scanAlerts(rows)
}

// MarkResolved marca la alerta como resuelta.
func (r *AlertRepo) MarkResolved(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE alerts SET resolved = TRUE WHERE id = $1`, id)
	if err != nil {
		return mapError("resolve alert", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

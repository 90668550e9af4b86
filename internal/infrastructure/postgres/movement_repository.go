package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementsTable = "movements"

var movementColumns = []string{
	"id", "type", "quantity", "unit_cost", "total_cost", "occurred_at", "reason", "source",
	"product_id", "warehouse_id", "lot_id", "user_id", "voided",
}

// movementRow fila de movements tal como la lee pgxscan.
type movementRow struct {
	ID          string          `db:"id"`
	Type        string          `db:"type"`
	Quantity    decimal.Decimal `db:"quantity"`
	UnitCost    decimal.Decimal `db:"unit_cost"`
	TotalCost   decimal.Decimal `db:"total_cost"`
	OccurredAt  time.Time       `db:"occurred_at"`
	Reason      string          `db:"reason"`
	Source      string          `db:"source"`
	ProductID   string          `db:"product_id"`
	WarehouseID string          `db:"warehouse_id"`
	LotID       string          `db:"lot_id"`
	UserID      *string         `db:"user_id"`
	Voided      bool            `db:"voided"`
}

func (m movementRow) toEntity() *entity.Movement {
	out := &entity.Movement{
		ID:          m.ID,
		Kind:        entity.MovementKind(m.Type),
		Quantity:    m.Quantity,
		UnitCost:    m.UnitCost,
		TotalCost:   m.TotalCost,
		OccurredAt:  m.OccurredAt,
		Reason:      m.Reason,
		Source:      m.Source,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		LotID:       m.LotID,
		Voided:      m.Voided,
	}
	if m.UserID != nil {
		out.UserID = *m.UserID
	}
	return out
}

// MovementRepo libro mayor sobre PostgreSQL. Las consultas se arman con squirrel.
type MovementRepo struct {
	q       Querier
	builder squirrel.StatementBuilderType
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{
		q:       q,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create publica un movimiento. Ambos tipos exigen lote.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	if !m.Kind.Valid() || m.LotID == "" {
		return domain.Errorf(domain.ErrInvalidInput, "movimiento %q sin lote o con tipo inválido", m.Kind)
	}
	userID := (*string)(nil)
	if m.UserID != "" {
		userID = &m.UserID
	}
	sql, args, err := r.builder.Insert(movementsTable).Columns(movementColumns...).Values(
		m.ID, string(m.Kind), m.Quantity, m.UnitCost, m.TotalCost, m.OccurredAt, m.Reason, m.Source,
		m.ProductID, m.WarehouseID, m.LotID, userID, m.Voided,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	_, err = r.q.Exec(ctx, sql, args...)
	return mapError("insert movement", err)
}

func (r *MovementRepo) get(ctx context.Context, id string, lock bool) (*entity.Movement, error) {
	q := r.builder.Select(movementColumns...).From(movementsTable).Where(squirrel.Eq{"id": id})
	if lock {
		q = q.Suffix("FOR UPDATE")
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var row movementRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.Errorf(domain.ErrNotFound, "movimiento %s no encontrado", id)
		}
		return nil, mapError("get movement", err)
	}
	return row.toEntity(), nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate obtiene el movimiento bloqueando su fila.
func (r *MovementRepo) GetForUpdate(ctx context.Context, id string) (*entity.Movement, error) {
	return r.get(ctx, id, true)
}

// MarkVoided marca el movimiento como anulado y añade note al motivo, una sola vez.
func (r *MovementRepo) MarkVoided(ctx context.Context, id, note string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE movements SET
			voided = TRUE,
			reason = CASE WHEN reason = '' THEN $2 ELSE reason || ' | ' || $2 END
		WHERE id = $1 AND voided = FALSE`, id, note)
	if err != nil {
		return mapError("void movement", err)
	}
	if cmd.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return domain.Errorf(domain.ErrAlreadyVoided, "el movimiento %s ya fue anulado", id)
	}
	return nil
}

// buildListQuery arma el SELECT con los filtros presentes; To es exclusivo.
func (r *MovementRepo) buildListQuery(f repository.MovementFilter) squirrel.SelectBuilder {
	q := r.builder.Select(movementColumns...).From(movementsTable)
	if f.Kind != "" {
		q = q.Where(squirrel.Eq{"type": string(f.Kind)})
	}
	if f.ProductID != "" {
		q = q.Where(squirrel.Eq{"product_id": f.ProductID})
	}
	if f.WarehouseID != "" {
		q = q.Where(squirrel.Eq{"warehouse_id": f.WarehouseID})
	}
	if f.LotID != "" {
		q = q.Where(squirrel.Eq{"lot_id": f.LotID})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"occurred_at": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.Lt{"occurred_at": *f.To})
	}
	q = q.OrderBy("occurred_at DESC", "id DESC")
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	return q
}

// List movimientos filtrados, del más reciente al más antiguo.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.Movement, error) {
	sql, args, err := r.buildListQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, mapError("list movements", err)
	}
	out := make([]*entity.Movement, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// SumIssueCost Σ total_cost de salidas no anuladas en [from, to).
func (r *MovementRepo) SumIssueCost(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	sql, args, err := r.builder.Select("COALESCE(SUM(total_cost), 0)").From(movementsTable).
		Where(squirrel.Eq{"type": string(entity.MovementIssue), "voided": false}).
		Where(squirrel.GtOrEq{"occurred_at": from}).
		Where(squirrel.Lt{"occurred_at": to}).
		ToSql()
	if err != nil {
		return decimal.Zero, fmt.Errorf("build query: %w", err)
	}
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&sum); err != nil {
		return decimal.Zero, mapError("sum issue cost", err)
	}
	return sum, nil
}

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

var _ repository.ValuationRepository = (*ValuationRepo)(nil)

const valuationsTable = "valuation_periods"

var valuationColumns = []string{
	"id", "period", "method", "inventory_value", "period_issue_cost", "observations", "created_by", "created_at", "closed",
}

type valuationRow struct {
	ID              string          `db:"id"`
	Period          string          `db:"period"`
	Method          string          `db:"method"`
	InventoryValue  decimal.Decimal `db:"inventory_value"`
	PeriodIssueCost decimal.Decimal `db:"period_issue_cost"`
	Observations    string          `db:"observations"`
	CreatedBy       *string         `db:"created_by"`
	CreatedAt       time.Time       `db:"created_at"`
	Closed          bool            `db:"closed"`
}

func (v valuationRow) toEntity() *entity.ValuationPeriod {
	out := &entity.ValuationPeriod{
		ID:              v.ID,
		Period:          v.Period,
		Method:          v.Method,
		InventoryValue:  v.InventoryValue,
		PeriodIssueCost: v.PeriodIssueCost,
		Observations:    v.Observations,
		CreatedAt:       v.CreatedAt,
		Closed:          v.Closed,
	}
	if v.CreatedBy != nil {
		out.CreatedBy = *v.CreatedBy
	}
	return out
}

// ValuationRepo periodos de valorización sobre PostgreSQL.
type ValuationRepo struct {
	q       Querier
	builder squirrel.StatementBuilderType
}

// NewValuationRepository construye el adaptador.
func NewValuationRepository(q Querier) *ValuationRepo {
	return &ValuationRepo{q: q, builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)}
}

// Create persiste el snapshot.
func (r *ValuationRepo) Create(ctx context.Context, v *entity.ValuationPeriod) error {
	createdBy := (*string)(nil)
	if v.CreatedBy != "" {
		createdBy = &v.CreatedBy
	}
	sql, args, err := r.builder.Insert(valuationsTable).Columns(valuationColumns...).Values(
		v.ID, v.Period, v.Method, v.InventoryValue, v.PeriodIssueCost, v.Observations, createdBy, v.CreatedAt, v.Closed,
	).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	_, err = r.q.Exec(ctx, sql, args...)
	return mapError("insert valuation", err)
}

func (r *ValuationRepo) getOne(ctx context.Context, q squirrel.SelectBuilder) (*entity.ValuationPeriod, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var row valuationRow
	if err := pgxscan.Get(ctx, r.q, &row, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.Errorf(domain.ErrNotFound, "valorización no encontrada")
		}
		return nil, mapError("get valuation", err)
	}
	return row.toEntity(), nil
}

// GetByID obtiene un periodo por ID.
func (r *ValuationRepo) GetByID(ctx context.Context, id string) (*entity.ValuationPeriod, error) {
	return r.getOne(ctx, r.builder.Select(valuationColumns...).From(valuationsTable).Where(squirrel.Eq{"id": id}))
}

// Latest última valorización generada.
func (r *ValuationRepo) Latest(ctx context.Context) (*entity.ValuationPeriod, error) {
	return r.getOne(ctx, r.builder.Select(valuationColumns...).From(valuationsTable).
		OrderBy("created_at DESC", "id DESC").Limit(1))
}

// List periodos, más recientes primero.
func (r *ValuationRepo) List(ctx context.Context, limit, offset int) ([]*entity.ValuationPeriod, error) {
	sql, args, err := r.builder.Select(valuationColumns...).From(valuationsTable).
		OrderBy("period DESC", "created_at DESC").
		Limit(uint64(limit)).Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []valuationRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, mapError("list valuations", err)
	}
	out := make([]*entity.ValuationPeriod, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toEntity())
	}
	return out, nil
}

// Close cierra el periodo solo si sigue abierto.
func (r *ValuationRepo) Close(ctx context.Context, id, observations string) error {
	sql, args, err := r.builder.Update(valuationsTable).
		Set("closed", true).
		Set("observations", observations).
		Where(squirrel.Eq{"id": id, "closed": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	cmd, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError("close valuation", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Errorf(domain.ErrOperationNotAllowed, "la valorización %s no existe o ya está cerrada", id)
	}
	return nil
}

// Delete elimina un periodo abierto.
func (r *ValuationRepo) Delete(ctx context.Context, id string) error {
	sql, args, err := r.builder.Delete(valuationsTable).Where(squirrel.Eq{"id": id, "closed": false}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	cmd, err := r.q.Exec(ctx, sql, args...)
	if err != nil {
		return mapError("delete valuation", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.Errorf(domain.ErrOperationNotAllowed, "la valorización %s no existe o está cerrada", id)
	}
	return nil
}

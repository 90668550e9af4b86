package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Stockify-api/internal/domain"
	"github.com/jhoicas/Stockify-api/internal/domain/entity"
	"github.com/jhoicas/Stockify-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, name, description, unit_measure, category, stock_minimo, stock_actual, active, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Name, &p.Description, &p.UnitMeasure, &p.Category,
		&p.StockMinimo, &p.StockActual, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un nuevo producto. stock_actual inicia en 0.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.UnitMeasure, product.Category,
		product.StockMinimo, product.Active, product.CreatedAt, product.UpdatedAt,
	)
	return mapError("insert product", err)
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		return nil, mapError("get product", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto bloqueando su fila hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, mapError("lock product", err)
	}
	return p, nil
}

// Update actualiza los datos maestros. No toca stock_actual (lo maneja el libro mayor).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, description = $3, unit_measure = $4, category = $5,
			stock_minimo = $6, active = $7, updated_at = $8
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.Name, product.Description, product.UnitMeasure, product.Category,
		product.StockMinimo, product.Active, product.UpdatedAt,
	)
	if err != nil {
		return mapError("update product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddStock aplica delta a stock_actual en la misma transacción que el cambio de lotes.
func (r *ProductRepo) AddStock(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error) {
	var stock decimal.Decimal
	err := r.q.QueryRow(ctx, `
		UPDATE products SET stock_actual = stock_actual + $2, updated_at = now()
		WHERE id = $1 AND stock_actual + $2 >= 0
		RETURNING stock_actual`, id, delta).Scan(&stock)
	if err == nil {
		return stock, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, mapError("add stock", err)
	}
	// sin filas: o no existe o el delta lo dejaría negativo
	if _, gerr := r.GetByID(ctx, id); gerr != nil {
		return decimal.Zero, gerr
	}
	return decimal.Zero, domain.Errorf(domain.ErrInsufficientStock, "el stock del producto %s no puede quedar negativo", id)
}

// List lista productos con paginación.
func (r *ProductRepo) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto sin lotes ni movimientos.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return mapError("delete product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListStockDrift productos cuyo stock_actual difiere de la suma de saldos de sus lotes.
func (r *ProductRepo) ListStockDrift(ctx context.Context) ([]repository.StockDrift, error) {
	rows, err := r.q.Query(ctx, `
		SELECT p.id, p.name, p.stock_actual, COALESCE(SUM(l.available_quantity), 0) AS lot_sum
		FROM products p
		LEFT JOIN lots l ON l.product_id = p.id
		GROUP BY p.id, p.name, p.stock_actual
		HAVING p.stock_actual <> COALESCE(SUM(l.available_quantity), 0)
		ORDER BY p.name`)
	if err != nil {
		return nil, fmt.Errorf("stock drift: %w", err)
	}
	defer rows.Close()
	var out []repository.StockDrift
	for rows.Next() {
		var d repository.StockDrift
		if err := rows.Scan(&d.ProductID, &d.Name, &d.Cached, &d.LotSum); err != nil {
			return nil, fmt.Errorf("scan stock drift: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

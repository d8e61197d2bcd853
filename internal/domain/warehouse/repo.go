package warehouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

/* Warehouses */

func (r *Repo) CreateWarehouse(ctx context.Context, name, location string) (*Warehouse, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO warehouses (name, location) VALUES ($1, $2)
		RETURNING id, name, location, created_at
	`, name, location)
	var w Warehouse
	if err := row.Scan(&w.ID, &w.Name, &w.Location, &w.CreatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *Repo) GetWarehouse(ctx context.Context, id int64) (*Warehouse, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, location, created_at FROM warehouses WHERE id = $1
	`, id)
	var w Warehouse
	if err := row.Scan(&w.ID, &w.Name, &w.Location, &w.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &w, nil
}

func (r *Repo) ListWarehouses(ctx context.Context) ([]Warehouse, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, location, created_at FROM warehouses ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Warehouse
	for rows.Next() {
		var w Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Location, &w.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *Repo) UpdateWarehouse(ctx context.Context, id int64, name, location string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE warehouses SET name = $2, location = $3 WHERE id = $1
	`, id, name, location)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWarehouseNotFound
	}
	return nil
}

func (r *Repo) DeleteWarehouse(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM warehouses WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrWarehouseNotFound
	}
	return nil
}

/* Stocks */

const stockCols = `s.id, s.warehouse_id, s.product_id, COALESCE(p.name, ''), s.quantity, s.min_quantity, s.updated_at`

func (r *Repo) CreateStock(ctx context.Context, warehouseID, productID int64, qty, minQty decimal.Decimal) (*Stock, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO stocks (warehouse_id, product_id, quantity, min_quantity)
		VALUES ($1, $2, $3, $4)
		RETURNING id, warehouse_id, product_id, '', quantity, min_quantity, updated_at
	`, warehouseID, productID, qty, minQty)
	return scanStock(row)
}

func (r *Repo) GetStock(ctx context.Context, id int64) (*Stock, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+stockCols+`
		FROM stocks s
		LEFT JOIN products p ON p.id = s.product_id
		WHERE s.id = $1
	`, id)
	s, err := scanStock(row)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, nil
	}
	return s, nil
}

// StockFilter — необязательные фильтры списка остатков (0/false — без фильтра).
type StockFilter struct {
	WarehouseID int64
	ProductID   int64
	LowOnly     bool
}

func (r *Repo) ListStocks(ctx context.Context, f StockFilter) ([]Stock, error) {
	q := `
		SELECT ` + stockCols + `
		FROM stocks s
		LEFT JOIN products p ON p.id = s.product_id
		WHERE TRUE
	`
	var args []any
	if f.WarehouseID > 0 {
		args = append(args, f.WarehouseID)
		q += fmt.Sprintf(" AND s.warehouse_id = $%d", len(args))
	}
	if f.ProductID > 0 {
		args = append(args, f.ProductID)
		q += fmt.Sprintf(" AND s.product_id = $%d", len(args))
	}
	if f.LowOnly {
		q += ` AND s.min_quantity > 0 AND s.quantity <= s.min_quantity`
	}
	q += ` ORDER BY s.warehouse_id, p.name`

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Stock
	for rows.Next() {
		var s Stock
		if err := rows.Scan(&s.ID, &s.WarehouseID, &s.ProductID, &s.Product, &s.Quantity, &s.MinQuantity, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) DeleteStock(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stocks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStockNotFound
	}
	return nil
}

// UpdateStockThreshold меняет только порог: количество правится исключительно
// движениями, чтобы журнал сходился с остатком.
func (r *Repo) UpdateStockThreshold(ctx context.Context, id int64, minQty decimal.Decimal) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE stocks SET min_quantity = $2, updated_at = now() WHERE id = $1
	`, id, minQty)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrStockNotFound
	}
	return nil
}

/* Movements */

// CreateMovement применяет движение к остатку и пишет его историю одной
// транзакцией; расход ниже нуля отклоняется условием UPDATE.
func (r *Repo) CreateMovement(ctx context.Context, stockID int64, typ MovementType, qty decimal.Decimal, note string) (*StockMovement, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var tagQuery string
	if typ == MovementIn {
		tagQuery = `UPDATE stocks SET quantity = quantity + $2, updated_at = now() WHERE id = $1`
	} else {
		tagQuery = `UPDATE stocks SET quantity = quantity - $2, updated_at = now() WHERE id = $1 AND quantity >= $2`
	}
	tag, err := tx.Exec(ctx, tagQuery, stockID, qty)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		var available decimal.Decimal
		err := r.pool.QueryRow(ctx, `SELECT quantity FROM stocks WHERE id = $1`, stockID).Scan(&available)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStockNotFound
		}
		if err != nil {
			return nil, err
		}
		return nil, &InsufficientStockError{Available: available}
	}

	var m StockMovement
	if err = tx.QueryRow(ctx, `
		INSERT INTO stock_movements (stock_id, type, quantity, note)
		VALUES ($1, $2, $3, $4)
		RETURNING id, stock_id, type, quantity, note, created_at
	`, stockID, string(typ), qty, note).Scan(
		&m.ID, &m.StockID, &m.Type, &m.Quantity, &m.Note, &m.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &m, nil
}

// MovementFilter — необязательные фильтры истории движений.
type MovementFilter struct {
	StockID int64
	Type    string
	Limit   int
}

// ListMovements — история движений, свежие сверху.
func (r *Repo) ListMovements(ctx context.Context, f MovementFilter) ([]StockMovement, error) {
	q := `
		SELECT id, stock_id, type, quantity, note, created_at
		FROM stock_movements
		WHERE TRUE
	`
	var args []any
	if f.StockID > 0 {
		args = append(args, f.StockID)
		q += fmt.Sprintf(" AND stock_id = $%d", len(args))
	}
	if ValidMovementType(f.Type) {
		args = append(args, f.Type)
		q += fmt.Sprintf(" AND type = $%d", len(args))
	}
	limit := f.Limit
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	args = append(args, limit)
	q += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []StockMovement
	for rows.Next() {
		var m StockMovement
		if err := rows.Scan(&m.ID, &m.StockID, &m.Type, &m.Quantity, &m.Note, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanStock(row pgx.Row) (*Stock, error) {
	var s Stock
	if err := row.Scan(&s.ID, &s.WarehouseID, &s.ProductID, &s.Product, &s.Quantity, &s.MinQuantity, &s.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

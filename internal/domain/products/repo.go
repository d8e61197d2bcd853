package products

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

/* Categories */

func (r *Repo) CreateCategory(ctx context.Context, name, description string) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO categories (name, description) VALUES ($1, $2)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name, description, created_at
	`, name, description)
	var c Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// уже есть — вернём существующую
		return r.GetCategoryByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repo) GetCategoryByName(ctx context.Context, name string) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, created_at FROM categories WHERE name = $1
	`, name)
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repo) GetCategoryByID(ctx context.Context, id int64) (*Category, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, created_at FROM categories WHERE id = $1
	`, id)
	var c Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repo) ListCategories(ctx context.Context) ([]Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, created_at FROM categories ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CountProducts — число товаров в категории (для списка /categories).
func (r *Repo) CountProducts(ctx context.Context, categoryID int64) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE category_id = $1`, categoryID).Scan(&n)
	return n, err
}

/* Products */

const productCols = `p.id, p.name, p.category_id, COALESCE(c.name,''), p.quantity, p.unit, p.min_quantity, p.is_active, p.created_at, p.updated_at`

func scanProduct(row pgx.Row) (*Product, error) {
	var p Product
	if err := row.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Category, &p.Quantity, &p.Unit, &p.MinQuantity, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Product, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+productCols+`
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.id = $1
	`, id)
	return scanProduct(row)
}

func (r *Repo) List(ctx context.Context, onlyActive bool) ([]Product, error) {
	q := `
		SELECT ` + productCols + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
	`
	if onlyActive {
		q += ` WHERE p.is_active`
	}
	q += ` ORDER BY c.name, p.name`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

// ListByCategory возвращает товары категории; onlyInStock отсекает нулевые остатки
// (используется в заявке — заказывать нечего, если остаток нулевой).
func (r *Repo) ListByCategory(ctx context.Context, categoryID int64, onlyInStock bool) ([]Product, error) {
	q := `
		SELECT ` + productCols + `
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.category_id = $1 AND p.is_active
	`
	if onlyInStock {
		q += ` AND p.quantity > 0`
	}
	q += ` ORDER BY p.name`

	rows, err := r.pool.Query(ctx, q, categoryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows)
}

func (r *Repo) SetMinQuantity(ctx context.Context, id int64, min decimal.Decimal) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE products SET min_quantity = $2, updated_at = now() WHERE id = $1
	`, id, min)
	return err
}

func (r *Repo) SetActive(ctx context.Context, id int64, active bool) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE products SET is_active = $2, updated_at = now() WHERE id = $1
	`, id, active)
	return err
}

func collectProducts(rows pgx.Rows) ([]Product, error) {
	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Category, &p.Quantity, &p.Unit, &p.MinQuantity, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

package inventory

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Spok95/warehouse-bot/internal/domain/products"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Increase — приход: увеличивает остаток и пишет запись журнала одной транзакцией.
func (r *Repo) Increase(ctx context.Context, productID int64, qty decimal.Decimal, actorID int64, note string) (*Transaction, error) {
	if !qty.IsPositive() {
		return nil, ErrNonPositive
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err = tx.Exec(ctx, `
		UPDATE products SET quantity = quantity + $2, updated_at = now() WHERE id = $1
	`, productID, qty); err != nil {
		return nil, err
	}

	var t Transaction
	if err = tx.QueryRow(ctx, `
		INSERT INTO transactions (product_id, type, quantity, performed_by, note)
		VALUES ($1, 'in', $2, $3, $4)
		RETURNING id, product_id, type, quantity, order_id, performed_by, note, created_at
	`, productID, qty, actorID, note).Scan(
		&t.ID, &t.ProductID, &t.Type, &t.Quantity, &t.OrderID, &t.PerformedBy, &t.Note, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err = tx.QueryRow(ctx, `SELECT name, unit FROM products WHERE id = $1`, productID).Scan(&t.Product, &t.Unit); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &t, nil
}

// Debit — условное списание внутри уже открытой транзакции. Достаточность
// зашита в условие UPDATE: два конкурентных списания не могут оба пройти по
// устаревшему остатку и увести количество в минус. Ноль затронутых строк
// означает нехватку: состояние не меняется, наружу уходит
// InsufficientStockError с текущим остатком. Единственный путь расхода:
// и ручное списание, и выдача по заявке проходят здесь.
func Debit(ctx context.Context, tx pgx.Tx, productID int64, qty decimal.Decimal, actorID int64, orderID *int64, note string) (*Transaction, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE products SET quantity = quantity - $2, updated_at = now()
		WHERE id = $1 AND quantity >= $2
	`, productID, qty)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		var available decimal.Decimal
		if err := tx.QueryRow(ctx, `SELECT quantity FROM products WHERE id = $1`, productID).Scan(&available); err != nil {
			return nil, fmt.Errorf("product %d not found: %w", productID, err)
		}
		return nil, &InsufficientStockError{Available: available}
	}

	var t Transaction
	if err = tx.QueryRow(ctx, `
		INSERT INTO transactions (product_id, type, quantity, order_id, performed_by, note)
		VALUES ($1, 'out', $2, $3, $4, $5)
		RETURNING id, product_id, type, quantity, order_id, performed_by, note, created_at
	`, productID, qty, orderID, actorID, note).Scan(
		&t.ID, &t.ProductID, &t.Type, &t.Quantity, &t.OrderID, &t.PerformedBy, &t.Note, &t.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err = tx.QueryRow(ctx, `SELECT name, unit FROM products WHERE id = $1`, productID).Scan(&t.Product, &t.Unit); err != nil {
		return nil, err
	}
	return &t, nil
}

// Decrease — расход вне заявки (ручное списание) в собственной транзакции.
func (r *Repo) Decrease(ctx context.Context, productID int64, qty decimal.Decimal, actorID int64, note string) (*Transaction, error) {
	if !qty.IsPositive() {
		return nil, ErrNonPositive
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	t, err := Debit(ctx, tx, productID, qty, actorID, nil, note)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// CreateProduct заводит новый товар с начальным остатком и первичной записью
// журнала — товар не может появиться с количеством без прихода.
func (r *Repo) CreateProduct(ctx context.Context, name string, categoryID int64, qty decimal.Decimal, unit products.Unit, minQty decimal.Decimal, actorID int64) (*products.Product, error) {
	if qty.IsNegative() {
		return nil, ErrNonPositive
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var p products.Product
	if err = tx.QueryRow(ctx, `
		INSERT INTO products (name, category_id, quantity, unit, min_quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, category_id, quantity, unit, min_quantity, is_active, created_at, updated_at
	`, name, categoryID, qty, string(unit), minQty).Scan(
		&p.ID, &p.Name, &p.CategoryID, &p.Quantity, &p.Unit, &p.MinQuantity, &p.Active, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	if qty.IsPositive() {
		if _, err = tx.Exec(ctx, `
			INSERT INTO transactions (product_id, type, quantity, performed_by, note)
			VALUES ($1, 'in', $2, $3, 'первичный приход')
		`, p.ID, qty, actorID); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &p, nil
}

// History — последние записи журнала с именами товара и исполнителя.
func (r *Repo) History(ctx context.Context, limit int) ([]Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT t.id, t.product_id, p.name, p.unit, t.type, t.quantity,
		       t.order_id, t.performed_by, COALESCE(u.full_name, ''), t.note, t.created_at
		FROM transactions t
		JOIN products p ON p.id = t.product_id
		LEFT JOIN users u ON u.id = t.performed_by
		ORDER BY t.created_at DESC, t.id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		var t Transaction
		if err := rows.Scan(&t.ID, &t.ProductID, &t.Product, &t.Unit, &t.Type, &t.Quantity,
			&t.OrderID, &t.PerformedBy, &t.Performer, &t.Note, &t.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

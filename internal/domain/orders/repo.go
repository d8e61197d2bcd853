package orders

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Spok95/warehouse-bot/internal/domain/inventory"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const orderCols = `o.id, o.product_id, p.name, p.unit, o.quantity, o.note, o.status,
	o.requested_by, COALESCE(ru.full_name, ''), o.fulfilled_by, COALESCE(fu.full_name, ''),
	o.created_at, o.fulfilled_at`

const orderFrom = `
	FROM orders o
	JOIN products p ON p.id = o.product_id
	JOIN users ru ON ru.id = o.requested_by
	LEFT JOIN users fu ON fu.id = o.fulfilled_by`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	if err := row.Scan(&o.ID, &o.ProductID, &o.Product, &o.Unit, &o.Quantity, &o.Note, &o.Status,
		&o.RequestedBy, &o.Requester, &o.FulfilledBy, &o.Fulfiller, &o.CreatedAt, &o.FulfilledAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &o, nil
}

func (r *Repo) Create(ctx context.Context, productID int64, qty decimal.Decimal, note string, requestedBy int64) (*Order, error) {
	var id int64
	if err := r.pool.QueryRow(ctx, `
		INSERT INTO orders (product_id, quantity, note, status, requested_by)
		VALUES ($1, $2, $3, 'pending', $4)
		RETURNING id
	`, productID, qty, note, requestedBy).Scan(&id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Order, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+orderCols+orderFrom+` WHERE o.id = $1`, id)
	return scanOrder(row)
}

// Complete закрывает заявку и списывает остаток одной транзакцией.
// Смена статуса условная (status = 'pending'): из двух кладовщиков, жмущих
// «выполнить» одновременно, спишет товар только один, второй получит
// ErrAlreadyTerminal. Нехватка остатка откатывает и смену статуса.
func (r *Repo) Complete(ctx context.Context, id, fulfilledBy int64) (*Order, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var productID int64
	var qty decimal.Decimal
	err = tx.QueryRow(ctx, `
		UPDATE orders SET status = 'completed', fulfilled_by = $2, fulfilled_at = now()
		WHERE id = $1 AND status = 'pending'
		RETURNING product_id, quantity
	`, id, fulfilledBy).Scan(&productID, &qty)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAlreadyTerminal
	}
	if err != nil {
		return nil, err
	}

	if _, err = inventory.Debit(ctx, tx, productID, qty, fulfilledBy, &id, "выдача по заявке"); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// Cancel — отмена без движения остатков, тоже только из pending.
func (r *Repo) Cancel(ctx context.Context, id, cancelledBy int64) (*Order, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE orders SET status = 'cancelled', fulfilled_by = $2, fulfilled_at = now()
		WHERE id = $1 AND status = 'pending'
	`, id, cancelledBy)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrAlreadyTerminal
	}
	return r.GetByID(ctx, id)
}

// ListPending — открытые заявки, свежие сверху.
func (r *Repo) ListPending(ctx context.Context) ([]Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderCols+orderFrom+`
		WHERE o.status = 'pending'
		ORDER BY o.created_at DESC, o.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

// ListByRequester — последние заявки пользователя для /myorders.
func (r *Repo) ListByRequester(ctx context.Context, userID int64, limit int) ([]Order, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+orderCols+orderFrom+`
		WHERE o.requested_by = $1
		ORDER BY o.created_at DESC, o.id DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(rows)
}

func (r *Repo) CountPending(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM orders WHERE status = 'pending'`).Scan(&n)
	return n, err
}

func collectOrders(rows pgx.Rows) ([]Order, error) {
	var out []Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Product, &o.Unit, &o.Quantity, &o.Note, &o.Status,
			&o.RequestedBy, &o.Requester, &o.FulfilledBy, &o.Fulfiller, &o.CreatedAt, &o.FulfilledAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const userCols = `id, telegram_id, username, full_name, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FullName, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetByTelegramID(ctx context.Context, tgID int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE telegram_id = $1`, tgID)
	return scanUser(row)
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// UpsertFromTelegram создаёт пользователя при первом контакте (роль requester)
// и обновляет профиль при повторном; роль при апдейте не трогаем.
// Самый первый пользователь в системе автоматически становится админом.
func (r *Repo) UpsertFromTelegram(ctx context.Context, tg Telegram) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (telegram_id, username, full_name, role)
		VALUES ($1, $2, $3,
			CASE WHEN NOT EXISTS (SELECT 1 FROM users) THEN 'admin' ELSE 'requester' END)
		ON CONFLICT (telegram_id)
		DO UPDATE SET
			username   = EXCLUDED.username,
			full_name  = EXCLUDED.full_name,
			updated_at = now()
		RETURNING `+userCols, tg.ID, tg.Username, tg.FullName)
	return scanUser(row)
}

func (r *Repo) SetRole(ctx context.Context, id int64, role Role) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET role = $2, updated_at = now() WHERE id = $1
		RETURNING `+userCols, id, string(role))
	return scanUser(row)
}

func (r *Repo) SetActive(ctx context.Context, id int64, active bool) (*User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users SET is_active = $2, updated_at = now() WHERE id = $1
		RETURNING `+userCols, id, active)
	return scanUser(row)
}

// ListStaff возвращает активных кладовщиков и админов — получателей складских уведомлений.
func (r *Repo) ListStaff(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userCols+` FROM users
		WHERE role IN ('admin','warehouse') AND is_active
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *Repo) List(ctx context.Context, offset, limit int) ([]User, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+userCols+` FROM users ORDER BY id OFFSET $1 LIMIT $2`, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

// OrderStats считает заявки пользователя (всего / выполненных) для карточки в /users.
func (r *Repo) OrderStats(ctx context.Context, id int64) (total, completed int, err error) {
	err = r.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'completed')
		FROM orders WHERE requested_by = $1`, id).Scan(&total, &completed)
	return total, completed, err
}

func collect(rows pgx.Rows) ([]User, error) {
	var out []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.TelegramID, &u.Username, &u.FullName, &u.Role, &u.Active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

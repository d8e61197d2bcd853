package dialog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

func NewRepo(pool *pgxpool.Pool, ttl time.Duration) *Repo {
	return &Repo{pool: pool, ttl: ttl}
}

// Get возвращает состояние диалога; отсутствующая или протухшая строка
// трактуется как idle, чтобы брошенный позавчера сценарий не ловил
// сегодняшний ввод.
func (r *Repo) Get(ctx context.Context, chatID int64) (*Item, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT state, payload, updated_at FROM dialog_states WHERE chat_id = $1
	`, chatID)
	var state string
	var raw []byte
	var updatedAt time.Time
	if err := row.Scan(&state, &raw, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &Item{ChatID: chatID, State: StateIdle, Payload: Payload{}}, nil
		}
		return nil, err
	}
	var p Payload
	_ = json.Unmarshal(raw, &p)
	item := &Item{ChatID: chatID, State: State(state), Payload: p, UpdatedAt: updatedAt}
	if item.Stale(time.Now(), r.ttl) {
		_ = r.Reset(ctx, chatID)
		return &Item{ChatID: chatID, State: StateIdle, Payload: Payload{}}, nil
	}
	return item, nil
}

func (r *Repo) Set(ctx context.Context, chatID int64, state State, payload Payload) error {
	raw, _ := json.Marshal(payload)
	_, err := r.pool.Exec(ctx, `
		INSERT INTO dialog_states (chat_id, state, payload, updated_at)
		VALUES ($1,$2,$3,now())
		ON CONFLICT (chat_id) DO UPDATE SET
		  state=$2, payload=$3, updated_at=now()
	`, chatID, string(state), raw)
	return err
}

func (r *Repo) Reset(ctx context.Context, chatID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM dialog_states WHERE chat_id = $1`, chatID)
	return err
}

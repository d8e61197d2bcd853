package orders

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// IsTerminal — заявка закрыта и больше не меняется.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Label — статус для сообщений.
func (s Status) Label() string {
	switch s {
	case StatusPending:
		return "⏳ Ожидает"
	case StatusCompleted:
		return "✅ Выполнена"
	case StatusCancelled:
		return "❌ Отменена"
	}
	return string(s)
}

// Order — заявка на выдачу товара со склада.
type Order struct {
	ID          int64
	ProductID   int64
	Product     string // имя товара (для вывода)
	Unit        string
	Quantity    decimal.Decimal
	Note        string
	Status      Status
	RequestedBy int64
	Requester   string
	FulfilledBy *int64
	Fulfiller   string
	CreatedAt   time.Time
	FulfilledAt *time.Time
}

// ErrAlreadyTerminal — заявку уже закрыли (возможно, параллельно другой сотрудник).
var ErrAlreadyTerminal = errors.New("заявка уже закрыта")

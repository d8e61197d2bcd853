package inventory

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TxType string

const (
	TxIn  TxType = "in"
	TxOut TxType = "out"
)

// Transaction — запись журнала движений. Только добавляется, никогда не
// меняется и не удаляется: по сумме in минус out восстанавливается текущий остаток.
type Transaction struct {
	ID          int64
	ProductID   int64
	Product     string // имя товара (для вывода)
	Unit        string
	Type        TxType
	Quantity    decimal.Decimal
	OrderID     *int64
	PerformedBy *int64
	Performer   string
	Note        string
	CreatedAt   time.Time
}

var (
	ErrInvalidFormat = errors.New("неверный формат числа")
	ErrNonPositive   = errors.New("количество должно быть больше нуля")
	ErrTooLarge      = errors.New("слишком большое количество")
)

// InsufficientStockError — списание больше остатка; Available для подсказки пользователю.
type InsufficientStockError struct {
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("недостаточно товара, доступно %s", e.Available)
}

package warehouse

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Warehouse — физический склад для REST-учёта по местам хранения.
type Warehouse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CreatedAt time.Time `json:"created_at"`
}

// Stock — остаток товара на конкретном складе.
type Stock struct {
	ID          int64           `json:"id"`
	WarehouseID int64           `json:"warehouse_id"`
	ProductID   int64           `json:"product_id"`
	Product     string          `json:"product"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
	// MovementTransfer зарезервирован в схеме, движений этого типа пока никто не создаёт.
	MovementTransfer MovementType = "transfer"
)

// ValidMovementType — типы, принимаемые при создании движения.
func ValidMovementType(s string) bool {
	return s == string(MovementIn) || s == string(MovementOut)
}

// StockMovement — движение по складскому остатку; единственный способ
// изменить количество в Stock.
type StockMovement struct {
	ID        int64           `json:"id"`
	StockID   int64           `json:"stock_id"`
	Type      MovementType    `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"created_at"`
}

var (
	ErrStockNotFound     = errors.New("stock not found")
	ErrWarehouseNotFound = errors.New("warehouse not found")
)

// InsufficientStockError — расход превышает остаток на складе.
type InsufficientStockError struct {
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return "insufficient stock, available " + e.Available.String()
}

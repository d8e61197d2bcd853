package api

import "github.com/shopspring/decimal"

// ErrorResponse — единый формат ошибок API.
type ErrorResponse struct {
	Code      string           `json:"code"`
	Message   string           `json:"message"`
	Available *decimal.Decimal `json:"available,omitempty"` // для INSUFFICIENT_STOCK
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type CreateWarehouseRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type UpdateWarehouseRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type CreateStockRequest struct {
	WarehouseID int64           `json:"warehouse_id"`
	ProductID   int64           `json:"product_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
}

// UpdateStockRequest меняет только порог: количество правится движениями.
type UpdateStockRequest struct {
	MinQuantity decimal.Decimal `json:"min_quantity"`
}

type CreateMovementRequest struct {
	StockID  int64           `json:"stock_id"`
	Type     string          `json:"type"` // in | out
	Quantity decimal.Decimal `json:"quantity"`
	Note     string          `json:"note"`
}

package bot

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Spok95/warehouse-bot/internal/domain/inventory"
	"github.com/Spok95/warehouse-bot/internal/domain/orders"
	"github.com/Spok95/warehouse-bot/internal/domain/products"
	"github.com/Spok95/warehouse-bot/internal/domain/users"
)

func TestFormatStockList(t *testing.T) {
	list := []products.Product{
		{Name: "Гвозди", Category: "Крепёж", Quantity: decimal.RequireFromString("100"), Unit: products.UnitPcs},
		{Name: "Саморезы", Category: "Крепёж", Quantity: decimal.RequireFromString("3"), Unit: products.UnitPack,
			MinQuantity: decimal.RequireFromString("5")},
		{Name: "Краска", Category: "Отделка", Quantity: decimal.RequireFromString("12.5"), Unit: products.UnitL},
	}
	got := formatStockList(list)

	assert.Contains(t, got, "Крепёж:")
	assert.Contains(t, got, "Отделка:")
	assert.Contains(t, got, "Гвозди: 100 шт")
	assert.Contains(t, got, "Краска: 12.5 л")
	// позиция на пороге помечена
	assert.Contains(t, got, "Саморезы: 3 упак ⚠️ мало")
	assert.NotContains(t, got, "Гвозди: 100 шт ⚠️")
}

func TestFormatStockListEmpty(t *testing.T) {
	assert.Equal(t, "Склад пуст.", formatStockList(nil))
}

func TestFormatOrderCard(t *testing.T) {
	created := time.Date(2026, 8, 20, 14, 30, 0, 0, time.UTC)
	o := &orders.Order{
		ID: 7, Product: "Перчатки", Unit: "pack",
		Quantity:  decimal.RequireFromString("2"),
		Note:      "срочно",
		Status:    orders.StatusPending,
		Requester: "Иван Петров",
		CreatedAt: created,
	}
	got := formatOrderCard(o)
	assert.Contains(t, got, "Заявка #7")
	assert.Contains(t, got, "Перчатки")
	assert.Contains(t, got, "срочно")
	assert.Contains(t, got, "Иван Петров")
	assert.Contains(t, got, "⏳ Ожидает")
	assert.Contains(t, got, "20.08.2026 14:30")
	assert.NotContains(t, got, "Закрыта")
}

func TestFormatMyOrdersEmpty(t *testing.T) {
	assert.Equal(t, "У вас пока нет заявок.", formatMyOrders(nil))
}

func TestFormatHistory(t *testing.T) {
	when := time.Date(2026, 8, 21, 9, 0, 0, 0, time.UTC)
	list := []inventory.Transaction{
		{Type: inventory.TxIn, Product: "Гвозди", Unit: "pcs", Quantity: decimal.RequireFromString("50"),
			Performer: "Мария", Note: "приход", CreatedAt: when},
		{Type: inventory.TxOut, Product: "Краска", Unit: "l", Quantity: decimal.RequireFromString("2"), CreatedAt: when},
	}
	got := formatHistory(list)
	assert.Contains(t, got, "⬆️ приход")
	assert.Contains(t, got, "⬇️ расход")
	assert.Contains(t, got, "(Мария)")
	assert.Contains(t, got, "21.08 09:00")
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Иван", displayName(&users.User{FullName: "Иван"}))
	assert.Equal(t, "@ivan", displayName(&users.User{Username: "ivan"}))
	assert.Equal(t, "id42", displayName(&users.User{TelegramID: 42}))
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "админ", roleLabel(users.RoleAdmin))
	assert.Equal(t, "кладовщик", roleLabel(users.RoleWarehouse))
	assert.Equal(t, "заказчик", roleLabel(users.RoleRequester))
}

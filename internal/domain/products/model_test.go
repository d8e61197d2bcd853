package products

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsLowStock(t *testing.T) {
	p := func(qty, min string) *Product {
		return &Product{
			Quantity:    decimal.RequireFromString(qty),
			MinQuantity: decimal.RequireFromString(min),
		}
	}

	assert.True(t, p("5", "10").IsLowStock(), "остаток ниже порога")
	assert.True(t, p("10", "10").IsLowStock(), "остаток ровно на пороге")
	assert.False(t, p("11", "10").IsLowStock(), "остаток выше порога")
	assert.False(t, p("0", "0").IsLowStock(), "нулевой порог отключает контроль")
	assert.False(t, p("100", "0").IsLowStock())
}

func TestValidUnit(t *testing.T) {
	for _, u := range Units {
		assert.True(t, ValidUnit(string(u)))
	}
	assert.False(t, ValidUnit("tonna"))
	assert.False(t, ValidUnit(""))
}

func TestUnitLabel(t *testing.T) {
	assert.Equal(t, "кг", UnitKg.Label())
	assert.Equal(t, "шт", UnitPcs.Label())
	// неизвестная единица возвращается как есть
	assert.Equal(t, "xx", Unit("xx").Label())
}

package bot

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/warehouse-bot/internal/domain/inventory"
)

func TestCheckOrderQuantity(t *testing.T) {
	tests := []struct {
		name   string
		qty    string
		onHand string
		ok     bool
	}{
		{name: "меньше остатка", qty: "3", onHand: "5", ok: true},
		{name: "ровно остаток", qty: "5", onHand: "5", ok: true},
		{name: "больше остатка", qty: "5.5", onHand: "5", ok: false},
		{name: "пустой склад", qty: "0.001", onHand: "0", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkOrderQuantity(decimal.RequireFromString(tt.qty), decimal.RequireFromString(tt.onHand))
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			var insufficient *inventory.InsufficientStockError
			require.True(t, errors.As(err, &insufficient))
			assert.True(t, insufficient.Available.Equal(decimal.RequireFromString(tt.onHand)))
		})
	}
}

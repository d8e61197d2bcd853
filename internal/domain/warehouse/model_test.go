package warehouse

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestValidMovementType(t *testing.T) {
	assert.True(t, ValidMovementType("in"))
	assert.True(t, ValidMovementType("out"))
	assert.False(t, ValidMovementType("transfer"))
	assert.False(t, ValidMovementType(""))
}

func TestInsufficientStockError(t *testing.T) {
	err := &InsufficientStockError{Available: decimal.RequireFromString("7")}
	assert.Contains(t, err.Error(), "7")
}

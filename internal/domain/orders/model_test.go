package orders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "⏳ Ожидает", StatusPending.Label())
	assert.Equal(t, "✅ Выполнена", StatusCompleted.Label())
	assert.Equal(t, "❌ Отменена", StatusCancelled.Label())
	assert.Equal(t, "unknown", Status("unknown").Label())
}

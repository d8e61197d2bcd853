package dialog

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemStale(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	ttl := 24 * time.Hour

	fresh := &Item{State: StateOrdQty, UpdatedAt: now.Add(-time.Hour)}
	assert.False(t, fresh.Stale(now, ttl))

	old := &Item{State: StateOrdQty, UpdatedAt: now.Add(-25 * time.Hour)}
	assert.True(t, old.Stale(now, ttl))

	// idle не протухает: сбрасывать нечего
	idle := &Item{State: StateIdle, UpdatedAt: now.Add(-100 * time.Hour)}
	assert.False(t, idle.Stale(now, ttl))
}

func TestPayloadHelpers(t *testing.T) {
	p := Payload{"name": "Гвозди", "count": int64(5)}

	s, ok := GetString(p, "name")
	assert.True(t, ok)
	assert.Equal(t, "Гвозди", s)

	_, ok = GetString(p, "missing")
	assert.False(t, ok)

	n, ok := GetInt64(p, "count")
	assert.True(t, ok)
	assert.Equal(t, int64(5), n)
}

// после прохода через JSONB числа приходят как float64
func TestGetInt64AfterJSONRoundTrip(t *testing.T) {
	raw, err := json.Marshal(Payload{"cat_id": int64(17)})
	require.NoError(t, err)

	var p Payload
	require.NoError(t, json.Unmarshal(raw, &p))

	n, ok := GetInt64(p, "cat_id")
	assert.True(t, ok)
	assert.Equal(t, int64(17), n)
}

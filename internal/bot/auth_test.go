package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Spok95/warehouse-bot/internal/domain/users"
)

func user(role users.Role, active bool) *users.User {
	return &users.User{ID: 1, Role: role, Active: active}
}

func TestCanManageStock(t *testing.T) {
	assert.True(t, CanManageStock(user(users.RoleAdmin, true)).Allowed)
	assert.True(t, CanManageStock(user(users.RoleWarehouse, true)).Allowed)
	assert.False(t, CanManageStock(user(users.RoleRequester, true)).Allowed)
	assert.False(t, CanManageStock(user(users.RoleWarehouse, false)).Allowed)
	assert.False(t, CanManageStock(nil).Allowed)
}

func TestCanManageUsers(t *testing.T) {
	assert.True(t, CanManageUsers(user(users.RoleAdmin, true)).Allowed)
	assert.False(t, CanManageUsers(user(users.RoleWarehouse, true)).Allowed)
	assert.False(t, CanManageUsers(user(users.RoleRequester, true)).Allowed)
	assert.False(t, CanManageUsers(user(users.RoleAdmin, false)).Allowed)
}

func TestCanOrder(t *testing.T) {
	assert.True(t, CanOrder(user(users.RoleRequester, true)).Allowed)
	assert.True(t, CanOrder(user(users.RoleWarehouse, true)).Allowed)
	assert.True(t, CanOrder(user(users.RoleAdmin, true)).Allowed)
	assert.False(t, CanOrder(user(users.RoleRequester, false)).Allowed)
	assert.False(t, CanOrder(nil).Allowed)
}

func TestDenyReason(t *testing.T) {
	d := CanManageStock(user(users.RoleRequester, true))
	assert.False(t, d.Allowed)
	assert.NotEmpty(t, d.Reason)
}

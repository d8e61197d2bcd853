package users

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"
	RoleWarehouse Role = "warehouse"
	RoleRequester Role = "requester"
)

type User struct {
	ID         int64
	TelegramID int64
	Username   string
	FullName   string
	Role       Role
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsWarehouse — складские права есть у кладовщика и у админа.
func (u *User) IsWarehouse() bool {
	return u.Role == RoleAdmin || u.Role == RoleWarehouse
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type Telegram struct {
	ID       int64
	Username string
	FullName string
}

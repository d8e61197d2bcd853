package bot

import "github.com/Spok95/warehouse-bot/internal/domain/users"

// Decision — явный результат проверки доступа вместо разбросанных if-ов.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Reason: reason} }

// CanManageStock — приём товара, выдача, история, выгрузка.
func CanManageStock(u *users.User) Decision {
	if u == nil || !u.Active {
		return deny("Доступ заблокирован.")
	}
	if !u.IsWarehouse() {
		return deny("Доступно только кладовщику.")
	}
	return allow()
}

// CanManageOrders — просмотр, выполнение и отмена заявок.
func CanManageOrders(u *users.User) Decision {
	return CanManageStock(u)
}

// CanManageUsers — смена ролей и блокировка.
func CanManageUsers(u *users.User) Decision {
	if u == nil || !u.Active {
		return deny("Доступ заблокирован.")
	}
	if !u.IsAdmin() {
		return deny("Доступно только администратору.")
	}
	return allow()
}

// CanOrder — создание заявок; доступно всем активным ролям.
func CanOrder(u *users.User) Decision {
	if u == nil || !u.Active {
		return deny("Доступ заблокирован.")
	}
	return allow()
}

package bot

import (
	"fmt"
	"strings"

	"github.com/Spok95/warehouse-bot/internal/domain/inventory"
	"github.com/Spok95/warehouse-bot/internal/domain/orders"
	"github.com/Spok95/warehouse-bot/internal/domain/products"
	"github.com/Spok95/warehouse-bot/internal/domain/users"
)

func roleLabel(r users.Role) string {
	switch r {
	case users.RoleAdmin:
		return "админ"
	case users.RoleWarehouse:
		return "кладовщик"
	case users.RoleRequester:
		return "заказчик"
	}
	return string(r)
}

func displayName(u *users.User) string {
	if u.FullName != "" {
		return u.FullName
	}
	if u.Username != "" {
		return "@" + u.Username
	}
	return fmt.Sprintf("id%d", u.TelegramID)
}

// formatStockList группирует товары по категориям; позиции на пороге
// помечаются предупреждением.
func formatStockList(list []products.Product) string {
	if len(list) == 0 {
		return "Склад пуст."
	}
	var sb strings.Builder
	sb.WriteString("📦 Остатки на складе:\n")
	lastCat := ""
	for _, p := range list {
		cat := p.Category
		if cat == "" {
			cat = "Без категории"
		}
		if cat != lastCat {
			sb.WriteString("\n" + cat + ":\n")
			lastCat = cat
		}
		sb.WriteString(fmt.Sprintf("• %s: %s %s", p.Name, p.Quantity.String(), p.Unit.Label()))
		if p.IsLowStock() {
			sb.WriteString(" ⚠️ мало")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatOrderCard(o *orders.Order) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Заявка #%d\n", o.ID))
	sb.WriteString(fmt.Sprintf("Товар: %s\n", o.Product))
	sb.WriteString(fmt.Sprintf("Количество: %s %s\n", o.Quantity.String(), o.Unit))
	if o.Note != "" {
		sb.WriteString(fmt.Sprintf("Комментарий: %s\n", o.Note))
	}
	sb.WriteString(fmt.Sprintf("Заказчик: %s\n", o.Requester))
	sb.WriteString(fmt.Sprintf("Статус: %s\n", o.Status.Label()))
	sb.WriteString(fmt.Sprintf("Создана: %s", o.CreatedAt.Format("02.01.2006 15:04")))
	if o.FulfilledAt != nil {
		sb.WriteString(fmt.Sprintf("\nЗакрыта: %s (%s)", o.FulfilledAt.Format("02.01.2006 15:04"), o.Fulfiller))
	}
	return sb.String()
}

func formatMyOrders(list []orders.Order) string {
	if len(list) == 0 {
		return "У вас пока нет заявок."
	}
	var sb strings.Builder
	sb.WriteString("📋 Ваши заявки:\n\n")
	for _, o := range list {
		sb.WriteString(fmt.Sprintf("#%d %s — %s %s · %s\n",
			o.ID, o.Product, o.Quantity.String(), o.Unit, o.Status.Label()))
	}
	return sb.String()
}

func formatHistory(list []inventory.Transaction) string {
	if len(list) == 0 {
		return "Журнал пуст."
	}
	var sb strings.Builder
	sb.WriteString("🧾 Последние движения:\n\n")
	for _, t := range list {
		arrow := "⬆️ приход"
		if t.Type == inventory.TxOut {
			arrow = "⬇️ расход"
		}
		sb.WriteString(fmt.Sprintf("%s %s — %s %s · %s",
			t.CreatedAt.Format("02.01 15:04"), arrow, t.Quantity.String(), t.Unit, t.Product))
		if t.Performer != "" {
			sb.WriteString(" (" + t.Performer + ")")
		}
		if t.Note != "" {
			sb.WriteString(" — " + t.Note)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatUserCard(u *users.User, total, completed int) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %s\n", activeBadge(u.Active), displayName(u)))
	if u.Username != "" {
		sb.WriteString("@" + u.Username + "\n")
	}
	sb.WriteString(fmt.Sprintf("Роль: %s\n", roleLabel(u.Role)))
	sb.WriteString(fmt.Sprintf("Заявок: %d (выполнено %d)\n", total, completed))
	sb.WriteString(fmt.Sprintf("В системе с %s", u.CreatedAt.Format("02.01.2006")))
	return sb.String()
}

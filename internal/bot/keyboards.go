package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/warehouse-bot/internal/domain/orders"
	"github.com/Spok95/warehouse-bot/internal/domain/products"
	"github.com/Spok95/warehouse-bot/internal/domain/users"
)

// Кнопки нижнего меню. Тексты сравниваются в handleMenuButton как есть.
const (
	btnOrder    = "🛒 Создать заявку"
	btnMyOrders = "📋 Мои заявки"
	btnStock    = "📦 Остатки"
	btnAdd      = "➕ Принять товар"
	btnWriteOff = "➖ Списать товар"
	btnOrders   = "📬 Заявки"
	btnHistory  = "🧾 История"
	btnExport   = "⬇️ Выгрузить остатки"
	btnUsers    = "👥 Пользователи"
)

func requesterReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnOrder),
			tgbotapi.NewKeyboardButton(btnMyOrders),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnStock),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func warehouseReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAdd),
			tgbotapi.NewKeyboardButton(btnWriteOff),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnOrders),
			tgbotapi.NewKeyboardButton(btnStock),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnHistory),
			tgbotapi.NewKeyboardButton(btnExport),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func adminReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnAdd),
			tgbotapi.NewKeyboardButton(btnWriteOff),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnOrders),
			tgbotapi.NewKeyboardButton(btnStock),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnHistory),
			tgbotapi.NewKeyboardButton(btnExport),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(btnUsers),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}

func mainKeyboard(u *users.User) tgbotapi.ReplyKeyboardMarkup {
	switch {
	case u.IsAdmin():
		return adminReplyKeyboard()
	case u.IsWarehouse():
		return warehouseReplyKeyboard()
	}
	return requesterReplyKeyboard()
}

func cancelInlineKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Отмена", "cancel"),
		),
	)
}

// categoriesKeyboard: callback cb+":<id>", с кнопкой создания новой категории
// для кладовщика и кнопкой отмены.
func categoriesKeyboard(cats []products.Category, cb string, withNew bool) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(cats)+2)
	for _, c := range cats {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(c.Name, fmt.Sprintf("%s:%d", cb, c.ID)),
		))
	}
	if withNew {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Новая категория", "addnewcat"),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✖️ Отмена", "cancel"),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func productsKeyboard(list []products.Product, cb string, withNew bool) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(list)+2)
	for _, p := range list {
		label := fmt.Sprintf("%s (%s %s)", p.Name, p.Quantity.String(), p.Unit.Label())
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("%s:%d", cb, p.ID)),
		))
	}
	if withNew {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Новый товар", "addnewprod"),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✖️ Отмена", "cancel"),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func unitsKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(products.Units)/2+1)
	// по две единицы в ряд
	for i := 0; i < len(products.Units); i += 2 {
		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(products.Units[i].Label(), "unit:"+string(products.Units[i])),
		}
		if i+1 < len(products.Units) {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(products.Units[i+1].Label(), "unit:"+string(products.Units[i+1])))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("✖️ Отмена", "cancel"),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// productCardKeyboard — действия над товаром из карточки /products.
func productCardKeyboard(p *products.Product) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Изменить порог", fmt.Sprintf("setmin:%d", p.ID)),
		),
	}
	if p.Active {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🙈 Скрыть из каталога", fmt.Sprintf("hideprod:%d", p.ID)),
		))
	} else {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👁 Вернуть в каталог", fmt.Sprintf("showprod:%d", p.ID)),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// Больше 20 заявок в одну клавиатуру не кладём, остальное — текстом в шапке.
const maxOrderButtons = 20

func pendingOrdersKeyboard(list []orders.Order) tgbotapi.InlineKeyboardMarkup {
	n := len(list)
	if n > maxOrderButtons {
		n = maxOrderButtons
	}
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, n)
	for _, o := range list[:n] {
		label := fmt.Sprintf("#%d %s — %s %s (%s)", o.ID, o.Product, o.Quantity.String(), o.Unit, o.Requester)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("vieworder:%d", o.ID)),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func orderActionsKeyboard(orderID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Выполнить", fmt.Sprintf("complete:%d", orderID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отменить", fmt.Sprintf("cancelorder:%d", orderID)),
		),
	)
}

const usersPageSize = 10

func usersKeyboard(list []users.User, page, total int) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(list)+1)
	for _, u := range list {
		label := fmt.Sprintf("%s %s (%s)", activeBadge(u.Active), displayName(&u), roleLabel(u.Role))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("user:%d", u.ID)),
		))
	}
	var nav []tgbotapi.InlineKeyboardButton
	if page > 0 {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("⬅️", fmt.Sprintf("userspage:%d", page-1)))
	}
	if (page+1)*usersPageSize < total {
		nav = append(nav, tgbotapi.NewInlineKeyboardButtonData("➡️", fmt.Sprintf("userspage:%d", page+1)))
	}
	if len(nav) > 0 {
		rows = append(rows, nav)
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func userActionsKeyboard(u *users.User) tgbotapi.InlineKeyboardMarkup {
	roleRow := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("👑 Админ", fmt.Sprintf("setrole:%d:admin", u.ID)),
		tgbotapi.NewInlineKeyboardButtonData("📦 Кладовщик", fmt.Sprintf("setrole:%d:warehouse", u.ID)),
		tgbotapi.NewInlineKeyboardButtonData("🛒 Заказчик", fmt.Sprintf("setrole:%d:requester", u.ID)),
	)
	var blockRow []tgbotapi.InlineKeyboardButton
	if u.Active {
		blockRow = tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚫 Заблокировать", fmt.Sprintf("block:%d", u.ID)),
		)
	} else {
		blockRow = tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🟢 Разблокировать", fmt.Sprintf("unblock:%d", u.ID)),
		)
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{roleRow, blockRow}}
}

func activeBadge(active bool) string {
	if active {
		return "🟢"
	}
	return "🚫"
}

package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/warehouse-bot/internal/domain/inventory"
	"github.com/Spok95/warehouse-bot/internal/domain/orders"
	"github.com/Spok95/warehouse-bot/internal/domain/products"
	"github.com/Spok95/warehouse-bot/internal/domain/users"
	"github.com/Spok95/warehouse-bot/internal/infra/metrics"
)

/*** СКЛАД И ЗАЯВКИ (кладовщик) ***/

func (b *Bot) showStock(ctx context.Context, chatID int64) {
	list, err := b.products.List(ctx, true)
	if err != nil {
		b.log.Error("list products failed", "err", err)
		b.sendText(chatID, "Ошибка: не удалось получить остатки")
		return
	}
	b.sendText(chatID, formatStockList(list))
}

func (b *Bot) showMyOrders(ctx context.Context, u *users.User, chatID int64) {
	list, err := b.orders.ListByRequester(ctx, u.ID, myOrdersLimit)
	if err != nil {
		b.log.Error("list my orders failed", "err", err)
		b.sendText(chatID, "Ошибка: не удалось получить заявки")
		return
	}
	b.sendText(chatID, formatMyOrders(list))
}

func (b *Bot) showPendingOrders(ctx context.Context, u *users.User, chatID int64) {
	if d := CanManageOrders(u); !d.Allowed {
		b.sendText(chatID, d.Reason)
		return
	}
	list, err := b.orders.ListPending(ctx)
	if err != nil {
		b.log.Error("list pending orders failed", "err", err)
		b.sendText(chatID, "Ошибка: не удалось получить заявки")
		return
	}
	if len(list) == 0 {
		b.sendText(chatID, "Открытых заявок нет. 🎉")
		return
	}
	total, err := b.orders.CountPending(ctx)
	if err != nil {
		total = len(list)
	}
	text := fmt.Sprintf("📬 Открытых заявок: %d", total)
	if total > maxOrderButtons {
		text += fmt.Sprintf(" (показаны первые %d)", maxOrderButtons)
	}
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = pendingOrdersKeyboard(list)
	b.send(m)
}

func (b *Bot) viewOrder(ctx context.Context, u *users.User, cb *tgbotapi.CallbackQuery, orderID int64) {
	if d := CanManageOrders(u); !d.Allowed {
		_ = b.answerCallback(cb, d.Reason, true)
		return
	}
	o, err := b.orders.GetByID(ctx, orderID)
	if err != nil || o == nil {
		_ = b.answerCallback(cb, "Заявка не найдена", true)
		return
	}
	_ = b.answerCallback(cb, "", false)
	m := tgbotapi.NewMessage(cb.Message.Chat.ID, formatOrderCard(o))
	if o.Status == orders.StatusPending {
		m.ReplyMarkup = orderActionsKeyboard(o.ID)
	}
	b.send(m)
}

func (b *Bot) completeOrder(ctx context.Context, u *users.User, cb *tgbotapi.CallbackQuery, orderID int64) {
	if d := CanManageOrders(u); !d.Allowed {
		_ = b.answerCallback(cb, d.Reason, true)
		return
	}
	o, err := b.orders.Complete(ctx, orderID, u.ID)
	if err != nil {
		var insufficient *inventory.InsufficientStockError
		switch {
		case errors.Is(err, orders.ErrAlreadyTerminal):
			_ = b.answerCallback(cb, "Заявка уже закрыта", true)
		case errors.As(err, &insufficient):
			_ = b.answerCallback(cb, fmt.Sprintf("Недостаточно товара, доступно %s", insufficient.Available.String()), true)
		default:
			b.log.Error("complete order failed", "err", err, "order_id", orderID)
			_ = b.answerCallback(cb, "Ошибка, попробуйте позже", true)
		}
		return
	}
	metrics.OrdersCompleted.Inc()
	metrics.TransactionsTotal.WithLabelValues("out").Inc()
	_ = b.answerCallback(cb, "Выполнено", false)
	b.editTextAndClear(cb.Message.Chat.ID, cb.Message.MessageID, formatOrderCard(o))

	b.notifyUser(ctx, o.RequestedBy,
		fmt.Sprintf("✅ Ваша заявка #%d выполнена: %s — %s %s.", o.ID, o.Product, o.Quantity.String(), o.Unit))
	b.checkLowStock(ctx, o.ProductID)
}

func (b *Bot) cancelOrder(ctx context.Context, u *users.User, cb *tgbotapi.CallbackQuery, orderID int64) {
	if d := CanManageOrders(u); !d.Allowed {
		_ = b.answerCallback(cb, d.Reason, true)
		return
	}
	o, err := b.orders.Cancel(ctx, orderID, u.ID)
	if err != nil {
		if errors.Is(err, orders.ErrAlreadyTerminal) {
			_ = b.answerCallback(cb, "Заявка уже закрыта", true)
			return
		}
		b.log.Error("cancel order failed", "err", err, "order_id", orderID)
		_ = b.answerCallback(cb, "Ошибка, попробуйте позже", true)
		return
	}
	metrics.OrdersCancelled.Inc()
	_ = b.answerCallback(cb, "Отменено", false)
	b.editTextAndClear(cb.Message.Chat.ID, cb.Message.MessageID, formatOrderCard(o))

	b.notifyUser(ctx, o.RequestedBy,
		fmt.Sprintf("❌ Ваша заявка #%d отменена: %s — %s %s.", o.ID, o.Product, o.Quantity.String(), o.Unit))
}

func (b *Bot) showHistory(ctx context.Context, u *users.User, chatID int64) {
	if d := CanManageStock(u); !d.Allowed {
		b.sendText(chatID, d.Reason)
		return
	}
	list, err := b.inventory.History(ctx, historyLimit)
	if err != nil {
		b.log.Error("history failed", "err", err)
		b.sendText(chatID, "Ошибка: не удалось получить журнал")
		return
	}
	b.sendText(chatID, formatHistory(list))
}

func (b *Bot) showCategories(ctx context.Context, u *users.User, chatID int64) {
	if d := CanManageStock(u); !d.Allowed {
		b.sendText(chatID, d.Reason)
		return
	}
	cats, err := b.products.ListCategories(ctx)
	if err != nil {
		b.log.Error("list categories failed", "err", err)
		b.sendText(chatID, "Ошибка: не удалось получить категории")
		return
	}
	if len(cats) == 0 {
		b.sendText(chatID, "Категорий пока нет.")
		return
	}
	var sb strings.Builder
	sb.WriteString("🗂 Категории:\n\n")
	for _, c := range cats {
		n, err := b.products.CountProducts(ctx, c.ID)
		if err != nil {
			n = 0
		}
		sb.WriteString(fmt.Sprintf("• %s — %d товаров\n", c.Name, n))
	}
	b.sendText(chatID, sb.String())
}

// showProducts — полный список, включая скрытые позиции; по кнопке
// открывается карточка товара с действиями.
func (b *Bot) showProducts(ctx context.Context, u *users.User, chatID int64) {
	if d := CanManageStock(u); !d.Allowed {
		b.sendText(chatID, d.Reason)
		return
	}
	list, err := b.products.List(ctx, false)
	if err != nil {
		b.log.Error("list products failed", "err", err)
		b.sendText(chatID, "Ошибка: не удалось получить товары")
		return
	}
	if len(list) == 0 {
		b.sendText(chatID, "Товаров пока нет.")
		return
	}
	var sb strings.Builder
	sb.WriteString("📦 Товары:\n\n")
	for _, p := range list {
		sb.WriteString(fmt.Sprintf("#%d %s — %s %s", p.ID, p.Name, p.Quantity.String(), p.Unit.Label()))
		if p.IsLowStock() {
			sb.WriteString(" ⚠️")
		}
		if !p.Active {
			sb.WriteString(" (скрыт)")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\nВыберите товар, чтобы открыть карточку:")
	m := tgbotapi.NewMessage(chatID, sb.String())
	m.ReplyMarkup = productsKeyboard(capProducts(list), "prod", false)
	b.send(m)
}

// capProducts ограничивает клавиатуру теми же 20 кнопками, что и заявки.
func capProducts(list []products.Product) []products.Product {
	if len(list) > maxOrderButtons {
		return list[:maxOrderButtons]
	}
	return list
}

// checkLowStock шлёт предупреждение складским, если после списания
// остаток оказался на пороге или ниже.
func (b *Bot) checkLowStock(ctx context.Context, productID int64) {
	p, err := b.products.GetByID(ctx, productID)
	if err != nil || p == nil {
		return
	}
	if !p.IsLowStock() {
		return
	}
	b.notifyStaff(ctx, 0,
		fmt.Sprintf("⚠️ Заканчивается «%s»: осталось %s %s (порог %s).",
			p.Name, p.Quantity.String(), p.Unit.Label(), p.MinQuantity.String()))
}

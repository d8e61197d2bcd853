package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/shopspring/decimal"

	"github.com/Spok95/warehouse-bot/internal/dialog"
	"github.com/Spok95/warehouse-bot/internal/domain/inventory"
	"github.com/Spok95/warehouse-bot/internal/domain/users"
	"github.com/Spok95/warehouse-bot/internal/infra/metrics"
)

/*** ЗАЯВКА ***/

func (b *Bot) startOrderFlow(ctx context.Context, u *users.User, chatID int64) {
	if d := CanOrder(u); !d.Allowed {
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
		b.sendText(chatID, "Каталог пока пуст, заказывать нечего.")
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateOrdPickCat, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, "Новая заявка. Выберите категорию:")
	m.ReplyMarkup = categoriesKeyboard(cats, "ordcat", false)
	b.send(m)
}

func (b *Bot) orderPickCategory(ctx context.Context, chatID int64, msgID int, catID int64) {
	// показываем только то, что есть на складе
	list, err := b.products.ListByCategory(ctx, catID, true)
	if err != nil {
		b.log.Error("list products failed", "err", err)
		b.sendText(chatID, "Ошибка: не удалось получить товары")
		return
	}
	if len(list) == 0 {
		b.editTextAndClear(chatID, msgID, "В этой категории сейчас ничего нет в наличии.")
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateOrdPickProd, dialog.Payload{"cat_id": catID})
	b.editTextAndClear(chatID, msgID, "Категория: "+b.categoryName(ctx, catID))
	m := tgbotapi.NewMessage(chatID, "Выберите товар:")
	m.ReplyMarkup = productsKeyboard(list, "ordprod", false)
	b.send(m)
}

func (b *Bot) orderPickProduct(ctx context.Context, chatID int64, msgID int, prodID int64) {
	p, err := b.products.GetByID(ctx, prodID)
	if err != nil || p == nil {
		b.sendText(chatID, "Товар не найден, начните заново: /order")
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateOrdQty, dialog.Payload{"prod_id": prodID})
	b.editTextAndClear(chatID, msgID, fmt.Sprintf("%s, доступно %s %s.", p.Name, p.Quantity.String(), p.Unit.Label()))
	m := tgbotapi.NewMessage(chatID, "Сколько нужно? (например 5 или 2,5):")
	m.ReplyMarkup = cancelInlineKeyboard()
	b.send(m)
}

// checkOrderQuantity не даёт заказать больше, чем есть на складе.
func checkOrderQuantity(qty, onHand decimal.Decimal) error {
	if qty.GreaterThan(onHand) {
		return &inventory.InsufficientStockError{Available: onHand}
	}
	return nil
}

func (b *Bot) orderQuantity(ctx context.Context, chatID int64, text string, st *dialog.Item) {
	qty, err := inventory.ParseQuantity(text)
	if err != nil {
		b.sendText(chatID, quantityErrorText(err))
		return
	}
	prodID, ok := dialog.GetInt64(st.Payload, "prod_id")
	if !ok {
		b.sendText(chatID, "Сценарий сброшен, начните заново: /order")
		_ = b.states.Reset(ctx, chatID)
		return
	}
	p, err := b.products.GetByID(ctx, prodID)
	if err != nil || p == nil {
		b.sendText(chatID, "Товар не найден, начните заново: /order")
		_ = b.states.Reset(ctx, chatID)
		return
	}
	if err := checkOrderQuantity(qty, p.Quantity); err != nil {
		var insufficient *inventory.InsufficientStockError
		if errors.As(err, &insufficient) {
			b.sendText(chatID, fmt.Sprintf("Недостаточно товара: доступно %s %s. Введите другое количество:",
				insufficient.Available.String(), p.Unit.Label()))
		}
		return
	}
	st.Payload["qty"] = qty.String()
	_ = b.states.Set(ctx, chatID, dialog.StateOrdNote, st.Payload)
	m := tgbotapi.NewMessage(chatID, "Комментарий к заявке (или пропустите):")
	m.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➡️ Без комментария", "skipnote"),
		),
	)
	b.send(m)
}

func (b *Bot) orderNote(ctx context.Context, u *users.User, chatID int64, text string, st *dialog.Item) {
	note := strings.TrimSpace(text)
	// привычные отписки считаем отсутствием комментария
	if note == "нет" || note == "-" {
		note = ""
	}
	b.createOrder(ctx, u, chatID, st.Payload, note)
}

func (b *Bot) orderSkipNote(ctx context.Context, u *users.User, chatID int64, msgID int) {
	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("get dialog state failed", "err", err, "chat_id", chatID)
		b.sendText(chatID, "Ошибка, попробуйте ещё раз: /order")
		return
	}
	if st.State != dialog.StateOrdNote {
		b.sendText(chatID, "Сценарий сброшен, начните заново: /order")
		return
	}
	b.editTextAndClear(chatID, msgID, "Без комментария.")
	b.createOrder(ctx, u, chatID, st.Payload, "")
}

func (b *Bot) createOrder(ctx context.Context, u *users.User, chatID int64, p dialog.Payload, note string) {
	prodID, ok1 := dialog.GetInt64(p, "prod_id")
	qtyStr, ok2 := dialog.GetString(p, "qty")
	qty, err := inventory.ParseQuantity(qtyStr)
	if !ok1 || !ok2 || err != nil {
		b.sendText(chatID, "Сценарий сброшен, начните заново: /order")
		_ = b.states.Reset(ctx, chatID)
		return
	}

	o, err := b.orders.Create(ctx, prodID, qty, note, u.ID)
	if err != nil {
		b.log.Error("create order failed", "err", err, "product_id", prodID)
		b.sendText(chatID, "Ошибка: не удалось создать заявку")
		return
	}
	metrics.OrdersCreated.Inc()
	_ = b.states.Reset(ctx, chatID)
	b.sendText(chatID, fmt.Sprintf("✅ Заявка #%d создана: %s — %s %s.\nКладовщики получили уведомление.",
		o.ID, o.Product, o.Quantity.String(), o.Unit))

	b.notifyStaff(ctx, u.ID,
		fmt.Sprintf("🔔 Новая заявка #%d\n%s — %s %s\nЗаказчик: %s", o.ID, o.Product, o.Quantity.String(), o.Unit, o.Requester))
}

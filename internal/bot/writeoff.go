package bot

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/warehouse-bot/internal/dialog"
	"github.com/Spok95/warehouse-bot/internal/domain/inventory"
	"github.com/Spok95/warehouse-bot/internal/domain/users"
	"github.com/Spok95/warehouse-bot/internal/infra/metrics"
)

/*** СПИСАНИЕ ***/

func (b *Bot) startWriteOffFlow(ctx context.Context, u *users.User, chatID int64) {
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
		b.sendText(chatID, "Категорий пока нет, списывать нечего.")
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateOutPickCat, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, "Списание товара. Выберите категорию:")
	m.ReplyMarkup = categoriesKeyboard(cats, "outcat", false)
	b.send(m)
}

func (b *Bot) writeOffPickCategory(ctx context.Context, chatID int64, msgID int, catID int64) {
	// списывать можно только то, что есть в наличии
	list, err := b.products.ListByCategory(ctx, catID, true)
	if err != nil {
		b.log.Error("list products failed", "err", err)
		b.sendText(chatID, "Ошибка: не удалось получить товары")
		return
	}
	if len(list) == 0 {
		b.editTextAndClear(chatID, msgID, "В этой категории нет остатков для списания.")
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateOutPickProd, dialog.Payload{"cat_id": catID})
	b.editTextAndClear(chatID, msgID, "Категория: "+b.categoryName(ctx, catID))
	m := tgbotapi.NewMessage(chatID, "Что списываем?")
	m.ReplyMarkup = productsKeyboard(list, "outprod", false)
	b.send(m)
}

func (b *Bot) writeOffPickProduct(ctx context.Context, chatID int64, msgID int, prodID int64) {
	p, err := b.products.GetByID(ctx, prodID)
	if err != nil || p == nil {
		b.sendText(chatID, "Товар не найден, начните заново: /remove")
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateOutQty, dialog.Payload{"prod_id": prodID})
	b.editTextAndClear(chatID, msgID, fmt.Sprintf("%s, на складе %s %s.", p.Name, p.Quantity.String(), p.Unit.Label()))
	m := tgbotapi.NewMessage(chatID, "Сколько списать? (например 5 или 2,5):")
	m.ReplyMarkup = cancelInlineKeyboard()
	b.send(m)
}

func (b *Bot) writeOffQuantity(ctx context.Context, u *users.User, chatID int64, text string, st *dialog.Item) {
	qty, err := inventory.ParseQuantity(text)
	if err != nil {
		b.sendText(chatID, quantityErrorText(err))
		return
	}
	prodID, ok := dialog.GetInt64(st.Payload, "prod_id")
	if !ok {
		b.sendText(chatID, "Сценарий сброшен, начните заново: /remove")
		_ = b.states.Reset(ctx, chatID)
		return
	}

	t, err := b.inventory.Decrease(ctx, prodID, qty, u.ID, "списание")
	if err != nil {
		var insufficient *inventory.InsufficientStockError
		if errors.As(err, &insufficient) {
			b.sendText(chatID, fmt.Sprintf("Недостаточно товара: доступно %s. Введите другое количество:",
				insufficient.Available.String()))
			return
		}
		b.log.Error("decrease failed", "err", err, "product_id", prodID)
		b.sendText(chatID, "Ошибка: не удалось провести списание")
		return
	}
	metrics.TransactionsTotal.WithLabelValues("out").Inc()
	_ = b.states.Reset(ctx, chatID)
	b.sendText(chatID, fmt.Sprintf("✅ Списано: %s %s — %s", t.Quantity.String(), t.Unit, t.Product))
	b.checkLowStock(ctx, prodID)
}

// categoryName — имя категории для подписи шага; при ошибке просто номер.
func (b *Bot) categoryName(ctx context.Context, catID int64) string {
	c, err := b.products.GetCategoryByID(ctx, catID)
	if err != nil || c == nil {
		return fmt.Sprintf("#%d", catID)
	}
	return c.Name
}

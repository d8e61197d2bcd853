package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/warehouse-bot/internal/dialog"
	"github.com/Spok95/warehouse-bot/internal/domain/inventory"
	"github.com/Spok95/warehouse-bot/internal/domain/products"
	"github.com/Spok95/warehouse-bot/internal/domain/users"
	"github.com/Spok95/warehouse-bot/internal/infra/metrics"
)

/*** ПРИЁМ ТОВАРА ***/

func (b *Bot) startAddFlow(ctx context.Context, u *users.User, chatID int64) {
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
	_ = b.states.Set(ctx, chatID, dialog.StateAddPickCat, dialog.Payload{})
	m := tgbotapi.NewMessage(chatID, "Приём товара. Выберите категорию:")
	m.ReplyMarkup = categoriesKeyboard(cats, "addcat", true)
	b.send(m)
}

func (b *Bot) askNewCategoryName(ctx context.Context, chatID int64, msgID int) {
	_ = b.states.Set(ctx, chatID, dialog.StateAddNewCat, dialog.Payload{})
	b.editTextAndClear(chatID, msgID, "Введите название новой категории:")
}

func (b *Bot) addNewCategoryName(ctx context.Context, chatID int64, text string) {
	name := strings.TrimSpace(text)
	if len([]rune(name)) < 2 {
		b.sendText(chatID, "Название слишком короткое. Введите ещё раз:")
		return
	}
	cat, err := b.products.CreateCategory(ctx, name, "")
	if err != nil || cat == nil {
		b.log.Error("create category failed", "err", err)
		b.sendText(chatID, "Ошибка: не удалось создать категорию")
		return
	}
	b.addPickCategory(ctx, chatID, 0, cat.ID)
}

func (b *Bot) addPickCategory(ctx context.Context, chatID int64, msgID int, catID int64) {
	list, err := b.products.ListByCategory(ctx, catID, false)
	if err != nil {
		b.log.Error("list products failed", "err", err)
		b.sendText(chatID, "Ошибка: не удалось получить товары")
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateAddPickProd, dialog.Payload{"cat_id": catID})
	if msgID != 0 {
		b.editTextAndClear(chatID, msgID, "Категория: "+b.categoryName(ctx, catID))
	}
	m := tgbotapi.NewMessage(chatID, "Выберите товар или создайте новый:")
	m.ReplyMarkup = productsKeyboard(list, "addprod", true)
	b.send(m)
}

func (b *Bot) askNewProductName(ctx context.Context, chatID int64, msgID int) {
	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("get dialog state failed", "err", err, "chat_id", chatID)
		b.sendText(chatID, "Ошибка, попробуйте ещё раз: /add")
		return
	}
	catID, ok := dialog.GetInt64(st.Payload, "cat_id")
	if !ok {
		b.sendText(chatID, "Сценарий сброшен, начните заново: /add")
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateAddNewProd, dialog.Payload{"cat_id": catID})
	b.editTextAndClear(chatID, msgID, "Введите название нового товара:")
}

func (b *Bot) addNewProductName(ctx context.Context, chatID int64, text string, st *dialog.Item) {
	name := strings.TrimSpace(text)
	if len([]rune(name)) < 2 {
		b.sendText(chatID, "Название слишком короткое. Введите ещё раз:")
		return
	}
	catID, _ := dialog.GetInt64(st.Payload, "cat_id")
	_ = b.states.Set(ctx, chatID, dialog.StateAddQty, dialog.Payload{"cat_id": catID, "new_name": name})
	m := tgbotapi.NewMessage(chatID, "Введите количество (например 5 или 2,5):")
	m.ReplyMarkup = cancelInlineKeyboard()
	b.send(m)
}

func (b *Bot) addPickProduct(ctx context.Context, chatID int64, msgID int, prodID int64) {
	p, err := b.products.GetByID(ctx, prodID)
	if err != nil || p == nil {
		b.sendText(chatID, "Товар не найден, начните заново: /add")
		return
	}
	_ = b.states.Set(ctx, chatID, dialog.StateAddQty, dialog.Payload{"prod_id": prodID})
	b.editTextAndClear(chatID, msgID, fmt.Sprintf("%s, на складе %s %s.", p.Name, p.Quantity.String(), p.Unit.Label()))
	m := tgbotapi.NewMessage(chatID, "Введите количество прихода (например 5 или 2,5):")
	m.ReplyMarkup = cancelInlineKeyboard()
	b.send(m)
}

func (b *Bot) addQuantity(ctx context.Context, u *users.User, chatID int64, text string, st *dialog.Item) {
	qty, err := inventory.ParseQuantity(text)
	if err != nil {
		b.sendText(chatID, quantityErrorText(err))
		return
	}

	// существующий товар: сразу приход
	if prodID, ok := dialog.GetInt64(st.Payload, "prod_id"); ok {
		t, err := b.inventory.Increase(ctx, prodID, qty, u.ID, "приход")
		if err != nil {
			b.log.Error("increase failed", "err", err, "product_id", prodID)
			b.sendText(chatID, "Ошибка: не удалось провести приход")
			return
		}
		metrics.TransactionsTotal.WithLabelValues("in").Inc()
		_ = b.states.Reset(ctx, chatID)
		b.sendText(chatID, fmt.Sprintf("✅ Принято: %s %s — %s", t.Quantity.String(), t.Unit, t.Product))
		return
	}

	// новый товар: дальше единица измерения
	st.Payload["qty"] = qty.String()
	_ = b.states.Set(ctx, chatID, dialog.StateAddUnit, st.Payload)
	m := tgbotapi.NewMessage(chatID, "Выберите единицу измерения:")
	m.ReplyMarkup = unitsKeyboard()
	b.send(m)
}

func (b *Bot) addPickUnit(ctx context.Context, chatID int64, msgID int, unit string) {
	if !products.ValidUnit(unit) {
		b.sendText(chatID, "Неизвестная единица, выберите кнопкой.")
		return
	}
	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("get dialog state failed", "err", err, "chat_id", chatID)
		b.sendText(chatID, "Ошибка, попробуйте ещё раз: /add")
		return
	}
	if st.State != dialog.StateAddUnit {
		b.sendText(chatID, "Сценарий сброшен, начните заново: /add")
		return
	}
	st.Payload["unit"] = unit
	_ = b.states.Set(ctx, chatID, dialog.StateAddMin, st.Payload)
	b.editTextAndClear(chatID, msgID, "Единица: "+products.Unit(unit).Label())
	b.sendText(chatID, "Введите минимальный порог остатка (0 — не следить):")
}

func (b *Bot) addMinQuantity(ctx context.Context, u *users.User, chatID int64, text string, st *dialog.Item) {
	minQty, err := inventory.ParseThreshold(text)
	if err != nil {
		b.sendText(chatID, quantityErrorText(err))
		return
	}
	name, _ := dialog.GetString(st.Payload, "new_name")
	catID, _ := dialog.GetInt64(st.Payload, "cat_id")
	qtyStr, _ := dialog.GetString(st.Payload, "qty")
	unitStr, _ := dialog.GetString(st.Payload, "unit")
	qty, err := inventory.ParseQuantity(qtyStr)
	if err != nil || name == "" || !products.ValidUnit(unitStr) {
		b.sendText(chatID, "Сценарий сброшен, начните заново: /add")
		_ = b.states.Reset(ctx, chatID)
		return
	}

	p, err := b.inventory.CreateProduct(ctx, name, catID, qty, products.Unit(unitStr), minQty, u.ID)
	if err != nil {
		b.log.Error("create product failed", "err", err)
		b.sendText(chatID, "Ошибка: не удалось создать товар")
		return
	}
	metrics.TransactionsTotal.WithLabelValues("in").Inc()
	_ = b.states.Reset(ctx, chatID)
	b.sendText(chatID, fmt.Sprintf("✅ Товар «%s» создан, остаток %s %s.", p.Name, p.Quantity.String(), p.Unit.Label()))
}

func quantityErrorText(err error) string {
	switch {
	case errors.Is(err, inventory.ErrInvalidFormat):
		return "Не похоже на число. Введите, например, 5 или 2,5:"
	case errors.Is(err, inventory.ErrNonPositive):
		return "Количество должно быть больше нуля. Введите ещё раз:"
	case errors.Is(err, inventory.ErrTooLarge):
		return "Слишком большое количество. Введите ещё раз:"
	}
	return "Не удалось разобрать количество. Введите ещё раз:"
}

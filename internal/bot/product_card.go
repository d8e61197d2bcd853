package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/warehouse-bot/internal/dialog"
	"github.com/Spok95/warehouse-bot/internal/domain/inventory"
	"github.com/Spok95/warehouse-bot/internal/domain/products"
	"github.com/Spok95/warehouse-bot/internal/domain/users"
)

/*** КАРТОЧКА ТОВАРА ***/

func (b *Bot) viewProduct(ctx context.Context, u *users.User, cb *tgbotapi.CallbackQuery, prodID int64) {
	if d := CanManageStock(u); !d.Allowed {
		_ = b.answerCallback(cb, d.Reason, true)
		return
	}
	p, err := b.products.GetByID(ctx, prodID)
	if err != nil || p == nil {
		_ = b.answerCallback(cb, "Товар не найден", true)
		return
	}
	_ = b.answerCallback(cb, "", false)
	m := tgbotapi.NewMessage(cb.Message.Chat.ID, formatProductCard(p))
	m.ReplyMarkup = productCardKeyboard(p)
	b.send(m)
}

func (b *Bot) askMinQuantity(ctx context.Context, u *users.User, cb *tgbotapi.CallbackQuery, prodID int64) {
	if d := CanManageStock(u); !d.Allowed {
		_ = b.answerCallback(cb, d.Reason, true)
		return
	}
	_ = b.states.Set(ctx, cb.Message.Chat.ID, dialog.StateSetMin, dialog.Payload{"prod_id": prodID})
	_ = b.answerCallback(cb, "", false)
	m := tgbotapi.NewMessage(cb.Message.Chat.ID, "Введите новый порог остатка (0 — не следить):")
	m.ReplyMarkup = cancelInlineKeyboard()
	b.send(m)
}

func (b *Bot) setMinQuantity(ctx context.Context, u *users.User, chatID int64, text string, st *dialog.Item) {
	if d := CanManageStock(u); !d.Allowed {
		b.sendText(chatID, d.Reason)
		return
	}
	minQty, err := inventory.ParseThreshold(text)
	if err != nil {
		b.sendText(chatID, quantityErrorText(err))
		return
	}
	prodID, ok := dialog.GetInt64(st.Payload, "prod_id")
	if !ok {
		b.sendText(chatID, "Сценарий сброшен, откройте карточку товара заново: /products")
		_ = b.states.Reset(ctx, chatID)
		return
	}
	if err := b.products.SetMinQuantity(ctx, prodID, minQty); err != nil {
		b.log.Error("set min quantity failed", "err", err, "product_id", prodID)
		b.sendText(chatID, "Ошибка: не удалось изменить порог")
		return
	}
	_ = b.states.Reset(ctx, chatID)
	b.sendText(chatID, fmt.Sprintf("✅ Порог обновлён: %s.", minQty.String()))
}

func (b *Bot) setProductActive(ctx context.Context, u *users.User, cb *tgbotapi.CallbackQuery, prodID int64, active bool) {
	if d := CanManageStock(u); !d.Allowed {
		_ = b.answerCallback(cb, d.Reason, true)
		return
	}
	if err := b.products.SetActive(ctx, prodID, active); err != nil {
		b.log.Error("set product active failed", "err", err, "product_id", prodID)
		_ = b.answerCallback(cb, "Ошибка, попробуйте позже", true)
		return
	}
	p, err := b.products.GetByID(ctx, prodID)
	if err != nil || p == nil {
		_ = b.answerCallback(cb, "Готово", false)
		return
	}
	_ = b.answerCallback(cb, "Готово", false)
	b.editText(cb.Message.Chat.ID, cb.Message.MessageID, formatProductCard(p), productCardKeyboard(p))
}

func formatProductCard(p *products.Product) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📦 %s\n", p.Name))
	sb.WriteString(fmt.Sprintf("Категория: %s\n", p.Category))
	sb.WriteString(fmt.Sprintf("Остаток: %s %s\n", p.Quantity.String(), p.Unit.Label()))
	sb.WriteString(fmt.Sprintf("Порог: %s\n", p.MinQuantity.String()))
	if p.IsLowStock() {
		sb.WriteString("⚠️ Остаток на пороге или ниже\n")
	}
	if !p.Active {
		sb.WriteString("🙈 Скрыт из каталога\n")
	}
	return sb.String()
}

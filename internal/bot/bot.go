package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/warehouse-bot/internal/dialog"
	"github.com/Spok95/warehouse-bot/internal/domain/inventory"
	"github.com/Spok95/warehouse-bot/internal/domain/orders"
	"github.com/Spok95/warehouse-bot/internal/domain/products"
	"github.com/Spok95/warehouse-bot/internal/domain/users"
	"github.com/Spok95/warehouse-bot/internal/infra/metrics"
)

const historyLimit = 30
const myOrdersLimit = 10

type Bot struct {
	api       *tgbotapi.BotAPI
	log       *slog.Logger
	users     *users.Repo
	products  *products.Repo
	inventory *inventory.Repo
	orders    *orders.Repo
	states    *dialog.Repo
}

func New(api *tgbotapi.BotAPI, log *slog.Logger,
	usersRepo *users.Repo, productsRepo *products.Repo,
	inventoryRepo *inventory.Repo, ordersRepo *orders.Repo,
	statesRepo *dialog.Repo) *Bot {

	return &Bot{
		api: api, log: log,
		users: usersRepo, products: productsRepo,
		inventory: inventoryRepo, orders: ordersRepo,
		states: statesRepo,
	}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			metrics.UpdatesTotal.Inc()
			if upd.Message != nil {
				b.onMessage(ctx, upd)
			} else if upd.CallbackQuery != nil {
				b.onCallback(ctx, upd)
			}
		}
	}
}

// onMessage: сначала регистрируем/обновляем профиль, затем команда,
// затем кнопки меню, затем текст по текущему состоянию диалога.
func (b *Bot) onMessage(ctx context.Context, upd tgbotapi.Update) {
	msg := upd.Message
	chatID := msg.Chat.ID

	u, err := b.users.UpsertFromTelegram(ctx, users.Telegram{
		ID:       msg.From.ID,
		Username: msg.From.UserName,
		FullName: fullName(msg.From),
	})
	if err != nil {
		b.log.Error("upsert user failed", "err", err, "tg_id", msg.From.ID)
		b.send(tgbotapi.NewMessage(chatID, "Ошибка: не удалось сохранить профиль"))
		return
	}
	if !u.Active {
		b.send(tgbotapi.NewMessage(chatID, "Доступ заблокирован. Обратитесь к администратору."))
		return
	}

	if msg.IsCommand() {
		b.handleCommand(ctx, u, msg)
		return
	}
	if b.handleMenuButton(ctx, u, msg) {
		return
	}
	b.handleStateMessage(ctx, u, msg)
}

func (b *Bot) onCallback(ctx context.Context, upd tgbotapi.Update) {
	cb := upd.CallbackQuery
	u, err := b.users.GetByTelegramID(ctx, cb.From.ID)
	if err != nil || u == nil {
		_ = b.answerCallback(cb, "Сначала отправьте /start", true)
		return
	}
	if !u.Active {
		_ = b.answerCallback(cb, "Доступ заблокирован", true)
		return
	}
	b.handleCallback(ctx, u, cb)
}

func fullName(from *tgbotapi.User) string {
	if from.LastName == "" {
		return from.FirstName
	}
	return from.FirstName + " " + from.LastName
}

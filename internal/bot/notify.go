package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/warehouse-bot/internal/infra/metrics"
)

/*** УВЕДОМЛЕНИЯ ***/

// Уведомления не влияют на исход операции: рассылаем в фоне,
// неудачи только логируем и считаем.

// notifyStaff шлёт текст всем активным складским, кроме exceptUserID
// (автор события своё уведомление не получает; 0 — без исключений).
func (b *Bot) notifyStaff(ctx context.Context, exceptUserID int64, text string) {
	staff, err := b.users.ListStaff(ctx)
	if err != nil {
		b.log.Error("list staff failed", "err", err)
		metrics.NotifyFailures.Inc()
		return
	}
	go func() {
		for _, s := range staff {
			if s.ID == exceptUserID {
				continue
			}
			if _, err := b.api.Send(tgbotapi.NewMessage(s.TelegramID, text)); err != nil {
				b.log.Warn("notify staff failed", "err", err, "user_id", s.ID)
				metrics.NotifyFailures.Inc()
			}
		}
	}()
}

// notifyUser шлёт личное уведомление по внутреннему id пользователя.
func (b *Bot) notifyUser(ctx context.Context, userID int64, text string) {
	u, err := b.users.GetByID(ctx, userID)
	if err != nil || u == nil {
		b.log.Error("notify target not found", "err", err, "user_id", userID)
		metrics.NotifyFailures.Inc()
		return
	}
	go func() {
		if _, err := b.api.Send(tgbotapi.NewMessage(u.TelegramID, text)); err != nil {
			b.log.Warn("notify user failed", "err", err, "user_id", userID)
			metrics.NotifyFailures.Inc()
		}
	}()
}

package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/warehouse-bot/internal/domain/users"
)

/*** ПОЛЬЗОВАТЕЛИ (админ) ***/

func (b *Bot) showUsers(ctx context.Context, u *users.User, chatID int64, page int) {
	if d := CanManageUsers(u); !d.Allowed {
		b.sendText(chatID, d.Reason)
		return
	}
	total, err := b.users.Count(ctx)
	if err != nil {
		b.log.Error("count users failed", "err", err)
		b.sendText(chatID, "Ошибка: не удалось получить пользователей")
		return
	}
	list, err := b.users.List(ctx, page*usersPageSize, usersPageSize)
	if err != nil {
		b.log.Error("list users failed", "err", err)
		b.sendText(chatID, "Ошибка: не удалось получить пользователей")
		return
	}
	m := tgbotapi.NewMessage(chatID, fmt.Sprintf("👥 Пользователи (%d):", total))
	m.ReplyMarkup = usersKeyboard(list, page, total)
	b.send(m)
}

func (b *Bot) usersPage(ctx context.Context, u *users.User, cb *tgbotapi.CallbackQuery, page int) {
	if d := CanManageUsers(u); !d.Allowed {
		_ = b.answerCallback(cb, d.Reason, true)
		return
	}
	total, err := b.users.Count(ctx)
	if err != nil {
		_ = b.answerCallback(cb, "Ошибка, попробуйте позже", true)
		return
	}
	list, err := b.users.List(ctx, page*usersPageSize, usersPageSize)
	if err != nil {
		_ = b.answerCallback(cb, "Ошибка, попробуйте позже", true)
		return
	}
	_ = b.answerCallback(cb, "", false)
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("👥 Пользователи (%d):", total),
		usersKeyboard(list, page, total),
	)
	b.send(edit)
}

func (b *Bot) viewUser(ctx context.Context, u *users.User, cb *tgbotapi.CallbackQuery, id int64) {
	if d := CanManageUsers(u); !d.Allowed {
		_ = b.answerCallback(cb, d.Reason, true)
		return
	}
	target, err := b.users.GetByID(ctx, id)
	if err != nil || target == nil {
		_ = b.answerCallback(cb, "Пользователь не найден", true)
		return
	}
	total, completed, err := b.users.OrderStats(ctx, id)
	if err != nil {
		b.log.Error("order stats failed", "err", err, "user_id", id)
	}
	_ = b.answerCallback(cb, "", false)
	m := tgbotapi.NewMessage(cb.Message.Chat.ID, formatUserCard(target, total, completed))
	m.ReplyMarkup = userActionsKeyboard(target)
	b.send(m)
}

func (b *Bot) setUserRole(ctx context.Context, u *users.User, cb *tgbotapi.CallbackQuery, id int64, role users.Role) {
	if d := CanManageUsers(u); !d.Allowed {
		_ = b.answerCallback(cb, d.Reason, true)
		return
	}
	if role != users.RoleAdmin && role != users.RoleWarehouse && role != users.RoleRequester {
		_ = b.answerCallback(cb, "Неизвестная роль", true)
		return
	}
	// себя не разжаловать: иначе можно остаться без единого админа
	if id == u.ID && role != users.RoleAdmin {
		_ = b.answerCallback(cb, "Нельзя снять админа с самого себя", true)
		return
	}
	target, err := b.users.SetRole(ctx, id, role)
	if err != nil || target == nil {
		b.log.Error("set role failed", "err", err, "user_id", id)
		_ = b.answerCallback(cb, "Ошибка, попробуйте позже", true)
		return
	}
	_ = b.answerCallback(cb, "Роль обновлена", false)
	b.editTextAndClear(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("Роль %s: %s", displayName(target), roleLabel(target.Role)))

	b.notifyUser(ctx, target.ID, "Ваша роль изменена: "+roleLabel(target.Role)+". Отправьте /start, чтобы обновить меню.")
}

func (b *Bot) setUserActive(ctx context.Context, u *users.User, cb *tgbotapi.CallbackQuery, id int64, active bool) {
	if d := CanManageUsers(u); !d.Allowed {
		_ = b.answerCallback(cb, d.Reason, true)
		return
	}
	if id == u.ID && !active {
		_ = b.answerCallback(cb, "Нельзя заблокировать самого себя", true)
		return
	}
	target, err := b.users.SetActive(ctx, id, active)
	if err != nil || target == nil {
		b.log.Error("set active failed", "err", err, "user_id", id)
		_ = b.answerCallback(cb, "Ошибка, попробуйте позже", true)
		return
	}
	_ = b.answerCallback(cb, "Готово", false)
	b.editTextAndClear(cb.Message.Chat.ID, cb.Message.MessageID,
		fmt.Sprintf("%s %s", activeBadge(target.Active), displayName(target)))

	if active {
		b.notifyUser(ctx, target.ID, "Доступ восстановлен. Отправьте /start.")
	} else {
		b.notifyUser(ctx, target.ID, "Доступ заблокирован администратором.")
	}
}

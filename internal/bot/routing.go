package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/warehouse-bot/internal/dialog"
	"github.com/Spok95/warehouse-bot/internal/domain/users"
)

func (b *Bot) handleCommand(ctx context.Context, u *users.User, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		// начатый ранее сценарий молча забываем
		_ = b.states.Reset(ctx, chatID)
		m := tgbotapi.NewMessage(chatID,
			"Привет, "+displayName(u)+"! Это складской бот.\nВаша роль: "+roleLabel(u.Role)+".\nКнопки снизу — основные действия, /help — список команд.")
		m.ReplyMarkup = mainKeyboard(u)
		b.send(m)

	case "help":
		b.sendText(chatID, helpText(u))

	case "list":
		b.showStock(ctx, chatID)

	case "add":
		b.startAddFlow(ctx, u, chatID)

	case "remove":
		b.startWriteOffFlow(ctx, u, chatID)

	case "order":
		b.startOrderFlow(ctx, u, chatID)

	case "myorders":
		b.showMyOrders(ctx, u, chatID)

	case "orders", "give":
		b.showPendingOrders(ctx, u, chatID)

	case "history":
		b.showHistory(ctx, u, chatID)

	case "categories":
		b.showCategories(ctx, u, chatID)

	case "products":
		b.showProducts(ctx, u, chatID)

	case "users":
		b.showUsers(ctx, u, chatID, 0)

	case "cancel":
		_ = b.states.Reset(ctx, chatID)
		m := tgbotapi.NewMessage(chatID, "Действие отменено.")
		m.ReplyMarkup = mainKeyboard(u)
		b.send(m)

	default:
		b.sendText(chatID, "Неизвестная команда. /help — список команд.")
	}
}

func helpText(u *users.User) string {
	var sb strings.Builder
	sb.WriteString("Команды:\n")
	sb.WriteString("/list — остатки на складе\n")
	sb.WriteString("/order — создать заявку\n")
	sb.WriteString("/myorders — мои заявки\n")
	sb.WriteString("/cancel — прервать текущее действие\n")
	if u.IsWarehouse() {
		sb.WriteString("/add — принять товар\n")
		sb.WriteString("/remove — списать товар\n")
		sb.WriteString("/orders — открытые заявки\n")
		sb.WriteString("/history — журнал движений\n")
		sb.WriteString("/categories — список категорий\n")
		sb.WriteString("/products — список товаров\n")
	}
	if u.IsAdmin() {
		sb.WriteString("/users — управление пользователями\n")
	}
	return sb.String()
}

// handleMenuButton — кнопки нижнего меню; true, если текст распознан.
func (b *Bot) handleMenuButton(ctx context.Context, u *users.User, msg *tgbotapi.Message) bool {
	chatID := msg.Chat.ID
	switch msg.Text {
	case btnOrder:
		b.startOrderFlow(ctx, u, chatID)
	case btnMyOrders:
		b.showMyOrders(ctx, u, chatID)
	case btnStock:
		b.showStock(ctx, chatID)
	case btnAdd:
		b.startAddFlow(ctx, u, chatID)
	case btnWriteOff:
		b.startWriteOffFlow(ctx, u, chatID)
	case btnOrders:
		b.showPendingOrders(ctx, u, chatID)
	case btnHistory:
		b.showHistory(ctx, u, chatID)
	case btnExport:
		b.exportStock(ctx, u, chatID)
	case btnUsers:
		b.showUsers(ctx, u, chatID, 0)
	default:
		return false
	}
	return true
}

// handleStateMessage — текстовый ввод по текущему шагу диалога.
func (b *Bot) handleStateMessage(ctx context.Context, u *users.User, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("get dialog state failed", "err", err, "chat_id", chatID)
		return
	}
	switch st.State {
	case dialog.StateAddNewCat:
		b.addNewCategoryName(ctx, chatID, msg.Text)
	case dialog.StateAddNewProd:
		b.addNewProductName(ctx, chatID, msg.Text, st)
	case dialog.StateAddQty:
		b.addQuantity(ctx, u, chatID, msg.Text, st)
	case dialog.StateAddMin:
		b.addMinQuantity(ctx, u, chatID, msg.Text, st)
	case dialog.StateOutQty:
		b.writeOffQuantity(ctx, u, chatID, msg.Text, st)
	case dialog.StateSetMin:
		b.setMinQuantity(ctx, u, chatID, msg.Text, st)
	case dialog.StateOrdQty:
		b.orderQuantity(ctx, chatID, msg.Text, st)
	case dialog.StateOrdNote:
		b.orderNote(ctx, u, chatID, msg.Text, st)
	default:
		b.sendText(chatID, "Не понял. Используйте кнопки меню или /help.")
	}
}

func (b *Bot) handleCallback(ctx context.Context, u *users.User, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	data := cb.Data

	if data == "cancel" {
		_ = b.states.Reset(ctx, chatID)
		b.editTextAndClear(chatID, msgID, "Отменено.")
		_ = b.answerCallback(cb, "", false)
		return
	}

	action, arg, _ := strings.Cut(data, ":")
	switch action {
	case "addnewcat":
		b.askNewCategoryName(ctx, chatID, msgID)
	case "addcat":
		b.addPickCategory(ctx, chatID, msgID, mustID(arg))
	case "addnewprod":
		b.askNewProductName(ctx, chatID, msgID)
	case "addprod":
		b.addPickProduct(ctx, chatID, msgID, mustID(arg))
	case "unit":
		b.addPickUnit(ctx, chatID, msgID, arg)

	case "outcat":
		b.writeOffPickCategory(ctx, chatID, msgID, mustID(arg))
	case "outprod":
		b.writeOffPickProduct(ctx, chatID, msgID, mustID(arg))

	case "prod":
		b.viewProduct(ctx, u, cb, mustID(arg))
	case "setmin":
		b.askMinQuantity(ctx, u, cb, mustID(arg))
	case "hideprod":
		b.setProductActive(ctx, u, cb, mustID(arg), false)
	case "showprod":
		b.setProductActive(ctx, u, cb, mustID(arg), true)

	case "ordcat":
		b.orderPickCategory(ctx, chatID, msgID, mustID(arg))
	case "ordprod":
		b.orderPickProduct(ctx, chatID, msgID, mustID(arg))
	case "skipnote":
		b.orderSkipNote(ctx, u, chatID, msgID)

	case "vieworder":
		b.viewOrder(ctx, u, cb, mustID(arg))
	case "complete":
		b.completeOrder(ctx, u, cb, mustID(arg))
	case "cancelorder":
		b.cancelOrder(ctx, u, cb, mustID(arg))

	case "user":
		b.viewUser(ctx, u, cb, mustID(arg))
	case "userspage":
		b.usersPage(ctx, u, cb, int(mustID(arg)))
	case "setrole":
		id, role, _ := strings.Cut(arg, ":")
		b.setUserRole(ctx, u, cb, mustID(id), users.Role(role))
	case "block":
		b.setUserActive(ctx, u, cb, mustID(arg), false)
	case "unblock":
		b.setUserActive(ctx, u, cb, mustID(arg), true)

	default:
		_ = b.answerCallback(cb, "", false)
	}
}

func mustID(s string) int64 {
	id, _ := strconv.ParseInt(s, 10, 64)
	return id
}

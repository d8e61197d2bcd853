package bot

import (
	"context"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/warehouse-bot/internal/domain/users"
)

/*** ВЫГРУЗКА ОСТАТКОВ ***/

// exportStock формирует Excel-снимок остатков и отправляет файлом.
func (b *Bot) exportStock(ctx context.Context, u *users.User, chatID int64) {
	if d := CanManageStock(u); !d.Allowed {
		b.sendText(chatID, d.Reason)
		return
	}
	list, err := b.products.List(ctx, true)
	if err != nil {
		b.log.Error("list products failed", "err", err)
		b.sendText(chatID, "Ошибка: не удалось получить остатки")
		return
	}
	if len(list) == 0 {
		b.sendText(chatID, "Склад пуст, выгружать нечего.")
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"product_id",
		"category",
		"name",
		"unit",
		"qty",
		"min_qty",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		b.sendText(chatID, "Ошибка формирования файла (заголовок)")
		return
	}

	row := 2
	for _, p := range list {
		excelRow := []interface{}{
			p.ID,
			p.Category,
			p.Name,
			string(p.Unit),
			p.Quantity.String(),
			p.MinQuantity.String(),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			b.sendText(chatID, "Ошибка формирования файла (ячейки)")
			return
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			b.sendText(chatID, "Ошибка формирования файла (строки)")
			return
		}
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		b.log.Error("write excel failed", "err", err)
		b.sendText(chatID, "Ошибка формирования файла")
		return
	}

	fileName := fmt.Sprintf("stock_%s.xlsx", time.Now().Format("20060102_150405"))
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: buf.Bytes(),
	})
	doc.Caption = "Снимок остатков на " + time.Now().Format("02.01.2006 15:04")
	b.send(doc)
}

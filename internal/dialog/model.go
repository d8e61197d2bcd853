package dialog

import "time"

type State string

const (
	StateIdle State = "idle"

	// Приём товара (кладовщик)
	StateAddPickCat  State = "add_pick_cat" // выбор категории
	StateAddNewCat   State = "add_new_cat"  // ввод названия новой категории
	StateAddPickProd State = "add_pick_prod"
	StateAddNewProd  State = "add_new_prod" // ввод названия нового товара
	StateAddQty      State = "add_qty"
	StateAddUnit     State = "add_unit" // только для нового товара
	StateAddMin      State = "add_min"  // минимальный порог для нового товара

	// Списание (кладовщик)
	StateOutPickCat  State = "out_pick_cat"
	StateOutPickProd State = "out_pick_prod"
	StateOutQty      State = "out_qty"

	// Изменение порога остатка из карточки товара
	StateSetMin State = "set_min"

	// Заявка (заказчик)
	StateOrdPickCat  State = "ord_pick_cat"
	StateOrdPickProd State = "ord_pick_prod"
	StateOrdQty      State = "ord_qty"
	StateOrdNote     State = "ord_note"
)

type Payload map[string]any

type Item struct {
	ChatID    int64
	State     State
	Payload   Payload
	UpdatedAt time.Time
}

// Stale — диалог брошен дольше ttl назад и продолжать его бессмысленно.
func (i *Item) Stale(now time.Time, ttl time.Duration) bool {
	return i.State != StateIdle && now.Sub(i.UpdatedAt) > ttl
}

// GetString — безопасное чтение строки из payload.
func GetString(p Payload, key string) (string, bool) {
	v, ok := p[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// GetInt64 — безопасное чтение числа: после JSON-раунда значения приходят как float64.
func GetInt64(p Payload, key string) (int64, bool) {
	v, ok := p[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		return int64(n), true
	}
	return 0, false
}

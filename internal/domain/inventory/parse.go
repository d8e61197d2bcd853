package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
)

// maxQuantity — защитный потолок на ручной ввод.
var maxQuantity = decimal.NewFromInt(999999)

// ParseQuantity разбирает количество из пользовательского ввода.
// Запятая принимается как десятичный разделитель ("2,5" == "2.5").
func ParseQuantity(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	q, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidFormat
	}
	if !q.IsPositive() {
		return decimal.Zero, ErrNonPositive
	}
	if q.GreaterThan(maxQuantity) {
		return decimal.Zero, ErrTooLarge
	}
	return q, nil
}

// ParseThreshold — как ParseQuantity, но ноль допустим (порог «не следить»).
func ParseThreshold(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	q, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidFormat
	}
	if q.IsNegative() {
		return decimal.Zero, ErrNonPositive
	}
	if q.GreaterThan(maxQuantity) {
		return decimal.Zero, ErrTooLarge
	}
	return q, nil
}

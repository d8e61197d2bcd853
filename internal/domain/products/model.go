package products

import (
	"time"

	"github.com/shopspring/decimal"
)

type Unit string

const (
	UnitKg     Unit = "kg"
	UnitG      Unit = "g"
	UnitL      Unit = "l"
	UnitMl     Unit = "ml"
	UnitPcs    Unit = "pcs"
	UnitPack   Unit = "pack"
	UnitBox    Unit = "box"
	UnitBundle Unit = "bundle"
)

// Units — допустимые единицы измерения в порядке вывода на клавиатуре.
var Units = []Unit{UnitKg, UnitG, UnitL, UnitMl, UnitPcs, UnitPack, UnitBox, UnitBundle}

func ValidUnit(s string) bool {
	for _, u := range Units {
		if string(u) == s {
			return true
		}
	}
	return false
}

// Label — подпись единицы для сообщений.
func (u Unit) Label() string {
	switch u {
	case UnitKg:
		return "кг"
	case UnitG:
		return "г"
	case UnitL:
		return "л"
	case UnitMl:
		return "мл"
	case UnitPcs:
		return "шт"
	case UnitPack:
		return "упак"
	case UnitBox:
		return "кор"
	case UnitBundle:
		return "связка"
	}
	return string(u)
}

type Category struct {
	ID          int64
	Name        string
	Description string
	CreatedAt   time.Time
}

type Product struct {
	ID          int64
	Name        string
	CategoryID  int64
	Category    string // имя категории (для вывода)
	Quantity    decimal.Decimal
	Unit        Unit
	MinQuantity decimal.Decimal
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock — остаток на пороге или ниже; нулевой порог отключает контроль.
func (p *Product) IsLowStock() bool {
	return p.MinQuantity.IsPositive() && p.Quantity.LessThanOrEqual(p.MinQuantity)
}

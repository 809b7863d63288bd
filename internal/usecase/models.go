package usecase

import (
	"github.com/DRSN-tech/vending-machine/internal/domain"
	"github.com/shopspring/decimal"
)

// SELECTION USECASE

// SelectReq — ввод покупателя: категория и код товара.
type SelectReq struct {
	Category string
	Code     string
}

// SelectRes — найденная категория и товар в наличии.
type SelectRes struct {
	Category *domain.Category
	Item     *domain.Item
}

// PURCHASE USECASE

// CheckoutReq — всё, что нужно для атомарной покупки: quote -> settle -> dispense.
type CheckoutReq struct {
	Item     domain.ItemRef
	Flavor   string
	Quantity int
	Tendered decimal.Decimal
}

// SessionStats — итоги сеанса работы автомата.
type SessionStats struct {
	Completed int
	Cancelled int
	Revenue   decimal.Decimal
}

// MAPPERS

func NewSelectReq(category string, code string) *SelectReq {
	return &SelectReq{
		Category: category,
		Code:     code,
	}
}

func NewSelectRes(category *domain.Category, item *domain.Item) *SelectRes {
	return &SelectRes{
		Category: category,
		Item:     item,
	}
}

func NewCheckoutReq(ref domain.ItemRef, flavor string, quantity int, tendered decimal.Decimal) *CheckoutReq {
	return &CheckoutReq{
		Item:     ref,
		Flavor:   flavor,
		Quantity: quantity,
		Tendered: tendered,
	}
}

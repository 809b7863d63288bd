package domain

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Item описывает товар в автомате
type Item struct {
	Code    string
	Name    string
	Price   decimal.Decimal // Цена с точностью до двух знаков
	Stock   int
	Flavors []string // nil — у товара нет вкусов
}

func NewItem(code string, name string, price decimal.Decimal, stock int, flavors ...string) *Item {
	item := &Item{
		Code:  code,
		Name:  name,
		Price: price,
		Stock: stock,
	}
	if len(flavors) > 0 {
		item.Flavors = append([]string(nil), flavors...)
	}

	return item
}

// HasFlavors сообщает, нужно ли покупателю выбирать вкус.
func (i Item) HasFlavors() bool {
	return len(i.Flavors) > 0
}

// InStock возвращает true, если остаток больше нуля.
func (i Item) InStock() bool {
	return i.Stock > 0
}

// Flavor возвращает вкус по позиции, начиная с 1.
func (i Item) Flavor(position int) (string, bool) {
	if position < 1 || position > len(i.Flavors) {
		return "", false
	}

	return i.Flavors[position-1], true
}

// Clone возвращает копию товара с собственным списком вкусов.
func (i Item) Clone() Item {
	if i.Flavors != nil {
		i.Flavors = append([]string(nil), i.Flavors...)
	}
	return i
}

// ItemRef идентифицирует товар в каталоге: категория + код.
type ItemRef struct {
	Category string
	Code     string
}

func NewItemRef(category string, code string) ItemRef {
	return ItemRef{Category: category, Code: code}
}

// Key возвращает ключ, не зависящий от регистра.
func (r ItemRef) Key() string {
	return NormalizeCode(r.Category) + "/" + NormalizeCode(r.Code)
}

func (r ItemRef) String() string {
	return r.Category + "/" + r.Code
}

// NormalizeCode приводит пользовательский ввод к виду для сравнения без учёта регистра.
func NormalizeCode(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

package console

import (
	"errors"
	"strconv"
	"strings"

	"github.com/DRSN-tech/vending-machine/pkg/e"
	"github.com/jimlawless/whereami"
	"github.com/shopspring/decimal"
)

// ToConsoleMessage переводит ошибку в сообщение для покупателя.
func ToConsoleMessage(err error) string {
	switch {
	case errors.Is(err, e.ErrNotFound):
		return "Invalid selection. Please try again."
	case errors.Is(err, e.ErrOutOfStock):
		return "Sorry, this item is out of stock."
	case errors.Is(err, e.ErrOutOfRange):
		return "Invalid choice. Please select a valid option."
	case errors.Is(err, e.ErrInvalidQuantity):
		return "Invalid quantity."
	case errors.Is(err, e.ErrInsufficientFunds):
		return "Insufficient funds. Transaction canceled."
	case errors.Is(err, e.ErrAmountPrecision):
		return "Invalid amount. Please use at most 2 decimal places."
	case errors.Is(err, e.ErrInvalidAmount):
		return "Invalid input. Please insert valid money."
	case errors.Is(err, e.ErrMalformedInput):
		return "Invalid input. Please enter a valid number."
	default:
		return "Something went wrong. Please try again."
	}
}

// parseAmount переводит строку вида "12" или "12.50" во внесённую сумму.
// Возвращает ошибку, если:
// - формат неверный
// - больше 2 знаков после точки
// - сумма отрицательная или превышает лимит
func parseAmount(s string) (decimal.Decimal, error) {
	const maxAmount = 1_000_000

	if strings.TrimSpace(s) == "" {
		return decimal.Zero, e.Wrap(whereami.WhereAmI(), e.ErrMalformedInput)
	}

	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, e.Wrap(whereami.WhereAmI(), e.ErrMalformedInput)
	}

	if d.IsNegative() || d.GreaterThan(decimal.NewFromInt(maxAmount)) {
		return decimal.Zero, e.ErrInvalidAmount
	}

	if d.Exponent() < -2 {
		return decimal.Zero, e.ErrAmountPrecision
	}

	return d, nil
}

// parseNumber разбирает целое число, введённое покупателем.
func parseNumber(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), e.ErrMalformedInput)
	}

	return n, nil
}

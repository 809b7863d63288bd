package usecase

import (
	"fmt"
	"strings"

	"github.com/DRSN-tech/vending-machine/internal/domain"
	"github.com/DRSN-tech/vending-machine/pkg/e"
	"github.com/shopspring/decimal"
)

const defaultReceiptWidth = 30

// ReceiptReporter форматирует чек завершённой покупки. Каталог не трогает.
type ReceiptReporter struct {
	currency string
	width    int
}

func NewReceiptReporter(currency string, width int) *ReceiptReporter {
	if width <= 0 {
		width = defaultReceiptWidth
	}

	return &ReceiptReporter{
		currency: currency,
		width:    width,
	}
}

// FormatReceipt печатает итог как unitPrice × quantity и сдачу в том виде, в каком её вернул SettlePayment.
func (r *ReceiptReporter) FormatReceipt(itemName string, unitPrice decimal.Decimal, quantity int, change decimal.Decimal) string {
	return r.format(itemName, "", "", unitPrice, quantity, change)
}

// FormatTransaction печатает чек по выданной транзакции и переводит её в RECEIPTED.
func (r *ReceiptReporter) FormatTransaction(tx *domain.Transaction) (string, error) {
	const op = "ReceiptReporter.FormatTransaction"

	if tx == nil || tx.State != domain.StateDispensed {
		return "", e.Wrap(op, e.ErrIllegalTransition)
	}

	text := r.format(tx.ItemName, tx.Flavor, tx.ID, tx.UnitPrice, tx.Quantity, tx.Change)
	if err := tx.MarkReceipted(); err != nil {
		return "", e.Wrap(op, err)
	}

	return text, nil
}

// FormatAmount печатает сумму с валютой и двумя знаками после точки.
func (r *ReceiptReporter) FormatAmount(amount decimal.Decimal) string {
	if r.currency == "" {
		return amount.StringFixed(2)
	}

	return r.currency + " " + amount.StringFixed(2)
}

func (r *ReceiptReporter) format(itemName, flavor, id string, unitPrice decimal.Decimal, quantity int, change decimal.Decimal) string {
	total := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))

	var b strings.Builder
	b.WriteString("\n--- Receipt ---\n")
	fmt.Fprintf(&b, "Item(s): %s x %d\n", itemName, quantity)
	if flavor != "" {
		fmt.Fprintf(&b, "Flavor: %s\n", flavor)
	}
	fmt.Fprintf(&b, "Total Cost: %s\n", r.FormatAmount(total))
	fmt.Fprintf(&b, "Change: %s\n", r.FormatAmount(change))
	if id != "" {
		fmt.Fprintf(&b, "Transaction: %s\n", id)
	}
	b.WriteString(strings.Repeat("-", r.width))
	b.WriteString("\nThank you for your purchase!\n")

	return b.String()
}

package usecase

import (
	"context"

	"github.com/DRSN-tech/vending-machine/internal/domain"
	"github.com/shopspring/decimal"
)

type SelectionUC interface {
	Menu(ctx context.Context) ([]domain.Category, error)
	ResolveCategory(ctx context.Context, input string) (*domain.Category, error)
	ResolveItem(ctx context.Context, category *domain.Category, input string) (*domain.Item, error)
	CheckAvailability(item *domain.Item) bool
	ResolveFlavor(item *domain.Item, position int) (string, bool, error)
	Select(ctx context.Context, req *SelectReq) (*SelectRes, error)
}

type PurchaseUC interface {
	Quote(item *domain.Item, quantity int) (decimal.Decimal, error)
	SettlePayment(tendered decimal.Decimal, total decimal.Decimal) (decimal.Decimal, error)
	Dispense(ctx context.Context, ref domain.ItemRef, quantity int) (*domain.Item, error)
	Checkout(ctx context.Context, req *CheckoutReq) (*domain.Transaction, error)
	Stats() SessionStats
}

type ReceiptUC interface {
	FormatReceipt(itemName string, unitPrice decimal.Decimal, quantity int, change decimal.Decimal) string
	FormatTransaction(tx *domain.Transaction) (string, error)
	FormatAmount(amount decimal.Decimal) string
}

package usecase

import (
	"context"
	"slices"
	"sync"

	"github.com/DRSN-tech/vending-machine/internal/domain"
	"github.com/DRSN-tech/vending-machine/pkg/e"
	"github.com/DRSN-tech/vending-machine/pkg/logger"
	"github.com/shopspring/decimal"
)

// PurchaseUseCase реализует покупку: расчёт стоимости, оплату и выдачу товара.
type PurchaseUseCase struct {
	catalogRepo CatalogRepository
	logger      logger.Logger

	mu    sync.Mutex
	stats SessionStats
}

func NewPurchaseUC(catalogRepo CatalogRepository, logger logger.Logger) *PurchaseUseCase {
	return &PurchaseUseCase{
		catalogRepo: catalogRepo,
		logger:      logger,
		stats:       SessionStats{Revenue: decimal.Zero},
	}
}

// Quote считает стоимость price × quantity без округления.
// Количество должно быть в диапазоне [1, stock].
func (p *PurchaseUseCase) Quote(item *domain.Item, quantity int) (decimal.Decimal, error) {
	const op = "PurchaseUseCase.Quote"

	if item == nil || quantity < 1 || quantity > item.Stock {
		return decimal.Zero, e.Wrap(op, e.ErrInvalidQuantity)
	}

	return item.Price.Mul(decimal.NewFromInt(int64(quantity))), nil
}

// SettlePayment возвращает сдачу. Недостаток средств отменяет покупку, повторного ввода нет.
// Округление до 2 знаков (half-up) выполняется только здесь.
func (p *PurchaseUseCase) SettlePayment(tendered decimal.Decimal, total decimal.Decimal) (decimal.Decimal, error) {
	const op = "PurchaseUseCase.SettlePayment"

	switch tendered.Cmp(total) {
	case -1:
		return decimal.Zero, e.Wrap(op, e.ErrInsufficientFunds)
	case 0:
		return decimal.Zero, nil
	default:
		return tendered.Sub(total).Round(2), nil
	}
}

// Dispense уменьшает остаток товара под блокировкой товара.
// Вызывать только после успешного SettlePayment.
func (p *PurchaseUseCase) Dispense(ctx context.Context, ref domain.ItemRef, quantity int) (*domain.Item, error) {
	const op = "PurchaseUseCase.Dispense"

	unlock, err := p.catalogRepo.LockItem(ctx, ref)
	if err != nil {
		return nil, e.Wrap(op, err)
	}
	defer unlock()

	item, err := p.dispense(ctx, ref, quantity)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return item, nil
}

// Checkout выполняет quote -> settle -> dispense как одну критическую секцию по товару.
// Возвращает транзакцию и в случае отмены, чтобы вызывающий видел причину.
func (p *PurchaseUseCase) Checkout(ctx context.Context, req *CheckoutReq) (*domain.Transaction, error) {
	const op = "PurchaseUseCase.Checkout"

	tx := domain.NewTransaction(req.Item, "", req.Flavor)

	unlock, err := p.catalogRepo.LockItem(ctx, req.Item)
	if err != nil {
		return p.cancel(tx, e.Wrap(op, err))
	}
	defer unlock()

	item, err := p.catalogRepo.FindItem(ctx, req.Item)
	if err != nil {
		return p.cancel(tx, e.Wrap(op, err))
	}
	tx.ItemName = item.Name

	if !item.InStock() {
		return p.cancel(tx, e.Wrap(op, e.ErrOutOfStock))
	}

	if err := validateFlavor(item, req.Flavor); err != nil {
		return p.cancel(tx, e.Wrap(op, err))
	}

	total, err := p.Quote(item, req.Quantity)
	if err != nil {
		return p.cancel(tx, e.Wrap(op, err))
	}
	if err := tx.MarkQuoted(item.Price, req.Quantity, total); err != nil {
		return p.cancel(tx, e.Wrap(op, err))
	}

	change, err := p.SettlePayment(req.Tendered, total)
	if err != nil {
		return p.cancel(tx, e.Wrap(op, err))
	}
	if err := tx.MarkPaid(req.Tendered, change); err != nil {
		return p.cancel(tx, e.Wrap(op, err))
	}

	if _, err := p.dispense(ctx, req.Item, req.Quantity); err != nil {
		return p.cancel(tx, e.Wrap(op, err))
	}
	if err := tx.MarkDispensed(); err != nil {
		return tx, e.Wrap(op, err)
	}

	p.record(tx)
	p.logger.Infof(
		"transaction %s dispensed: item=%s quantity=%d total=%s change=%s",
		tx.ID, tx.Item, tx.Quantity, tx.Total.StringFixed(2), tx.Change.StringFixed(2),
	)

	return tx, nil
}

// Stats возвращает итоги текущего сеанса.
func (p *PurchaseUseCase) Stats() SessionStats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// dispense — единственное место, где меняется остаток. Блокировка товара должна быть уже взята.
func (p *PurchaseUseCase) dispense(ctx context.Context, ref domain.ItemRef, quantity int) (*domain.Item, error) {
	if quantity < 1 {
		return nil, e.ErrInvalidQuantity
	}

	return p.catalogRepo.DecrementStock(ctx, ref, quantity)
}

func (p *PurchaseUseCase) cancel(tx *domain.Transaction, reason error) (*domain.Transaction, error) {
	if err := tx.Cancel(reason); err != nil {
		p.logger.Errorf(err, "failed to cancel transaction %s", tx.ID)
	}

	p.mu.Lock()
	p.stats.Cancelled++
	p.mu.Unlock()

	p.logger.Infof("transaction %s cancelled: item=%s reason=%v", tx.ID, tx.Item, reason)
	return tx, reason
}

func (p *PurchaseUseCase) record(tx *domain.Transaction) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stats.Completed++
	p.stats.Revenue = p.stats.Revenue.Add(tx.Total)
}

// validateFlavor проверяет, что выбранный вкус есть у товара.
func validateFlavor(item *domain.Item, flavor string) error {
	if !item.HasFlavors() {
		if flavor != "" {
			return e.ErrOutOfRange
		}
		return nil
	}

	if !slices.Contains(item.Flavors, flavor) {
		return e.ErrOutOfRange
	}

	return nil
}

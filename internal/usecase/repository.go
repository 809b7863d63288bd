package usecase

import (
	"context"

	"github.com/DRSN-tech/vending-machine/internal/domain"
)

// CatalogRepository — хранилище каталога. Единственный способ изменить остаток — DecrementStock.
type CatalogRepository interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	FindCategory(ctx context.Context, name string) (*domain.Category, error)
	FindItem(ctx context.Context, ref domain.ItemRef) (*domain.Item, error)
	LockItem(ctx context.Context, ref domain.ItemRef) (unlock func(), err error)
	DecrementStock(ctx context.Context, ref domain.ItemRef, quantity int) (*domain.Item, error)
}

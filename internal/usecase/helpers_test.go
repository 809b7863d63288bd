package usecase

import (
	"context"
	"testing"

	"github.com/DRSN-tech/vending-machine/internal/domain"
	"github.com/DRSN-tech/vending-machine/internal/repository/memory"
	"github.com/DRSN-tech/vending-machine/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestRepo(t *testing.T, categories ...domain.Category) *memory.CatalogRepo {
	t.Helper()

	if len(categories) == 0 {
		catalog, err := memory.ReferenceCatalog()
		require.NoError(t, err)
		return memory.NewCatalogRepo(catalog)
	}

	catalog, err := domain.NewCatalog(categories...)
	require.NoError(t, err)
	return memory.NewCatalogRepo(catalog)
}

func stockOf(t *testing.T, repo CatalogRepository, ref domain.ItemRef) int {
	t.Helper()

	item, err := repo.FindItem(context.Background(), ref)
	require.NoError(t, err)
	return item.Stock
}

func nopLogger() logger.Logger {
	return logger.Nop()
}

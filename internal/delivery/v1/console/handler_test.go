package console

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/DRSN-tech/vending-machine/internal/cfg"
	"github.com/DRSN-tech/vending-machine/internal/domain"
	"github.com/DRSN-tech/vending-machine/internal/repository/memory"
	"github.com/DRSN-tech/vending-machine/internal/usecase"
	"github.com/DRSN-tech/vending-machine/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type session struct {
	out      string
	repo     *memory.CatalogRepo
	purchase *usecase.PurchaseUseCase
}

func runSession(t *testing.T, ctx context.Context, input string, categories ...domain.Category) *session {
	t.Helper()

	return runSessionWithLogger(t, ctx, input, logger.Nop(), categories...)
}

func runSessionWithLogger(t *testing.T, ctx context.Context, input string, log logger.Logger, categories ...domain.Category) *session {
	t.Helper()

	var (
		catalog *domain.Catalog
		err     error
	)
	if len(categories) == 0 {
		catalog, err = memory.ReferenceCatalog()
	} else {
		catalog, err = domain.NewCatalog(categories...)
	}
	require.NoError(t, err)

	repo := memory.NewCatalogRepo(catalog)
	purchase := usecase.NewPurchaseUC(repo, log)

	var out bytes.Buffer
	h := NewHandler(
		usecase.NewSelectionUC(repo, "Q", log),
		purchase,
		usecase.NewReceiptReporter("AED", 30),
		&cfg.MachineCfg{Name: "Test Machine", Currency: "AED", QuitCode: "Q"},
		&cfg.ConsoleCfg{Width: 40},
		strings.NewReader(input),
		&out,
		log,
	)
	t.Cleanup(func() { _ = h.Close(context.Background()) })

	require.NoError(t, h.Run(ctx))

	return &session{out: out.String(), repo: repo, purchase: purchase}
}

func (s *session) stock(t *testing.T, category, code string) int {
	t.Helper()

	item, err := s.repo.FindItem(context.Background(), domain.NewItemRef(category, code))
	require.NoError(t, err)
	return item.Stock
}

func TestHandler_PurchaseWithChange(t *testing.T) {
	t.Parallel()

	s := runSession(t, context.Background(), "Snacks\nB\n2\n12.00\nno\n")

	assert.Contains(t, s.out, "Welcome to Test Machine!")
	assert.Contains(t, s.out, "B: Twix - AED 5.00 (4 in stock)")
	assert.Contains(t, s.out, "Enter a category (Snacks/Drinks) or Q to quit: ")
	assert.Contains(t, s.out, "You selected Twix. Price: AED 5.00")
	assert.Contains(t, s.out, "How many would you like to buy? (Max 4): ")
	assert.Contains(t, s.out, "Total cost: AED 10.00")
	assert.Contains(t, s.out, "Dispensing 2 x Twix...")
	assert.Contains(t, s.out, "Total Cost: AED 10.00")
	assert.Contains(t, s.out, "Change: AED 2.00")
	assert.Contains(t, s.out, "Thank you for purchasing at Test Machine. Goodbye!")
	assert.NotContains(t, s.out, "Available Flavors")
	assert.Equal(t, 2, s.stock(t, "Snacks", "B"))
	assert.Equal(t, 1, s.purchase.Stats().Completed)
}

func TestHandler_ExactPaymentAndBuyAgain(t *testing.T) {
	t.Parallel()

	s := runSession(t, context.Background(), "drinks\nf\n1\n6\nmaybe\nyes\nq\n")

	assert.Contains(t, s.out, "Change: AED 0.00")
	assert.Contains(t, s.out, "Invalid input. Please type 'Yes' or 'No'.")
	assert.Contains(t, s.out, "F: Pepsi - AED 6.00 (4 in stock)")
	assert.Contains(t, s.out, "Thank you for using the vending machine. Goodbye!")
	assert.Equal(t, 4, s.stock(t, "Drinks", "F"))
}

func TestHandler_FlavorSelection(t *testing.T) {
	t.Parallel()

	s := runSession(t, context.Background(), "snacks\na\n4\nabc\n2\n1\n6\nn\n")

	assert.Contains(t, s.out, "Available Flavors:\n  1: Cheese\n  2: Flamin' Hot\n  3: Jalapeño\n")
	assert.Contains(t, s.out, "Invalid choice. Please select a valid flavor.")
	assert.Contains(t, s.out, "Invalid input. Please enter a number.")
	assert.Contains(t, s.out, "Flavor selected: Flamin' Hot")
	assert.Contains(t, s.out, "Flavor: Flamin' Hot")
	assert.Equal(t, 2, s.stock(t, "Snacks", "A"))
}

func TestHandler_InsufficientFundsCancels(t *testing.T) {
	t.Parallel()

	s := runSession(t, context.Background(), "Snacks\nA\n1\n1\n5.00\nQ\n")

	assert.Contains(t, s.out, "Insufficient funds. Transaction canceled.")
	assert.NotContains(t, s.out, "Dispensing")
	assert.NotContains(t, s.out, "Would you like to buy another item?")
	assert.Equal(t, 3, s.stock(t, "Snacks", "A"))
	assert.Equal(t, 1, s.purchase.Stats().Cancelled)
}

func TestHandler_OutOfStockBeforeQuantity(t *testing.T) {
	t.Parallel()

	s := runSession(t, context.Background(), "Snacks\nK\nQ\n",
		*domain.NewCategory("Snacks", *domain.NewItem("K", "Empty", decimal.RequireFromString("2.00"), 0)))

	assert.Contains(t, s.out, "Sorry, this item is out of stock.")
	assert.NotContains(t, s.out, "How many would you like to buy?")
	assert.Contains(t, s.out, "Enter a category (Snacks) or Q to quit: ")
}

func TestHandler_InvalidSelections(t *testing.T) {
	t.Parallel()

	s := runSession(t, context.Background(), "Candy\nSnacks\nZ\nQ\n")

	assert.Contains(t, s.out, "Invalid category. Please try again.")
	assert.Contains(t, s.out, "Invalid item code. Please try again.")
	assert.Contains(t, s.out, "Thank you for using the vending machine. Goodbye!")
}

func TestHandler_QuantityReprompt(t *testing.T) {
	t.Parallel()

	s := runSession(t, context.Background(), "Snacks\nB\n0\nfive\n9\n1\n5\nno\n")

	assert.Equal(t, 2, strings.Count(s.out, "Invalid quantity. Please enter a number between 1 and 4."))
	assert.Contains(t, s.out, "Invalid input. Please enter a valid number.")
	assert.Contains(t, s.out, "Dispensing 1 x Twix...")
	assert.Equal(t, 3, s.stock(t, "Snacks", "B"))
}

func TestHandler_TenderReprompt(t *testing.T) {
	t.Parallel()

	s := runSession(t, context.Background(), "Drinks\nH\n1\nmoney\n2.505\n-1\n3\nno\n")

	assert.Contains(t, s.out, "Invalid input. Please enter a valid number.")
	assert.Contains(t, s.out, "Invalid amount. Please use at most 2 decimal places.")
	assert.Contains(t, s.out, "Invalid input. Please insert valid money.")
	assert.Contains(t, s.out, "Change: AED 0.50")
	assert.Equal(t, 6, s.stock(t, "Drinks", "H"))
}

func TestHandler_EndOfInput(t *testing.T) {
	t.Parallel()

	s := runSession(t, context.Background(), "Snacks\nB\n")

	assert.Contains(t, s.out, "How many would you like to buy?")
	assert.Contains(t, s.out, "Thank you for using the vending machine. Goodbye!")
	assert.Equal(t, 4, s.stock(t, "Snacks", "B"))
}

func TestHandler_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := runSession(t, ctx, "Snacks\nB\n1\n5\nno\n")

	assert.Contains(t, s.out, "Goodbye!")
	assert.NotContains(t, s.out, "Dispensing")
	assert.Equal(t, 4, s.stock(t, "Snacks", "B"))
}

func TestHandler_OverlongLineIsReprompted(t *testing.T) {
	t.Parallel()

	s := runSession(t, context.Background(), "Snacks\nB\n"+strings.Repeat("9", 70_000)+"\n1\n5\nno\n")

	assert.Equal(t, 2, strings.Count(s.out, "How many would you like to buy? (Max 4): "))
	assert.Contains(t, s.out, "Invalid input. Please enter a valid number.")
	assert.Contains(t, s.out, "Dispensing 1 x Twix...")
	assert.Contains(t, s.out, "Thank you for purchasing at Test Machine. Goodbye!")
	assert.Equal(t, 3, s.stock(t, "Snacks", "B"))
}

func TestHandler_CancelledPurchaseStaysOutOfWarnLog(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	s := runSessionWithLogger(t, context.Background(), "Snacks\nB\n1\n1.00\nQ\n", logger.New(&logs, slog.LevelWarn))

	assert.Contains(t, s.out, "Insufficient funds. Transaction canceled.")
	assert.Empty(t, logs.String())
}

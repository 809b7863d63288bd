package app

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	config "github.com/DRSN-tech/vending-machine/internal/cfg"
	"github.com/DRSN-tech/vending-machine/internal/delivery/v1/console"
	"github.com/DRSN-tech/vending-machine/internal/repository/memory"
	"github.com/DRSN-tech/vending-machine/internal/usecase"
	"github.com/DRSN-tech/vending-machine/pkg/closer"
	"github.com/DRSN-tech/vending-machine/pkg/e"
	"github.com/DRSN-tech/vending-machine/pkg/logger"
	"github.com/jimlawless/whereami"
)

// App владеет каталогом и собирает все слои автомата.
type App struct {
	cfg      *config.Config
	logger   logger.Logger
	handler  *console.Handler
	purchase *usecase.PurchaseUseCase
	receipt  *usecase.ReceiptReporter
	closer   *closer.Closer
}

func NewApp(cfg *config.Config, log logger.Logger, in io.Reader, out io.Writer) (*App, error) {
	catalog, err := memory.ReferenceCatalog()
	if err != nil {
		log.Errorf(err, "failed to build catalog")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	catalogRepo := memory.NewCatalogRepo(catalog)

	selectionUC := usecase.NewSelectionUC(catalogRepo, cfg.Machine.QuitCode, log)
	purchaseUC := usecase.NewPurchaseUC(catalogRepo, log)
	receipt := usecase.NewReceiptReporter(cfg.Machine.Currency, receiptWidth(cfg))

	handler := console.NewHandler(selectionUC, purchaseUC, receipt, cfg.Machine, cfg.Console, in, out, log)

	a := &App{
		cfg:      cfg,
		logger:   log,
		handler:  handler,
		purchase: purchaseUC,
		receipt:  receipt,
		closer:   closer.NewCloser(cfg.Shutdown.Timeout),
	}

	a.closer.Add(a.logSummary)
	a.closer.Add(handler.Close)

	return a, nil
}

// Run запускает сеанс и завершает его по выходу покупателя или по SIGINT/SIGTERM.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	a.closer.Add(func(context.Context) error {
		stop()
		return nil
	})

	return a.RunContext(ctx)
}

// RunContext запускает сеанс с заданным контекстом.
func (a *App) RunContext(ctx context.Context) error {
	a.logger.Infof("%s started, currency %s", a.cfg.Machine.Name, a.cfg.Machine.Currency)

	appErr := a.handler.Run(ctx)
	if appErr != nil {
		a.logger.Errorf(appErr, "console session failed")
	}

	// === Graceful shutdown ===
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Shutdown.Timeout)
	defer cancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func (a *App) logSummary(context.Context) error {
	stats := a.purchase.Stats()
	a.logger.Infof(
		"session summary: completed=%d cancelled=%d revenue=%s",
		stats.Completed, stats.Cancelled, a.receipt.FormatAmount(stats.Revenue),
	)
	return nil
}

// receiptWidth — чек на четверть уже меню.
func receiptWidth(cfg *config.Config) int {
	const ratio = 3

	return cfg.Console.Width * ratio / 4
}

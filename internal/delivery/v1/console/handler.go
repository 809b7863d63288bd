package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/DRSN-tech/vending-machine/internal/cfg"
	"github.com/DRSN-tech/vending-machine/internal/domain"
	"github.com/DRSN-tech/vending-machine/internal/usecase"
	"github.com/DRSN-tech/vending-machine/pkg/e"
	"github.com/DRSN-tech/vending-machine/pkg/logger"
	"github.com/shopspring/decimal"
)

// Handler ведёт диалог с покупателем в консоли.
type Handler struct {
	selection usecase.SelectionUC
	purchase  usecase.PurchaseUC
	receipt   usecase.ReceiptUC
	machine   *cfg.MachineCfg
	console   *cfg.ConsoleCfg
	in        *lineReader
	out       io.Writer
	logger    logger.Logger
}

func NewHandler(
	selection usecase.SelectionUC,
	purchase usecase.PurchaseUC,
	receipt usecase.ReceiptUC,
	machine *cfg.MachineCfg,
	console *cfg.ConsoleCfg,
	in io.Reader,
	out io.Writer,
	logger logger.Logger,
) *Handler {
	return &Handler{
		selection: selection,
		purchase:  purchase,
		receipt:   receipt,
		machine:   machine,
		console:   console,
		in:        newLineReader(in),
		out:       out,
		logger:    logger,
	}
}

// Run крутит цикл покупок до выхода покупателя, конца ввода или отмены ctx.
func (h *Handler) Run(ctx context.Context) error {
	for {
		again, err := h.serveOnce(ctx)
		if err != nil {
			if errors.Is(err, e.ErrExitRequested) || errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				h.println("Thank you for using the vending machine. Goodbye!")
				return nil
			}
			return err
		}

		if !again {
			h.printf("Thank you for purchasing at %s. Goodbye!\n", h.machine.Name)
			return nil
		}
	}
}

// Close останавливает чтение ввода.
func (h *Handler) Close(context.Context) error {
	h.in.Close()
	return nil
}

// serveOnce проводит одну попытку покупки. again == true — вернуться в меню.
func (h *Handler) serveOnce(ctx context.Context) (bool, error) {
	menu, err := h.selection.Menu(ctx)
	if err != nil {
		return false, err
	}
	h.renderMenu(menu)

	input, err := h.prompt(ctx, fmt.Sprintf("\nEnter a category (%s) or %s to quit: ", categoryNames(menu), h.machine.QuitCode))
	if err != nil {
		return false, err
	}

	category, err := h.selection.ResolveCategory(ctx, input)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			h.println("Invalid category. Please try again.")
			return true, nil
		}
		return false, err
	}

	code, err := h.prompt(ctx, fmt.Sprintf("Select an item code from %s: ", category.Name))
	if err != nil {
		return false, err
	}

	selected, err := h.selection.Select(ctx, usecase.NewSelectReq(category.Name, code))
	if err != nil {
		switch {
		case errors.Is(err, e.ErrNotFound):
			h.println("Invalid item code. Please try again.")
			return true, nil
		case errors.Is(err, e.ErrOutOfStock):
			h.println(ToConsoleMessage(err))
			return true, nil
		}
		return false, err
	}
	item := selected.Item

	h.printf("\nYou selected %s. Price: %s\n", item.Name, h.receipt.FormatAmount(item.Price))

	flavor, err := h.chooseFlavor(ctx, item)
	if err != nil {
		return false, err
	}

	quantity, err := h.chooseQuantity(ctx, item)
	if err != nil {
		return false, err
	}

	tendered, err := h.readTender(ctx)
	if err != nil {
		return false, err
	}

	ref := domain.NewItemRef(category.Name, item.Code)
	tx, err := h.purchase.Checkout(ctx, usecase.NewCheckoutReq(ref, flavor, quantity, tendered))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return false, err
		}
		h.logger.Debugf("purchase of %s cancelled: %v", ref, err)
		h.println(ToConsoleMessage(err))
		return true, nil
	}

	h.printf("Dispensing %d x %s...\n", tx.Quantity, tx.ItemName)

	text, err := h.receipt.FormatTransaction(tx)
	if err != nil {
		return false, err
	}
	h.printf("%s", text)

	return h.askAgain(ctx)
}

// chooseFlavor запрашивает вкус, пока не будет введён корректный номер.
func (h *Handler) chooseFlavor(ctx context.Context, item *domain.Item) (string, error) {
	if !item.HasFlavors() {
		return "", nil
	}

	h.println("\nAvailable Flavors:")
	for i, flavor := range item.Flavors {
		h.printf("  %d: %s\n", i+1, flavor)
	}

	for {
		input, err := h.prompt(ctx, "Choose a flavor by number: ")
		if err != nil {
			return "", err
		}

		position, err := parseNumber(input)
		if err != nil {
			h.println("Invalid input. Please enter a number.")
			continue
		}

		flavor, ok, err := h.selection.ResolveFlavor(item, position)
		if err != nil {
			h.println("Invalid choice. Please select a valid flavor.")
			continue
		}
		if ok {
			h.printf("Flavor selected: %s\n", flavor)
		}

		return flavor, nil
	}
}

// chooseQuantity запрашивает количество и печатает стоимость.
func (h *Handler) chooseQuantity(ctx context.Context, item *domain.Item) (int, error) {
	for {
		input, err := h.prompt(ctx, fmt.Sprintf("How many would you like to buy? (Max %d): ", item.Stock))
		if err != nil {
			return 0, err
		}

		quantity, err := parseNumber(input)
		if err != nil {
			h.println("Invalid input. Please enter a valid number.")
			continue
		}

		total, err := h.purchase.Quote(item, quantity)
		if err != nil {
			h.printf("Invalid quantity. Please enter a number between 1 and %d.\n", item.Stock)
			continue
		}

		h.printf("Total cost: %s\n", h.receipt.FormatAmount(total))
		return quantity, nil
	}
}

// readTender повторяет запрос только при некорректном вводе.
// Недостаток средств обрабатывается при оплате и отменяет покупку.
func (h *Handler) readTender(ctx context.Context) (decimal.Decimal, error) {
	for {
		input, err := h.prompt(ctx, fmt.Sprintf("Insert money (%s): ", h.machine.Currency))
		if err != nil {
			return decimal.Zero, err
		}

		amount, err := parseAmount(input)
		if err != nil {
			h.println(ToConsoleMessage(err))
			continue
		}

		return amount, nil
	}
}

func (h *Handler) askAgain(ctx context.Context) (bool, error) {
	for {
		input, err := h.prompt(ctx, "\nWould you like to buy another item? (Yes/No): ")
		if err != nil {
			return false, err
		}

		switch domain.NormalizeCode(input) {
		case "yes", "y":
			return true, nil
		case "no", "n":
			return false, nil
		default:
			h.println("Invalid input. Please type 'Yes' or 'No'.")
		}
	}
}

func (h *Handler) prompt(ctx context.Context, text string) (string, error) {
	h.printf("%s", text)
	return h.in.ReadLine(ctx)
}

func (h *Handler) printf(format string, args ...any) {
	fmt.Fprintf(h.out, format, args...)
}

func (h *Handler) println(text string) {
	fmt.Fprintln(h.out, text)
}

func categoryNames(menu []domain.Category) string {
	names := make([]string, 0, len(menu))
	for _, category := range menu {
		names = append(names, category.Name)
	}

	return strings.Join(names, "/")
}

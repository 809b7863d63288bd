package console

import (
	"strings"

	"github.com/DRSN-tech/vending-machine/internal/domain"
)

// renderMenu печатает категории с кодом, названием, ценой и остатком каждого товара.
func (h *Handler) renderMenu(menu []domain.Category) {
	separator := strings.Repeat("-", h.console.Width)

	h.println(separator)
	h.printf("Welcome to %s!\n", h.machine.Name)
	h.println(separator)

	for _, category := range menu {
		h.printf("\n%s Items:\n", category.Name)
		for _, item := range category.Items {
			h.printf("  %s: %s - %s (%d in stock)\n", item.Code, item.Name, h.receipt.FormatAmount(item.Price), item.Stock)
		}
	}

	h.println(separator)
}

package memory

import (
	"github.com/DRSN-tech/vending-machine/internal/domain"
	"github.com/shopspring/decimal"
)

// ReferenceCatalog — стандартная загрузка автомата: закуски и напитки.
func ReferenceCatalog() (*domain.Catalog, error) {
	price := decimal.RequireFromString

	snacks := domain.NewCategory("Snacks",
		*domain.NewItem("A", "Cheetos", price("6.00"), 3, "Cheese", "Flamin' Hot", "Jalapeño"),
		*domain.NewItem("B", "Twix", price("5.00"), 4),
		*domain.NewItem("C", "Pepero", price("12.00"), 2, "Chocolate", "Cookies & Cream", "Almond"),
		*domain.NewItem("D", "Pringles", price("10.00"), 6, "Original", "Sour Cream & Onion", "Hot & Spicy"),
		*domain.NewItem("E", "Popcorn", price("7.00"), 5, "Cheese", "Caramel", "Butter"),
	)

	drinks := domain.NewCategory("Drinks",
		*domain.NewItem("F", "Pepsi", price("6.00"), 5),
		*domain.NewItem("G", "Gatorade", price("1.50"), 8, "Lemon-Lime", "Fruit Punch", "Orange"),
		*domain.NewItem("H", "Iced Coffee", price("2.50"), 7),
		*domain.NewItem("I", "Sprite", price("6.50"), 4),
		*domain.NewItem("J", "Chocolate Milk", price("3.00"), 3),
	)

	return domain.NewCatalog(*snacks, *drinks)
}

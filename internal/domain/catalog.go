package domain

import (
	"fmt"
	"strings"

	"github.com/DRSN-tech/vending-machine/pkg/e"
)

// Category описывает категорию товаров. Порядок Items задаёт порядок в меню.
type Category struct {
	Name  string
	Items []Item
}

func NewCategory(name string, items ...Item) *Category {
	return &Category{
		Name:  name,
		Items: items,
	}
}

// Find ищет товар по коду без учёта регистра.
func (c Category) Find(code string) (Item, bool) {
	key := NormalizeCode(code)
	for _, item := range c.Items {
		if NormalizeCode(item.Code) == key {
			return item.Clone(), true
		}
	}

	return Item{}, false
}

func (c Category) clone() Category {
	items := make([]Item, len(c.Items))
	for i, item := range c.Items {
		items[i] = item.Clone()
	}
	c.Items = items
	return c
}

// Catalog — полный набор категорий автомата. Структура неизменна после создания.
type Catalog struct {
	Categories []Category
}

// NewCatalog проверяет категории и возвращает независимую копию каталога.
func NewCatalog(categories ...Category) (*Catalog, error) {
	seen := make(map[string]struct{}, len(categories))
	copied := make([]Category, 0, len(categories))

	for _, category := range categories {
		if strings.TrimSpace(category.Name) == "" {
			return nil, invalid("category", e.ErrEmptyName)
		}

		key := NormalizeCode(category.Name)
		if _, ok := seen[key]; ok {
			return nil, invalid(category.Name, e.ErrDuplicateCategory)
		}
		seen[key] = struct{}{}

		if err := validateItems(category); err != nil {
			return nil, err
		}

		copied = append(copied, category.clone())
	}

	return &Catalog{Categories: copied}, nil
}

// Clone возвращает глубокую копию каталога.
func (c *Catalog) Clone() *Catalog {
	categories := make([]Category, len(c.Categories))
	for i, category := range c.Categories {
		categories[i] = category.clone()
	}

	return &Catalog{Categories: categories}
}

func validateItems(category Category) error {
	codes := make(map[string]struct{}, len(category.Items))
	for _, item := range category.Items {
		ref := fmt.Sprintf("%s/%s", category.Name, item.Code)

		if strings.TrimSpace(item.Code) == "" || strings.TrimSpace(item.Name) == "" {
			return invalid(ref, e.ErrEmptyName)
		}

		key := NormalizeCode(item.Code)
		if _, ok := codes[key]; ok {
			return invalid(ref, e.ErrDuplicateItemCode)
		}
		codes[key] = struct{}{}

		if item.Price.IsNegative() {
			return invalid(ref, e.ErrNegativePrice)
		}

		if item.Price.Exponent() < -2 {
			return invalid(ref, e.ErrPricePrecision)
		}

		if item.Stock < 0 {
			return invalid(ref, e.ErrNegativeStock)
		}
	}

	return nil
}

// invalid помечает ошибку как ошибку каталога, сохраняя конкретную причину.
func invalid(ref string, err error) error {
	return fmt.Errorf("%w: %s: %w", e.ErrInvalidCatalog, ref, err)
}

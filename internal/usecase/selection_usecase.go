package usecase

import (
	"context"
	"strings"

	"github.com/DRSN-tech/vending-machine/internal/domain"
	"github.com/DRSN-tech/vending-machine/pkg/e"
	"github.com/DRSN-tech/vending-machine/pkg/logger"
)

// SelectionUseCase проверяет выбор покупателя по каталогу. Побочных эффектов нет.
type SelectionUseCase struct {
	catalogRepo CatalogRepository
	quitCode    string
	logger      logger.Logger
}

func NewSelectionUC(catalogRepo CatalogRepository, quitCode string, logger logger.Logger) *SelectionUseCase {
	return &SelectionUseCase{
		catalogRepo: catalogRepo,
		quitCode:    domain.NormalizeCode(quitCode),
		logger:      logger,
	}
}

// Menu возвращает снимок каталога для отображения.
func (s *SelectionUseCase) Menu(ctx context.Context) ([]domain.Category, error) {
	const op = "SelectionUseCase.Menu"

	categories, err := s.catalogRepo.Categories(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return categories, nil
}

// ResolveCategory ищет категорию без учёта регистра.
// Код выхода возвращает e.ErrExitRequested.
func (s *SelectionUseCase) ResolveCategory(ctx context.Context, input string) (*domain.Category, error) {
	const op = "SelectionUseCase.ResolveCategory"

	if s.quitCode != "" && domain.NormalizeCode(input) == s.quitCode {
		return nil, e.ErrExitRequested
	}

	if strings.TrimSpace(input) == "" {
		return nil, e.Wrap(op, e.ErrNotFound)
	}

	category, err := s.catalogRepo.FindCategory(ctx, input)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return category, nil
}

// ResolveItem ищет товар в категории без учёта регистра.
func (s *SelectionUseCase) ResolveItem(ctx context.Context, category *domain.Category, input string) (*domain.Item, error) {
	const op = "SelectionUseCase.ResolveItem"

	if category == nil || strings.TrimSpace(input) == "" {
		return nil, e.Wrap(op, e.ErrNotFound)
	}

	item, err := s.catalogRepo.FindItem(ctx, domain.NewItemRef(category.Name, input))
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return item, nil
}

func (s *SelectionUseCase) CheckAvailability(item *domain.Item) bool {
	return item != nil && item.InStock()
}

// ResolveFlavor возвращает вкус по позиции (с 1). Если вкусов нет — ok == false.
func (s *SelectionUseCase) ResolveFlavor(item *domain.Item, position int) (string, bool, error) {
	const op = "SelectionUseCase.ResolveFlavor"

	if item == nil || !item.HasFlavors() {
		return "", false, nil
	}

	flavor, ok := item.Flavor(position)
	if !ok {
		return "", false, e.Wrap(op, e.ErrOutOfRange)
	}

	return flavor, true, nil
}

// Select объединяет поиск категории, товара и проверку наличия.
// Отсутствие товара сообщается до запроса количества.
func (s *SelectionUseCase) Select(ctx context.Context, req *SelectReq) (*SelectRes, error) {
	const op = "SelectionUseCase.Select"

	category, err := s.ResolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	item, err := s.ResolveItem(ctx, category, req.Code)
	if err != nil {
		return nil, err
	}

	if !s.CheckAvailability(item) {
		s.logger.Debugf("item %s/%s is out of stock", category.Name, item.Code)
		return nil, e.Wrap(op, e.ErrOutOfStock)
	}

	return NewSelectRes(category, item), nil
}

package memory

import (
	"context"
	"sync"

	"github.com/DRSN-tech/vending-machine/internal/domain"
	"github.com/DRSN-tech/vending-machine/pkg/e"
	"github.com/jimlawless/whereami"
)

type position struct {
	category int
	item     int
}

// CatalogRepo хранит каталог в памяти процесса. Владелец — точка входа приложения.
type CatalogRepo struct {
	mu         sync.RWMutex
	catalog    *domain.Catalog
	categories map[string]int
	items      map[string]position

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewCatalogRepo(catalog *domain.Catalog) *CatalogRepo {
	own := catalog.Clone()

	r := &CatalogRepo{
		catalog:    own,
		categories: make(map[string]int, len(own.Categories)),
		items:      make(map[string]position),
		locks:      make(map[string]*sync.Mutex),
	}

	for ci, category := range own.Categories {
		r.categories[domain.NormalizeCode(category.Name)] = ci
		for ii, item := range category.Items {
			r.items[domain.NewItemRef(category.Name, item.Code).Key()] = position{category: ci, item: ii}
		}
	}

	return r
}

// Categories возвращает снимок всех категорий в порядке меню.
func (r *CatalogRepo) Categories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.catalog.Clone().Categories, nil
}

// FindCategory ищет категорию по имени без учёта регистра.
func (r *CatalogRepo) FindCategory(ctx context.Context, name string) (*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.categories[domain.NormalizeCode(name)]
	if !ok {
		return nil, e.Wrap(name, e.ErrNotFound)
	}

	snapshot := r.catalog.Clone().Categories[idx]
	return &snapshot, nil
}

// FindItem возвращает копию товара с текущим остатком.
func (r *CatalogRepo) FindItem(ctx context.Context, ref domain.ItemRef) (*domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, ok := r.items[ref.Key()]
	if !ok {
		return nil, e.Wrap(ref.String(), e.ErrNotFound)
	}

	item := r.catalog.Categories[pos.category].Items[pos.item].Clone()
	return &item, nil
}

// LockItem берёт блокировку товара. Вызывающий обязан вызвать unlock.
func (r *CatalogRepo) LockItem(ctx context.Context, ref domain.ItemRef) (func(), error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	key := ref.Key()

	r.mu.RLock()
	_, ok := r.items[key]
	r.mu.RUnlock()
	if !ok {
		return nil, e.Wrap(ref.String(), e.ErrNotFound)
	}

	r.locksMu.Lock()
	lock, ok := r.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		r.locks[key] = lock
	}
	r.locksMu.Unlock()

	lock.Lock()
	return lock.Unlock, nil
}

// DecrementStock уменьшает остаток. Остаток никогда не становится отрицательным.
func (r *CatalogRepo) DecrementStock(ctx context.Context, ref domain.ItemRef, quantity int) (*domain.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	pos, ok := r.items[ref.Key()]
	if !ok {
		return nil, e.Wrap(ref.String(), e.ErrNotFound)
	}

	item := &r.catalog.Categories[pos.category].Items[pos.item]
	if quantity < 1 || quantity > item.Stock {
		return nil, e.Wrap(ref.String(), e.ErrInvalidQuantity)
	}

	item.Stock -= quantity

	snapshot := item.Clone()
	return &snapshot, nil
}

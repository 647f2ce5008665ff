package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository. Conserva el orden de inserción.
type CategoryRepo struct {
	mu    sync.RWMutex
	items map[string]entity.Category
	order []string
}

// NewCategoryRepository construye el repositorio vacío.
func NewCategoryRepository() *CategoryRepo {
	return &CategoryRepo{items: make(map[string]entity.Category)}
}

func (r *CategoryRepo) Create(_ context.Context, category *entity.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[category.ID]; ok {
		return domain.ErrInvalidInput
	}
	r.items[category.ID] = *category
	r.order = append(r.order, category.ID)
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Category, 0, len(r.order))
	for _, id := range r.order {
		c := r.items[id]
		list = append(list, &c)
	}
	return list, nil
}

func (r *CategoryRepo) ListByIDs(_ context.Context, ids []string) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*entity.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.items[id]; ok {
			list = append(list, &c)
		}
	}
	return list, nil
}

func (r *CategoryRepo) Update(_ context.Context, id string, patch entity.CategoryPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	patch.Apply(&c)
	c.UpdatedAt = time.Now().UTC()
	r.items[c.ID] = c
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	r.order = removeID(r.order, id)
	return nil
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

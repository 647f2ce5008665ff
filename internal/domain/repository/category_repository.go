package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByID devuelve (nil, nil) si no existe; Update y Delete devuelven domain.ErrNotFound.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	// ListByIDs resuelve un conjunto de referencias; los IDs inexistentes se omiten.
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Category, error)
	Update(ctx context.Context, id string, patch entity.CategoryPatch) error
	Delete(ctx context.Context, id string) error
}

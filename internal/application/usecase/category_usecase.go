package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/media"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías con imagen.
type CategoryUseCase struct {
	repo   repository.CategoryRepository
	images *media.ImageAttacher
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, images *media.ImageAttacher) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, images: images}
}

// Create sube la imagen (obligatoria) y luego persiste la categoría. Sin archivo no se escribe nada.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Image == nil {
		return nil, domain.ErrNoFile
	}
	url, err := uc.images.Attach(ctx, media.FolderCategories, in.Image)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		ImageURL:  *url,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, persistenceErr("create category", err)
	}
	return toCategoryResponse(category), nil
}

// List devuelve todas las categorías, sin filtros ni paginación.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, persistenceErr("list categories", err)
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// GetByID obtiene una categoría por ID.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, persistenceErr("get category", err)
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// Update verifica que la categoría exista, sube la imagen si llegó una y aplica el patch.
// Devuelve el payload intentado, no el registro releído.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryUpdatePayload, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, persistenceErr("get category", err)
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	url, err := uc.images.Attach(ctx, media.FolderCategories, in.Image)
	if err != nil {
		return nil, err
	}
	patch := entity.CategoryPatch{Name: in.Name, ImageURL: url}
	if err := uc.repo.Update(ctx, id, patch); err != nil {
		return nil, persistenceErr("update category", err)
	}
	return &dto.CategoryUpdatePayload{Name: in.Name, ImageURL: url}, nil
}

// Delete elimina una categoría. Los productos que la referencian no se tocan.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	return persistenceErr("delete category", uc.repo.Delete(ctx, id))
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		ImageURL:  c.ImageURL,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

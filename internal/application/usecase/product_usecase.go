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

// ProductUseCase casos de uso CRUD para productos. La categoría se resuelve solo al leer.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	images     *media.ImageAttacher
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, images *media.ImageAttacher) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, images: images}
}

// Create sube la imagen (obligatoria) y persiste el producto. La categoría no se valida.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Image == nil {
		return nil, domain.ErrNoFile
	}
	url, err := uc.images.Attach(ctx, media.FolderProducts, in.Image)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Price:      in.Price,
		CategoryID: in.CategoryID,
		ImageURL:   *url,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, persistenceErr("create product", err)
	}
	return toProductResponse(product), nil
}

// List lista productos (opcionalmente de una categoría) con la categoría poblada.
func (uc *ProductUseCase) List(ctx context.Context, categoryID string) ([]dto.ProductWithCategoryResponse, error) {
	list, err := uc.repo.List(ctx, entity.ProductFilter{CategoryID: categoryID})
	if err != nil {
		return nil, persistenceErr("list products", err)
	}
	byID, err := uc.resolveCategories(ctx, list)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductWithCategoryResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ProductWithCategoryResponse{
			ID:        p.ID,
			Name:      p.Name,
			Price:     entity.NewPrice(p.Price),
			Category:  toCategoryResponse(byID[p.CategoryID]),
			ImageURL:  p.ImageURL,
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}
	return items, nil
}

// GetByID obtiene un producto con el nombre de su categoría (null si la categoría ya no existe).
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductDetailResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, persistenceErr("get product", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := &dto.ProductDetailResponse{
		ID:        product.ID,
		Name:      product.Name,
		Price:     entity.NewPrice(product.Price),
		ImageURL:  product.ImageURL,
		CreatedAt: product.CreatedAt,
		UpdatedAt: product.UpdatedAt,
	}
	if product.CategoryID != "" {
		category, err := uc.categories.GetByID(ctx, product.CategoryID)
		if err != nil {
			return nil, persistenceErr("populate category", err)
		}
		if category != nil {
			out.Category = &dto.CategoryRef{ID: category.ID, Name: category.Name}
		}
	}
	return out, nil
}

// Update verifica existencia, sube la imagen si llegó y aplica el patch. Devuelve el payload intentado.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductUpdatePayload, error) {
	existing, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, persistenceErr("get product", err)
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	url, err := uc.images.Attach(ctx, media.FolderProducts, in.Image)
	if err != nil {
		return nil, err
	}
	patch := entity.ProductPatch{
		Name:       in.Name,
		Price:      in.Price,
		CategoryID: in.CategoryID,
		ImageURL:   url,
	}
	if err := uc.repo.Update(ctx, id, patch); err != nil {
		return nil, persistenceErr("update product", err)
	}
	var price *entity.Price
	if in.Price != nil {
		p := entity.NewPrice(*in.Price)
		price = &p
	}
	return &dto.ProductUpdatePayload{
		Name:     in.Name,
		Price:    price,
		Category: in.CategoryID,
		ImageURL: url,
	}, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	return persistenceErr("delete product", uc.repo.Delete(ctx, id))
}

// resolveCategories hace una sola consulta por las categorías referenciadas en list.
func (uc *ProductUseCase) resolveCategories(ctx context.Context, list []*entity.Product) (map[string]*entity.Category, error) {
	seen := make(map[string]struct{}, len(list))
	ids := make([]string, 0, len(list))
	for _, p := range list {
		if p.CategoryID == "" {
			continue
		}
		if _, ok := seen[p.CategoryID]; ok {
			continue
		}
		seen[p.CategoryID] = struct{}{}
		ids = append(ids, p.CategoryID)
	}
	byID := make(map[string]*entity.Category, len(ids))
	if len(ids) == 0 {
		return byID, nil
	}
	categories, err := uc.categories.ListByIDs(ctx, ids)
	if err != nil {
		return nil, persistenceErr("populate categories", err)
	}
	for _, c := range categories {
		byID[c.ID] = c
	}
	return byID, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     entity.NewPrice(p.Price),
		Category:  p.CategoryID,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

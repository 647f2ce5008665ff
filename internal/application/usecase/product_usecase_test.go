package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/media"
	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type catalogFixture struct {
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
	store      *memory.ObjectStore
}

func newCatalog(t *testing.T) catalogFixture {
	t.Helper()
	categoryRepo := memory.NewCategoryRepository()
	productRepo := memory.NewProductRepository()
	store := memory.NewObjectStore(testBaseURL)
	images := media.NewImageAttacher(store, "uploads")
	return catalogFixture{
		categories: usecase.NewCategoryUseCase(categoryRepo, images),
		products:   usecase.NewProductUseCase(productRepo, categoryRepo, images),
		store:      store,
	}
}

func (f catalogFixture) category(t *testing.T, name string) *dto.CategoryResponse {
	t.Helper()
	out, err := f.categories.Create(context.Background(), dto.CreateCategoryRequest{Name: name, Image: image(name + ".png")})
	require.NoError(t, err)
	return out
}

func (f catalogFixture) product(t *testing.T, name, price, categoryID string) *dto.ProductResponse {
	t.Helper()
	out, err := f.products.Create(context.Background(), dto.CreateProductRequest{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: categoryID,
		Image:      image(name + ".jpg"),
	})
	require.NoError(t, err)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_SinImagen(t *testing.T) {
	f := newCatalog(t)

	_, err := f.products.Create(context.Background(), dto.CreateProductRequest{Name: "Widget"})

	assert.ErrorIs(t, err, domain.ErrNoFile)
	assert.Equal(t, 0, f.store.Len())
}

func TestProductCreate_CategoriaNoSeValida(t *testing.T) {
	f := newCatalog(t)

	out := f.product(t, "Widget", "9.99", "no-existe")

	assert.Equal(t, "no-existe", out.Category)
	assert.True(t, decimal.RequireFromString("9.99").Equal(out.Price.Decimal))
	assert.Contains(t, out.ImageURL, "/uploads/products/")
}

func TestProductCreate_FalloDeSubida(t *testing.T) {
	repo := memory.NewProductRepository()
	uc := usecase.NewProductUseCase(repo, memory.NewCategoryRepository(), media.NewImageAttacher(failingStore{}, ""))

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "Widget", Image: image("w.png")})

	assert.ErrorIs(t, err, domain.ErrUpload)
	list, _ := uc.List(context.Background(), "")
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// List / GetByID
// ──────────────────────────────────────────────────────────────────────────────

func TestProductList_PoblaCategoriaCompleta(t *testing.T) {
	f := newCatalog(t)
	shoes := f.category(t, "Shoes")
	f.product(t, "Boot", "10", shoes.ID)

	list, err := f.products.List(context.Background(), "")

	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Category)
	assert.Equal(t, shoes.ID, list[0].Category.ID)
	assert.Equal(t, "Shoes", list[0].Category.Name)
	assert.Equal(t, shoes.ImageURL, list[0].Category.ImageURL)
}

func TestProductList_FiltraPorCategoria(t *testing.T) {
	f := newCatalog(t)
	shoes := f.category(t, "Shoes")
	hats := f.category(t, "Hats")
	boot := f.product(t, "Boot", "10", shoes.ID)
	f.product(t, "Cap", "5", hats.ID)

	list, err := f.products.List(context.Background(), shoes.ID)

	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, boot.ID, list[0].ID)
}

func TestProductList_FiltroSinCoincidencias(t *testing.T) {
	f := newCatalog(t)
	f.product(t, "Boot", "10", f.category(t, "Shoes").ID)

	list, err := f.products.List(context.Background(), "otra")

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestProductList_CategoriaBorradaQuedaNull(t *testing.T) {
	f := newCatalog(t)
	ctx := context.Background()
	shoes := f.category(t, "Shoes")
	boot := f.product(t, "Boot", "10", shoes.ID)
	require.NoError(t, f.categories.Delete(ctx, shoes.ID))

	list, err := f.products.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, list, 1, "borrar la categoría no borra productos")
	assert.Equal(t, boot.ID, list[0].ID)
	assert.Nil(t, list[0].Category)

	detail, err := f.products.GetByID(ctx, boot.ID)
	require.NoError(t, err)
	assert.Nil(t, detail.Category)
}

func TestProductGetByID_CategoriaSoloConNombre(t *testing.T) {
	f := newCatalog(t)
	shoes := f.category(t, "Shoes")
	boot := f.product(t, "Boot", "10", shoes.ID)

	detail, err := f.products.GetByID(context.Background(), boot.ID)

	require.NoError(t, err)
	require.NotNil(t, detail.Category)
	assert.Equal(t, dto.CategoryRef{ID: shoes.ID, Name: "Shoes"}, *detail.Category)
}

func TestProductGetByID_Inexistente(t *testing.T) {
	f := newCatalog(t)

	_, err := f.products.GetByID(context.Background(), "nope")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestProductUpdate_PatchParcial(t *testing.T) {
	f := newCatalog(t)
	ctx := context.Background()
	shoes := f.category(t, "Shoes")
	hats := f.category(t, "Hats")
	boot := f.product(t, "Boot", "10", shoes.ID)
	price := decimal.RequireFromString("12.50")

	payload, err := f.products.Update(ctx, boot.ID, dto.UpdateProductRequest{
		Price:      &price,
		CategoryID: strPtr(hats.ID),
	})

	require.NoError(t, err)
	assert.Nil(t, payload.Name)
	assert.Nil(t, payload.ImageURL)
	require.NotNil(t, payload.Category)
	assert.Equal(t, hats.ID, *payload.Category)
	require.NotNil(t, payload.Price)
	assert.Equal(t, "12.50", payload.Price.String())

	detail, err := f.products.GetByID(ctx, boot.ID)
	require.NoError(t, err)
	assert.Equal(t, "Boot", detail.Name)
	assert.True(t, price.Equal(detail.Price.Decimal))
	assert.Equal(t, "12.50", detail.Price.String(), "se conserva la escala recibida")
	assert.Equal(t, boot.ImageURL, detail.ImageURL)
	assert.Equal(t, "Hats", detail.Category.Name)

	byHats, err := f.products.List(ctx, hats.ID)
	require.NoError(t, err)
	assert.Len(t, byHats, 1)
	byShoes, err := f.products.List(ctx, shoes.ID)
	require.NoError(t, err)
	assert.Empty(t, byShoes)
}

func TestProductUpdate_ConImagen(t *testing.T) {
	f := newCatalog(t)
	boot := f.product(t, "Boot", "10", "")

	payload, err := f.products.Update(context.Background(), boot.ID, dto.UpdateProductRequest{Image: image("new.png")})

	require.NoError(t, err)
	require.NotNil(t, payload.ImageURL)
	assert.NotEqual(t, boot.ImageURL, *payload.ImageURL)
}

func TestProductUpdate_InexistenteNoSube(t *testing.T) {
	f := newCatalog(t)

	_, err := f.products.Update(context.Background(), "nope", dto.UpdateProductRequest{Image: image("x.png")})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, f.store.Len())
}

func TestProductDelete(t *testing.T) {
	f := newCatalog(t)
	ctx := context.Background()
	boot := f.product(t, "Boot", "10", "")

	require.NoError(t, f.products.Delete(ctx, boot.ID))

	_, err := f.products.GetByID(ctx, boot.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, f.products.Delete(ctx, boot.ID), domain.ErrNotFound)
}

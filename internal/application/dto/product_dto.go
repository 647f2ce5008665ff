package dto

import (
	"time"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. La imagen es obligatoria.
type CreateProductRequest struct {
	Name       string
	Price      decimal.Decimal
	CategoryID string
	Image      *UploadedFile
}

// UpdateProductRequest entrada para actualizar un producto. Los campos nil no se modifican.
type UpdateProductRequest struct {
	Name       *string
	Price      *decimal.Decimal
	CategoryID *string
	Image      *UploadedFile
}

// ProductResponse salida de un producto con la categoría como ID plano.
type ProductResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Price     entity.Price `json:"price"`
	Category  string       `json:"category"`
	ImageURL  string       `json:"imageUrl"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// ProductWithCategoryResponse salida de listado: categoría poblada completa (null si no existe).
type ProductWithCategoryResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Price     entity.Price      `json:"price"`
	Category  *CategoryResponse `json:"category"`
	ImageURL  string            `json:"imageUrl"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// CategoryRef categoría poblada solo con su nombre.
type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductDetailResponse salida de consulta por ID: categoría poblada solo con nombre.
type ProductDetailResponse struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Price     entity.Price `json:"price"`
	Category  *CategoryRef `json:"category"`
	ImageURL  string       `json:"imageUrl"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

// ProductUpdatePayload eco de los campos que se intentaron actualizar.
type ProductUpdatePayload struct {
	Name     *string       `json:"name,omitempty"`
	Price    *entity.Price `json:"price,omitempty"`
	Category *string       `json:"category,omitempty"`
	ImageURL *string       `json:"imageUrl,omitempty"`
}

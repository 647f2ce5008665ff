package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría. La imagen es obligatoria.
type CreateCategoryRequest struct {
	Name  string
	Image *UploadedFile
}

// UpdateCategoryRequest entrada para actualizar una categoría. Los campos nil no se modifican.
type UpdateCategoryRequest struct {
	Name  *string
	Image *UploadedFile
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImageURL  string    `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryUpdatePayload eco de los campos que se intentaron actualizar.
type CategoryUpdatePayload struct {
	Name     *string `json:"name,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// CategoryHandler maneja las peticiones HTTP para Category.
type CategoryHandler struct {
	uc  *usecase.CategoryUseCase
	log *logger.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear categoría con imagen
// @Tags         categories
// @Accept       multipart/form-data
// @Produce      json
// @Param        name   formData  string  false  "Nombre"
// @Param        image  formData  file    true   "Imagen"
// @Success      201    {object}  dto.CategoryResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      502    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /addCategories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	form, err := parseForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	image, err := form.image()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "imagen ilegible"})
	}
	name, _ := form.value("name")
	out, err := h.uc.Create(c.UserContext(), dto.CreateCategoryRequest{Name: name, Image: image})
	if err != nil {
		return respondError(c, h.log, "create category", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar categorías
// @Tags         categories
// @Produce      json
// @Success      200  {array}   dto.CategoryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /addcategories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, "list categories", err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /addcategories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), pathID(c))
	if err != nil {
		return respondError(c, h.log, "get category", err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría (imagen opcional)
// @Tags         categories
// @Accept       multipart/form-data
// @Produce      json
// @Param        id     path      string  true   "ID de la categoría"
// @Param        name   formData  string  false  "Nombre"
// @Param        image  formData  file    false  "Nueva imagen"
// @Success      200    {object}  dto.CategoryUpdatePayload
// @Failure      404    {object}  dto.ErrorResponse
// @Failure      502    {object}  dto.ErrorResponse
// @Failure      500    {object}  dto.ErrorResponse
// @Router       /updateCategory/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	form, err := parseForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	image, err := form.image()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "imagen ilegible"})
	}
	in := dto.UpdateCategoryRequest{Name: form.optional("name"), Image: image}
	out, err := h.uc.Update(c.UserContext(), pathID(c), in)
	if err != nil {
		return respondError(c, h.log, "update category", err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría (no borra sus productos)
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "ID de la categoría"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /deleteCategory/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), pathID(c)); err != nil {
		return respondError(c, h.log, "delete category", err)
	}
	return c.JSON(dto.MessageResponse{Message: "category deleted"})
}

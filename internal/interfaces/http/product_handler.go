package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// ProductHandler maneja las peticiones HTTP para Product.
type ProductHandler struct {
	uc  *usecase.ProductUseCase
	log *logger.Logger
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, log *logger.Logger) *ProductHandler {
	return &ProductHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Crear producto con imagen
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        name      formData  string  false  "Nombre"
// @Param        price     formData  string  false  "Precio decimal"
// @Param        category  formData  string  false  "ID de la categoría"
// @Param        image     formData  file    true   "Imagen"
// @Success      201       {object}  dto.ProductResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      502       {object}  dto.ErrorResponse
// @Failure      500       {object}  dto.ErrorResponse
// @Router       /addProduct [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	form, err := parseForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	image, err := form.image()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "imagen ilegible"})
	}
	price, _, err := form.price()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "price inválido"})
	}
	name, _ := form.value("name")
	category, _ := form.value("category")
	out, err := h.uc.Create(c.UserContext(), dto.CreateProductRequest{
		Name:       name,
		Price:      price,
		CategoryID: category,
		Image:      image,
	})
	if err != nil {
		return respondError(c, h.log, "create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar productos con su categoría poblada
// @Tags         products
// @Produce      json
// @Param        category  query     string  false  "Filtrar por ID de categoría"
// @Success      200       {array}   dto.ProductWithCategoryResponse
// @Failure      500       {object}  dto.ErrorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("category"))
	if err != nil {
		return respondError(c, h.log, "list products", err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID (categoría solo con nombre)
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.ProductDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), pathID(c))
	if err != nil {
		return respondError(c, h.log, "get product", err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (imagen opcional)
// @Tags         products
// @Accept       multipart/form-data
// @Produce      json
// @Param        id        path      string  true   "ID del producto"
// @Param        name      formData  string  false  "Nombre"
// @Param        price     formData  string  false  "Precio decimal"
// @Param        category  formData  string  false  "ID de la categoría"
// @Param        image     formData  file    false  "Nueva imagen"
// @Success      200       {object}  dto.ProductUpdatePayload
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Failure      502       {object}  dto.ErrorResponse
// @Failure      500       {object}  dto.ErrorResponse
// @Router       /updateProduct/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	form, err := parseForm(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	image, err := form.image()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "imagen ilegible"})
	}
	in := dto.UpdateProductRequest{
		Name:       form.optional("name"),
		CategoryID: form.optional("category"),
		Image:      image,
	}
	price, ok, err := form.price()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "price inválido"})
	}
	if ok {
		in.Price = &price
	}
	out, err := h.uc.Update(c.UserContext(), pathID(c), in)
	if err != nil {
		return respondError(c, h.log, "update product", err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /deleteProduct/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), pathID(c)); err != nil {
		return respondError(c, h.log, "delete product", err)
	}
	return c.JSON(dto.MessageResponse{Message: "product deleted"})
}

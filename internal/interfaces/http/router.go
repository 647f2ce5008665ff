package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalog-api/internal/application/ports"
	"github.com/jhoicas/catalog-api/internal/application/usecase"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName    string
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	Blobs      ports.BlobReader // opcional: solo con el driver de almacenamiento en memoria
	Logger     *logger.Logger
}

// Router registra las rutas de la API. Fiber no distingue mayúsculas en las rutas,
// así que /addCategories y /addcategories son el mismo path.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Hi")
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	// Categories
	categoryHandler := NewCategoryHandler(deps.CategoryUC, log.Component("categories"))
	app.Post("/addCategories", categoryHandler.Create)
	app.Get("/addcategories", categoryHandler.List)
	app.Get("/addcategories/:id", categoryHandler.GetByID)
	app.Put("/updateCategory/:id", categoryHandler.Update)
	app.Delete("/deleteCategory/:id", categoryHandler.Delete)

	// Products
	productHandler := NewProductHandler(deps.ProductUC, log.Component("products"))
	app.Post("/addProduct", productHandler.Create)
	app.Get("/products", productHandler.List)
	app.Get("/products/:id", productHandler.GetByID)
	app.Put("/updateProduct/:id", productHandler.Update)
	app.Delete("/deleteProduct/:id", productHandler.Delete)

	if deps.Blobs != nil {
		app.Get("/media/*", NewMediaHandler(deps.Blobs).Serve)
	}
}

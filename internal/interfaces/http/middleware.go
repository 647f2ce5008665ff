package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// UseMiddlewares registra la cadena global: request id, log de la petición y recover.
// recover va dentro de RequestLogger para que un panic llegue al logger como error y
// quede registrado con status 500.
func UseMiddlewares(app *fiber.App, log *logger.Logger) {
	app.Use(requestid.New())
	app.Use(RequestLogger(log))
	app.Use(recover.New())
}

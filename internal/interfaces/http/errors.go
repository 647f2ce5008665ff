package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// respondError traduce errores de dominio a HTTP. El detalle original solo va al log;
// al cliente le llega un código estable y un mensaje genérico.
func respondError(c *fiber.Ctx, log *logger.Logger, op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNoFile):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "NO_FILE", Message: "no file uploaded"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "entrada inválida"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "not found"})
	case errors.Is(err, domain.ErrUpload):
		log.Error().Err(err).Str("op", op).Str("path", c.Path()).Msg("subida de imagen fallida")
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: "UPLOAD_FAILED", Message: "no se pudo subir la imagen"})
	case errors.Is(err, domain.ErrPersistence):
		log.Error().Err(err).Str("op", op).Str("path", c.Path()).Msg("persistencia fallida")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "PERSISTENCE_FAILED", Message: "no se pudo guardar el registro"})
	default:
		log.Error().Err(err).Str("op", op).Str("path", c.Path()).Msg("error inesperado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
}

// ErrorHandler reemplaza el manejador por defecto de Fiber (rutas inexistentes, cuerpo demasiado grande, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	name := strings.ToUpper(strings.ReplaceAll(utils.StatusMessage(code), " ", "_"))
	msg := "error interno"
	if fe != nil && code < fiber.StatusInternalServerError {
		msg = fe.Message
	}
	return c.Status(code).JSON(dto.ErrorResponse{Code: name, Message: msg})
}

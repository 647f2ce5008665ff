package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/ports"
)

// MediaHandler sirve blobs del almacén en memoria para que sus URLs públicas resuelvan.
type MediaHandler struct {
	blobs ports.BlobReader
}

// NewMediaHandler construye el handler.
func NewMediaHandler(blobs ports.BlobReader) *MediaHandler {
	return &MediaHandler{blobs: blobs}
}

// Serve GET /media/<key>
func (h *MediaHandler) Serve(c *fiber.Ctx) error {
	data, contentType, ok := h.blobs.Open(c.UserContext(), c.Params("*"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "not found"})
	}
	if contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.Send(data)
}

package usecase

import (
	"errors"
	"fmt"

	"github.com/jhoicas/catalog-api/internal/domain"
)

// persistenceErr envuelve errores del almacén de documentos en domain.ErrPersistence.
// domain.ErrNotFound se deja pasar tal cual para que el handler responda 404.
func persistenceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %s: %w", domain.ErrPersistence, op, err)
}

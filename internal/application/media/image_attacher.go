package media

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/ports"
	"github.com/jhoicas/catalog-api/internal/domain"
)

// Carpetas lógicas dentro del bucket.
const (
	FolderCategories = "categories"
	FolderProducts   = "products"
)

// ImageAttacher decide si hay que subir una imagen antes de persistir un registro.
// La subida termina (o falla) antes de que el caller toque el almacén de documentos.
type ImageAttacher struct {
	store  ports.ObjectStore
	prefix string
	newID  func() string
}

// NewImageAttacher construye el secuenciador. prefix se antepone a cada clave (p. ej. "uploads").
func NewImageAttacher(store ports.ObjectStore, prefix string) *ImageAttacher {
	return &ImageAttacher{
		store:  store,
		prefix: prefix,
		newID:  func() string { return uuid.New().String() },
	}
}

// Attach sube file y devuelve la URL pública. Sin archivo devuelve (nil, nil) y no sube nada.
// Un fallo de subida se devuelve envuelto en domain.ErrUpload.
func (a *ImageAttacher) Attach(ctx context.Context, folder string, file *dto.UploadedFile) (*string, error) {
	if file == nil {
		return nil, nil
	}
	key := ObjectKey(a.prefix, folder, file.OriginalName, a.newID())
	contentType := file.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(file.Data)
	}
	url, err := a.store.Upload(ctx, key, file.Data, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpload, err)
	}
	return &url, nil
}

// ObjectKey arma la clave del blob: <prefix>/<folder>/<id><ext>. La unicidad la da id.
func ObjectKey(prefix, folder, originalName, id string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return path.Join(prefix, folder, id+ext)
}

package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/catalog-api/internal/application/ports"
)

var (
	_ ports.ObjectStore = (*ObjectStore)(nil)
	_ ports.BlobReader  = (*ObjectStore)(nil)
)

type blob struct {
	data        []byte
	contentType string
}

// ObjectStore almacenamiento de objetos en memoria. Las URLs se construyen sobre baseURL
// y el router HTTP las sirve en /media/*.
type ObjectStore struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]blob
}

// NewObjectStore construye el almacén. baseURL es la URL pública bajo la que se sirven los blobs.
func NewObjectStore(baseURL string) *ObjectStore {
	return &ObjectStore{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]blob),
	}
}

// Upload guarda una copia de data y devuelve la URL pública.
func (s *ObjectStore) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	s.objects[key] = blob{data: cp, contentType: contentType}
	s.mu.Unlock()

	return s.baseURL + "/" + key, nil
}

// Open devuelve el contenido de un blob.
func (s *ObjectStore) Open(_ context.Context, key string) ([]byte, string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.objects[key]
	if !ok {
		return nil, "", false
	}
	return b.data, b.contentType, true
}

// Len número de blobs guardados.
func (s *ObjectStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

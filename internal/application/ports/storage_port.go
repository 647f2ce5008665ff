package ports

import "context"

// ObjectStore define el puerto de salida hacia el almacenamiento de objetos (MinIO, S3, memoria).
// Upload es bloqueante: cuando retorna sin error el blob ya es legible públicamente
// y la URL devuelta se puede resolver por HTTP.
type ObjectStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (publicURL string, err error)
}

// BlobReader lo implementan los almacenes que sirven sus propios blobs (driver en memoria).
type BlobReader interface {
	Open(ctx context.Context, key string) (data []byte, contentType string, ok bool)
}

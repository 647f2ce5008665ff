package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrNoFile       = errors.New("no file uploaded")
	ErrUpload       = errors.New("falló la subida al almacenamiento de objetos")
	ErrPersistence  = errors.New("falló la operación en el almacén de documentos")
)

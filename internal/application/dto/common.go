package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse cuerpo de confirmación simple (p. ej. borrados).
type MessageResponse struct {
	Message string `json:"message"`
}

// UploadedFile archivo recibido en memoria desde un formulario multipart.
type UploadedFile struct {
	Data         []byte
	OriginalName string
	ContentType  string
}

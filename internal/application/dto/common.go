package dto

import "io"

// ErrorResponse cuerpo de error de los middlewares (auth/permisos).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FileUpload archivo recibido en un formulario multipart, ya abierto.
// Size 0 equivale a un archivo vacío.
type FileUpload struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// IsEmpty indica si el archivo no trae contenido.
func (f *FileUpload) IsEmpty() bool {
	return f == nil || f.Size == 0
}

// PhotoFile archivo de imagen listo para servirse como descarga.
type PhotoFile struct {
	Name    string
	Size    int64
	Content io.ReadCloser
}

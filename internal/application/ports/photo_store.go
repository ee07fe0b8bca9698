package ports

import (
	"context"
	"io"
)

// PhotoStore define el puerto de salida para guardar las imágenes subidas.
// Cada instancia representa un directorio plano (descargas, descargasAdmin) y
// los archivos se identifican solo por su nombre generado.
// Implementaciones: disco local y bucket S3/MinIO.
type PhotoStore interface {
	// Save escribe el contenido bajo name. Falla si name ya existe.
	Save(ctx context.Context, name string, content io.Reader) error
	// Open abre name para lectura. Devuelve error si no existe o no es legible.
	Open(ctx context.Context, name string) (io.ReadCloser, int64, error)
	// Exists indica si name existe y es legible.
	Exists(ctx context.Context, name string) bool
	// Delete borra name.
	Delete(ctx context.Context, name string) error
	// Location describe dónde queda name (ruta absoluta o URL), solo para logs.
	Location(name string) string
}

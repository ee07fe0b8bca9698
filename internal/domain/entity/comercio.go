package entity

import "time"

// Cantidad de imágenes que admite un comercio (Img, Img1, Img2).
const ComercioPhotoSlots = 3

// Comercio representa un comercio publicado en el directorio.
// Comentarios no se persiste en esta tabla: se completa al leer.
type Comercio struct {
	ID          int64
	Nombre      string
	Likes       int64
	Visitas     int64
	Fecha       time.Time // fecha de alta
	Mes         int       // mes de alta (1..12), usado en las búsquedas por mes
	Actividad   string
	Img         string // nombres de archivo en el directorio de descargas
	Img1        string
	Img2        string
	Comentarios []Comentario
}

// Photo devuelve el nombre de archivo guardado en la posición slot (1..3).
func (c *Comercio) Photo(slot int) string {
	switch slot {
	case 1:
		return c.Img
	case 2:
		return c.Img1
	case 3:
		return c.Img2
	}
	return ""
}

// SetPhoto reemplaza el nombre de archivo de la posición slot (1..3).
func (c *Comercio) SetPhoto(slot int, name string) {
	switch slot {
	case 1:
		c.Img = name
	case 2:
		c.Img1 = name
	case 3:
		c.Img2 = name
	}
}

// MergeComercio copia sobre actual los campos editables vía PUT: id, nombre y likes.
// El resto de campos de actual se conserva. Devuelve actual.
func MergeComercio(actual, entrante *Comercio) *Comercio {
	actual.ID = entrante.ID
	actual.Nombre = entrante.Nombre
	actual.Likes = entrante.Likes
	return actual
}
